package customize

import (
	"fmt"

	"estampa-studio/models"
)

// CollageSlotCount is the fixed number of positions in the 2×2 collage grid
const CollageSlotCount = 4

// Collage manages four independent image slots rendered into a 2×2 grid
type Collage struct {
	Slots [CollageSlotCount]*models.UploadedImage
}

// validSlot checks a slot index
func validSlot(index int) error {
	if index < 0 || index >= CollageSlotCount {
		return NewValidationError(fmt.Sprintf("collage slot must be between 0 and %d, got %d", CollageSlotCount-1, index))
	}
	return nil
}

// SetSlot places an image in one slot, discarding whatever the slot held.
// Other slots are not touched.
func (c *Collage) SetSlot(index int, img *models.UploadedImage) error {
	if err := validSlot(index); err != nil {
		return err
	}
	c.Slots[index] = img
	return nil
}

// ClearSlot removes the image from one slot without affecting the others
func (c *Collage) ClearSlot(index int) error {
	if err := validSlot(index); err != nil {
		return err
	}
	c.Slots[index] = nil
	return nil
}

// ClearAll empties every slot
func (c *Collage) ClearAll() {
	for i := range c.Slots {
		c.Slots[i] = nil
	}
}

// HasAtLeastOneImage reports whether any slot holds an image. This is the
// readiness predicate that gates advancing past the upload step, deliberately
// more permissive than requiring all four slots filled.
func (c *Collage) HasAtLeastOneImage() bool {
	for _, slot := range c.Slots {
		if slot != nil {
			return true
		}
	}
	return false
}

// FilledCount returns the number of non-empty slots
func (c *Collage) FilledCount() int {
	count := 0
	for _, slot := range c.Slots {
		if slot != nil {
			count++
		}
	}
	return count
}
