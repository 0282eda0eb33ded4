package customize

import (
	"fmt"
	"strings"

	"estampa-studio/models"
)

// Dimension IDs used across the customization flow
const (
	DimensionSize      = "size"
	DimensionFrame     = "frame"
	DimensionThickness = "thickness"
)

// Templates is the fixed list of design templates offered on every
// customization page. aspectRatio is width/height.
var Templates = []models.DesignTemplate{
	{ID: "portrait", Label: "Vertical", AspectRatio: 3.0 / 4.0, Overlay: "none"},
	{ID: "landscape", Label: "Horizontal", AspectRatio: 4.0 / 3.0, Overlay: "none"},
	{ID: "square", Label: "Cuadrado", AspectRatio: 1.0, Overlay: "none"},
	{ID: "dual-border", Label: "Doble Borde", AspectRatio: 1.0, Overlay: "dual-border"},
	{ID: "collage", Label: "Collage", AspectRatio: 1.0, Overlay: "grid", IsCollage: true},
}

// TemplateByID looks up a design template, returning nil when unknown
func TemplateByID(id string) *models.DesignTemplate {
	for i := range Templates {
		if Templates[i].ID == id {
			return &Templates[i]
		}
	}
	return nil
}

// Default choices used when the catalog product record omits a dimension.
// Prices are COP deltas over the base price.
var defaultSizes = []models.OptionChoice{
	{ID: "20x30", Label: "20x30 cm", PriceDelta: 0},
	{ID: "30x40", Label: "30x40 cm", PriceDelta: 40000, IsPopular: true},
	{ID: "40x60", Label: "40x60 cm", PriceDelta: 95000},
	{ID: "60x90", Label: "60x90 cm", PriceDelta: 180000},
}

var defaultFrames = []models.OptionChoice{
	{ID: "none", Label: "Sin marco", PriceDelta: 0, IsNone: true},
	{ID: "black", Label: "Marco negro", PriceDelta: 29900, IsPopular: true},
	{ID: "white", Label: "Marco blanco", PriceDelta: 29900},
	{ID: "oak", Label: "Marco roble", PriceDelta: 39900},
}

var defaultThicknesses = []models.OptionChoice{
	{ID: "3mm", Label: "3 mm", PriceDelta: 0},
	{ID: "5mm", Label: "5 mm", PriceDelta: 10000},
	{ID: "8mm", Label: "8 mm", PriceDelta: 25000},
}

// printSizes maps size choice IDs to their physical print size in inches,
// used by the ingestion quality estimate.
var printSizes = map[string]models.PrintSize{
	"20x30": {WidthInches: 7.9, HeightInches: 11.8},
	"30x40": {WidthInches: 11.8, HeightInches: 15.7},
	"40x60": {WidthInches: 15.7, HeightInches: 23.6},
	"60x90": {WidthInches: 23.6, HeightInches: 35.4},
}

// defaultPrintSize is used when the selected size has no inch mapping
var defaultPrintSize = models.PrintSize{WidthInches: 8, HeightInches: 10}

// PrintSizeFor returns the physical print size for a size choice ID
func PrintSizeFor(sizeChoiceID string) models.PrintSize {
	if ps, exists := printSizes[sizeChoiceID]; exists {
		return ps
	}
	return defaultPrintSize
}

// BuildDimensions builds the option dimensions for a product. Catalog-sourced
// sizes and frames take precedence; hardcoded defaults fill in when the
// product record omits them. Thickness only applies to acrylic products and
// is excluded entirely otherwise. The first choice of each dimension is
// pre-selected, preferring a popular one.
func BuildDimensions(product *models.Product) []models.OptionDimension {
	var dimensions []models.OptionDimension

	sizes := variantChoices(product.Sizes)
	if len(sizes) == 0 {
		sizes = cloneChoices(defaultSizes)
	}
	dimensions = append(dimensions, newDimension(DimensionSize, "Tamaño", sizes))

	frames := variantChoices(product.Frames)
	if len(frames) == 0 {
		frames = cloneChoices(defaultFrames)
	}
	dimensions = append(dimensions, newDimension(DimensionFrame, "Marco", frames))

	if product.Category == "acrylic" {
		dimensions = append(dimensions, newDimension(DimensionThickness, "Grosor", cloneChoices(defaultThicknesses)))
	}

	return dimensions
}

// newDimension creates a dimension with its default selection applied
func newDimension(id, label string, choices []models.OptionChoice) models.OptionDimension {
	dim := models.OptionDimension{
		ID:      id,
		Label:   label,
		Choices: choices,
	}
	dim.SelectedID = choices[0].ID
	for _, c := range choices {
		if c.IsPopular {
			dim.SelectedID = c.ID
			break
		}
	}
	return dim
}

// variantChoices converts catalog variant records into option choices.
// Choice IDs are derived from the variant name (lowercased, spaces collapsed).
func variantChoices(variants []models.ProductVariant) []models.OptionChoice {
	choices := make([]models.OptionChoice, 0, len(variants))
	for _, v := range variants {
		name := strings.TrimSpace(v.Name)
		if name == "" {
			continue
		}
		choices = append(choices, models.OptionChoice{
			ID:         strings.ReplaceAll(strings.ToLower(name), " ", "-"),
			Label:      name,
			PriceDelta: v.Price,
			IsNone:     strings.EqualFold(name, "sin marco") || strings.EqualFold(name, "none"),
		})
	}
	return choices
}

func cloneChoices(choices []models.OptionChoice) []models.OptionChoice {
	out := make([]models.OptionChoice, len(choices))
	copy(out, choices)
	return out
}

// SelectChoice updates the selection of one dimension. Returns a
// ValidationError when the dimension or choice does not exist.
func SelectChoice(dimensions []models.OptionDimension, dimensionID, choiceID string) error {
	for i := range dimensions {
		if dimensions[i].ID != dimensionID {
			continue
		}
		for _, c := range dimensions[i].Choices {
			if c.ID == choiceID {
				dimensions[i].SelectedID = choiceID
				return nil
			}
		}
		return NewValidationError(fmt.Sprintf("choice %q not available for %s", choiceID, dimensionID))
	}
	return NewValidationError(fmt.Sprintf("unknown dimension %q", dimensionID))
}
