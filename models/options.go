package models

// OptionChoice is one selectable value within an option dimension
type OptionChoice struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	PriceDelta int64  `json:"priceDelta"`
	IsPopular  bool   `json:"isPopular,omitempty"`
	IsNone     bool   `json:"isNone,omitempty"`
}

// OptionDimension is a named axis of customization (size, frame color, thickness).
// Built once when the session is created and immutable afterwards; exactly one
// choice is selected at any time.
type OptionDimension struct {
	ID         string         `json:"id"`
	Label      string         `json:"label"`
	Choices    []OptionChoice `json:"choices"`
	SelectedID string         `json:"selectedId"`
}

// Selected returns the currently selected choice of the dimension
func (d *OptionDimension) Selected() *OptionChoice {
	for i := range d.Choices {
		if d.Choices[i].ID == d.SelectedID {
			return &d.Choices[i]
		}
	}
	return nil
}

// DesignTemplate describes the aspect ratio and visual treatment of a design
type DesignTemplate struct {
	ID          string  `json:"id"`
	Label       string  `json:"label"`
	AspectRatio float64 `json:"aspectRatio"` // width / height
	Overlay     string  `json:"overlay"`     // none, border, dual-border, grid
	IsCollage   bool    `json:"isCollage"`
}

// PriceLine is one dimension's contribution to the price breakdown
type PriceLine struct {
	Dimension string `json:"dimension"`
	Choice    string `json:"choice"`
	Delta     int64  `json:"delta"`
}

// PriceBreakdown is derived from the current selections on every request,
// never cached across selection changes
type PriceBreakdown struct {
	BasePrice      int64       `json:"basePrice"`
	Lines          []PriceLine `json:"lines"`
	UnitPrice      int64       `json:"unitPrice"`
	Quantity       int         `json:"quantity"`
	Total          int64       `json:"total"`
	TotalFormatted string      `json:"totalFormatted"`
}

// PrintSize is the physical target print size in inches, used for DPI estimates
type PrintSize struct {
	WidthInches  float64 `json:"widthInches"`
	HeightInches float64 `json:"heightInches"`
}
