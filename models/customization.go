package models

// CreateSessionRequest starts a customization session for a product.
// Example: {"productId": 12, "flow": "photo"}
// flow values: "photo" (default, 10 MB limit), "logo" (5 MB limit),
// "text" (requires custom text before submit)
type CreateSessionRequest struct {
	ProductID int64  `json:"productId"`
	Flow      string `json:"flow,omitempty"`
}

// SelectChoiceRequest selects one choice within a dimension.
// Example: {"dimensionId": "size", "choiceId": "30x40"}
type SelectChoiceRequest struct {
	DimensionID string `json:"dimensionId"`
	ChoiceID    string `json:"choiceId"`
}

// SelectTemplateRequest changes the design template.
// Example: {"templateId": "collage"}
type SelectTemplateRequest struct {
	TemplateID string `json:"templateId"`
}

// QuantityRequest updates the order quantity. Example: {"quantity": 2}
type QuantityRequest struct {
	Quantity int `json:"quantity"`
}

// TextRequest updates the custom text. Example: {"text": "Familia Pérez"}
type TextRequest struct {
	Text string `json:"text"`
}

// CanvasView is the transient render state exposed to the client
type CanvasView struct {
	Scale           float64 `json:"scale"`
	RotationDegrees int     `json:"rotationDegrees"`
	AspectRatio     float64 `json:"aspectRatio"`
	FrameWidth      int     `json:"frameWidth"`
	FrameHeight     int     `json:"frameHeight"`
}

// SlotView is one collage slot in the session view
type SlotView struct {
	Index int            `json:"index"`
	Image *UploadedImage `json:"image,omitempty"`
}

// SessionView is the full state returned by GET /customize/sessions/:id
type SessionView struct {
	ID         string            `json:"id"`
	ProductID  int64             `json:"productId"`
	Flow       string            `json:"flow"`
	Step       string            `json:"step"`
	Template   DesignTemplate    `json:"template"`
	Dimensions []OptionDimension `json:"dimensions"`
	Quantity   int               `json:"quantity"`
	CustomText string            `json:"customText,omitempty"`
	Photo      *UploadedImage    `json:"photo,omitempty"`
	Slots      []SlotView        `json:"slots,omitempty"`
	Canvas     *CanvasView       `json:"canvas,omitempty"`
	Price      PriceBreakdown    `json:"price"`
}
