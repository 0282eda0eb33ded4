package models

// OrderIntent is the outbound payload handed to the order collaborator.
// Built once per submit action and discarded afterwards.
type OrderIntent struct {
	ProductID         int64  `json:"productId"`
	ProductName       string `json:"productName"`
	Category          string `json:"category"`
	SKU               string `json:"sku"`
	Quantity          int    `json:"quantity"`
	UnitPrice         int64  `json:"unitPrice"`
	SelectedSize      string `json:"selectedSize,omitempty"`
	SelectedFrame     string `json:"selectedFrame,omitempty"`
	SelectedThickness string `json:"selectedThickness,omitempty"`
	SelectedTemplate  string `json:"selectedTemplate"`
	CustomText        string `json:"customText,omitempty"`
	ImageRef          string `json:"imageRef"`
	Mode              string `json:"mode"` // cart or buyNow
}

// SubmitRequest is the request body for POST /customize/sessions/:id/submit
// Example: {"mode": "cart"}
type SubmitRequest struct {
	Mode string `json:"mode"` // "cart" or "buyNow"
}

// SubmitResponse confirms a successful hand-off to the order collaborator
type SubmitResponse struct {
	OrderRef string `json:"orderRef,omitempty"`
	ImageRef string `json:"imageRef"`
	Message  string `json:"message"`
}

// OrderServiceResponse is the shape returned by the external order service
type OrderServiceResponse struct {
	OrderRef string `json:"orderRef"`
	Message  string `json:"message,omitempty"`
}
