package models

// Product represents a customizable product from the catalog
type Product struct {
	ID            int64               `json:"id"`
	Name          string              `json:"name"`
	Category      string              `json:"category"` // canvas, acrylic, frame, lettering
	BasePrice     int64               `json:"basePrice"`
	Description   string              `json:"description,omitempty"`
	Images        []string            `json:"images"`
	VariantImages map[string][]string `json:"variantImages,omitempty"`
	Sizes         []ProductVariant    `json:"sizes"`
	Frames        []ProductVariant    `json:"frames"`
	IsActive      bool                `json:"isActive"`
	CreatedAt     string              `json:"createdAt,omitempty"`
}

// ProductVariant is one selectable variant (a size or a frame) with its price delta
type ProductVariant struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// ProductListItem is the reduced shape returned by the product list endpoint
type ProductListItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	BasePrice int64  `json:"basePrice"`
	ImageURL  string `json:"imageUrl,omitempty"`
}
