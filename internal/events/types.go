package events

type ProductAdded struct {
	ProductID string `json:"product_id"`
}

type ProductUpdated struct {
	ProductID string `json:"product_id"`
}

type ProductDeleted struct {
	ProductID string `json:"product_id"`
}

type PromotionAdded struct {
	PromotionID string `json:"promotion_id"`
}

type PromotionUpdated struct {
	PromotionID string `json:"promotion_id"`
}

type PromotionDeleted struct {
	PromotionID string `json:"promotion_id"`
}

// PriceChanged is published when a promotion change alters the resolved
// price of a product.
type PriceChanged struct {
	ProductID   string  `json:"product_id"`
	FinalPrice  float64 `json:"final_price"`
	PromotionID string  `json:"promotion_id,omitempty"`
}
