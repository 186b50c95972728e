package models

// Routing keys for domain events published on the event exchange.
const (
	EventBrandCreated         = "brand.created"
	EventBrandUpdated         = "brand.updated"
	EventBrandDeleted         = "brand.deleted"
	EventProductCreated       = "product.created"
	EventProductUpdated       = "product.updated"
	EventProductDeleted       = "product.deleted"
	EventShopkeeperRegistered = "shopkeeper.registered"
)

// ShopkeeperRegistered is published after a successful signup. It never carries the password.
type ShopkeeperRegistered struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	ShopName string   `json:"shopName"`
	ShopID   string   `json:"shopId"`
	Location GeoPoint `json:"location"`
	Status   string   `json:"status"`
}

// EntityChanged is published for brand and product lifecycle changes.
type EntityChanged struct {
	ID string `json:"id"`
}
