package models

import (
	"time"
)

const (
	RoleCustomer = "CUSTOMER"
	RoleAdmin    = "ADMIN"
)

const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusFulfilled = "FULFILLED"
	OrderStatusCancelled = "CANCELLED"
)

// ValidOrderStatus reports whether s is one of the four lifecycle values.
// Transitions between them are unconstrained; only membership is checked.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusFulfilled, OrderStatusCancelled:
		return true
	}
	return false
}

type User struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ExternalID   string    `gorm:"uniqueIndex;not null"     json:"external_id"`
	Email        string    `gorm:"uniqueIndex;not null"     json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `gorm:"not null"                 json:"-"`
	Role         string    `gorm:"not null;default:'CUSTOMER'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"not null"                 json:"name"`
	Slug string `gorm:"uniqueIndex;not null"     json:"slug"`
}

// Product.Active has no column default; every create supplies the flag
// explicitly so an explicit false reaches the row.
type Product struct {
	ID               uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name             string         `gorm:"not null"                 json:"name"`
	Slug             string         `gorm:"uniqueIndex;not null"     json:"slug"`
	Description      string         `json:"description"`
	ShortDescription string         `json:"short_description"`
	PriceCents       int64          `gorm:"not null"                 json:"price_cents"`
	CompareAtCents   *int64         `json:"compare_at_cents,omitempty"`
	Stock            int            `gorm:"not null;default:0;check:stock >= 0" json:"stock"`
	Unit             string         `json:"unit"`
	Active           bool           `gorm:"not null"                 json:"active"`
	Featured         bool           `gorm:"not null;default:false"   json:"featured"`
	OnSale           bool           `gorm:"not null;default:false"   json:"on_sale"`
	DiscountPercent  *int           `json:"discount_percent,omitempty"`
	SaleEndsAt       *time.Time     `json:"sale_ends_at,omitempty"`
	CategoryID       *uint          `gorm:"index"                    json:"category_id,omitempty"`
	Images           []ProductImage `gorm:"constraint:OnDelete:CASCADE" json:"images,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
}

type ProductImage struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint   `gorm:"index;not null"           json:"product_id"`
	URL       string `gorm:"not null"                 json:"url"`
	Alt       string `json:"alt"`
	Position  int    `gorm:"not null;default:0"       json:"position"`
}

// Cart is created lazily on first add-to-cart and never deleted; the unique
// user id is what keeps concurrent first-adds from producing two carts.
type Cart struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    uint      `gorm:"uniqueIndex;not null"     json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

type CartItem struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID     uint      `gorm:"not null;uniqueIndex:ux_cart_items_cart_product" json:"cart_id"`
	ProductID  uint      `gorm:"not null;uniqueIndex:ux_cart_items_cart_product" json:"product_id"`
	Quantity   int       `gorm:"not null;default:1;check:quantity > 0" json:"quantity"`
	PriceCents int64     `gorm:"not null"                 json:"price_cents"`
	CreatedAt  time.Time `json:"created_at"`
}

type Address struct {
	ID         uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     uint      `gorm:"index;not null"           json:"user_id"`
	Label      string    `json:"label,omitempty"`
	Recipient  string    `gorm:"not null"                 json:"recipient"`
	Line1      string    `gorm:"not null"                 json:"line1"`
	Line2      *string   `json:"line2,omitempty"`
	City       string    `gorm:"not null"                 json:"city"`
	Province   string    `gorm:"not null"                 json:"province"`
	PostalCode string    `gorm:"not null"                 json:"postal_code"`
	Country    string    `gorm:"not null;default:'South Africa'" json:"country"`
	Phone      string    `json:"phone,omitempty"`
	IsDefault  bool      `gorm:"not null;default:false"   json:"is_default"`
	CreatedAt  time.Time `json:"created_at"`
}

type Order struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Number        string    `gorm:"uniqueIndex;not null"     json:"number"`
	UserID        uint      `gorm:"index;not null"           json:"user_id"`
	AddressID     *uint     `json:"address_id,omitempty"`
	Status        string    `gorm:"not null;default:'PENDING'" json:"status"`
	SubtotalCents int64     `gorm:"not null"                 json:"subtotal_cents"`
	ShippingCents int64     `gorm:"not null;default:0"       json:"shipping_cents"`
	TotalCents    int64     `gorm:"not null"                 json:"total_cents"`
	Notes         string    `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// OrderItem keeps a denormalized name and a JSON snapshot so order history
// survives later edits or deletion of the live product. ProductID goes null
// when the product is removed from the catalog.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID    uint   `gorm:"index;not null"           json:"order_id"`
	ProductID  *uint  `gorm:"index"                    json:"product_id,omitempty"`
	Name       string `gorm:"not null"                 json:"name"`
	Snapshot   string `gorm:"not null"                 json:"snapshot"`
	Quantity   int    `gorm:"not null;check:quantity > 0" json:"quantity"`
	PriceCents int64  `gorm:"not null"                 json:"price_cents"`
}

type Review struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID uint      `gorm:"index;not null"           json:"product_id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}
