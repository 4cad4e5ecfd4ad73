package transport

import (
	"time"

	"github.com/Veldkraal/farm_shop/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AddToCartRequest struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

type CartViewItem struct {
	ID         uint   `json:"id"`
	ProductID  uint   `json:"product_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	PriceCents int64  `json:"price_cents"`
	ImageURL   string `json:"image_url,omitempty"`
}

// CartView is recomputed on every cart operation; it is never stored.
type CartView struct {
	ID            uint           `json:"id"`
	Items         []CartViewItem `json:"items"`
	SubtotalCents int64          `json:"subtotal_cents"`
	TotalItems    int            `json:"total_items"`
}

func EmptyCartView() *CartView {
	return &CartView{Items: []CartViewItem{}}
}

type CreateAddressRequest struct {
	Label      string  `json:"label"`
	Recipient  string  `json:"recipient"`
	Line1      string  `json:"line1"`
	Line2      *string `json:"line2"`
	City       string  `json:"city"`
	Province   string  `json:"province"`
	PostalCode string  `json:"postal_code"`
	Country    string  `json:"country"`
	Phone      string  `json:"phone"`
	IsDefault  bool    `json:"is_default"`
}

// UpdateAddressRequest uses pointers so an absent key can be told apart from
// an empty value; see the line2 rules in the address service.
type UpdateAddressRequest struct {
	Label      *string `json:"label"`
	Recipient  *string `json:"recipient"`
	Line1      *string `json:"line1"`
	Line2      *string `json:"line2"`
	City       *string `json:"city"`
	Province   *string `json:"province"`
	PostalCode *string `json:"postal_code"`
	Country    *string `json:"country"`
	Phone      *string `json:"phone"`
	IsDefault  *bool   `json:"is_default"`
}

type PlaceOrderRequest struct {
	ContactName  string `json:"contact_name"`
	ContactEmail string `json:"contact_email"`
	Phone        string `json:"phone"`
	Notes        string `json:"notes"`
	AddressID    uint   `json:"address_id"`
}

type OrderResponse struct {
	Order   models.Order       `json:"order"`
	Items   []models.OrderItem `json:"items"`
	Address *models.Address    `json:"address,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type CreateProductRequest struct {
	Name             string     `json:"name"`
	Description      string     `json:"description"`
	ShortDescription string     `json:"short_description"`
	PriceCents       int64      `json:"price_cents"`
	CompareAtCents   *int64     `json:"compare_at_cents"`
	Stock            int        `json:"stock"`
	Unit             string     `json:"unit"`
	Active           *bool      `json:"active"`
	Featured         bool       `json:"featured"`
	OnSale           bool       `json:"on_sale"`
	DiscountPercent  *int       `json:"discount_percent"`
	SaleEndsAt       *time.Time `json:"sale_ends_at"`
	CategoryID       *uint      `json:"category_id"`
}

type PatchProductRequest struct {
	Name             *string    `json:"name"`
	Description      *string    `json:"description"`
	ShortDescription *string    `json:"short_description"`
	PriceCents       *int64     `json:"price_cents"`
	CompareAtCents   *int64     `json:"compare_at_cents"`
	Stock            *int       `json:"stock"`
	Unit             *string    `json:"unit"`
	Active           *bool      `json:"active"`
	Featured         *bool      `json:"featured"`
	OnSale           *bool      `json:"on_sale"`
	DiscountPercent  *int       `json:"discount_percent"`
	SaleEndsAt       *time.Time `json:"sale_ends_at"`
	CategoryID       *uint      `json:"category_id"`
}

type AddProductImageRequest struct {
	URL string `json:"url"`
	Alt string `json:"alt"`
}

// ReorderImagesRequest carries image ids in their new display order; the
// whole batch is applied in one transaction.
type ReorderImagesRequest struct {
	ImageIDs []uint `json:"image_ids"`
}

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}
