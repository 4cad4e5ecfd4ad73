package repo

import (
	"errors"

	"gorm.io/gorm"
)

// ErrEmptyCart is returned by PlaceOrder when the cart has no items at the
// moment the transaction reads it.
var ErrEmptyCart = errors.New("cart is empty")

type GormRepo struct {
	DB *gorm.DB
}

func New(db *gorm.DB) *GormRepo {
	return &GormRepo{DB: db}
}
