package repo

import (
	"context"
	"encoding/json"

	"gorm.io/gorm"

	"github.com/Veldkraal/farm_shop/internal/models"
)

type productSnapshot struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	ProductID  uint   `json:"product_id"`
}

type PlaceOrderParams struct {
	UserID       uint
	CartID       uint
	AddressID    uint
	Number       string
	ContactName  string
	ContactEmail string
	Phone        string
	Notes        string
}

// PlaceOrder runs the whole checkout as one transaction: profile enrichment,
// phone capture on the address, order + item snapshots, cart wipe. Any step
// failing rolls the lot back; no partial order is ever visible.
func (r *GormRepo) PlaceOrder(ctx context.Context, p PlaceOrderParams) (*models.Order, []models.OrderItem, *models.Address, error) {
	var (
		order models.Order
		items []models.OrderItem
		addr  models.Address
	)

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// The empty-cart check comes before the address lookup so a stale
		// cart can never surface as an address error.
		var cartItems []models.CartItem
		if err := tx.Where("cart_id = ?", p.CartID).Order("id ASC").Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		if err := tx.Where("id = ? AND user_id = ?", p.AddressID, p.UserID).First(&addr).Error; err != nil {
			return err
		}

		if p.ContactName != "" || p.ContactEmail != "" {
			updates := map[string]interface{}{}
			if p.ContactName != "" {
				updates["name"] = p.ContactName
			}
			if p.ContactEmail != "" {
				updates["email"] = p.ContactEmail
			}
			if err := tx.Model(&models.User{}).Where("id = ?", p.UserID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if p.Phone != "" {
			if err := tx.Model(&addr).Update("phone", p.Phone).Error; err != nil {
				return err
			}
			addr.Phone = p.Phone
		}

		var subtotal int64
		for _, it := range cartItems {
			subtotal += it.PriceCents * int64(it.Quantity)
		}

		addressID := addr.ID
		order = models.Order{
			Number:        p.Number,
			UserID:        p.UserID,
			AddressID:     &addressID,
			Status:        models.OrderStatusPending,
			SubtotalCents: subtotal,
			ShippingCents: 0,
			TotalCents:    subtotal,
			Notes:         p.Notes,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		items = make([]models.OrderItem, 0, len(cartItems))
		for _, it := range cartItems {
			var name string
			var prod models.Product
			if err := tx.First(&prod, it.ProductID).Error; err != nil {
				return err
			}
			name = prod.Name

			snap, err := json.Marshal(productSnapshot{
				Name:       name,
				PriceCents: it.PriceCents,
				ProductID:  it.ProductID,
			})
			if err != nil {
				return err
			}

			productID := it.ProductID
			oi := models.OrderItem{
				OrderID:    order.ID,
				ProductID:  &productID,
				Name:       name,
				Snapshot:   string(snap),
				Quantity:   it.Quantity,
				PriceCents: it.PriceCents,
			}
			if err := tx.Create(&oi).Error; err != nil {
				return err
			}
			items = append(items, oi)
		}

		return tx.Where("cart_id = ?", p.CartID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, nil, nil, err
	}
	return &order, items, &addr, nil
}

func (r *GormRepo) GetOrder(ctx context.Context, id uint) (*models.Order, []models.OrderItem, *models.Address, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, nil, nil, err
	}

	var items []models.OrderItem
	if err := r.DB.WithContext(ctx).Where("order_id = ?", order.ID).Order("id ASC").Find(&items).Error; err != nil {
		return nil, nil, nil, err
	}

	var addr *models.Address
	if order.AddressID != nil {
		var a models.Address
		if err := r.DB.WithContext(ctx).First(&a, *order.AddressID).Error; err == nil {
			addr = &a
		}
	}
	return &order, items, addr, nil
}

func (r *GormRepo) ListOrdersByUser(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *GormRepo) ListAllOrders(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	var total int64
	if err := r.DB.WithContext(ctx).Model(&models.Order{}).Count(&total).Error; err != nil {
		return 0, nil, err
	}

	var orders []models.Order
	if err := r.DB.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(offset).Limit(limit).
		Find(&orders).Error; err != nil {
		return 0, nil, err
	}
	return total, orders, nil
}

// UpdateOrderStatus is a single-row field update; the lifecycle deliberately
// allows any of the four values at any time.
func (r *GormRepo) UpdateOrderStatus(ctx context.Context, id uint, status string) (*models.Order, error) {
	res := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var order models.Order
	if err := r.DB.WithContext(ctx).First(&order, id).Error; err != nil {
		return nil, err
	}
	return &order, nil
}
