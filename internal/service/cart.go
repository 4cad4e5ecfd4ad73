package service

import (
	"context"
	"fmt"

	"github.com/Veldkraal/farm_shop/internal/repo"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

type CartService struct {
	Repo *repo.GormRepo
}

// View is unauthenticated-safe: no identity or no cart row both yield the
// deterministic empty view instead of an error.
func (s *CartService) View(ctx context.Context, userID uint) (*transport.CartView, error) {
	if userID == 0 {
		return transport.EmptyCartView(), nil
	}

	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if repo.IsNotFound(err) {
		return transport.EmptyCartView(), nil
	}
	if err != nil {
		return nil, err
	}
	return s.Repo.CartView(ctx, cart)
}

func (s *CartService) AddItem(ctx context.Context, userID uint, req transport.AddToCartRequest) (*transport.CartView, error) {
	if req.ProductID == 0 {
		return nil, fmt.Errorf("%w: product_id required", ErrValidation)
	}
	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}

	product, err := s.Repo.GetProduct(ctx, req.ProductID)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, req.ProductID)
	}
	if err != nil {
		return nil, err
	}

	cart, err := s.Repo.EnsureCart(ctx, userID)
	if err != nil {
		return nil, err
	}

	// Unit price is snapshotted here; later catalog price changes do not
	// follow the item into the cart.
	if err := s.Repo.AddItem(ctx, cart.ID, product.ID, quantity, product.PriceCents); err != nil {
		return nil, err
	}
	return s.Repo.CartView(ctx, cart)
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID uint, req transport.UpdateCartItemRequest) (*transport.CartView, error) {
	if req.Quantity < 1 {
		return nil, fmt.Errorf("%w: quantity must be >= 1", ErrValidation)
	}

	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	if err != nil {
		return nil, err
	}

	affected, err := s.Repo.UpdateItemQuantity(ctx, cart.ID, itemID, req.Quantity)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, fmt.Errorf("%w: cart item %d", ErrNotFound, itemID)
	}
	return s.Repo.CartView(ctx, cart)
}

// RemoveItem is a silent no-op for unknown or non-owned items.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID uint) (*transport.CartView, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if repo.IsNotFound(err) {
		return transport.EmptyCartView(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.RemoveItem(ctx, cart.ID, itemID); err != nil {
		return nil, err
	}
	return s.Repo.CartView(ctx, cart)
}

func (s *CartService) Clear(ctx context.Context, userID uint) (*transport.CartView, error) {
	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if repo.IsNotFound(err) {
		return transport.EmptyCartView(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := s.Repo.ClearCart(ctx, cart.ID); err != nil {
		return nil, err
	}
	return s.Repo.CartView(ctx, cart)
}
