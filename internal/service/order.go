package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/repo"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

type OrderService struct {
	Repo *repo.GormRepo
}

// newOrderNumber builds the human-facing identifier, e.g. FS-20260901-7F3A2B1C.
func newOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("FS-%s-%s", now.Format("20060102"), suffix)
}

// buildNotes newline-joins the free-text notes with a "Phone: …" line,
// dropping empty segments.
func buildNotes(notes, phone string) string {
	segments := make([]string, 0, 2)
	if v := strings.TrimSpace(notes); v != "" {
		segments = append(segments, v)
	}
	if v := strings.TrimSpace(phone); v != "" {
		segments = append(segments, "Phone: "+v)
	}
	return strings.Join(segments, "\n")
}

func (s *OrderService) Place(ctx context.Context, userID uint, req transport.PlaceOrderRequest) (*transport.OrderResponse, error) {
	if strings.TrimSpace(req.ContactName) == "" ||
		strings.TrimSpace(req.ContactEmail) == "" ||
		strings.TrimSpace(req.Phone) == "" ||
		req.AddressID == 0 {
		return nil, fmt.Errorf("%w: contact_name, contact_email, phone and address_id are required", ErrValidation)
	}

	cart, err := s.Repo.GetCartByUser(ctx, userID)
	if repo.IsNotFound(err) {
		return nil, ErrEmptyCart
	}
	if err != nil {
		return nil, err
	}

	order, items, addr, err := s.Repo.PlaceOrder(ctx, repo.PlaceOrderParams{
		UserID:       userID,
		CartID:       cart.ID,
		AddressID:    req.AddressID,
		Number:       newOrderNumber(time.Now()),
		ContactName:  strings.TrimSpace(req.ContactName),
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		Phone:        strings.TrimSpace(req.Phone),
		Notes:        buildNotes(req.Notes, req.Phone),
	})
	if errors.Is(err, repo.ErrEmptyCart) {
		return nil, ErrEmptyCart
	}
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: address %d", ErrNotFound, req.AddressID)
	}
	if err != nil {
		return nil, err
	}

	return &transport.OrderResponse{Order: *order, Items: items, Address: addr}, nil
}

func (s *OrderService) ListMine(ctx context.Context, userID uint, offset, limit int) ([]models.Order, error) {
	return s.Repo.ListOrdersByUser(ctx, userID, offset, limit)
}

func (s *OrderService) GetMine(ctx context.Context, userID, orderID uint) (*transport.OrderResponse, error) {
	order, items, addr, err := s.Repo.GetOrder(ctx, orderID)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		// No information leak about other users' orders.
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	return &transport.OrderResponse{Order: *order, Items: items, Address: addr}, nil
}

func (s *OrderService) ListAll(ctx context.Context, offset, limit int) (int64, []models.Order, error) {
	return s.Repo.ListAllOrders(ctx, offset, limit)
}

// UpdateStatus validates the enum value before touching anything; the
// lifecycle itself imposes no transition graph.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID uint, status string) (*models.Order, error) {
	if !models.ValidOrderStatus(status) {
		return nil, fmt.Errorf("%w: invalid status %q", ErrValidation, status)
	}

	order, err := s.Repo.UpdateOrderStatus(ctx, orderID, status)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
	}
	if err != nil {
		return nil, err
	}
	return order, nil
}
