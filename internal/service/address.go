package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Veldkraal/farm_shop/internal/models"
	"github.com/Veldkraal/farm_shop/internal/repo"
	"github.com/Veldkraal/farm_shop/internal/transport"
)

type AddressService struct {
	Repo *repo.GormRepo
}

func (s *AddressService) List(ctx context.Context, userID uint) ([]models.Address, error) {
	return s.Repo.ListAddresses(ctx, userID)
}

func (s *AddressService) Create(ctx context.Context, userID uint, req transport.CreateAddressRequest) (*models.Address, error) {
	recipient := strings.TrimSpace(req.Recipient)
	line1 := strings.TrimSpace(req.Line1)
	city := strings.TrimSpace(req.City)
	province := strings.TrimSpace(req.Province)
	postalCode := strings.TrimSpace(req.PostalCode)
	if recipient == "" || line1 == "" || city == "" || province == "" || postalCode == "" {
		return nil, fmt.Errorf("%w: recipient, line1, city, province and postal_code are required", ErrValidation)
	}

	country := strings.TrimSpace(req.Country)
	if country == "" {
		country = "South Africa"
	}

	var line2 *string
	if req.Line2 != nil {
		if v := strings.TrimSpace(*req.Line2); v != "" {
			line2 = &v
		}
	}

	addr := &models.Address{
		UserID:     userID,
		Label:      strings.TrimSpace(req.Label),
		Recipient:  recipient,
		Line1:      line1,
		Line2:      line2,
		City:       city,
		Province:   province,
		PostalCode: postalCode,
		Country:    country,
		Phone:      strings.TrimSpace(req.Phone),
		IsDefault:  req.IsDefault,
	}
	if err := s.Repo.CreateAddress(ctx, addr); err != nil {
		return nil, err
	}
	return addr, nil
}

// Update applies a partial payload. String fields keep their current value
// when the key is absent or the value trims to empty; line2 alone is nulled
// by a present-but-empty value and untouched when the key is missing.
func (s *AddressService) Update(ctx context.Context, userID, id uint, req transport.UpdateAddressRequest) (*models.Address, error) {
	addr, err := s.Repo.GetAddress(ctx, userID, id)
	if repo.IsNotFound(err) {
		return nil, fmt.Errorf("%w: address %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	setIfPresent := func(dst *string, src *string) {
		if src != nil {
			if v := strings.TrimSpace(*src); v != "" {
				*dst = v
			}
		}
	}
	setIfPresent(&addr.Label, req.Label)
	setIfPresent(&addr.Recipient, req.Recipient)
	setIfPresent(&addr.Line1, req.Line1)
	setIfPresent(&addr.City, req.City)
	setIfPresent(&addr.Province, req.Province)
	setIfPresent(&addr.PostalCode, req.PostalCode)
	setIfPresent(&addr.Country, req.Country)
	setIfPresent(&addr.Phone, req.Phone)

	if req.Line2 != nil {
		if v := strings.TrimSpace(*req.Line2); v != "" {
			addr.Line2 = &v
		} else {
			addr.Line2 = nil
		}
	}

	makeDefault := req.IsDefault != nil && *req.IsDefault && !addr.IsDefault
	if err := s.Repo.SaveAddress(ctx, addr, makeDefault); err != nil {
		return nil, err
	}
	return addr, nil
}

func (s *AddressService) Delete(ctx context.Context, userID, id uint) error {
	err := s.Repo.DeleteAddress(ctx, userID, id)
	if repo.IsNotFound(err) {
		return fmt.Errorf("%w: address %d", ErrNotFound, id)
	}
	return err
}
