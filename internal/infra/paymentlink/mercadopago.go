package paymentlink

import (
	"context"
	"errors"
	"fmt"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"github.com/shopspring/decimal"
)

var ErrEmptyCheckoutURL = errors.New("mercadopago: preference without init_point")

type preferenceCreator interface {
	Create(ctx context.Context, request preference.Request) (*preference.Response, error)
}

// MercadoPago creates checkout preferences for outstanding balances.
type MercadoPago struct {
	client preferenceCreator
}

func NewMercadoPago(accessToken string) (*MercadoPago, error) {
	cfg, err := config.New(accessToken)
	if err != nil {
		return nil, fmt.Errorf("mercadopago config: %w", err)
	}
	return &MercadoPago{client: preference.NewClient(cfg)}, nil
}

// CreateLink returns the checkout URL for amount, tagged with reference.
func (m *MercadoPago) CreateLink(ctx context.Context, reference, title string, amount decimal.Decimal) (string, error) {
	res, err := m.client.Create(ctx, preference.Request{
		Items: []preference.ItemRequest{
			{
				Title:      title,
				Quantity:   1,
				UnitPrice:  amount.Round(2).InexactFloat64(),
				CurrencyID: "BRL",
			},
		},
		ExternalReference: reference,
	})
	if err != nil {
		return "", fmt.Errorf("create preference: %w", err)
	}
	if res == nil || res.InitPoint == "" {
		return "", ErrEmptyCheckoutURL
	}
	return res.InitPoint, nil
}
