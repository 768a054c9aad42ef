package payment

import (
	"context"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/coreapi"
	"github.com/midtrans/midtrans-go/snap"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/domain"
)

// MidtransConfig holds provider credentials
type MidtransConfig struct {
	ServerKey  string
	Production bool
	// FinishURL is where the provider redirects the donor; it appends order_id
	FinishURL string
}

// MidtransGateway talks to the Midtrans Snap and Core APIs
type MidtransGateway struct {
	serverKey string
	finishURL string
	snap      snap.Client
	core      coreapi.Client
	logger    zerolog.Logger
}

// NewMidtransGateway creates a gateway; without a server key every call fails with ErrNotConfigured
func NewMidtransGateway(cfg MidtransConfig, logger zerolog.Logger) *MidtransGateway {
	g := &MidtransGateway{
		serverKey: cfg.ServerKey,
		finishURL: cfg.FinishURL,
		logger:    logger.With().Str("component", "midtrans").Logger(),
	}
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}
	if cfg.ServerKey != "" {
		g.snap.New(cfg.ServerKey, env)
		g.core.New(cfg.ServerKey, env)
	}
	return g
}

// ServerKey returns the key used to sign notifications
func (g *MidtransGateway) ServerKey() string {
	return g.serverKey
}

// CreateCheckout opens a Snap transaction for a single donation item
func (g *MidtransGateway) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if g.serverKey == "" {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	snapReq := g.snapRequest(req)
	resp, merr := g.snap.CreateTransaction(snapReq)
	if merr != nil {
		g.logger.Error().Str("order_id", req.OrderID).Str("error", merr.Message).Msg("Snap transaction failed")
		return nil, fmt.Errorf("create snap transaction: %s", merr.Message)
	}

	return &Checkout{
		OrderID:     req.OrderID,
		Token:       resp.Token,
		RedirectURL: resp.RedirectURL,
	}, nil
}

// snapRequest charges the donation as one item worth the whole amount
func (g *MidtransGateway) snapRequest(req CheckoutRequest) *snap.Request {
	gross := domain.GrossAmount(req.Amount)
	snapReq := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  req.OrderID,
			GrossAmt: gross,
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: req.FullName,
			Email: req.Email,
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    req.ItemID,
				Name:  truncate(req.ItemName, 50),
				Price: gross,
				Qty:   1,
			},
		},
	}
	if g.finishURL != "" {
		snapReq.Callbacks = &snap.Callbacks{Finish: g.finishURL}
	}
	return snapReq
}

// GetStatus reads the current transaction status of an order
func (g *MidtransGateway) GetStatus(ctx context.Context, orderID string) (*Status, error) {
	if g.serverKey == "" {
		return nil, ErrNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	resp, merr := g.core.CheckTransaction(orderID)
	if merr != nil {
		g.logger.Error().Str("order_id", orderID).Str("error", merr.Message).Msg("Transaction status lookup failed")
		return nil, fmt.Errorf("check transaction: %s", merr.Message)
	}

	return &Status{
		OrderID:           orderID,
		PaymentStatus:     MapTransactionStatus(resp.TransactionStatus, resp.FraudStatus),
		TransactionStatus: resp.TransactionStatus,
		GrossAmount:       resp.GrossAmount,
	}, nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
