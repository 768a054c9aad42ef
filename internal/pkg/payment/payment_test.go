package payment

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

func TestMapTransactionStatus(t *testing.T) {
	tests := []struct {
		status, fraud, want string
	}{
		{"settlement", "", StatusPaid},
		{"capture", "accept", StatusPaid},
		{"capture", "challenge", StatusPending},
		{"capture", "deny", StatusFailed},
		{"pending", "", StatusPending},
		{"expire", "", StatusFailed},
		{"cancel", "", StatusFailed},
		{"SETTLEMENT", "", StatusPaid},
	}
	for _, tt := range tests {
		t.Run(tt.status+"/"+tt.fraud, func(t *testing.T) {
			assert.Equal(t, tt.want, MapTransactionStatus(tt.status, tt.fraud))
		})
	}
}

func TestVerifySignature(t *testing.T) {
	sig := Signature("don-1", "200", "2550.00", "server-key")
	assert.Len(t, sig, 128)

	assert.True(t, VerifySignature("don-1", "200", "2550.00", "server-key", sig))
	assert.False(t, VerifySignature("don-1", "200", "2550.01", "server-key", sig))
	assert.False(t, VerifySignature("don-1", "200", "2550.00", "other", sig))
	assert.False(t, VerifySignature("don-1", "200", "2550.00", "server-key", ""))
}

func TestStatusPaid(t *testing.T) {
	var nilStatus *Status
	assert.False(t, nilStatus.Paid())
	assert.True(t, (&Status{PaymentStatus: StatusPaid}).Paid())
	assert.False(t, (&Status{PaymentStatus: StatusPending}).Paid())
}

func TestNewOrderID(t *testing.T) {
	a, b := NewOrderID(), NewOrderID()
	assert.NotEqual(t, a, b)
	assert.Regexp(t, `^don-[0-9a-f-]{36}$`, a)
}

func TestMidtransGateway_NotConfigured(t *testing.T) {
	g := NewMidtransGateway(MidtransConfig{}, zerolog.Nop())

	_, err := g.CreateCheckout(context.Background(), CheckoutRequest{OrderID: "x", Amount: decimal.NewFromInt(5)})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = g.GetStatus(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestMidtransGateway_SnapRequestChargesRecordedAmount(t *testing.T) {
	g := NewMidtransGateway(MidtransConfig{ServerKey: "key", FinishURL: "http://localhost:8080/api/v1/donations/confirm"}, zerolog.Nop())

	tests := []struct {
		raw       string
		wantGross int64
	}{
		{"10", 10},
		{"25.000", 25},
		{"150000", 150000},
		{"12,5", 13},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			parsed, err := domain.ParseAmount(tt.raw)
			require.NoError(t, err)
			amount, err := domain.ChargeAmount(parsed)
			require.NoError(t, err)

			req := g.snapRequest(CheckoutRequest{OrderID: "don-1", Amount: amount, ItemID: "3", ItemName: "Food bank"})

			assert.Equal(t, tt.wantGross, req.TransactionDetails.GrossAmt)
			require.NotNil(t, req.Items)
			require.Len(t, *req.Items, 1)
			assert.Equal(t, tt.wantGross, (*req.Items)[0].Price)

			// the donation row stores the metadata amount as a float
			recorded, err := domain.ParseAmount(amount.StringFixed(2))
			require.NoError(t, err)
			assert.Equal(t, float64(req.TransactionDetails.GrossAmt), recorded.InexactFloat64())
			require.NotNil(t, req.Callbacks)
			assert.Equal(t, "http://localhost:8080/api/v1/donations/confirm", req.Callbacks.Finish)
		})
	}
}

func newStore(t *testing.T, ttl time.Duration) (*CheckoutStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewCheckoutStore(rdb, ttl), mr
}

func TestCheckoutStore_SaveGetDelete(t *testing.T) {
	store, mr := newStore(t, time.Hour)
	ctx := context.Background()
	userID := int64(7)

	meta := CheckoutMetadata{CampaignID: 3, UserID: &userID, FullName: "Anna", Email: "a@b.c", Amount: "12.50", Method: "card"}
	require.NoError(t, store.Save(ctx, "don-1", meta))
	assert.True(t, mr.Exists("checkout:don-1"))
	assert.Equal(t, time.Hour, mr.TTL("checkout:don-1"))

	got, err := store.Get(ctx, "don-1")
	require.NoError(t, err)
	assert.Equal(t, meta, *got)

	require.NoError(t, store.Delete(ctx, "don-1"))
	_, err = store.Get(ctx, "don-1")
	assert.ErrorIs(t, err, apperrors.ErrCheckoutNotFound)
}

func TestCheckoutStore_Expires(t *testing.T) {
	store, mr := newStore(t, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "don-2", CheckoutMetadata{CampaignID: 1}))
	mr.FastForward(2 * time.Minute)

	_, err := store.Get(ctx, "don-2")
	assert.ErrorIs(t, err, apperrors.ErrCheckoutNotFound)
}
