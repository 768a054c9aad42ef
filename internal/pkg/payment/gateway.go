package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Payment statuses exposed to the rest of the application
const (
	StatusPaid    = "paid"
	StatusPending = "pending"
	StatusFailed  = "failed"
)

// ErrNotConfigured is returned when the gateway has no credentials
var ErrNotConfigured = errors.New("payment gateway not configured")

// CheckoutRequest describes a one-item payment to open with the provider
type CheckoutRequest struct {
	OrderID  string
	Amount   decimal.Decimal
	FullName string
	Email    string
	ItemID   string
	ItemName string
}

// Checkout is the hosted payment session created by the provider
type Checkout struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// Status is the provider view of an order
type Status struct {
	OrderID           string `json:"orderId"`
	PaymentStatus     string `json:"paymentStatus"`
	TransactionStatus string `json:"transactionStatus"`
	GrossAmount       string `json:"grossAmount"`
}

// Paid reports whether the order was settled
func (s *Status) Paid() bool {
	return s != nil && s.PaymentStatus == StatusPaid
}

// Gateway opens checkouts and reads their status
type Gateway interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	GetStatus(ctx context.Context, orderID string) (*Status, error)
}

// NewOrderID generates a unique provider order reference
func NewOrderID() string {
	return "don-" + uuid.New().String()
}

// MapTransactionStatus folds provider transaction and fraud statuses into paid, pending or failed
func MapTransactionStatus(transactionStatus, fraudStatus string) string {
	switch strings.ToLower(transactionStatus) {
	case "settlement":
		return StatusPaid
	case "capture":
		switch strings.ToLower(fraudStatus) {
		case "", "accept":
			return StatusPaid
		case "challenge":
			return StatusPending
		}
		return StatusFailed
	case "pending", "authorize":
		return StatusPending
	}
	return StatusFailed
}

// Signature computes the notification signature: SHA512(order_id + status_code + gross_amount + server_key)
func Signature(orderID, statusCode, grossAmount, serverKey string) string {
	sum := sha512.Sum512([]byte(orderID + statusCode + grossAmount + serverKey))
	return hex.EncodeToString(sum[:])
}

// VerifySignature checks a notification signature in constant time
func VerifySignature(orderID, statusCode, grossAmount, serverKey, signature string) bool {
	if signature == "" || serverKey == "" {
		return false
	}
	want := Signature(orderID, statusCode, grossAmount, serverKey)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(signature))) == 1
}
