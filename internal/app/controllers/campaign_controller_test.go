package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

func newCampaignRouter(donations *MockDonationService, receiptsDir string) *gin.Engine {
	c := NewCampaignController(nil, donations, stubReceipts{dir: receiptsDir}, testLogger)
	router := gin.New()
	router.POST("/campaigns/:id/donations/checkout", c.Checkout)
	router.GET("/donations/confirm", c.ConfirmDonation)
	router.POST("/payments/notifications", c.PaymentNotification)
	router.GET("/receipts/:filename", c.DownloadReceipt)
	return router
}

func TestCampaignController_Checkout(t *testing.T) {
	donations := new(MockDonationService)
	donations.On("Checkout", mock.Anything, (*authz.Actor)(nil), int64(5), mock.MatchedBy(func(r *dto.CheckoutRequest) bool {
		return r.Amount == "25,50" && r.Email == "maria@example.com"
	})).Return(&dto.CheckoutResponse{OrderID: "order-1", Token: "snap-token", RedirectURL: "https://pay.example/snap"}, nil)
	donations.On("Checkout", mock.Anything, (*authz.Actor)(nil), int64(5), mock.MatchedBy(func(r *dto.CheckoutRequest) bool {
		return r.Amount == "0"
	})).Return(nil, apperrors.NewValidationError("amount", "amount must be greater than zero"))
	router := newCampaignRouter(donations, t.TempDir())

	w := perform(router, http.MethodPost, "/campaigns/5/donations/checkout", map[string]string{"email": "maria@example.com", "amount": "25,50"})
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.CheckoutResponse
	decodeSuccess(t, w, &resp)
	assert.Equal(t, "https://pay.example/snap", resp.RedirectURL)

	w = perform(router, http.MethodPost, "/campaigns/5/donations/checkout", map[string]string{"email": "maria@example.com", "amount": "0"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	detail := decodeError(t, w)
	assert.Equal(t, "amount", detail.Field)
	assert.Equal(t, "amount must be greater than zero", detail.Message)

	w = perform(router, http.MethodPost, "/campaigns/5/donations/checkout", map[string]string{"amount": "10"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	donations.AssertNumberOfCalls(t, "Checkout", 2)
}

func TestCampaignController_ConfirmDonation(t *testing.T) {
	donations := new(MockDonationService)
	donations.On("Confirm", mock.Anything, (*authz.Actor)(nil), "order-1").Return(&dto.DonationConfirmationResponse{
		PaymentStatus: "paid",
		Donation:      &models.Donation{ID: 2, OrderID: "order-1", Amount: 25.5},
		ReceiptURL:    "/api/v1/receipts/donation_2.pdf",
	}, nil)
	donations.On("Confirm", mock.Anything, (*authz.Actor)(nil), "missing").Return(nil, apperrors.ErrCheckoutNotFound)
	router := newCampaignRouter(donations, t.TempDir())

	w := perform(router, http.MethodGet, "/donations/confirm?order_id=order-1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp dto.DonationConfirmationResponse
	decodeSuccess(t, w, &resp)
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.Equal(t, 25.5, resp.Donation.Amount)

	w = perform(router, http.MethodGet, "/donations/confirm?order_id=missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCampaignController_PaymentNotification(t *testing.T) {
	donations := new(MockDonationService)
	donations.On("HandleNotification", mock.Anything, mock.MatchedBy(func(n *dto.PaymentNotification) bool { return n.SignatureKey == "bad" })).
		Return(nil, apperrors.ErrPermissionDenied)
	router := newCampaignRouter(donations, t.TempDir())

	body := map[string]string{"order_id": "order-1", "status_code": "200", "gross_amount": "25000.00", "signature_key": "bad", "transaction_status": "settlement"}
	w := perform(router, http.MethodPost, "/payments/notifications", body)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = perform(router, http.MethodPost, "/payments/notifications", map[string]string{"order_id": "order-1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	donations.AssertNumberOfCalls(t, "HandleNotification", 1)
}

func TestCampaignController_DownloadReceipt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "donation_2.pdf"), []byte("%PDF-1.3"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("private"), 0o644))
	router := newCampaignRouter(new(MockDonationService), dir)

	tests := []struct {
		name           string
		filename       string
		expectedStatus int
	}{
		{name: "existing receipt", filename: "donation_2.pdf", expectedStatus: http.StatusOK},
		{name: "missing receipt", filename: "donation_3.pdf", expectedStatus: http.StatusNotFound},
		{name: "not a receipt", filename: "notes.txt", expectedStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := perform(router, http.MethodGet, "/receipts/"+tt.filename, nil)
			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
				assert.Equal(t, "%PDF-1.3", w.Body.String())
			}
		})
	}
}
