package dto

import (
	"time"

	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/domain"
)

// CampaignRequest creates or replaces a campaign
type CampaignRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description" binding:"required"`
	GoalAmount  *string    `json:"goalAmount,omitempty" binding:"omitempty,max=255,goalamount" example:"5.000 €"`
	Duration    string     `json:"duration" binding:"required,duration" example:"temporary"`
	Date        time.Time  `json:"date" binding:"required"`
	EndDate     *time.Time `json:"endDate,omitempty"`
	Location    *string    `json:"location,omitempty" binding:"omitempty,max=255"`
	Latitude    string     `json:"latitude,omitempty"`
	Longitude   string     `json:"longitude,omitempty"`
}

// ToInput converts the request into the domain input
func (r *CampaignRequest) ToInput() domain.CampaignInput {
	return domain.CampaignInput{
		Title:       r.Title,
		Description: r.Description,
		GoalAmount:  r.GoalAmount,
		Duration:    domain.ParseDuration(r.Duration, ""),
		Date:        r.Date,
		EndDate:     r.EndDate,
		Location:    r.Location,
		Coordinates: domain.ParseCoordinates(r.Latitude, r.Longitude),
	}
}

// CheckoutRequest starts a donation payment
type CheckoutRequest struct {
	FullName string  `json:"fullName" binding:"omitempty,max=150" example:"Maria Rossi"`
	Email    string  `json:"email" binding:"required,email" example:"maria@example.com"`
	Amount   string  `json:"amount" binding:"required" example:"25,50"`
	Message  *string `json:"message,omitempty"`
}

// CheckoutResponse tells the client where to complete the payment
type CheckoutResponse struct {
	OrderID     string `json:"orderId"`
	Token       string `json:"token"`
	RedirectURL string `json:"redirectUrl"`
}

// DonationConfirmationResponse is the outcome of a checkout confirmation
type DonationConfirmationResponse struct {
	PaymentStatus string           `json:"paymentStatus" example:"paid"`
	Donation      *models.Donation `json:"donation,omitempty"`
	ReceiptURL    string           `json:"receiptUrl,omitempty"`
	RelatedEvents []*models.Event  `json:"relatedEvents"`
}

// PaymentNotification is the webhook body posted by the payment provider
type PaymentNotification struct {
	OrderID           string `json:"order_id" binding:"required"`
	StatusCode        string `json:"status_code" binding:"required"`
	GrossAmount       string `json:"gross_amount" binding:"required"`
	SignatureKey      string `json:"signature_key" binding:"required"`
	TransactionStatus string `json:"transaction_status"`
	FraudStatus       string `json:"fraud_status"`
}
