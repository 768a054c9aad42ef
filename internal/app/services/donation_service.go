package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/email"
	"github.com/yigit/volunteerhub/internal/pkg/payment"
	"github.com/yigit/volunteerhub/internal/pkg/receipt"
)

const (
	// RelatedEventsLimit caps the upcoming events suggested after a donation
	RelatedEventsLimit = 3
	// ReceiptsPrefix is the public path of generated receipts
	ReceiptsPrefix = "/receipts"

	paymentMethod = "midtrans"
)

// DonationService runs the checkout and confirmation of donations
type DonationService interface {
	Checkout(ctx context.Context, viewer *authz.Actor, campaignID int64, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error)
	Confirm(ctx context.Context, viewer *authz.Actor, orderID string) (*dto.DonationConfirmationResponse, error)
	HandleNotification(ctx context.Context, n *dto.PaymentNotification) (*dto.DonationConfirmationResponse, error)
}

type donationServiceImpl struct {
	donationRepo DonationStore
	campaignRepo CampaignStore
	eventRepo    EventStore
	userRepo     UserStore
	checkouts    CheckoutStore
	gateway      payment.Gateway
	receipts     ReceiptGenerator
	mailer       *Mailer
	serverKey    string
	logger       zerolog.Logger
}

// NewDonationService creates a new DonationService. serverKey verifies provider notifications.
func NewDonationService(
	donationRepo DonationStore,
	campaignRepo CampaignStore,
	eventRepo EventStore,
	userRepo UserStore,
	checkouts CheckoutStore,
	gateway payment.Gateway,
	receipts ReceiptGenerator,
	mailer *Mailer,
	serverKey string,
	logger zerolog.Logger,
) DonationService {
	return &donationServiceImpl{
		donationRepo: donationRepo,
		campaignRepo: campaignRepo,
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		checkouts:    checkouts,
		gateway:      gateway,
		receipts:     receipts,
		mailer:       mailer,
		serverKey:    serverKey,
		logger:       logger.With().Str("service", "donation").Logger(),
	}
}

// Checkout opens a provider payment for a campaign and remembers what the donor entered.
// Nothing is stored when the provider fails.
func (s *donationServiceImpl) Checkout(ctx context.Context, viewer *authz.Actor, campaignID int64, req *dto.CheckoutRequest) (*dto.CheckoutResponse, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, campaignID)
	if err != nil {
		return nil, err
	}

	parsed, err := domain.ParseAmount(req.Amount)
	if err != nil {
		return nil, err
	}
	amount, err := domain.ChargeAmount(parsed)
	if err != nil {
		return nil, err
	}

	fullName := strings.TrimSpace(req.FullName)
	orderID := payment.NewOrderID()
	checkout, err := s.gateway.CreateCheckout(ctx, payment.CheckoutRequest{
		OrderID:  orderID,
		Amount:   amount,
		FullName: fullName,
		Email:    req.Email,
		ItemID:   strconv.FormatInt(campaign.ID, 10),
		ItemName: campaign.Title,
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("campaignID", campaignID).Msg("Payment provider checkout failed")
		return nil, apperrors.NewExternalServiceError("the payment service is currently unavailable", err)
	}

	meta := payment.CheckoutMetadata{
		CampaignID: campaign.ID,
		FullName:   fullName,
		Email:      req.Email,
		Amount:     amount.StringFixed(2),
		Method:     paymentMethod,
	}
	if req.Message != nil {
		meta.Message = strings.TrimSpace(*req.Message)
	}
	if viewer != nil {
		id := viewer.UserID
		meta.UserID = &id
	}
	if err := s.checkouts.Save(ctx, orderID, meta); err != nil {
		return nil, fmt.Errorf("error storing checkout: %w", err)
	}

	s.logger.Info().Str("orderID", orderID).Int64("campaignID", campaignID).Msg("Checkout created")
	return &dto.CheckoutResponse{
		OrderID:     checkout.OrderID,
		Token:       checkout.Token,
		RedirectURL: checkout.RedirectURL,
	}, nil
}

// Confirm records the donation of a paid order. Repeated calls for the same order
// return the stored donation.
func (s *donationServiceImpl) Confirm(ctx context.Context, viewer *authz.Actor, orderID string) (*dto.DonationConfirmationResponse, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, apperrors.NewValidationError("order_id", "order_id is required")
	}

	existing, err := s.donationRepo.GetByOrderID(ctx, orderID)
	switch {
	case err == nil:
		return s.confirmed(ctx, existing)
	case !errors.Is(err, apperrors.ErrDonationNotFound):
		return nil, err
	}

	meta, err := s.checkouts.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, apperrors.ErrCheckoutNotFound) {
			return nil, apperrors.NewResourceNotFoundError("checkout session not found or expired")
		}
		return nil, err
	}

	status, err := s.gateway.GetStatus(ctx, orderID)
	if err != nil {
		s.logger.Error().Err(err).Str("orderID", orderID).Msg("Payment provider status check failed")
		return nil, apperrors.NewExternalServiceError("the payment service is currently unavailable", err)
	}
	if !status.Paid() {
		return &dto.DonationConfirmationResponse{
			PaymentStatus: status.PaymentStatus,
			RelatedEvents: []*models.Event{},
		}, nil
	}

	donation, err := s.record(ctx, viewer, orderID, meta)
	if err != nil {
		return nil, err
	}
	return s.confirmed(ctx, donation)
}

// HandleNotification verifies a provider webhook and confirms the order it refers to
func (s *donationServiceImpl) HandleNotification(ctx context.Context, n *dto.PaymentNotification) (*dto.DonationConfirmationResponse, error) {
	if !payment.VerifySignature(n.OrderID, n.StatusCode, n.GrossAmount, s.serverKey, n.SignatureKey) {
		s.logger.Warn().Str("orderID", n.OrderID).Msg("Rejected payment notification with invalid signature")
		return nil, apperrors.NewForbiddenError("invalid notification signature")
	}
	if status := payment.MapTransactionStatus(n.TransactionStatus, n.FraudStatus); status != payment.StatusPaid {
		return &dto.DonationConfirmationResponse{
			PaymentStatus: status,
			RelatedEvents: []*models.Event{},
		}, nil
	}
	return s.Confirm(ctx, nil, n.OrderID)
}

func (s *donationServiceImpl) record(ctx context.Context, viewer *authz.Actor, orderID string, meta *payment.CheckoutMetadata) (*models.Donation, error) {
	amount, err := domain.ParseAmount(meta.Amount)
	if err != nil {
		return nil, err
	}

	donation := &models.Donation{
		OrderID:    orderID,
		UserID:     s.donorID(ctx, viewer, meta),
		Email:      meta.Email,
		Amount:     amount.InexactFloat64(),
		Method:     meta.Method,
		CampaignID: meta.CampaignID,
	}
	if meta.FullName != "" {
		name := meta.FullName
		donation.FullName = &name
	}
	if meta.Message != "" {
		msg := meta.Message
		donation.Message = &msg
	}

	created, err := s.donationRepo.CreateOnce(ctx, donation)
	if err != nil {
		return nil, err
	}
	if !created {
		return donation, nil
	}

	s.logger.Info().Int64("donationID", donation.ID).Str("orderID", orderID).Msg("Donation recorded")
	if err := s.checkouts.Delete(ctx, orderID); err != nil {
		s.logger.Warn().Err(err).Str("orderID", orderID).Msg("Could not delete checkout metadata")
	}
	return donation, nil
}

// donorID is the authenticated caller, else the user who opened the checkout, else the owner of the email
func (s *donationServiceImpl) donorID(ctx context.Context, viewer *authz.Actor, meta *payment.CheckoutMetadata) *int64 {
	if viewer != nil && viewer.UserID > 0 {
		id := viewer.UserID
		return &id
	}
	if meta.UserID != nil {
		return meta.UserID
	}
	user, err := s.userRepo.GetByEmail(ctx, meta.Email)
	if err != nil {
		return nil
	}
	return &user.ID
}

// confirmed completes a stored donation with its receipt and related events.
// A missing receipt is generated again.
func (s *donationServiceImpl) confirmed(ctx context.Context, donation *models.Donation) (*dto.DonationConfirmationResponse, error) {
	campaign, err := s.campaignRepo.GetByID(ctx, donation.CampaignID)
	if err != nil {
		return nil, err
	}

	if donation.PDFFilename == nil {
		s.attachReceipt(ctx, donation, campaign)
	}

	resp := &dto.DonationConfirmationResponse{
		PaymentStatus: payment.StatusPaid,
		Donation:      donation,
		RelatedEvents: []*models.Event{},
	}
	if donation.PDFFilename != nil {
		resp.ReceiptURL = ReceiptsPrefix + "/" + *donation.PDFFilename
	}

	events, err := s.eventRepo.ListUpcomingByAssociation(ctx, campaign.AssociationID, time.Now(), RelatedEventsLimit)
	if err != nil {
		s.logger.Warn().Err(err).Int64("associationID", campaign.AssociationID).Msg("Could not load related events")
	} else if events != nil {
		resp.RelatedEvents = events
	}
	return resp, nil
}

func (s *donationServiceImpl) attachReceipt(ctx context.Context, donation *models.Donation, campaign *models.Campaign) {
	data := receipt.Data{
		DonationID:      donation.ID,
		OrderID:         donation.OrderID,
		DonorEmail:      donation.Email,
		CampaignTitle:   campaign.Title,
		AssociationName: campaign.AssociationName,
		Amount:          decimal.NewFromFloat(donation.Amount).Round(2),
		Date:            donation.CreatedAt,
	}
	if donation.FullName != nil {
		data.DonorName = *donation.FullName
	}
	if donation.Message != nil {
		data.Message = *donation.Message
	}

	filename, err := s.receipts.Generate(data)
	if err != nil {
		s.logger.Error().Err(err).Int64("donationID", donation.ID).Msg("Receipt generation failed")
		return
	}
	if err := s.donationRepo.SetReceipt(ctx, donation.ID, filename); err != nil {
		s.logger.Error().Err(err).Int64("donationID", donation.ID).Msg("Could not store receipt name")
		return
	}
	donation.PDFFilename = &filename

	s.mailer.Queue(ctx, email.KindDonationReceipt, donation.Email, data.DonorName, map[string]string{
		"amount":      domain.FormatAmount(data.Amount) + " " + domain.Currency,
		"campaign":    campaign.Title,
		"receipt_url": s.mailer.URL(ReceiptsPrefix + "/" + filename),
	})
}
