package controllers

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/app/services"
	"github.com/yigit/volunteerhub/internal/middleware"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// ReceiptLocator resolves a receipt file name to its path on disk
type ReceiptLocator interface {
	Path(filename string) string
}

// CampaignController handles fundraising campaigns and their donations
type CampaignController struct {
	campaignService services.CampaignService
	donationService services.DonationService
	receipts        ReceiptLocator
	logger          zerolog.Logger
}

// NewCampaignController creates a new CampaignController
func NewCampaignController(campaignService services.CampaignService, donationService services.DonationService, receipts ReceiptLocator, logger zerolog.Logger) *CampaignController {
	return &CampaignController{
		campaignService: campaignService,
		donationService: donationService,
		receipts:        receipts,
		logger:          logger.With().Str("controller", "campaign").Logger(),
	}
}

// CreateCampaign handles campaign creation
// @Summary Create a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CampaignRequest true "Campaign"
// @Success 201 {object} dto.APIResponse{data=models.Campaign}
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or validation error"
// @Failure 403 {object} dto.ErrorResponse "Only associations can create campaigns"
// @Router /campaigns [post]
func (c *CampaignController) CreateCampaign(ctx *gin.Context) {
	var req dto.CampaignRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	campaign, err := c.campaignService.CreateCampaign(ctx.Request.Context(), middleware.CurrentActor(ctx), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(campaign, "Campaign created"))
}

// UpdateCampaign handles campaign update
// @Summary Update a campaign
// @Tags campaigns
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID" Format(int64) minimum(1)
// @Param request body dto.CampaignRequest true "Campaign"
// @Success 200 {object} dto.APIResponse{data=models.Campaign}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Campaign not found"
// @Router /campaigns/{id} [put]
func (c *CampaignController) UpdateCampaign(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CampaignRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	campaign, err := c.campaignService.UpdateCampaign(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(campaign, "Campaign updated"))
}

// DeleteCampaign removes a campaign
// @Summary Delete a campaign
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse}
// @Failure 403 {object} dto.ErrorResponse "Not the owner"
// @Failure 404 {object} dto.ErrorResponse "Campaign not found"
// @Router /campaigns/{id} [delete]
func (c *CampaignController) DeleteCampaign(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	if err := c.campaignService.DeleteCampaign(ctx.Request.Context(), middleware.CurrentActor(ctx), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SuccessResponse{Message: "Campaign deleted"}, ""))
}

// UploadImage sets the campaign image
// @Summary Upload campaign image
// @Tags campaigns
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "Campaign ID" Format(int64) minimum(1)
// @Param image formData file true "Campaign image"
// @Success 200 {object} dto.APIResponse{data=dto.UploadResponse}
// @Router /campaigns/{id}/image [post]
func (c *CampaignController) UploadImage(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	file, ok := formImage(ctx, "image")
	if !ok {
		return
	}
	resp, err := c.campaignService.UploadImage(ctx.Request.Context(), middleware.CurrentActor(ctx), id, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Image uploaded"))
}

// GetCampaign returns a campaign
// @Summary Get a campaign
// @Tags campaigns
// @Produce json
// @Param id path int true "Campaign ID" Format(int64) minimum(1)
// @Success 200 {object} dto.APIResponse{data=models.Campaign}
// @Failure 404 {object} dto.ErrorResponse "Campaign not found"
// @Router /campaigns/{id} [get]
func (c *CampaignController) GetCampaign(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	campaign, err := c.campaignService.GetCampaign(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(campaign, ""))
}

// ListMyCampaigns lists the caller association's campaigns
// @Summary List my campaigns
// @Tags campaigns
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Campaign}
// @Router /campaigns/my [get]
func (c *CampaignController) ListMyCampaigns(ctx *gin.Context) {
	campaigns, err := c.campaignService.ListMyCampaigns(ctx.Request.Context(), middleware.CurrentActor(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(campaigns, ""))
}

// Checkout starts a donation payment
// @Summary Start a donation checkout
// @Description Parses the amount, opens a checkout at the payment provider and keeps the donor details until the payment is confirmed. Authentication is optional.
// @Tags donations
// @Accept json
// @Produce json
// @Param id path int true "Campaign ID" Format(int64) minimum(1)
// @Param request body dto.CheckoutRequest true "Donor and amount"
// @Success 200 {object} dto.APIResponse{data=dto.CheckoutResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid amount"
// @Failure 404 {object} dto.ErrorResponse "Campaign not found"
// @Failure 502 {object} dto.ErrorResponse "Payment service unavailable"
// @Router /campaigns/{id}/donations/checkout [post]
func (c *CampaignController) Checkout(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}
	var req dto.CheckoutRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.donationService.Checkout(ctx.Request.Context(), middleware.CurrentActor(ctx), id, &req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("campaignID", id).Msg("Checkout failed")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ConfirmDonation records a paid checkout
// @Summary Confirm a donation
// @Description Records the donation once the provider reports the order paid and issues its receipt. Repeating the call returns the same donation.
// @Tags donations
// @Produce json
// @Param order_id query string true "Order ID returned by the checkout"
// @Success 200 {object} dto.APIResponse{data=dto.DonationConfirmationResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing order id"
// @Failure 404 {object} dto.ErrorResponse "Checkout not found or expired"
// @Failure 502 {object} dto.ErrorResponse "Payment service unavailable"
// @Router /donations/confirm [get]
func (c *CampaignController) ConfirmDonation(ctx *gin.Context) {
	resp, err := c.donationService.Confirm(ctx.Request.Context(), middleware.CurrentActor(ctx), ctx.Query("order_id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// PaymentNotification handles the payment provider webhook
// @Summary Payment provider notification
// @Description Verifies the notification signature and runs the same confirmation as the donor redirect
// @Tags donations
// @Accept json
// @Produce json
// @Param request body dto.PaymentNotification true "Provider notification"
// @Success 200 {object} dto.APIResponse{data=dto.DonationConfirmationResponse}
// @Failure 403 {object} dto.ErrorResponse "Invalid signature"
// @Router /payments/notifications [post]
func (c *CampaignController) PaymentNotification(ctx *gin.Context) {
	var req dto.PaymentNotification
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.donationService.HandleNotification(ctx.Request.Context(), &req)
	if err != nil {
		c.logger.Warn().Err(err).Str("orderID", req.OrderID).Msg("Payment notification rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// DownloadReceipt serves a generated donation receipt
// @Summary Download a donation receipt
// @Tags donations
// @Produce application/pdf
// @Param filename path string true "Receipt file name" example(donation_42.pdf)
// @Success 200 {file} file
// @Failure 404 {object} dto.ErrorResponse "Receipt not found"
// @Router /receipts/{filename} [get]
func (c *CampaignController) DownloadReceipt(ctx *gin.Context) {
	filename := ctx.Param("filename")
	if !strings.HasPrefix(filename, "donation_") || !strings.HasSuffix(filename, ".pdf") {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("receipt not found"))
		return
	}

	path := c.receipts.Path(filename)
	if _, err := os.Stat(path); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewResourceNotFoundError("receipt not found"))
		return
	}
	ctx.FileAttachment(path, filename)
}
