package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/yigit/volunteerhub/internal/app/auth"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/models/dto"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
	"github.com/yigit/volunteerhub/internal/pkg/filestorage"
)

// ReportService manages geolocated reports raised by volunteers
type ReportService interface {
	CreateReport(ctx context.Context, actor *authz.Actor, req *dto.ReportRequest) (*models.Report, error)
	DeleteReport(ctx context.Context, actor *authz.Actor, reportID int64) error
	UploadImage(ctx context.Context, actor *authz.Actor, reportID int64, file *multipart.FileHeader) (*dto.UploadResponse, error)
	GetReport(ctx context.Context, reportID int64) (*models.Report, error)
	ListReports(ctx context.Context) ([]*models.Report, error)
}

type reportServiceImpl struct {
	reportRepo ReportStore
	storage    filestorage.FileStorage
	logger     zerolog.Logger
}

// NewReportService creates a new ReportService
func NewReportService(reportRepo ReportStore, storage filestorage.FileStorage, logger zerolog.Logger) ReportService {
	return &reportServiceImpl{
		reportRepo: reportRepo,
		storage:    storage,
		logger:     logger.With().Str("service", "report").Logger(),
	}
}

// CreateReport stores a report of the calling volunteer
func (s *reportServiceImpl) CreateReport(ctx context.Context, actor *authz.Actor, req *dto.ReportRequest) (*models.Report, error) {
	if err := authz.ValidateRole(actor, models.RoleVolunteer); err != nil {
		return nil, err
	}
	pos, err := requirePosition(req.Position())
	if err != nil {
		return nil, err
	}

	rp := &models.Report{
		UserID:      actor.UserID,
		AuthorName:  actor.Name,
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Address:     req.Address,
		Latitude:    pos.Latitude,
		Longitude:   pos.Longitude,
	}
	if rp.Title == "" {
		return nil, apperrors.NewValidationError("title", "title is required")
	}
	if rp.Description == "" {
		return nil, apperrors.NewValidationError("description", "description is required")
	}

	if err := s.reportRepo.Create(ctx, rp); err != nil {
		return nil, fmt.Errorf("error creating report: %w", err)
	}
	return rp, nil
}

func (s *reportServiceImpl) ownedReport(ctx context.Context, actor *authz.Actor, reportID int64) (*models.Report, error) {
	rp, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		return nil, err
	}
	if err := authz.ValidateOwnership(actor, rp.UserID, "reports"); err != nil {
		return nil, err
	}
	return rp, nil
}

// DeleteReport removes a report of the caller
func (s *reportServiceImpl) DeleteReport(ctx context.Context, actor *authz.Actor, reportID int64) error {
	rp, err := s.ownedReport(ctx, actor, reportID)
	if err != nil {
		return err
	}
	if err := s.reportRepo.Delete(ctx, reportID); err != nil {
		return err
	}
	if rp.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadReport, *rp.ImageFilename)
	}
	return nil
}

// UploadImage attaches an image to a report of the caller
func (s *reportServiceImpl) UploadImage(ctx context.Context, actor *authz.Actor, reportID int64, file *multipart.FileHeader) (*dto.UploadResponse, error) {
	rp, err := s.ownedReport(ctx, actor, reportID)
	if err != nil {
		return nil, err
	}

	filename, err := s.storage.Save(file, domain.UploadReport)
	if err != nil {
		return nil, imageError(err)
	}
	if err := s.reportRepo.UpdateImage(ctx, reportID, filename); err != nil {
		_ = s.storage.Delete(domain.UploadReport, filename)
		return nil, err
	}
	if rp.ImageFilename != nil {
		_ = s.storage.Delete(domain.UploadReport, *rp.ImageFilename)
	}
	return uploadResponse(domain.UploadReport, filename), nil
}

// GetReport returns one report
func (s *reportServiceImpl) GetReport(ctx context.Context, reportID int64) (*models.Report, error) {
	return s.reportRepo.GetByID(ctx, reportID)
}

// ListReports returns every report, newest first
func (s *reportServiceImpl) ListReports(ctx context.Context) ([]*models.Report, error) {
	list, err := s.reportRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return nonNil(list), nil
}
