package seed

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/yigit/volunteerhub/internal/app/models"
	appRepos "github.com/yigit/volunteerhub/internal/app/repositories"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/auth"
)

// DemoPassword is the password of the seeded demo accounts
const DemoPassword = "Volunteer2025"

const (
	demoAssociationEmail = "info@croceverde.example.org"
	demoVolunteerEmail   = "marta.rossi@example.org"
)

// CreateDefaultData creates a demo association with one upcoming event and a demo volunteer
// when their accounts do not exist yet. Used in development mode only.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	userRepo := appRepos.NewUserRepository(dbPool)
	eventRepo := appRepos.NewEventRepository(dbPool)

	lgr.Info().Msg("Checking/Creating demo data...")
	var finalErr error

	hash, err := auth.HashPassword(DemoPassword)
	if err != nil {
		return err
	}

	// --- Demo association --- //
	website := "https://croceverde.example.org"
	association := &appModels.User{
		Email:       demoAssociationEmail,
		Password:    hash,
		Name:        "Croce Verde Bari",
		RoleType:    appModels.RoleAssociation,
		Address:     strPtr("Via Sparano 10, Bari"),
		Latitude:    floatPtr(41.1225),
		Longitude:   floatPtr(16.8693),
		ConsentData: true,
		AcceptTerms: true,
		Association: &appModels.AssociationProfile{Website: &website},
	}
	created, err := createIfMissing(ctx, userRepo, association)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating demo association")
		finalErr = errors.Join(finalErr, err)
	}

	if created {
		capacity := 20
		event := &appModels.Event{
			AssociationID: association.ID,
			Title:         "Beach clean-up at Pane e Pomodoro",
			Description:   strPtr("Gloves and bags are provided. Meet at the lifeguard tower."),
			Date:          time.Now().AddDate(0, 0, 14).Truncate(time.Hour),
			Location:      "Bari, Pane e Pomodoro",
			Latitude:      floatPtr(41.1171),
			Longitude:     floatPtr(16.8863),
			Duration:      domain.DurationTemporary,
			Skills:        []string{"teamwork"},
			Type:          "event",
			CapacityMax:   &capacity,
		}
		if err := eventRepo.Create(ctx, event); err != nil {
			lgr.Error().Err(err).Msg("Error creating demo event")
			finalErr = errors.Join(finalErr, err)
		} else {
			lgr.Info().Int64("eventID", event.ID).Msg("Demo event created")
		}
	}

	// --- Demo volunteer --- //
	volunteer := &appModels.User{
		Email:       demoVolunteerEmail,
		Password:    hash,
		Name:        "Marta Rossi",
		RoleType:    appModels.RoleVolunteer,
		ConsentData: true,
		AcceptTerms: true,
		Volunteer:   &appModels.VolunteerProfile{Availability: strPtr("weekends")},
	}
	if _, err := createIfMissing(ctx, userRepo, volunteer); err != nil {
		lgr.Error().Err(err).Msg("Error creating demo volunteer")
		finalErr = errors.Join(finalErr, err)
	}

	lgr.Info().Msg("Demo data check/creation finished.")
	return finalErr
}

func createIfMissing(ctx context.Context, repo *appRepos.UserRepository, u *appModels.User) (bool, error) {
	exists, err := repo.EmailExists(ctx, u.Email)
	if err != nil || exists {
		return false, err
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	if err := repo.Create(ctx, u); err != nil {
		return false, err
	}
	return true, nil
}

func strPtr(s string) *string { return &s }

func floatPtr(f float64) *float64 { return &f }
