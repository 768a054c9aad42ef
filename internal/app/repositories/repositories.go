package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository               *UserRepository
	TokenRepository              *TokenRepository
	PasswordResetTokenRepository *PasswordResetTokenRepository
	FollowRepository             *FollowRepository
	EventRepository              *EventRepository
	ParticipationRepository      *ParticipationRepository
	NotificationRepository       *NotificationRepository
	CampaignRepository           *CampaignRepository
	DonationRepository           *DonationRepository
	PostRepository               *PostRepository
	ChatRepository               *ChatRepository
	PetitionRepository           *PetitionRepository
	ReportRepository             *ReportRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:               NewUserRepository(db),
		TokenRepository:              NewTokenRepository(db),
		PasswordResetTokenRepository: NewPasswordResetTokenRepository(db),
		FollowRepository:             NewFollowRepository(db),
		EventRepository:              NewEventRepository(db),
		ParticipationRepository:      NewParticipationRepository(db),
		NotificationRepository:       NewNotificationRepository(db),
		CampaignRepository:           NewCampaignRepository(db),
		DonationRepository:           NewDonationRepository(db),
		PostRepository:               NewPostRepository(db),
		ChatRepository:               NewChatRepository(db),
		PetitionRepository:           NewPetitionRepository(db),
		ReportRepository:             NewReportRepository(db),
	}
}
