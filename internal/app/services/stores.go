package services

import (
	"context"
	"time"

	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/repositories"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/payment"
	"github.com/yigit/volunteerhub/internal/pkg/receipt"
)

// The interfaces below list what each service needs from persistence.
// The repositories package provides the PostgreSQL implementations.

type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Update(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	UpdatePhoto(ctx context.Context, userID int64, filename *string) error
	ListAssociations(ctx context.Context) ([]*models.User, error)
	SearchAssociations(ctx context.Context, term string, limit uint64) ([]*models.UserSummary, error)
}

type TokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	GetUserIDByToken(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
}

type PasswordResetStore interface {
	CreateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, token, passwordHash string) (int64, error)
}

type FollowStore interface {
	Follow(ctx context.Context, volunteerID, associationID int64) (bool, error)
	Unfollow(ctx context.Context, volunteerID, associationID int64) (bool, error)
	IsFollowing(ctx context.Context, volunteerID, associationID int64) (bool, error)
	CountFollowers(ctx context.Context, associationID int64) (int, error)
	ListFollowed(ctx context.Context, volunteerID int64) ([]*models.UserSummary, error)
}

type EventStore interface {
	Create(ctx context.Context, e *models.Event) error
	Update(ctx context.Context, e *models.Event) error
	UpdateImage(ctx context.Context, id int64, filename string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Event, error)
	ListByAssociation(ctx context.Context, associationID int64) ([]*models.Event, error)
	ListAll(ctx context.Context) ([]*models.Event, error)
	ListUpcomingByAssociation(ctx context.Context, associationID int64, from time.Time, limit uint64) ([]*models.Event, error)
	ListGeolocated(ctx context.Context) ([]*models.Event, error)
}

type ParticipationStore interface {
	ApplyTx(ctx context.Context, volunteerID int64, volunteerName string, eventID int64) (*repositories.ApplyResult, error)
	DecideTx(ctx context.Context, eventID, participationID int64, status domain.ParticipationStatus) (*repositories.DecisionResult, error)
	Withdraw(ctx context.Context, volunteerID, eventID int64) error
	GetStatus(ctx context.Context, volunteerID, eventID int64) (*domain.ParticipationStatus, error)
	ListByEvent(ctx context.Context, eventID int64) ([]*models.Participation, error)
	ListByVolunteer(ctx context.Context, volunteerID int64, now time.Time, upcoming bool, status domain.ParticipationStatus) ([]*models.Participation, error)
}

type CampaignStore interface {
	Create(ctx context.Context, c *models.Campaign) error
	Update(ctx context.Context, c *models.Campaign) error
	UpdateImage(ctx context.Context, id int64, filename string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Campaign, error)
	ListByAssociation(ctx context.Context, associationID int64) ([]*models.Campaign, error)
	ListAll(ctx context.Context) ([]*models.Campaign, error)
	ListGeolocated(ctx context.Context) ([]*models.Campaign, error)
}

type DonationStore interface {
	CreateOnce(ctx context.Context, d *models.Donation) (bool, error)
	GetByOrderID(ctx context.Context, orderID string) (*models.Donation, error)
	SetReceipt(ctx context.Context, id int64, filename string) error
	ListByUser(ctx context.Context, userID int64) ([]*models.Donation, error)
	ListByAssociation(ctx context.Context, associationID int64) ([]*models.Donation, error)
}

type PostStore interface {
	Create(ctx context.Context, p *models.Post) error
	Update(ctx context.Context, p *models.Post) error
	UpdateImage(ctx context.Context, id int64, filename string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	ListByAssociation(ctx context.Context, associationID int64) ([]*models.Post, error)
	ListAll(ctx context.Context) ([]*models.Post, error)
	ToggleApplauseTx(ctx context.Context, post *models.Post, userID int64, userName string) (*repositories.ApplauseResult, error)
}

type NotificationStore interface {
	ListByUser(ctx context.Context, userID int64, limit, offset int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) (bool, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

type ChatStore interface {
	FindOrCreate(ctx context.Context, a, b int64) (*models.Chat, error)
	GetByID(ctx context.Context, id int64) (*models.Chat, error)
	ListConversations(ctx context.Context, userID int64) ([]repositories.Conversation, error)
	CreateMessage(ctx context.Context, m *models.ChatMessage) error
	ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*models.ChatMessage, int64, error)
}

type PetitionStore interface {
	Create(ctx context.Context, p *models.Petition) error
	Update(ctx context.Context, p *models.Petition) error
	UpdateImage(ctx context.Context, id int64, filename string) error
	GetByID(ctx context.Context, id int64) (*models.Petition, error)
	ListAll(ctx context.Context) ([]*models.Petition, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Petition, error)
	Sign(ctx context.Context, petitionID, userID int64) (bool, error)
	Support(ctx context.Context, petitionID, associationID int64) (bool, error)
}

type ReportStore interface {
	Create(ctx context.Context, rp *models.Report) error
	UpdateImage(ctx context.Context, id int64, filename string) error
	Delete(ctx context.Context, id int64) error
	GetByID(ctx context.Context, id int64) (*models.Report, error)
	ListAll(ctx context.Context) ([]*models.Report, error)
	ListByUser(ctx context.Context, userID int64) ([]*models.Report, error)
}

// CheckoutStore keeps pending checkout metadata
type CheckoutStore interface {
	Save(ctx context.Context, orderID string, meta payment.CheckoutMetadata) error
	Get(ctx context.Context, orderID string) (*payment.CheckoutMetadata, error)
	Delete(ctx context.Context, orderID string) error
}

// ReceiptGenerator renders donation receipts
type ReceiptGenerator interface {
	Generate(d receipt.Data) (string, error)
}

// ReminderStore finds events needing a reminder and their recipients
type ReminderStore interface {
	ListDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Event, error)
	MarkReminderSent(ctx context.Context, id int64, at time.Time) error
}

// RecipientStore lists the accepted volunteers of an event
type RecipientStore interface {
	ListAcceptedRecipients(ctx context.Context, eventID int64) ([]repositories.Recipient, error)
}
