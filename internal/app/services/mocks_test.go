package services

import (
	"context"
	"encoding/json"
	"mime/multipart"
	"sync"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/app/repositories"
	"github.com/yigit/volunteerhub/internal/domain"
	"github.com/yigit/volunteerhub/internal/pkg/auth"
	"github.com/yigit/volunteerhub/internal/pkg/email"
	"github.com/yigit/volunteerhub/internal/pkg/payment"
	"github.com/yigit/volunteerhub/internal/pkg/receipt"
)

// MockUserStore

type MockUserStore struct{ mock.Mock }

func (m *MockUserStore) Create(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserStore) Update(ctx context.Context, u *models.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserStore) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, addr string) (*models.User, error) {
	args := m.Called(ctx, addr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) EmailExists(ctx context.Context, addr string) (bool, error) {
	args := m.Called(ctx, addr)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserStore) UpdatePhoto(ctx context.Context, userID int64, filename *string) error {
	return m.Called(ctx, userID, filename).Error(0)
}

func (m *MockUserStore) ListAssociations(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserStore) SearchAssociations(ctx context.Context, term string, limit uint64) ([]*models.UserSummary, error) {
	args := m.Called(ctx, term, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSummary), args.Error(1)
}

// MockTokenStore

type MockTokenStore struct{ mock.Mock }

func (m *MockTokenStore) CreateToken(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	return m.Called(ctx, token, userID, expiresAt).Error(0)
}

func (m *MockTokenStore) GetUserIDByToken(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenStore) RevokeToken(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

// MockPasswordResetStore

type MockPasswordResetStore struct{ mock.Mock }

func (m *MockPasswordResetStore) CreateToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error {
	return m.Called(ctx, userID, token, expiresAt).Error(0)
}

func (m *MockPasswordResetStore) ResetPassword(ctx context.Context, token, hash string) (int64, error) {
	args := m.Called(ctx, token, hash)
	return args.Get(0).(int64), args.Error(1)
}

// MockTokenIssuer

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) GenerateTokenPair(user *models.User) (*auth.TokenPair, error) {
	args := m.Called(user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.TokenPair), args.Error(1)
}

// MockFollowStore

type MockFollowStore struct{ mock.Mock }

func (m *MockFollowStore) Follow(ctx context.Context, volunteerID, associationID int64) (bool, error) {
	args := m.Called(ctx, volunteerID, associationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) Unfollow(ctx context.Context, volunteerID, associationID int64) (bool, error) {
	args := m.Called(ctx, volunteerID, associationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) IsFollowing(ctx context.Context, volunteerID, associationID int64) (bool, error) {
	args := m.Called(ctx, volunteerID, associationID)
	return args.Bool(0), args.Error(1)
}

func (m *MockFollowStore) CountFollowers(ctx context.Context, associationID int64) (int, error) {
	args := m.Called(ctx, associationID)
	return args.Int(0), args.Error(1)
}

func (m *MockFollowStore) ListFollowed(ctx context.Context, volunteerID int64) ([]*models.UserSummary, error) {
	args := m.Called(ctx, volunteerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.UserSummary), args.Error(1)
}

// MockEventStore

type MockEventStore struct{ mock.Mock }

func (m *MockEventStore) events(args mock.Arguments) ([]*models.Event, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Event), args.Error(1)
}

func (m *MockEventStore) Create(ctx context.Context, e *models.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventStore) Update(ctx context.Context, e *models.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *MockEventStore) UpdateImage(ctx context.Context, id int64, filename string) error {
	return m.Called(ctx, id, filename).Error(0)
}

func (m *MockEventStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventStore) GetByID(ctx context.Context, id int64) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventStore) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Event, error) {
	return m.events(m.Called(ctx, associationID))
}

func (m *MockEventStore) ListAll(ctx context.Context) ([]*models.Event, error) {
	return m.events(m.Called(ctx))
}

func (m *MockEventStore) ListUpcomingByAssociation(ctx context.Context, associationID int64, from time.Time, limit uint64) ([]*models.Event, error) {
	return m.events(m.Called(ctx, associationID, from, limit))
}

func (m *MockEventStore) ListGeolocated(ctx context.Context) ([]*models.Event, error) {
	return m.events(m.Called(ctx))
}

func (m *MockEventStore) ListDueForReminder(ctx context.Context, from, to time.Time) ([]*models.Event, error) {
	return m.events(m.Called(ctx, from, to))
}

func (m *MockEventStore) MarkReminderSent(ctx context.Context, id int64, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// MockParticipationStore

type MockParticipationStore struct{ mock.Mock }

func (m *MockParticipationStore) ApplyTx(ctx context.Context, volunteerID int64, name string, eventID int64) (*repositories.ApplyResult, error) {
	args := m.Called(ctx, volunteerID, name, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ApplyResult), args.Error(1)
}

func (m *MockParticipationStore) DecideTx(ctx context.Context, eventID, participationID int64, status domain.ParticipationStatus) (*repositories.DecisionResult, error) {
	args := m.Called(ctx, eventID, participationID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.DecisionResult), args.Error(1)
}

func (m *MockParticipationStore) Withdraw(ctx context.Context, volunteerID, eventID int64) error {
	return m.Called(ctx, volunteerID, eventID).Error(0)
}

func (m *MockParticipationStore) GetStatus(ctx context.Context, volunteerID, eventID int64) (*domain.ParticipationStatus, error) {
	args := m.Called(ctx, volunteerID, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ParticipationStatus), args.Error(1)
}

func (m *MockParticipationStore) ListByEvent(ctx context.Context, eventID int64) ([]*models.Participation, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participation), args.Error(1)
}

func (m *MockParticipationStore) ListByVolunteer(ctx context.Context, volunteerID int64, now time.Time, upcoming bool, status domain.ParticipationStatus) ([]*models.Participation, error) {
	args := m.Called(ctx, volunteerID, now, upcoming, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Participation), args.Error(1)
}

func (m *MockParticipationStore) ListAcceptedRecipients(ctx context.Context, eventID int64) ([]repositories.Recipient, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.Recipient), args.Error(1)
}

// MockCampaignStore

type MockCampaignStore struct{ mock.Mock }

func (m *MockCampaignStore) campaigns(args mock.Arguments) ([]*models.Campaign, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Campaign), args.Error(1)
}

func (m *MockCampaignStore) Create(ctx context.Context, c *models.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignStore) Update(ctx context.Context, c *models.Campaign) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCampaignStore) UpdateImage(ctx context.Context, id int64, filename string) error {
	return m.Called(ctx, id, filename).Error(0)
}

func (m *MockCampaignStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCampaignStore) GetByID(ctx context.Context, id int64) (*models.Campaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Campaign), args.Error(1)
}

func (m *MockCampaignStore) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Campaign, error) {
	return m.campaigns(m.Called(ctx, associationID))
}

func (m *MockCampaignStore) ListAll(ctx context.Context) ([]*models.Campaign, error) {
	return m.campaigns(m.Called(ctx))
}

func (m *MockCampaignStore) ListGeolocated(ctx context.Context) ([]*models.Campaign, error) {
	return m.campaigns(m.Called(ctx))
}

// MockDonationStore

type MockDonationStore struct{ mock.Mock }

func (m *MockDonationStore) CreateOnce(ctx context.Context, d *models.Donation) (bool, error) {
	args := m.Called(ctx, d)
	return args.Bool(0), args.Error(1)
}

func (m *MockDonationStore) GetByOrderID(ctx context.Context, orderID string) (*models.Donation, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Donation), args.Error(1)
}

func (m *MockDonationStore) SetReceipt(ctx context.Context, id int64, filename string) error {
	return m.Called(ctx, id, filename).Error(0)
}

func (m *MockDonationStore) ListByUser(ctx context.Context, userID int64) ([]*models.Donation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Donation), args.Error(1)
}

func (m *MockDonationStore) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Donation, error) {
	args := m.Called(ctx, associationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Donation), args.Error(1)
}

// MockPostStore

type MockPostStore struct{ mock.Mock }

func (m *MockPostStore) posts(args mock.Arguments) ([]*models.Post, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Post), args.Error(1)
}

func (m *MockPostStore) Create(ctx context.Context, p *models.Post) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPostStore) Update(ctx context.Context, p *models.Post) error {
	return m.Called(ctx, p).Error(0)
}

func (m *MockPostStore) UpdateImage(ctx context.Context, id int64, filename string) error {
	return m.Called(ctx, id, filename).Error(0)
}

func (m *MockPostStore) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockPostStore) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Post), args.Error(1)
}

func (m *MockPostStore) ListByAssociation(ctx context.Context, associationID int64) ([]*models.Post, error) {
	return m.posts(m.Called(ctx, associationID))
}

func (m *MockPostStore) ListAll(ctx context.Context) ([]*models.Post, error) {
	return m.posts(m.Called(ctx))
}

func (m *MockPostStore) ToggleApplauseTx(ctx context.Context, post *models.Post, userID int64, userName string) (*repositories.ApplauseResult, error) {
	args := m.Called(ctx, post, userID, userName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repositories.ApplauseResult), args.Error(1)
}

// MockChatStore

type MockChatStore struct{ mock.Mock }

func (m *MockChatStore) FindOrCreate(ctx context.Context, a, b int64) (*models.Chat, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatStore) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chat), args.Error(1)
}

func (m *MockChatStore) ListConversations(ctx context.Context, userID int64) ([]repositories.Conversation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repositories.Conversation), args.Error(1)
}

func (m *MockChatStore) CreateMessage(ctx context.Context, msg *models.ChatMessage) error {
	return m.Called(ctx, msg).Error(0)
}

func (m *MockChatStore) ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*models.ChatMessage, int64, error) {
	args := m.Called(ctx, chatID, limit, offset)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*models.ChatMessage), args.Get(1).(int64), args.Error(2)
}

// MockCheckoutStore

type MockCheckoutStore struct{ mock.Mock }

func (m *MockCheckoutStore) Save(ctx context.Context, orderID string, meta payment.CheckoutMetadata) error {
	return m.Called(ctx, orderID, meta).Error(0)
}

func (m *MockCheckoutStore) Get(ctx context.Context, orderID string) (*payment.CheckoutMetadata, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.CheckoutMetadata), args.Error(1)
}

func (m *MockCheckoutStore) Delete(ctx context.Context, orderID string) error {
	return m.Called(ctx, orderID).Error(0)
}

// MockGateway

type MockGateway struct{ mock.Mock }

func (m *MockGateway) CreateCheckout(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Checkout), args.Error(1)
}

func (m *MockGateway) GetStatus(ctx context.Context, orderID string) (*payment.Status, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Status), args.Error(1)
}

// MockReceiptGenerator

type MockReceiptGenerator struct{ mock.Mock }

func (m *MockReceiptGenerator) Generate(d receipt.Data) (string, error) {
	args := m.Called(d)
	return args.String(0), args.Error(1)
}

// MockFileStorage

type MockFileStorage struct{ mock.Mock }

func (m *MockFileStorage) Save(fh *multipart.FileHeader, kind domain.UploadKind) (string, error) {
	args := m.Called(fh, kind)
	return args.String(0), args.Error(1)
}

func (m *MockFileStorage) Delete(kind domain.UploadKind, filename string) error {
	return m.Called(kind, filename).Error(0)
}

func (m *MockFileStorage) Path(kind domain.UploadKind, filename string) string {
	return m.Called(kind, filename).String(0)
}

// recordingPublisher keeps the mail jobs it receives
type recordingPublisher struct {
	mu   sync.Mutex
	jobs []email.Job
}

func (p *recordingPublisher) PublishJSON(_ context.Context, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var job email.Job
	if err := json.Unmarshal(body, &job); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.jobs = append(p.jobs, job)
	return nil
}

func (p *recordingPublisher) Jobs() []email.Job {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]email.Job(nil), p.jobs...)
}
