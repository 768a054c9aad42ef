package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

const checkoutKeyPrefix = "checkout:"

// CheckoutMetadata is what the donor entered before being sent to the provider
type CheckoutMetadata struct {
	CampaignID int64  `json:"campaign_id"`
	UserID     *int64 `json:"user_id,omitempty"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	Amount     string `json:"amount"`
	Method     string `json:"method"`
	Message    string `json:"message,omitempty"`
}

// CheckoutStore keeps checkout metadata in Redis until the payment is confirmed
type CheckoutStore struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCheckoutStore creates a store whose entries expire after ttl
func NewCheckoutStore(rdb *redis.Client, ttl time.Duration) *CheckoutStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &CheckoutStore{rdb: rdb, ttl: ttl}
}

// Save stores metadata under the order id
func (s *CheckoutStore) Save(ctx context.Context, orderID string, meta CheckoutMetadata) error {
	b, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("error encoding checkout metadata: %w", err)
	}
	if err := s.rdb.Set(ctx, checkoutKeyPrefix+orderID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("error saving checkout metadata: %w", err)
	}
	return nil
}

// Get loads the metadata of an order
func (s *CheckoutStore) Get(ctx context.Context, orderID string) (*CheckoutMetadata, error) {
	b, err := s.rdb.Get(ctx, checkoutKeyPrefix+orderID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperrors.ErrCheckoutNotFound
		}
		return nil, fmt.Errorf("error loading checkout metadata: %w", err)
	}

	var meta CheckoutMetadata
	if err := json.Unmarshal(b, &meta); err != nil {
		return nil, fmt.Errorf("error decoding checkout metadata: %w", err)
	}
	return &meta, nil
}

// Delete drops the metadata of an order
func (s *CheckoutStore) Delete(ctx context.Context, orderID string) error {
	return s.rdb.Del(ctx, checkoutKeyPrefix+orderID).Err()
}
