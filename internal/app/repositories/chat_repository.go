package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/yigit/volunteerhub/internal/app/models"
	"github.com/yigit/volunteerhub/internal/pkg/apperrors"
)

// Conversation is a chat seen from one participant
type Conversation struct {
	ChatID      int64
	OtherUserID int64
	OtherName   string
	OtherPhoto  *string
}

// ChatRepository handles direct chats and their messages
type ChatRepository struct {
	db *pgxpool.Pool
}

// NewChatRepository creates a new ChatRepository
func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// FindOrCreate returns the chat of the unordered pair (a, b), creating it once
func (r *ChatRepository) FindOrCreate(ctx context.Context, a, b int64) (*models.Chat, error) {
	if a > b {
		a, b = b, a
	}

	chat := &models.Chat{}
	err := r.db.QueryRow(ctx, `
		INSERT INTO chats (user1_id, user2_id) VALUES ($1, $2)
		ON CONFLICT (user1_id, user2_id) DO UPDATE SET user1_id = EXCLUDED.user1_id
		RETURNING id, user1_id, user2_id, created_at`, a, b).
		Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("error creating chat: %w", err)
	}
	return chat, nil
}

// GetByID retrieves a chat
func (r *ChatRepository) GetByID(ctx context.Context, id int64) (*models.Chat, error) {
	chat := &models.Chat{}
	err := r.db.QueryRow(ctx, `SELECT id, user1_id, user2_id, created_at FROM chats WHERE id = $1`, id).
		Scan(&chat.ID, &chat.User1ID, &chat.User2ID, &chat.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrChatNotFound
		}
		return nil, fmt.Errorf("error retrieving chat: %w", err)
	}
	return chat, nil
}

// ListConversations returns the chats of userID with the other participant
func (r *ChatRepository) ListConversations(ctx context.Context, userID int64) ([]Conversation, error) {
	rows, err := r.db.Query(ctx, `
		SELECT c.id, u.id, u.name, u.photo_filename
		FROM chats c
		JOIN users u ON u.id = CASE WHEN c.user1_id = $1 THEN c.user2_id ELSE c.user1_id END
		WHERE c.user1_id = $1 OR c.user2_id = $1
		ORDER BY COALESCE((SELECT MAX(m.created_at) FROM chat_messages m WHERE m.chat_id = c.id), c.created_at) DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []Conversation{}
	for rows.Next() {
		var c Conversation
		if err := rows.Scan(&c.ChatID, &c.OtherUserID, &c.OtherName, &c.OtherPhoto); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CreateMessage stores a message and sets its ID and timestamp
func (r *ChatRepository) CreateMessage(ctx context.Context, m *models.ChatMessage) error {
	err := r.db.QueryRow(ctx, `
		INSERT INTO chat_messages (chat_id, sender_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`, m.ChatID, m.SenderID, m.Content).
		Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("error creating chat message: %w", err)
	}
	return nil
}

// ListMessages returns a page of a chat's messages in chronological order
func (r *ChatRepository) ListMessages(ctx context.Context, chatID int64, limit, offset int) ([]*models.ChatMessage, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM chat_messages WHERE chat_id = $1`, chatID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("error counting messages: %w", err)
	}

	sql, args, err := psql.Select("id", "chat_id", "sender_id", "content", "created_at").
		From("chat_messages").
		Where(squirrel.Eq{"chat_id": chatID}).
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	out := []*models.ChatMessage{}
	for rows.Next() {
		m := &models.ChatMessage{}
		if err := rows.Scan(&m.ID, &m.ChatID, &m.SenderID, &m.Content, &m.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}
