package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Chiranjit680/FinAdvisor/internal/domain"
)

type ChatRepository struct {
	db *pgxpool.Pool
}

func NewChatRepository(db *pgxpool.Pool) *ChatRepository {
	return &ChatRepository{db: db}
}

// Insert appends one advisory exchange. The timestamp is server-assigned;
// rows are never updated or deleted afterwards.
func (r *ChatRepository) Insert(ctx context.Context, c *domain.Chat) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO chat (user_id, human_message, ai_message)
		VALUES ($1, $2, $3)
		RETURNING id, timestamp`,
		c.UserID, c.HumanMessage, c.AIMessage,
	).Scan(&c.ID, &c.Timestamp)
}

// ListRecent returns up to limit exchanges, most recent first.
func (r *ChatRepository) ListRecent(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Chat, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, user_id, human_message, ai_message, timestamp
		FROM chat WHERE user_id = $1
		ORDER BY timestamp DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chats []domain.Chat
	for rows.Next() {
		var c domain.Chat
		if err := rows.Scan(&c.ID, &c.UserID, &c.HumanMessage, &c.AIMessage, &c.Timestamp); err != nil {
			return nil, err
		}
		chats = append(chats, c)
	}
	return chats, rows.Err()
}
