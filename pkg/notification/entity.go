package notification

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeApplication Type = "application"
	TypeApproval    Type = "approval"
	TypeRejection   Type = "rejection"
)

// Notification — запись ленты уведомлений пользователя. Только добавляется;
// единственное изменение — отметка о прочтении.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Type      Type      `json:"type"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// New builds an unread notification for userID.
func New(userID uuid.UUID, t Type, message string, at time.Time) Notification {
	return Notification{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      t,
		Message:   message,
		CreatedAt: at.UTC(),
	}
}

// Repository — порт ленты. Создание уведомлений выполняет репозиторий заявок
// в той же транзакции, что и изменение заявки.
type Repository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int, error)
	MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error)
}
