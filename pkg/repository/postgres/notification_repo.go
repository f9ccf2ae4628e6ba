package postgres

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/artem13815/jobboard/pkg/notification"
)

type NotificationRepository struct {
	pool *pgxpool.Pool
}

func NewNotificationRepository(pool *pgxpool.Pool) *NotificationRepository {
	return &NotificationRepository{pool: pool}
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, user_id, type, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "list notifications")
	}
	defer rows.Close()

	out := make([]notification.Notification, 0)
	for rows.Next() {
		var (
			n         notification.Notification
			typ       string
			createdAt time.Time
		)
		if err := rows.Scan(&n.ID, &n.UserID, &typ, &n.Message, &n.IsRead, &createdAt); err != nil {
			return nil, pkgerrors.Wrap(err, "scan notification")
		}
		n.Type = notification.Type(typ)
		n.CreatedAt = createdAt.UTC()
		out = append(out, n)
	}
	return out, pkgerrors.Wrap(rows.Err(), "list notifications")
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uuid.UUID) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx, `SELECT count(*) FROM notifications WHERE user_id = $1 AND NOT is_read`, userID).Scan(&count)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "count unread notifications")
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID uuid.UUID) (int64, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND NOT is_read`, userID)
	if err != nil {
		return 0, pkgerrors.Wrap(err, "mark notifications read")
	}
	return tag.RowsAffected(), nil
}

// insertNotification пишет уведомление внутри транзакции вызывающего.
func insertNotification(ctx context.Context, tx pgx.Tx, n notification.Notification) error {
	_, err := tx.Exec(ctx, `
		INSERT INTO notifications (id, user_id, type, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, n.ID, n.UserID, string(n.Type), n.Message, n.IsRead, n.CreatedAt)
	return pkgerrors.Wrap(err, "insert notification")
}
