package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/notification"
)

type NotificationRepository struct{ s *Store }

func (r *NotificationRepository) ListByUser(_ context.Context, userID uuid.UUID) ([]notification.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]notification.Notification, 0)
	for _, n := range r.s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, k int) bool { return newer(out[i].CreatedAt, out[k].CreatedAt, out[i].ID, out[k].ID) })
	return out, nil
}

func (r *NotificationRepository) CountUnread(_ context.Context, userID uuid.UUID) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count := 0
	for _, n := range r.s.notifications {
		if n.UserID == userID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (r *NotificationRepository) MarkAllRead(_ context.Context, userID uuid.UUID) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var updated int64
	for i := range r.s.notifications {
		if r.s.notifications[i].UserID == userID && !r.s.notifications[i].IsRead {
			r.s.notifications[i].IsRead = true
			updated++
		}
	}
	return updated, nil
}
