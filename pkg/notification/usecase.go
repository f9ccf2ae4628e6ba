package notification

import (
	"context"

	"github.com/artem13815/jobboard/pkg/auth"
)

type UseCase interface {
	List(ctx context.Context, who auth.Identity) ([]Notification, error)
	UnreadCount(ctx context.Context, who auth.Identity) (int, error)
	MarkAllRead(ctx context.Context, who auth.Identity) (int64, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) UseCase { return &service{repo: repo} }

func (s *service) List(ctx context.Context, who auth.Identity) ([]Notification, error) {
	return s.repo.ListByUser(ctx, who.UserID)
}

func (s *service) UnreadCount(ctx context.Context, who auth.Identity) (int, error) {
	return s.repo.CountUnread(ctx, who.UserID)
}

// MarkAllRead returns how many notifications changed; zero on repeated calls.
func (s *service) MarkAllRead(ctx context.Context, who auth.Identity) (int64, error) {
	return s.repo.MarkAllRead(ctx, who.UserID)
}
