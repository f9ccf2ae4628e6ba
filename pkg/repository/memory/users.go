package memory

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/artem13815/jobboard/pkg/auth"
)

type UserRepository struct{ s *Store }

func (r *UserRepository) Create(_ context.Context, user auth.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	email := strings.ToLower(user.Email)
	if _, taken := r.s.emails[email]; taken {
		return auth.ErrUserAlreadyExists
	}
	user.Email = email
	r.s.users[user.ID] = copyUser(user)
	r.s.emails[email] = user.ID
	return nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	id, ok := r.s.emails[strings.ToLower(email)]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return copyUser(r.s.users[id]), nil
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (auth.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	return copyUser(u), nil
}

func (r *UserRepository) UpdateProfile(_ context.Context, id uuid.UUID, profile auth.Profile) (auth.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return auth.User{}, auth.ErrNotFound
	}
	u.Profile = copyProfile(profile)
	r.s.users[id] = u
	return copyUser(u), nil
}
