package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	pkgerrors "github.com/pkg/errors"

	"github.com/artem13815/jobboard/pkg/auth"
)

// UserRepository implements auth.UserRepository backed by PostgreSQL (pgx).
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `id, name, email, password_hash, role, contact, dob, experience, education, skills, portfolio_link, created_at`

func (r *UserRepository) Create(ctx context.Context, user auth.User) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`, user.ID, user.Name, strings.ToLower(user.Email), user.PasswordHash, string(user.Role),
		user.Profile.Contact, user.Profile.DOB, user.Profile.Experience,
		nonNil(user.Profile.Education), nonNil(user.Profile.Skills), user.Profile.PortfolioLink,
		user.CreatedAt)
	if err != nil {
		if hasCode(err, codeUniqueViolation) {
			return auth.ErrUserAlreadyExists
		}
		return pkgerrors.Wrap(err, "insert user")
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = $1`, strings.ToLower(email))
	return scanUser(row)
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepository) UpdateProfile(ctx context.Context, id uuid.UUID, p auth.Profile) (auth.User, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE users
		SET contact = $2, dob = $3, experience = $4, education = $5, skills = $6, portfolio_link = $7
		WHERE id = $1
		RETURNING `+userColumns,
		id, p.Contact, p.DOB, p.Experience, nonNil(p.Education), nonNil(p.Skills), p.PortfolioLink)
	return scanUser(row)
}

func scanUser(row pgx.Row) (auth.User, error) {
	var (
		u         auth.User
		role      string
		dob       *time.Time
		createdAt time.Time
	)
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &role,
		&u.Profile.Contact, &dob, &u.Profile.Experience, &u.Profile.Education, &u.Profile.Skills,
		&u.Profile.PortfolioLink, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrNotFound
		}
		return auth.User{}, pkgerrors.Wrap(err, "scan user")
	}
	u.Role = auth.Role(role)
	if dob != nil {
		d := dob.UTC()
		u.Profile.DOB = &d
	}
	u.Profile.Education = nonNil(u.Profile.Education)
	u.Profile.Skills = nonNil(u.Profile.Skills)
	u.CreatedAt = createdAt.UTC()
	return u, nil
}
