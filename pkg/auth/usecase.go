package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/artem13815/jobboard/pkg/nlp"
)

// AuthUseCase describes authentication/registration and profile behavior.
type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) (User, error)
	Login(ctx context.Context, email, password string) (AuthResult, error)
	Me(ctx context.Context, userID uuid.UUID) (User, error)
	UpdateProfile(ctx context.Context, who Identity, profile Profile) (User, error)
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

type AuthResult struct {
	User  User
	Token string
}

type authService struct {
	repo   UserRepository
	tokens TokenGenerator
	cost   int
	now    func() time.Time
}

type Option func(*authService)

// WithBcryptCost overrides the hashing cost (tests use bcrypt.MinCost).
func WithBcryptCost(cost int) Option {
	return func(s *authService) { s.cost = cost }
}

// NewAuthService returns default implementation of AuthUseCase.
func NewAuthService(repo UserRepository, tokens TokenGenerator, opts ...Option) AuthUseCase {
	s := &authService{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (User, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if name == "" || email == "" || in.Password == "" {
		return User{}, ErrValidation("name, email and password are required")
	}
	if !in.Role.Valid() {
		return User{}, ErrValidation("role must be recruiter or job-seeker")
	}

	// If user exists, fail fast; the unique index covers the race.
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return User{}, ErrUserAlreadyExists
	} else if !errors.Is(err, ErrNotFound) {
		return User{}, err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return User{}, err
	}

	user := User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         in.Role,
		Profile:      Profile{Education: []Education{}, Skills: []string{}},
		CreatedAt:    s.now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return AuthResult{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return AuthResult{}, ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return AuthResult{}, err
	}
	return AuthResult{User: user, Token: token}, nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (User, error) {
	return s.repo.GetByID(ctx, userID)
}

// UpdateProfile overwrites the whole profile; omitted lists become empty.
func (s *authService) UpdateProfile(ctx context.Context, who Identity, profile Profile) (User, error) {
	if err := who.Require(RoleJobSeeker); err != nil {
		return User{}, err
	}

	education := make([]Education, 0, len(profile.Education))
	for _, e := range profile.Education {
		e.Level = strings.TrimSpace(e.Level)
		e.InstituteName = strings.TrimSpace(e.InstituteName)
		if e.Level == "" || e.InstituteName == "" {
			return User{}, ErrValidation("education level and instituteName are required")
		}
		e.CourseDuration = strings.TrimSpace(e.CourseDuration)
		e.Percentage = strings.TrimSpace(e.Percentage)
		education = append(education, e)
	}
	if profile.DOB != nil {
		dob := profile.DOB.UTC()
		if dob.After(s.now()) {
			return User{}, ErrValidation("dob must be in the past")
		}
		profile.DOB = &dob
	}

	profile.Contact = strings.TrimSpace(profile.Contact)
	profile.Experience = strings.TrimSpace(profile.Experience)
	profile.PortfolioLink = strings.TrimSpace(profile.PortfolioLink)
	profile.Education = education
	profile.Skills = nlp.CleanList(profile.Skills)

	return s.repo.UpdateProfile(ctx, who.UserID, profile)
}
