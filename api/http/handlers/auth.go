package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/logger"
)

const dateLayout = "2006-01-02"

type AuthHandler struct {
	useCase auth.AuthUseCase
}

func NewAuthHandler(useCase auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{useCase: useCase}
}

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=recruiter job-seeker"`
}

// Register handles user registration.
// @Summary Register user
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body registerRequest true "registration payload"
// @Success 201 {object} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}

	user, err := h.useCase.Register(c.Context(), auth.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     auth.Role(req.Role),
	})
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, toUserResponse(user))
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

// Login handles user login.
// @Summary Login
// @Tags    auth
// @Accept  json
// @Produce json
// @Param   input body loginRequest true "login payload"
// @Success 200 {object} loginResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Router  /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}

	result, err := h.useCase.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		// Неизвестный email при входе даёт 400, а не 404.
		if errors.Is(err, auth.ErrNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
			log.WithFields(log.Fields{
				logger.ErrorTypeField: logger.ErrorTypeAuth,
				"email":               logger.RedactEmail(req.Email),
			}).Warn("failed login")
		}
		if errors.Is(err, auth.ErrNotFound) {
			return presenter.Error(c, http.StatusBadRequest, "user not found")
		}
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, loginResponse{Token: result.Token, User: toUserResponse(result.User)})
}

// Me returns the authenticated user.
// @Summary Current user
// @Tags    auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} userResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.useCase.Me(c.Context(), identity(c).UserID)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(user))
}

type educationRequest struct {
	Level          string `json:"level" validate:"required"`
	InstituteName  string `json:"instituteName" validate:"required"`
	CourseDuration string `json:"courseDuration"`
	Percentage     string `json:"percentage"`
}

type updateProfileRequest struct {
	Contact       string             `json:"contact"`
	DOB           string             `json:"dob"`
	Experience    string             `json:"experience"`
	Education     []educationRequest `json:"education" validate:"dive"`
	Skills        []string           `json:"skills"`
	PortfolioLink string             `json:"portfolioLink" validate:"omitempty,url"`
}

// UpdateProfile overwrites the job-seeker profile.
// @Summary Update profile
// @Tags    auth
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body updateProfileRequest true "profile"
// @Success 200 {object} userResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /auth/update-profile [put]
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	var req updateProfileRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	dob, err := parseDate(req.DOB)
	if err != nil {
		return fail(c, err)
	}

	user, err := h.useCase.UpdateProfile(c.Context(), identity(c), auth.Profile{
		Contact:    req.Contact,
		DOB:        dob,
		Experience: req.Experience,
		Education: lo.Map(req.Education, func(e educationRequest, _ int) auth.Education {
			return auth.Education{
				Level:          e.Level,
				InstituteName:  e.InstituteName,
				CourseDuration: e.CourseDuration,
				Percentage:     e.Percentage,
			}
		}),
		Skills:        req.Skills,
		PortfolioLink: req.PortfolioLink,
	})
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toUserResponse(user))
}

// parseDate принимает YYYY-MM-DD или RFC3339, пустая строка означает "без даты".
func parseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, errBadRequest("dob must be a date in YYYY-MM-DD format")
}
