package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/application"
)

type ApplicationHandler struct {
	useCase application.UseCase
}

func NewApplicationHandler(useCase application.UseCase) *ApplicationHandler {
	return &ApplicationHandler{useCase: useCase}
}

type applyRequest struct {
	JobID         string `json:"jobId" validate:"required,uuid"`
	PortfolioLink string `json:"portfolioLink" validate:"omitempty,url"`
}

// Apply submits an application. Job-seekers only.
// @Summary Apply for a job
// @Tags    applications
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body applyRequest true "application"
// @Success 201 {object} applicationResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications/apply [post]
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	var req applyRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return fail(c, errBadRequest("jobId must be a valid id"))
	}
	a, err := h.useCase.Apply(c.Context(), identity(c), jobID, req.PortfolioLink)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, toApplicationResponse(a))
}

// Mine lists the caller's applications with their jobs.
// @Summary My applications
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Success 200 {array} applicationResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Router  /applications/my-applications [get]
func (h *ApplicationHandler) Mine(c *fiber.Ctx) error {
	apps, err := h.useCase.ListMine(c.Context(), identity(c))
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toApplicationResponses(apps))
}

// ForJob lists applications to a job with applicant profiles. Owning recruiter only.
// @Summary Applications for a job
// @Tags    applications
// @Produce json
// @Security BearerAuth
// @Param   jobId  path  string true  "job id"
// @Param   status query string false "pending, approved or rejected"
// @Success 200 {array} applicationResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /applications/job/{jobId} [get]
func (h *ApplicationHandler) ForJob(c *fiber.Ctx) error {
	jobID, err := paramID(c, "jobId")
	if err != nil {
		return fail(c, err)
	}
	apps, err := h.useCase.ListForJob(c.Context(), identity(c), jobID, c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toApplicationResponses(apps))
}

type statusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SetStatus approves or rejects a pending application. Owning recruiter only.
// @Summary Decide application
// @Tags    applications
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   id    path string        true "application id"
// @Param   input body statusRequest true "approved or rejected"
// @Success 200 {object} applicationResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Failure 409 {object} presenter.ErrorResponse
// @Router  /applications/{id}/status [patch]
func (h *ApplicationHandler) SetStatus(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req statusRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	a, err := h.useCase.SetStatus(c.Context(), identity(c), id, req.Status)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toApplicationResponse(a))
}
