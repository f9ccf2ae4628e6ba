package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"github.com/artem13815/jobboard/api/http/presenter"
	"github.com/artem13815/jobboard/pkg/job"
)

type JobHandler struct {
	useCase job.UseCase
}

func NewJobHandler(useCase job.UseCase) *JobHandler {
	return &JobHandler{useCase: useCase}
}

// List returns all jobs, newest first.
// @Summary List jobs
// @Tags    jobs
// @Produce json
// @Param   title    query string false "title substring"
// @Param   company  query string false "company substring"
// @Param   location query string false "location substring"
// @Param   skill    query string false "skill, aliases such as golang/go match"
// @Success 200 {array} jobResponse
// @Router  /jobs [get]
func (h *JobHandler) List(c *fiber.Ctx) error {
	jobs, err := h.useCase.List(c.Context(), job.Filter{
		Title:    c.Query("title"),
		Company:  c.Query("company"),
		Location: c.Query("location"),
		Skill:    c.Query("skill"),
	})
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, lo.Map(jobs, func(j job.Job, _ int) jobResponse { return toJobResponse(j) }))
}

// Get returns a single job with poster and applicants.
// @Summary Get job
// @Tags    jobs
// @Produce json
// @Param   id path string true "job id"
// @Success 200 {object} jobResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 404 {object} presenter.ErrorResponse
// @Router  /jobs/{id} [get]
func (h *JobHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	j, err := h.useCase.GetByID(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusOK, toJobResponse(j))
}

type createJobRequest struct {
	Title        string   `json:"title" validate:"required"`
	Company      string   `json:"company" validate:"required"`
	Location     string   `json:"location" validate:"required"`
	Description  string   `json:"description" validate:"required"`
	Skills       []string `json:"skills"`
	Requirements []string `json:"requirements"`
}

// Create posts a new job. Recruiters only.
// @Summary Create job
// @Tags    jobs
// @Accept  json
// @Produce json
// @Security BearerAuth
// @Param   input body createJobRequest true "job"
// @Success 201 {object} jobResponse
// @Failure 400 {object} presenter.ErrorResponse
// @Failure 401 {object} presenter.ErrorResponse
// @Failure 403 {object} presenter.ErrorResponse
// @Router  /jobs [post]
func (h *JobHandler) Create(c *fiber.Ctx) error {
	var req createJobRequest
	if err := bind(c, &req); err != nil {
		return fail(c, err)
	}
	j, err := h.useCase.Create(c.Context(), identity(c), job.CreateInput{
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Description:  req.Description,
		Skills:       req.Skills,
		Requirements: req.Requirements,
	})
	if err != nil {
		return fail(c, err)
	}
	return presenter.JSON(c, http.StatusCreated, toJobResponse(j))
}
