package handlers

import (
	"time"

	"github.com/samber/lo"

	"github.com/artem13815/jobboard/pkg/application"
	"github.com/artem13815/jobboard/pkg/auth"
	"github.com/artem13815/jobboard/pkg/job"
)

// userResponse — публичное представление пользователя, без хэша пароля.
type userResponse struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Email         string           `json:"email"`
	Role          string           `json:"role"`
	Contact       string           `json:"contact"`
	DOB           string           `json:"dob,omitempty"`
	Experience    string           `json:"experience"`
	Education     []auth.Education `json:"education"`
	Skills        []string         `json:"skills"`
	PortfolioLink string           `json:"portfolioLink,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func toUserResponse(u auth.User) userResponse {
	resp := userResponse{
		ID:            u.ID.String(),
		Name:          u.Name,
		Email:         u.Email,
		Role:          string(u.Role),
		Contact:       u.Profile.Contact,
		Experience:    u.Profile.Experience,
		Education:     nonNil(u.Profile.Education),
		Skills:        nonNil(u.Profile.Skills),
		PortfolioLink: u.Profile.PortfolioLink,
		CreatedAt:     u.CreatedAt,
	}
	if u.Profile.DOB != nil {
		resp.DOB = u.Profile.DOB.Format(dateLayout)
	}
	return resp
}

type jobResponse struct {
	ID           string        `json:"id"`
	Title        string        `json:"title"`
	Company      string        `json:"company"`
	Location     string        `json:"location"`
	Description  string        `json:"description"`
	Skills       []string      `json:"skills"`
	Requirements []string      `json:"requirements"`
	PostedBy     *job.UserRef  `json:"postedBy"`
	Applicants   []job.UserRef `json:"applicants"`
	CreatedAt    time.Time     `json:"createdAt"`
}

func toJobResponse(j job.Job) jobResponse {
	poster := j.Poster
	if poster == nil {
		poster = &job.UserRef{ID: j.PostedBy}
	}
	return jobResponse{
		ID:           j.ID.String(),
		Title:        j.Title,
		Company:      j.Company,
		Location:     j.Location,
		Description:  j.Description,
		Skills:       nonNil(j.Skills),
		Requirements: nonNil(j.Requirements),
		PostedBy:     poster,
		Applicants:   nonNil(j.Applicants),
		CreatedAt:    j.CreatedAt,
	}
}

type applicantResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Email      string           `json:"email"`
	Contact    string           `json:"contact"`
	Experience string           `json:"experience"`
	Education  []auth.Education `json:"education"`
	Skills     []string         `json:"skills"`
}

type applicationResponse struct {
	ID            string             `json:"id"`
	JobID         string             `json:"jobId"`
	ApplicantID   string             `json:"applicantId"`
	Status        string             `json:"status"`
	PortfolioLink string             `json:"portfolioLink,omitempty"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
	Job           *jobResponse       `json:"job,omitempty"`
	Applicant     *applicantResponse `json:"applicant,omitempty"`
}

func toApplicationResponse(a application.Application) applicationResponse {
	resp := applicationResponse{
		ID:            a.ID.String(),
		JobID:         a.JobID.String(),
		ApplicantID:   a.ApplicantID.String(),
		Status:        string(a.Status),
		PortfolioLink: a.PortfolioLink,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.Job != nil {
		j := toJobResponse(*a.Job)
		resp.Job = &j
	}
	if p := a.Applicant; p != nil {
		resp.Applicant = &applicantResponse{
			ID:         p.ID.String(),
			Name:       p.Name,
			Email:      p.Email,
			Contact:    p.Contact,
			Experience: p.Experience,
			Education:  nonNil(p.Education),
			Skills:     nonNil(p.Skills),
		}
	}
	return resp
}

func toApplicationResponses(apps []application.Application) []applicationResponse {
	return lo.Map(apps, func(a application.Application, _ int) applicationResponse { return toApplicationResponse(a) })
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
