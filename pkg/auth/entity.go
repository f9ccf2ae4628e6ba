package auth

import (
	"time"

	"github.com/google/uuid"
)

// User is a domain entity representing a system user.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Profile      Profile
	CreatedAt    time.Time
}

// Profile — анкета соискателя. Перезаписывается целиком при обновлении.
type Profile struct {
	Contact       string      `json:"contact"`
	DOB           *time.Time  `json:"dob,omitempty"`
	Experience    string      `json:"experience"`
	Education     []Education `json:"education"`
	Skills        []string    `json:"skills"`
	PortfolioLink string      `json:"portfolioLink,omitempty"`
}

// Education — запись об образовании, не имеет собственной идентичности.
type Education struct {
	Level          string `json:"level"`
	InstituteName  string `json:"instituteName"`
	CourseDuration string `json:"courseDuration,omitempty"`
	Percentage     string `json:"percentage,omitempty"`
}
