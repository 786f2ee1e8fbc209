package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Project represents a portfolio dossier entry
type Project struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Classification string    `json:"classification"`
	Description    string    `json:"description"`
	ProjectType    string    `json:"projectType,omitempty"`
	Technologies   string    `json:"technologies,omitempty"`
	GithubURL      string    `json:"githubUrl,omitempty"`
	LiveURL        string    `json:"liveUrl,omitempty"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// TechnologiesList splits the comma-separated technologies field
func (p *Project) TechnologiesList() []string {
	if p.Technologies == "" {
		return nil
	}
	var out []string
	for _, tech := range strings.Split(p.Technologies, ",") {
		if t := strings.TrimSpace(tech); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// Agent represents a profile shown on the about page
type Agent struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	DisplayOrder int       `json:"displayOrder"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// CreateProjectInput is the admin payload for creating/updating a project
type CreateProjectInput struct {
	Title          string `json:"title" binding:"required"`
	Classification string `json:"classification"`
	Description    string `json:"description" binding:"required"`
	ProjectType    string `json:"projectType"`
	Technologies   string `json:"technologies"`
	GithubURL      string `json:"githubUrl"`
	LiveURL        string `json:"liveUrl"`
	IsActive       *bool  `json:"isActive"`
}

// CreateAgentInput is the admin payload for creating/updating an agent
type CreateAgentInput struct {
	Name         string `json:"name" binding:"required"`
	Description  string `json:"description" binding:"required"`
	DisplayOrder int    `json:"displayOrder"`
	IsActive     *bool  `json:"isActive"`
}
