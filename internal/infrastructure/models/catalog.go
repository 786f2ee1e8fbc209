package models

import (
	"time"

	"github.com/google/uuid"
)

// Project is the persistence model for portfolio entries
type Project struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title          string    `gorm:"type:varchar(200);not null"`
	Classification string    `gorm:"type:varchar(50);not null;default:'CLASSIFIED'"`
	Description    string    `gorm:"type:text;not null"`
	ProjectType    string    `gorm:"type:varchar(100)"`
	Technologies   string    `gorm:"type:varchar(500)"`
	GithubURL      string    `gorm:"type:varchar(255)"`
	LiveURL        string    `gorm:"type:varchar(255)"`
	IsActive       bool      `gorm:"not null;default:true;index"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Agent is the persistence model for about-page profiles
type Agent struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name         string    `gorm:"type:varchar(200);not null"`
	Description  string    `gorm:"type:text;not null"`
	DisplayOrder int       `gorm:"not null;default:0"`
	IsActive     bool      `gorm:"not null;default:true;index"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
