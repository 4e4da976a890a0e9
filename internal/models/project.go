// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// Project lifecycle statuses.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// Project represents a page built in the editor, owned by exactly one user.
type Project struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	Name        string                      `gorm:"size:255;not null;index" json:"name"`
	Description string                      `gorm:"type:text" json:"description,omitempty"`
	Category    string                      `gorm:"size:100;index" json:"category,omitempty"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`

	// Page content
	HTMLContent string `gorm:"type:text" json:"html_content,omitempty"`
	CSSContent  string `gorm:"type:text" json:"css_content,omitempty"`
	JSContent   string `gorm:"type:text" json:"js_content,omitempty"`

	// Editor structure
	ElementsTree   datatypes.JSONMap `json:"elements_tree,omitempty"`
	CanvasSettings datatypes.JSONMap `json:"canvas_settings,omitempty"`

	TemplateID string `gorm:"size:100" json:"template_id,omitempty"`
	IsPublic   bool   `gorm:"not null;default:false;index" json:"is_public"`
	IsTemplate bool   `gorm:"not null;default:false" json:"is_template"`
	Status     string `gorm:"size:50;not null;default:draft" json:"status"`

	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProjectSummary is the content-free projection used by listing endpoints.
type ProjectSummary struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	TemplateID  string    `json:"template_id,omitempty"`
	IsPublic    bool      `json:"is_public"`
	IsTemplate  bool      `json:"is_template"`
	Status      string    `json:"status"`
	UserID      uint      `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Summary returns the project without its content-bearing fields.
func (p *Project) Summary() ProjectSummary {
	return ProjectSummary{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Tags:        p.Tags,
		TemplateID:  p.TemplateID,
		IsPublic:    p.IsPublic,
		IsTemplate:  p.IsTemplate,
		Status:      p.Status,
		UserID:      p.UserID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectVersion is an immutable snapshot of a project's content.
// version_number is unique per project and allocated monotonically.
type ProjectVersion struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	ProjectID     uint `gorm:"not null;uniqueIndex:idx_project_version,priority:1" json:"project_id"`
	VersionNumber int  `gorm:"not null;uniqueIndex:idx_project_version,priority:2" json:"version_number"`

	HTMLContent  string            `gorm:"type:text" json:"html_content,omitempty"`
	CSSContent   string            `gorm:"type:text" json:"css_content,omitempty"`
	JSContent    string            `gorm:"type:text" json:"js_content,omitempty"`
	ElementsTree datatypes.JSONMap `json:"elements_tree,omitempty"`

	Description string    `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ValidStatus reports whether s is one of the known project statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	}
	return false
}
