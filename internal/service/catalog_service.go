package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"pagecraft/internal/cache"
	"pagecraft/internal/catalog"
	"pagecraft/internal/models"
	"pagecraft/internal/repository"
)

// userTemplatePrefix marks template IDs backed by a shared user project
// rather than the built-in catalog.
const userTemplatePrefix = "user-"

// CatalogService merges the built-in template catalog with user projects
// shared as templates, and exposes the component library.
type CatalogService struct {
	projects repository.ProjectRepository
}

// NewCatalogService returns a new CatalogService.
func NewCatalogService(projects repository.ProjectRepository) *CatalogService {
	return &CatalogService{projects: projects}
}

// ListTemplates returns the merged template catalog, optionally filtered by
// category. Built-ins come first, user templates after, served cache-aside.
func (s *CatalogService) ListTemplates(ctx context.Context, category string) ([]catalog.Template, error) {
	var merged []catalog.Template
	err := cache.Aside(ctx, cache.TemplatesKey(), &merged, cache.TemplatesTTL, func() error {
		merged = catalog.Templates()

		shared, err := s.projects.ListPublicTemplates(ctx)
		if err != nil {
			return err
		}
		for _, p := range shared {
			tplCategory := p.Category
			if tplCategory == "" {
				tplCategory = "custom"
			}
			merged = append(merged, catalog.Template{
				ID:          fmt.Sprintf("%s%d", userTemplatePrefix, p.ID),
				Name:        p.Name,
				Description: p.Description,
				Category:    tplCategory,
				Emoji:       "🎨",
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if category == "" {
		return merged, nil
	}
	filtered := make([]catalog.Template, 0, len(merged))
	for _, t := range merged {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// GetTemplateContent resolves a template ID, built-in or user-shared, to its
// editor payload.
func (s *CatalogService) GetTemplateContent(ctx context.Context, templateID string) (*catalog.TemplateContent, error) {
	if content, ok := catalog.TemplateContentByID(templateID); ok {
		return &content, nil
	}

	if rest, ok := strings.CutPrefix(templateID, userTemplatePrefix); ok {
		projectID, err := strconv.ParseUint(rest, 10, 32)
		if err != nil {
			return nil, models.NewNotFoundError("Template", templateID)
		}
		project, err := s.projects.GetByID(ctx, uint(projectID))
		if err != nil {
			return nil, models.NewNotFoundError("Template", templateID)
		}
		if !project.IsTemplate || !project.IsPublic {
			return nil, models.NewNotFoundError("Template", templateID)
		}
		return &catalog.TemplateContent{
			ID:             templateID,
			Name:           project.Name,
			HTMLContent:    project.HTMLContent,
			CSSContent:     project.CSSContent,
			JSContent:      project.JSContent,
			ElementsTree:   map[string]any(project.ElementsTree),
			CanvasSettings: map[string]any(project.CanvasSettings),
		}, nil
	}

	return nil, models.NewNotFoundError("Template", templateID)
}

// TemplateCategories returns the known template categories.
func (s *CatalogService) TemplateCategories() []string {
	return catalog.TemplateCategories()
}

// Components returns the component library keyed by category.
func (s *CatalogService) Components() map[string][]catalog.Component {
	return catalog.Components()
}

// ComponentCategories returns the component categories in palette order.
func (s *CatalogService) ComponentCategories() []string {
	return catalog.ComponentCategories()
}

// ComponentsByCategory returns one category of the component library.
func (s *CatalogService) ComponentsByCategory(category string) ([]catalog.Component, error) {
	list, ok := catalog.ComponentsByCategory(category)
	if !ok {
		return nil, models.NewNotFoundError("Component category", category)
	}
	return list, nil
}

// Component returns a single component from a category.
func (s *CatalogService) Component(category, id string) (*catalog.Component, error) {
	c, ok := catalog.ComponentByID(category, id)
	if !ok {
		return nil, models.NewNotFoundError("Component", id)
	}
	return &c, nil
}
