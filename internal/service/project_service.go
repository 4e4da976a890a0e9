package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"pagecraft/internal/cache"
	"pagecraft/internal/catalog"
	"pagecraft/internal/models"
	"pagecraft/internal/observability"
	"pagecraft/internal/repository"
	"pagecraft/internal/validation"

	"gorm.io/datatypes"
)

// Listing page size bounds.
const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProjectService handles project CRUD, versioning, duplication and export.
type ProjectService struct {
	projects repository.ProjectRepository
}

// NewProjectService returns a new ProjectService.
func NewProjectService(projects repository.ProjectRepository) *ProjectService {
	return &ProjectService{projects: projects}
}

// CreateProjectInput carries a project creation request.
type CreateProjectInput struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	Category       string         `json:"category"`
	Tags           []string       `json:"tags"`
	TemplateID     string         `json:"template_id"`
	HTMLContent    string         `json:"html_content"`
	CSSContent     string         `json:"css_content"`
	JSContent      string         `json:"js_content"`
	ElementsTree   map[string]any `json:"elements_tree"`
	CanvasSettings map[string]any `json:"canvas_settings"`
	IsPublic       bool           `json:"is_public"`
	IsTemplate     bool           `json:"is_template"`
	Status         string         `json:"status"`
}

// Create creates a project for the given owner. When a built-in template is
// referenced and no content was supplied, the template's content seeds the
// new project.
func (s *ProjectService) Create(ctx context.Context, userID uint, input CreateProjectInput) (*models.Project, error) {
	if err := validation.ValidateProjectName(input.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	status := input.Status
	if status == "" {
		status = models.StatusDraft
	}
	if err := validation.ValidateStatus(status); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	project := &models.Project{
		Name:           input.Name,
		Description:    input.Description,
		Category:       input.Category,
		Tags:           input.Tags,
		TemplateID:     input.TemplateID,
		HTMLContent:    input.HTMLContent,
		CSSContent:     input.CSSContent,
		JSContent:      input.JSContent,
		ElementsTree:   datatypes.JSONMap(input.ElementsTree),
		CanvasSettings: datatypes.JSONMap(input.CanvasSettings),
		IsPublic:       input.IsPublic,
		IsTemplate:     input.IsTemplate,
		Status:         status,
		UserID:         userID,
	}

	if input.TemplateID != "" && input.HTMLContent == "" && len(input.ElementsTree) == 0 {
		if content, ok := catalog.TemplateContentByID(input.TemplateID); ok {
			project.HTMLContent = content.HTMLContent
			project.CSSContent = content.CSSContent
			project.JSContent = content.JSContent
			project.ElementsTree = datatypes.JSONMap(content.ElementsTree)
			project.CanvasSettings = datatypes.JSONMap(content.CanvasSettings)
		}
	}

	if err := s.projects.Create(ctx, project); err != nil {
		return nil, err
	}

	observability.ProjectsCreatedTotal.Inc()
	cache.InvalidateProject(ctx, project.ID)
	return project, nil
}

// clampPage normalizes skip/limit into sane bounds.
func clampPage(skip, limit int) (int, int) {
	if skip < 0 {
		skip = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return skip, limit
}

// List returns content-free summaries of the owner's projects.
func (s *ProjectService) List(ctx context.Context, userID uint, filter repository.ProjectFilter, skip, limit int) ([]models.ProjectSummary, error) {
	skip, limit = clampPage(skip, limit)
	projects, err := s.projects.ListByOwner(ctx, userID, filter, skip, limit)
	if err != nil {
		return nil, err
	}
	return summarize(projects), nil
}

// ListPublic returns summaries of public projects, served cache-aside.
func (s *ProjectService) ListPublic(ctx context.Context, category string, skip, limit int) ([]models.ProjectSummary, error) {
	skip, limit = clampPage(skip, limit)

	span, ctx := observability.NewSpan(ctx, "project.list_public")
	defer span.End()

	var summaries []models.ProjectSummary
	err := cache.Aside(ctx, cache.PublicListKey(category, skip, limit), &summaries, cache.PublicListTTL, func() error {
		projects, err := s.projects.ListPublic(ctx, category, skip, limit)
		if err != nil {
			return err
		}
		summaries = summarize(projects)
		return nil
	})
	if err != nil {
		span.SetError(err)
		return nil, err
	}
	return summaries, nil
}

// Get returns a project's full detail. The owner always sees it; anyone else
// only when it is public. A private project owned by someone else is
// indistinguishable from a missing one.
func (s *ProjectService) Get(ctx context.Context, id, userID uint) (*models.Project, error) {
	project, err := s.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if project.UserID != userID && !project.IsPublic {
		return nil, models.NewNotFoundError("Project", id)
	}
	return project, nil
}

// UpdateProjectInput carries a presence-aware partial update. Absent fields
// keep their stored value; explicit nulls clear clearable fields.
type UpdateProjectInput struct {
	Name           models.Optional[string]         `json:"name"`
	Description    models.Optional[string]         `json:"description"`
	Category       models.Optional[string]         `json:"category"`
	Tags           models.Optional[[]string]       `json:"tags"`
	TemplateID     models.Optional[string]         `json:"template_id"`
	HTMLContent    models.Optional[string]         `json:"html_content"`
	CSSContent     models.Optional[string]         `json:"css_content"`
	JSContent      models.Optional[string]         `json:"js_content"`
	ElementsTree   models.Optional[map[string]any] `json:"elements_tree"`
	CanvasSettings models.Optional[map[string]any] `json:"canvas_settings"`
	IsPublic       models.Optional[bool]           `json:"is_public"`
	IsTemplate     models.Optional[bool]           `json:"is_template"`
	Status         models.Optional[string]         `json:"status"`
}

// Update applies a partial update to a project owned by userID.
func (s *ProjectService) Update(ctx context.Context, id, userID uint, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.projects.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if input.Name.Present() {
		name, ok := input.Name.Get()
		if !ok {
			return nil, models.NewValidationError("project name cannot be null")
		}
		if err := validation.ValidateProjectName(name); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		project.Name = name
	}
	if input.Status.Present() {
		status, ok := input.Status.Get()
		if !ok {
			return nil, models.NewValidationError("status cannot be null")
		}
		if err := validation.ValidateStatus(status); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		project.Status = status
	}

	applyOptionalString(input.Description, &project.Description)
	applyOptionalString(input.Category, &project.Category)
	applyOptionalString(input.TemplateID, &project.TemplateID)
	applyOptionalString(input.HTMLContent, &project.HTMLContent)
	applyOptionalString(input.CSSContent, &project.CSSContent)
	applyOptionalString(input.JSContent, &project.JSContent)

	if input.Tags.Present() {
		if tags, ok := input.Tags.Get(); ok {
			project.Tags = tags
		} else {
			project.Tags = nil
		}
	}
	if input.ElementsTree.Present() {
		if tree, ok := input.ElementsTree.Get(); ok {
			project.ElementsTree = datatypes.JSONMap(tree)
		} else {
			project.ElementsTree = nil
		}
	}
	if input.CanvasSettings.Present() {
		if settings, ok := input.CanvasSettings.Get(); ok {
			project.CanvasSettings = datatypes.JSONMap(settings)
		} else {
			project.CanvasSettings = nil
		}
	}

	wasTemplate := project.IsTemplate
	if input.IsPublic.Present() {
		v, ok := input.IsPublic.Get()
		if !ok {
			return nil, models.NewValidationError("is_public cannot be null")
		}
		project.IsPublic = v
	}
	if input.IsTemplate.Present() {
		v, ok := input.IsTemplate.Get()
		if !ok {
			return nil, models.NewValidationError("is_template cannot be null")
		}
		project.IsTemplate = v
	}

	if err := s.projects.Update(ctx, project); err != nil {
		return nil, err
	}

	cache.InvalidateProject(ctx, project.ID)
	if wasTemplate || project.IsTemplate {
		cache.InvalidateTemplates(ctx)
	}
	return project, nil
}

// Delete removes a project owned by userID along with its versions.
func (s *ProjectService) Delete(ctx context.Context, id, userID uint) error {
	if err := s.projects.Delete(ctx, id, userID); err != nil {
		return err
	}
	cache.InvalidateProject(ctx, id)
	cache.InvalidateTemplates(ctx)
	return nil
}

// Duplicate clones a project the owner can see into a fresh private draft.
// Version history is not copied.
func (s *ProjectService) Duplicate(ctx context.Context, id, userID uint) (*models.Project, error) {
	source, err := s.projects.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	copyName := source.Name + " (Copy)"
	// Truncate on rune boundaries so multibyte names stay valid UTF-8
	if runes := []rune(copyName); len(runes) > 255 {
		copyName = string(runes[:255])
	}

	clone := &models.Project{
		Name:           copyName,
		Description:    source.Description,
		Category:       source.Category,
		Tags:           source.Tags,
		TemplateID:     source.TemplateID,
		HTMLContent:    source.HTMLContent,
		CSSContent:     source.CSSContent,
		JSContent:      source.JSContent,
		ElementsTree:   source.ElementsTree,
		CanvasSettings: source.CanvasSettings,
		IsPublic:       false,
		IsTemplate:     source.IsTemplate,
		Status:         models.StatusDraft,
		UserID:         userID,
	}
	if err := s.projects.Create(ctx, clone); err != nil {
		return nil, err
	}

	observability.ProjectsCreatedTotal.Inc()
	return clone, nil
}

// CreateVersion snapshots the project's current content under the next
// version number.
func (s *ProjectService) CreateVersion(ctx context.Context, id, userID uint, description string) (*models.ProjectVersion, error) {
	span, ctx := observability.NewSpan(ctx, "project.create_version")
	defer span.End()

	project, err := s.projects.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	version := &models.ProjectVersion{
		HTMLContent:  project.HTMLContent,
		CSSContent:   project.CSSContent,
		JSContent:    project.JSContent,
		ElementsTree: project.ElementsTree,
		Description:  description,
	}
	if err := s.projects.CreateVersion(ctx, project.ID, version); err != nil {
		span.SetError(err)
		return nil, err
	}

	observability.VersionsCreatedTotal.Inc()
	return version, nil
}

// ListVersions returns the project's snapshots, newest first.
func (s *ProjectService) ListVersions(ctx context.Context, id, userID uint) ([]models.ProjectVersion, error) {
	project, err := s.projects.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.projects.ListVersions(ctx, project.ID)
}

// Export renders a project the owner can access as a downloadable artifact.
// Supported formats are "html" (standalone page) and "json" (full detail).
type Export struct {
	Filename    string
	ContentType string
	Body        []byte
}

// Export builds the export payload for the requested format.
func (s *ProjectService) Export(ctx context.Context, id, userID uint, format string) (*Export, error) {
	project, err := s.projects.GetForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(format) {
	case "", "html":
		return &Export{
			Filename:    fmt.Sprintf("%s.html", slugify(project.Name)),
			ContentType: "text/html; charset=utf-8",
			Body:        []byte(renderStandalonePage(project)),
		}, nil
	case "json":
		body, err := json.MarshalIndent(project, "", "  ")
		if err != nil {
			return nil, models.NewInternalError(err)
		}
		return &Export{
			Filename:    fmt.Sprintf("%s.json", slugify(project.Name)),
			ContentType: "application/json",
			Body:        body,
		}, nil
	}
	return nil, models.NewValidationError("format must be one of: html, json")
}

// renderStandalonePage inlines the project's CSS and JS into a single
// self-contained HTML document.
func renderStandalonePage(p *models.Project) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"UTF-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", htmlEscape(p.Name))
	if p.CSSContent != "" {
		fmt.Fprintf(&b, "<style>\n%s\n</style>\n", p.CSSContent)
	}
	b.WriteString("</head>\n<body>\n")
	b.WriteString(p.HTMLContent)
	if p.JSContent != "" {
		fmt.Fprintf(&b, "\n<script>\n%s\n</script>", p.JSContent)
	}
	b.WriteString("\n</body>\n</html>\n")
	return b.String()
}

func htmlEscape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

// slugify turns a project name into a safe filename stem.
func slugify(name string) string {
	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "project"
	}
	return slug
}

func summarize(projects []models.Project) []models.ProjectSummary {
	summaries := make([]models.ProjectSummary, 0, len(projects))
	for i := range projects {
		summaries = append(summaries, projects[i].Summary())
	}
	return summaries
}
