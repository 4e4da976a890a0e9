package cache

import (
	"context"
	"fmt"
	"time"
)

// Cache TTLs. Public listings churn more than individual projects, so they
// expire sooner.
const (
	ProjectTTL    = 5 * time.Minute
	PublicListTTL = 60 * time.Second
	TemplatesTTL  = 10 * time.Minute
)

// ProjectKey returns the cache key for a single project detail.
func ProjectKey(projectID uint) string {
	return fmt.Sprintf("project:%d", projectID)
}

// PublicListKey returns the cache key for a public project listing page.
func PublicListKey(category string, skip, limit int) string {
	if category == "" {
		category = "all"
	}
	return fmt.Sprintf("public:projects:%s:%d:%d", category, skip, limit)
}

// TemplatesKey returns the cache key for the merged template catalog.
func TemplatesKey() string {
	return "catalog:templates"
}

// InvalidateProject drops the cached detail for a project together with
// every public listing page, since any of them may contain the project.
func InvalidateProject(ctx context.Context, projectID uint) {
	Invalidate(ctx, ProjectKey(projectID))
	InvalidatePattern(ctx, "public:projects:*")
}

// InvalidateTemplates drops the cached template catalog.
func InvalidateTemplates(ctx context.Context) {
	Invalidate(ctx, TemplatesKey())
}
