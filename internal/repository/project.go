package repository

import (
	"context"
	"errors"
	"strings"

	"pagecraft/internal/models"
	"pagecraft/internal/observability"

	"gorm.io/gorm"
)

// versionAllocRetries bounds the compare-and-set loop for version numbers.
// Each retry means another writer won the slot, so contention this deep on a
// single project is effectively impossible.
const versionAllocRetries = 32

// ProjectFilter narrows project listings. Nil fields are ignored.
type ProjectFilter struct {
	Category *string
	IsPublic *bool
	Status   *string
}

// ProjectRepository defines persistence operations for projects and their
// version snapshots.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	GetByID(ctx context.Context, id uint) (*models.Project, error)
	GetForOwner(ctx context.Context, id, userID uint) (*models.Project, error)
	ListByOwner(ctx context.Context, userID uint, filter ProjectFilter, skip, limit int) ([]models.Project, error)
	ListPublic(ctx context.Context, category string, skip, limit int) ([]models.Project, error)
	ListPublicTemplates(ctx context.Context) ([]models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id, userID uint) error
	CreateVersion(ctx context.Context, projectID uint, version *models.ProjectVersion) error
	ListVersions(ctx context.Context, projectID uint) ([]models.ProjectVersion, error)
}

type projectRepository struct {
	db     *gorm.DB
	traces *observability.TraceLayer
}

// NewProjectRepository returns a new ProjectRepository implementation.
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db, traces: observability.GetTraceLayer()}
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Create(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *projectRepository) GetByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.WithContext(ctx).First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

// GetForOwner fetches a project scoped to its owner. A project owned by
// someone else is indistinguishable from a missing one.
func (r *projectRepository) GetForOwner(ctx context.Context, id, userID uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Project", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &project, nil
}

func (r *projectRepository) ListByOwner(ctx context.Context, userID uint, filter ProjectFilter, skip, limit int) ([]models.Project, error) {
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if filter.Category != nil {
		q = q.Where("category = ?", *filter.Category)
	}
	if filter.IsPublic != nil {
		q = q.Where("is_public = ?", *filter.IsPublic)
	}
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}

	var projects []models.Project
	err := q.Order("updated_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

func (r *projectRepository) ListPublic(ctx context.Context, category string, skip, limit int) ([]models.Project, error) {
	ctx, span := r.traces.TraceRepositoryMethod(ctx, "ListPublic", "projects")
	defer span.End()

	q := r.db.WithContext(ctx).Where("is_public = ?", true)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var projects []models.Project
	err := q.Order("updated_at DESC").
		Offset(skip).
		Limit(limit).
		Find(&projects).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

// ListPublicTemplates returns every project shared as a reusable template.
func (r *projectRepository) ListPublicTemplates(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Where("is_template = ? AND is_public = ?", true, true).
		Order("updated_at DESC").
		Find(&projects).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return projects, nil
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	if err := r.db.WithContext(ctx).Save(project).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// Delete removes a project scoped to its owner. Versions go with it, in the
// same transaction, so either everything is deleted or nothing is.
func (r *projectRepository) Delete(ctx context.Context, id, userID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Where("project_id = ?", id).
			Delete(&models.ProjectVersion{}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Project", id)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// CreateVersion allocates the next version number for the project and inserts
// the snapshot. Allocation is a compare-and-set loop: read MAX(version_number),
// insert max+1, and retry when the unique index on (project_id, version_number)
// reports another writer took the slot. Row locks (SELECT ... FOR UPDATE) are
// deliberately avoided since the SQLite driver used in tests rejects them.
func (r *projectRepository) CreateVersion(ctx context.Context, projectID uint, version *models.ProjectVersion) error {
	ctx, span := r.traces.TraceRepositoryMethod(ctx, "CreateVersion", "project_versions")
	defer span.End()

	version.ProjectID = projectID

	for attempt := 0; attempt < versionAllocRetries; attempt++ {
		var maxVersion int
		err := r.db.WithContext(ctx).
			Model(&models.ProjectVersion{}).
			Where("project_id = ?", projectID).
			Select("COALESCE(MAX(version_number), 0)").
			Scan(&maxVersion).Error
		if err != nil {
			return models.NewInternalError(err)
		}

		version.ID = 0
		version.VersionNumber = maxVersion + 1

		err = r.db.WithContext(ctx).Create(version).Error
		if err == nil {
			return nil
		}
		if !isVersionAllocConflict(err) {
			return models.NewInternalError(err)
		}
	}
	return models.NewConflictError("Could not allocate version number")
}

// isVersionAllocConflict reports whether err means another writer claimed the
// version number first. SQLite surfaces concurrent writes as busy/locked
// rather than a constraint violation, so those count too.
func isVersionAllocConflict(err error) bool {
	if isUniqueConstraintError(err) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "sqlite_busy")
}

func (r *projectRepository) ListVersions(ctx context.Context, projectID uint) ([]models.ProjectVersion, error) {
	var versions []models.ProjectVersion
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("version_number DESC").
		Find(&versions).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return versions, nil
}
