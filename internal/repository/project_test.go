package repository

import (
	"context"
	"sort"
	"sync"
	"testing"

	"pagecraft/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func createTestProject(t *testing.T, db *gorm.DB, userID uint, name string, mutate ...func(*models.Project)) *models.Project {
	t.Helper()

	project := &models.Project{
		Name:   name,
		Status: models.StatusDraft,
		UserID: userID,
	}
	for _, m := range mutate {
		m(project)
	}
	require.NoError(t, NewProjectRepository(db).Create(context.Background(), project))
	return project
}

func TestProjectCreateAndGetForOwner(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	owner := createTestUser(t, db, "alice")
	project := createTestProject(t, db, owner.ID, "Landing Page", func(p *models.Project) {
		p.HTMLContent = "<section>hello</section>"
		p.Tags = []string{"marketing", "launch"}
	})

	got, err := repo.GetForOwner(ctx, project.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, "Landing Page", got.Name)
	assert.Equal(t, "<section>hello</section>", got.HTMLContent)
	assert.Equal(t, []string{"marketing", "launch"}, []string(got.Tags))
}

func TestProjectOwnershipScoping(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")
	project := createTestProject(t, db, alice.ID, "Private Page")

	// Someone else's project looks exactly like a missing one
	_, err := repo.GetForOwner(ctx, project.ID, mallory.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	err = repo.Delete(ctx, project.ID, mallory.ID)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	// The owner still sees it
	_, err = repo.GetForOwner(ctx, project.ID, alice.ID)
	require.NoError(t, err)
}

func TestProjectListByOwnerFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestProject(t, db, alice.ID, "Blog", func(p *models.Project) {
		p.Category = "blog"
		p.IsPublic = true
	})
	createTestProject(t, db, alice.ID, "Shop", func(p *models.Project) {
		p.Category = "ecommerce"
	})
	createTestProject(t, db, bob.ID, "Bob Blog", func(p *models.Project) {
		p.Category = "blog"
	})

	all, err := repo.ListByOwner(ctx, alice.ID, ProjectFilter{}, 0, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	blog := "blog"
	byCategory, err := repo.ListByOwner(ctx, alice.ID, ProjectFilter{Category: &blog}, 0, 20)
	require.NoError(t, err)
	require.Len(t, byCategory, 1)
	assert.Equal(t, "Blog", byCategory[0].Name)

	public := true
	byPublic, err := repo.ListByOwner(ctx, alice.ID, ProjectFilter{IsPublic: &public}, 0, 20)
	require.NoError(t, err)
	require.Len(t, byPublic, 1)
	assert.Equal(t, "Blog", byPublic[0].Name)

	paged, err := repo.ListByOwner(ctx, alice.ID, ProjectFilter{}, 1, 20)
	require.NoError(t, err)
	assert.Len(t, paged, 1)
}

func TestProjectListPublic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")

	createTestProject(t, db, alice.ID, "Public Portfolio", func(p *models.Project) {
		p.IsPublic = true
		p.Category = "portfolio"
	})
	createTestProject(t, db, bob.ID, "Public Blog", func(p *models.Project) {
		p.IsPublic = true
		p.Category = "blog"
	})
	createTestProject(t, db, bob.ID, "Secret Draft")

	all, err := repo.ListPublic(ctx, "", 0, 20)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	blogs, err := repo.ListPublic(ctx, "blog", 0, 20)
	require.NoError(t, err)
	require.Len(t, blogs, 1)
	assert.Equal(t, "Public Blog", blogs[0].Name)
}

func TestProjectDeleteRemovesVersions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	project := createTestProject(t, db, alice.ID, "Doomed")

	require.NoError(t, repo.CreateVersion(ctx, project.ID, &models.ProjectVersion{HTMLContent: "<p>v1</p>"}))
	require.NoError(t, repo.Delete(ctx, project.ID, alice.ID))

	_, err := repo.GetForOwner(ctx, project.ID, alice.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	versions, err := repo.ListVersions(ctx, project.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestProjectDeleteRejectedLeavesEverythingInPlace(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	mallory := createTestUser(t, db, "mallory")
	project := createTestProject(t, db, alice.ID, "Survivor")

	require.NoError(t, repo.CreateVersion(ctx, project.ID, &models.ProjectVersion{HTMLContent: "<p>v1</p>"}))

	// Project and versions are removed in one transaction; a delete that
	// does not go through must leave both untouched.
	err := repo.Delete(ctx, project.ID, mallory.ID)
	var appErr *models.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "NOT_FOUND", appErr.Code)

	kept, err := repo.GetForOwner(ctx, project.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Survivor", kept.Name)

	versions, err := repo.ListVersions(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, versions, 1)
}

func TestCreateVersionNumbersAreMonotonic(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	project := createTestProject(t, db, alice.ID, "Versioned")

	for i := 1; i <= 3; i++ {
		v := &models.ProjectVersion{HTMLContent: "<p>snapshot</p>"}
		require.NoError(t, repo.CreateVersion(ctx, project.ID, v))
		assert.Equal(t, i, v.VersionNumber)
	}

	versions, err := repo.ListVersions(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	// Newest first
	assert.Equal(t, []int{3, 2, 1}, []int{
		versions[0].VersionNumber,
		versions[1].VersionNumber,
		versions[2].VersionNumber,
	})
}

func TestCreateVersionIsolatedPerProject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	first := createTestProject(t, db, alice.ID, "First")
	second := createTestProject(t, db, alice.ID, "Second")

	v1 := &models.ProjectVersion{}
	require.NoError(t, repo.CreateVersion(ctx, first.ID, v1))
	v2 := &models.ProjectVersion{}
	require.NoError(t, repo.CreateVersion(ctx, second.ID, v2))

	assert.Equal(t, 1, v1.VersionNumber)
	assert.Equal(t, 1, v2.VersionNumber, "numbering restarts per project")
}

func TestCreateVersionConcurrentAllocatesDistinctNumbers(t *testing.T) {
	db := setupTestDB(t)
	repo := NewProjectRepository(db)
	ctx := context.Background()

	alice := createTestUser(t, db, "alice")
	project := createTestProject(t, db, alice.ID, "Contended")

	const writers = 10
	var wg sync.WaitGroup
	errs := make([]error, writers)

	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = repo.CreateVersion(ctx, project.ID, &models.ProjectVersion{
				HTMLContent: "<p>concurrent</p>",
			})
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d failed", i)
	}

	versions, err := repo.ListVersions(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, versions, writers)

	numbers := make([]int, 0, writers)
	for _, v := range versions {
		numbers = append(numbers, v.VersionNumber)
	}
	sort.Ints(numbers)
	for i, n := range numbers {
		assert.Equal(t, i+1, n, "version numbers must be a gapless 1..N sequence")
	}
}
