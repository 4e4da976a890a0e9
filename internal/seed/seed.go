// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"pagecraft/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoPassword is the password every seeded account gets.
const DemoPassword = "password123"

var projectCategories = []string{"business", "personal", "blog", "services", "store"}

var templateIDs = []string{"saas-landing", "portfolio", "blog", "contact", "store", ""}

// Seeder populates the database with demo accounts and projects.
type Seeder struct {
	db  *gorm.DB
	rng *rand.Rand
}

// NewSeeder creates a Seeder bound to the provided Gorm DB.
func NewSeeder(db *gorm.DB) *Seeder {
	seed := time.Now().UnixNano()
	gofakeit.Seed(seed)
	return &Seeder{db: db, rng: rand.New(rand.NewSource(seed))}
}

// ClearAll removes all seeded data. Versions first so no orphans survive a
// partial failure.
func (s *Seeder) ClearAll() error {
	for _, model := range []any{
		&models.ProjectVersion{},
		&models.Project{},
		&models.User{},
	} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clearing %T: %w", model, err)
		}
	}
	return nil
}

// SeedUsers creates n demo accounts, all sharing DemoPassword.
func (s *Seeder) SeedUsers(n int) ([]models.User, error) {
	// One hash for every account keeps large seeds fast
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, n)
	for i := 0; i < n; i++ {
		username := strings.ToLower(fmt.Sprintf("%s%d", gofakeit.Username(), i))
		if len(username) > 30 {
			username = username[:30]
		}
		users = append(users, models.User{
			Username:       username,
			Email:          fmt.Sprintf("%s@%s", username, gofakeit.DomainName()),
			HashedPassword: string(hash),
			FullName:       gofakeit.Name(),
			Bio:            gofakeit.Sentence(8),
			IsActive:       true,
		})
	}
	if err := s.db.CreateInBatches(&users, 100).Error; err != nil {
		return nil, fmt.Errorf("seeding users: %w", err)
	}

	log.Printf("Seeded %d users", len(users))
	return users, nil
}

// SeedProjects creates n projects spread across the given users, with a
// realistic mix of drafts, published pages, public pages and shared templates.
func (s *Seeder) SeedProjects(users []models.User, n int) ([]models.Project, error) {
	if len(users) == 0 {
		return nil, fmt.Errorf("no users to own projects")
	}

	projects := make([]models.Project, 0, n)
	for i := 0; i < n; i++ {
		owner := users[s.rng.Intn(len(users))]
		name := gofakeit.AppName()

		project := models.Project{
			Name:        name,
			Description: gofakeit.Sentence(12),
			Category:    projectCategories[s.rng.Intn(len(projectCategories))],
			Tags:        []string{gofakeit.HackerAdjective(), gofakeit.HackerNoun()},
			TemplateID:  templateIDs[s.rng.Intn(len(templateIDs))],
			HTMLContent: fmt.Sprintf("<section><h1>%s</h1><p>%s</p></section>", name, gofakeit.Paragraph(1, 3, 8, " ")),
			CSSContent:  "section { padding: 40px; }",
			ElementsTree: map[string]any{
				"root": map[string]any{"type": "section", "children": []any{}},
			},
			CanvasSettings: map[string]any{"width": "100%", "responsive": true},
			IsPublic:       s.rng.Intn(3) == 0,
			IsTemplate:     s.rng.Intn(10) == 0,
			Status:         models.StatusDraft,
			UserID:         owner.ID,
			CreatedAt:      time.Now().Add(-time.Duration(s.rng.Intn(90*24)) * time.Hour),
		}
		if project.IsPublic {
			project.Status = models.StatusPublished
		}
		projects = append(projects, project)
	}
	if err := s.db.CreateInBatches(&projects, 100).Error; err != nil {
		return nil, fmt.Errorf("seeding projects: %w", err)
	}

	log.Printf("Seeded %d projects", len(projects))
	return projects, nil
}

// SeedVersions snapshots roughly a third of the given projects once or twice.
func (s *Seeder) SeedVersions(projects []models.Project) (int, error) {
	total := 0
	for _, p := range projects {
		if s.rng.Intn(3) != 0 {
			continue
		}
		count := 1 + s.rng.Intn(2)
		for v := 1; v <= count; v++ {
			version := models.ProjectVersion{
				ProjectID:     p.ID,
				VersionNumber: v,
				HTMLContent:   p.HTMLContent,
				CSSContent:    p.CSSContent,
				ElementsTree:  p.ElementsTree,
				Description:   fmt.Sprintf("Snapshot %d", v),
			}
			if err := s.db.Create(&version).Error; err != nil {
				return total, fmt.Errorf("seeding versions: %w", err)
			}
			total++
		}
	}

	log.Printf("Seeded %d project versions", total)
	return total, nil
}
