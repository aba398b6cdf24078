package service

import (
	"testing"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an in-memory sqlite database scoped to one test. The pool
// is pinned to a single connection so every session sees the same memory DB.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// User is absent: its role column is a mysql enum sqlite cannot parse,
	// and no service test touches the users table.
	require.NoError(t, db.AutoMigrate(
		&model.Project{},
		&model.ProjectModule{},
		&model.Application{},
		&model.ApplicationModuleProgress{},
	))
	return db
}

func newTestModuleService(t *testing.T) (*ModuleService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewModuleService(repository.NewProjectRepository(db), repository.NewModuleRepository(db), nil, db)
	return svc, db
}

func seedProject(t *testing.T, db *gorm.DB, ownerID uint, status model.ProjectStatus) *model.Project {
	t.Helper()
	p := &model.Project{
		CompanyID:   ownerID,
		CreatedBy:   ownerID,
		Title:       "后端实习项目",
		Description: "为期八周的实习岗位",
		Status:      status,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func seedModules(t *testing.T, db *gorm.DB, projectID uint, titles ...string) []model.ProjectModule {
	t.Helper()
	out := make([]model.ProjectModule, 0, len(titles))
	for i, title := range titles {
		m := model.ProjectModule{
			ProjectID:  projectID,
			Title:      title,
			OrderIndex: i + 1,
		}
		require.NoError(t, db.Create(&m).Error)
		out = append(out, m)
	}
	return out
}

func seedApplication(t *testing.T, db *gorm.DB, projectID, studentID uint, status model.ApplicationStatus) *model.Application {
	t.Helper()
	app := &model.Application{
		ProjectID: projectID,
		StudentID: studentID,
		Status:    status,
		AppliedAt: time.Now(),
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

// orderedTitles reads the project's modules by order_index and returns their
// titles, asserting the indexes form a dense 1..N sequence along the way.
func orderedTitles(t *testing.T, db *gorm.DB, projectID uint) []string {
	t.Helper()
	var modules []model.ProjectModule
	require.NoError(t, db.Where("project_id = ?", projectID).
		Order("order_index asc").Find(&modules).Error)

	titles := make([]string, len(modules))
	for i, m := range modules {
		require.Equal(t, i+1, m.OrderIndex, "order_index must be dense and 1-based")
		titles[i] = m.Title
	}
	return titles
}
