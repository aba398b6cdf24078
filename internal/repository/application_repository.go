package repository

import (
	"talentbridge_backend/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{DB: db}
}

func (r *ApplicationRepository) Create(app *model.Application) error {
	return r.DB.Create(app).Error
}

func (r *ApplicationRepository) FindByID(id uint) (*model.Application, error) {
	var app model.Application
	err := r.DB.First(&app, id).Error
	return &app, err
}

// FindWithProject loads the application together with its project, the
// project's modules (ordered) and the existing progress rows.
func (r *ApplicationRepository) FindWithProject(id uint) (*model.Application, error) {
	var app model.Application
	err := r.DB.
		Preload("Project").
		Preload("Project.Modules", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index asc")
		}).
		Preload("Progress").
		First(&app, id).Error
	return &app, err
}

// HasActiveApplication reports whether the student already holds a
// non-withdrawn application for the project.
func (r *ApplicationRepository) HasActiveApplication(tx *gorm.DB, projectID, studentID uint) (bool, error) {
	var count int64
	err := tx.Model(&model.Application{}).
		Where("project_id = ? AND student_id = ? AND status <> ?",
			projectID, studentID, model.ApplicationWithdrawn).
		Count(&count).Error
	return count > 0, err
}

func (r *ApplicationRepository) ListByStudent(studentID uint) ([]model.Application, error) {
	var apps []model.Application
	err := r.DB.Where("student_id = ?", studentID).
		Order("applied_at desc").Find(&apps).Error
	return apps, err
}

func (r *ApplicationRepository) ListByProject(projectID uint) ([]model.Application, error) {
	var apps []model.Application
	err := r.DB.Where("project_id = ?", projectID).
		Order("applied_at desc").Find(&apps).Error
	return apps, err
}
