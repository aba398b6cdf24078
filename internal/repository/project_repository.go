package repository

import (
	"time"

	"talentbridge_backend/internal/model"

	"gorm.io/gorm"
)

type ProjectRepository struct {
	DB *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{DB: db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	return r.DB.Create(project).Error
}

func (r *ProjectRepository) FindByID(id uint) (*model.Project, error) {
	var project model.Project
	err := r.DB.First(&project, id).Error
	return &project, err
}

func (r *ProjectRepository) FindWithModules(id uint) (*model.Project, error) {
	var project model.Project
	err := r.DB.Preload("Modules", func(db *gorm.DB) *gorm.DB {
		return db.Order("order_index asc")
	}).First(&project, id).Error
	return &project, err
}

func (r *ProjectRepository) ListActive(page, limit int) ([]model.Project, int64, error) {
	var projects []model.Project
	var total int64

	query := r.DB.Model(&model.Project{}).Where("status = ?", model.ProjectActive)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&projects).Error
	return projects, total, err
}

func (r *ProjectRepository) ListByCompany(companyID uint) ([]model.Project, error) {
	var projects []model.Project
	err := r.DB.Where("company_id = ?", companyID).Order("created_at desc").Find(&projects).Error
	return projects, err
}

func (r *ProjectRepository) UpdateStatus(id uint, status model.ProjectStatus) error {
	return r.DB.Model(&model.Project{}).Where("id = ?", id).
		Update("status", status).Error
}

// CloseExpired flips active projects past their application deadline to
// closed; called from the periodic background task.
func (r *ProjectRepository) CloseExpired(now time.Time) (int64, error) {
	res := r.DB.Model(&model.Project{}).
		Where("status = ? AND application_deadline IS NOT NULL AND application_deadline < ?",
			model.ProjectActive, now).
		Update("status", model.ProjectClosed)
	return res.RowsAffected, res.Error
}
