package repository

import (
	"strings"

	"talentbridge_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) ListByProject(projectID uint) ([]model.ProjectModule, error) {
	var modules []model.ProjectModule
	err := r.DB.Where("project_id = ?", projectID).
		Order("order_index asc").Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) CountByProject(tx *gorm.DB, projectID uint) (int64, error) {
	var count int64
	err := tx.Model(&model.ProjectModule{}).
		Where("project_id = ?", projectID).Count(&count).Error
	return count, err
}

// ShiftUpFrom bumps OrderIndex by one for every module of the project at or
// after pos, in a single batch UPDATE.
func (r *ModuleRepository) ShiftUpFrom(tx *gorm.DB, projectID uint, pos int) error {
	return tx.Model(&model.ProjectModule{}).
		Where("project_id = ? AND order_index >= ?", projectID, pos).
		Update("order_index", gorm.Expr("order_index + 1")).Error
}

// ApplyOrder assigns OrderIndex = 1-based position for the given id order as
// one bulk statement. Ids not listed keep their current index.
func (r *ModuleRepository) ApplyOrder(tx *gorm.DB, projectID uint, orderedIDs []uint) error {
	if len(orderedIDs) == 0 {
		return nil
	}

	var sb strings.Builder
	args := make([]interface{}, 0, len(orderedIDs)*2+1)
	sb.WriteString("UPDATE project_modules SET order_index = CASE id")
	for i, id := range orderedIDs {
		sb.WriteString(" WHEN ? THEN ?")
		args = append(args, id, i+1)
	}
	sb.WriteString(" ELSE order_index END WHERE project_id = ?")
	args = append(args, projectID)

	return tx.Exec(sb.String(), args...).Error
}
