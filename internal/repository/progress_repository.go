package repository

import (
	"talentbridge_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindRow(tx *gorm.DB, applicationID, moduleID uint) (*model.ApplicationModuleProgress, error) {
	var row model.ApplicationModuleProgress
	err := tx.Where("application_id = ? AND project_module_id = ?", applicationID, moduleID).
		First(&row).Error
	return &row, err
}

// DeleteRow removes the progress row outright; "no row" and "not completed"
// are equivalent states.
func (r *ProgressRepository) DeleteRow(tx *gorm.DB, applicationID, moduleID uint) error {
	return tx.Where("application_id = ? AND project_module_id = ?", applicationID, moduleID).
		Delete(&model.ApplicationModuleProgress{}).Error
}
