package service

import (
	"errors"
	"math"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"

	"gorm.io/gorm"
)

// ProgressService 记录申请维度的模块完成情况并推导进度
type ProgressService struct {
	ApplicationRepo *repository.ApplicationRepository
	ProgressRepo    *repository.ProgressRepository
	DB              *gorm.DB
}

func NewProgressService(applicationRepo *repository.ApplicationRepository, progressRepo *repository.ProgressRepository, db *gorm.DB) *ProgressService {
	return &ProgressService{
		ApplicationRepo: applicationRepo,
		ProgressRepo:    progressRepo,
		DB:              db,
	}
}

type ProgressSnapshot struct {
	TotalModules       int     `json:"totalModules"`
	CompletedCount     int     `json:"completedCount"`
	ProgressPercentage float64 `json:"progressPercentage"`
	CompletedModuleIDs []uint  `json:"completedModuleIds"`
}

// BuildSnapshot derives progress from the project's current module set and
// the application's progress rows. Rows referencing modules that were removed
// after completion are ignored.
func BuildSnapshot(modules []model.ProjectModule, rows []model.ApplicationModuleProgress) ProgressSnapshot {
	memberIDs := make(map[uint]bool, len(modules))
	for _, m := range modules {
		memberIDs[m.ID] = true
	}

	completed := make([]uint, 0, len(rows))
	seen := make(map[uint]bool, len(rows))
	for _, row := range rows {
		if !row.IsCompleted || !memberIDs[row.ProjectModuleID] || seen[row.ProjectModuleID] {
			continue
		}
		seen[row.ProjectModuleID] = true
		completed = append(completed, row.ProjectModuleID)
	}

	snapshot := ProgressSnapshot{
		TotalModules:       len(modules),
		CompletedCount:     len(completed),
		CompletedModuleIDs: completed,
	}
	if snapshot.TotalModules > 0 {
		pct := float64(snapshot.CompletedCount) / float64(snapshot.TotalModules) * 100
		snapshot.ProgressPercentage = math.Round(pct*100) / 100
	}
	return snapshot
}

// ToggleModuleCompletion marks or unmarks one module for the application's
// student. Completing is idempotent; unmarking deletes the row outright, so
// an absent row is a no-op.
func (s *ProgressService) ToggleModuleCompletion(userID, applicationID, moduleID uint, isCompleted bool) (*ProgressSnapshot, error) {
	var snapshot ProgressSnapshot

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var app model.Application
		err := lockForUpdate(tx).
			Preload("Project").
			Preload("Project.Modules").
			First(&app, applicationID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("application not found")
			}
			return err
		}

		if userID == 0 || app.StudentID != userID {
			return util.UnauthorizedError("not the applicant")
		}

		belongs := false
		for _, m := range app.Project.Modules {
			if m.ID == moduleID {
				belongs = true
				break
			}
		}
		if !belongs {
			return util.ValidationError("module does not belong to this project")
		}

		row, err := s.ProgressRepo.FindRow(tx, applicationID, moduleID)
		switch {
		case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		case errors.Is(err, gorm.ErrRecordNotFound):
			row = nil
		}

		if isCompleted {
			now := time.Now()
			if row == nil {
				if err := tx.Create(&model.ApplicationModuleProgress{
					ApplicationID:   applicationID,
					ProjectModuleID: moduleID,
					IsCompleted:     true,
					CompletedAt:     &now,
				}).Error; err != nil {
					return err
				}
			} else if !row.IsCompleted {
				if err := tx.Model(row).Updates(map[string]interface{}{
					"is_completed": true,
					"completed_at": now,
				}).Error; err != nil {
					return err
				}
			}
			// already completed: no-op
		} else if row != nil {
			if err := s.ProgressRepo.DeleteRow(tx, applicationID, moduleID); err != nil {
				return err
			}
		}

		var rows []model.ApplicationModuleProgress
		if err := tx.Where("application_id = ?", applicationID).Find(&rows).Error; err != nil {
			return err
		}

		snapshot = BuildSnapshot(app.Project.Modules, rows)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// GetApplicationProgress recomputes the snapshot from current state.
func (s *ProgressService) GetApplicationProgress(applicationID uint) (*ProgressSnapshot, error) {
	app, err := s.ApplicationRepo.FindWithProject(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("application not found")
		}
		return nil, err
	}

	snapshot := BuildSnapshot(app.Project.Modules, app.Progress)
	return &snapshot, nil
}
