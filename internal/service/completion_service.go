package service

import (
	"errors"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/util"

	"gorm.io/gorm"
)

// CompletionService 正式关闭一个已接受的申请（完成岗位工作）
type CompletionService struct {
	DB *gorm.DB
}

func NewCompletionService(db *gorm.DB) *CompletionService {
	return &CompletionService{DB: db}
}

type CompleteJobRequest struct {
	ApplicationID  uint   `json:"applicationId" binding:"required"`
	Feedback       string `json:"feedback"`
	DeliverableURL string `json:"deliverableUrl"`
}

type CompletionSummary struct {
	ProgressSnapshot
	ApplicationID  uint      `json:"applicationId"`
	CompletedAt    time.Time `json:"completedAt"`
	Feedback       string    `json:"feedback"`
	DeliverableURL string    `json:"deliverableUrl"`
}

// CompleteJob validates ownership and state, stamps completion metadata and
// transitions the application to completed. Succeeds exactly once.
func (s *CompletionService) CompleteJob(companyUserID uint, req CompleteJobRequest) (*CompletionSummary, error) {
	var summary CompletionSummary

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var app model.Application
		err := lockForUpdate(tx).
			Preload("Project").
			Preload("Project.Modules").
			Preload("Progress").
			First(&app, req.ApplicationID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("application not found")
			}
			return err
		}

		if !OwnsProject(&app.Project, companyUserID) {
			return util.UnauthorizedError("not the project owner")
		}

		switch app.Status {
		case model.ApplicationAccepted:
		case model.ApplicationCompleted:
			return util.ValidationError("application is already completed")
		default:
			return util.ValidationError("only accepted applications can be completed")
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":              model.ApplicationCompleted,
			"completed_at":        now,
			"completion_feedback": req.Feedback,
			"deliverable_url":     req.DeliverableURL,
		}
		if err := tx.Model(&app).Updates(updates).Error; err != nil {
			return err
		}

		summary = CompletionSummary{
			ProgressSnapshot: BuildSnapshot(app.Project.Modules, app.Progress),
			ApplicationID:    app.ID,
			CompletedAt:      now,
			Feedback:         req.Feedback,
			DeliverableURL:   req.DeliverableURL,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &summary, nil
}
