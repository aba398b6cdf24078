package service

import (
	"errors"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"

	"gorm.io/gorm"
)

// ApplicationService 管理申请的生命周期：
// submitted → pending → under_review → {accepted, rejected}
// accepted → completed（仅经由 CompletionService）；withdrawn 在公司终审前可达
type ApplicationService struct {
	ApplicationRepo *repository.ApplicationRepository
	ProjectRepo     *repository.ProjectRepository
	DB              *gorm.DB
}

func NewApplicationService(applicationRepo *repository.ApplicationRepository, projectRepo *repository.ProjectRepository, db *gorm.DB) *ApplicationService {
	return &ApplicationService{
		ApplicationRepo: applicationRepo,
		ProjectRepo:     projectRepo,
		DB:              db,
	}
}

type ApplyRequest struct {
	ProjectID   uint   `json:"projectId" binding:"required"`
	CoverLetter string `json:"coverLetter"`
}

// Apply submits a new application. One live application per (student,
// project); the project must be accepting and under its applicant cap.
func (s *ApplicationService) Apply(studentID uint, req ApplyRequest) (*model.Application, error) {
	var created *model.Application

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := lockForUpdate(tx).First(&project, req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("project not found")
			}
			return err
		}

		if !project.AcceptsApplications() {
			return util.ValidationError("project is not accepting applications")
		}

		if project.MaxApplicants > 0 && project.ApplicationCount >= project.MaxApplicants {
			return util.ValidationError("project has reached its applicant limit")
		}

		exists, err := s.ApplicationRepo.HasActiveApplication(tx, req.ProjectID, studentID)
		if err != nil {
			return err
		}
		if exists {
			return util.ValidationError("you already have an application for this project")
		}

		app := &model.Application{
			ProjectID:   req.ProjectID,
			StudentID:   studentID,
			Status:      model.ApplicationSubmitted,
			CoverLetter: req.CoverLetter,
			AppliedAt:   time.Now(),
		}
		if err := tx.Create(app).Error; err != nil {
			return err
		}

		if err := tx.Model(&project).
			Update("application_count", gorm.Expr("application_count + 1")).Error; err != nil {
			return err
		}

		created = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// StartReview moves a fresh application into under_review.
func (s *ApplicationService) StartReview(companyUserID, applicationID uint) (*model.Application, error) {
	var reviewed *model.Application

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, _, err := s.loadForCompany(tx, companyUserID, applicationID)
		if err != nil {
			return err
		}

		switch app.Status {
		case model.ApplicationSubmitted, model.ApplicationPending:
		default:
			return util.ValidationError("application is not awaiting review")
		}

		if err := tx.Model(app).Update("status", model.ApplicationUnderReview).Error; err != nil {
			return err
		}
		app.Status = model.ApplicationUnderReview
		reviewed = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

type ReviewRequest struct {
	Decision string `json:"decision" binding:"required,oneof=accepted rejected"`
	Notes    string `json:"notes"`
}

// Review records the company decision. Terminal: no further review and no
// student withdrawal afterwards.
func (s *ApplicationService) Review(companyUserID, applicationID uint, req ReviewRequest) (*model.Application, error) {
	var reviewed *model.Application

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, _, err := s.loadForCompany(tx, companyUserID, applicationID)
		if err != nil {
			return err
		}

		switch app.Status {
		case model.ApplicationSubmitted, model.ApplicationPending, model.ApplicationUnderReview:
		case model.ApplicationWithdrawn:
			return util.ValidationError("application was withdrawn")
		default:
			return util.ValidationError("application has already been decided")
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       model.ApplicationStatus(req.Decision),
			"reviewed_by":  companyUserID,
			"reviewed_at":  now,
			"review_notes": req.Notes,
		}
		if err := tx.Model(app).Updates(updates).Error; err != nil {
			return err
		}

		app.Status = model.ApplicationStatus(req.Decision)
		app.ReviewedBy = &companyUserID
		app.ReviewedAt = &now
		app.ReviewNotes = req.Notes
		reviewed = app
		return nil
	})
	if err != nil {
		return nil, err
	}
	return reviewed, nil
}

// Withdraw retracts the student's own application. Blocked once the company
// has decided; decrements the project's counter, never below zero.
func (s *ApplicationService) Withdraw(studentID, applicationID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var app model.Application
		if err := lockForUpdate(tx).First(&app, applicationID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("application not found")
			}
			return err
		}

		if studentID == 0 || app.StudentID != studentID {
			return util.UnauthorizedError("not the applicant")
		}

		switch app.Status {
		case model.ApplicationAccepted, model.ApplicationRejected, model.ApplicationCompleted:
			return util.ValidationError("application can no longer be withdrawn")
		case model.ApplicationWithdrawn:
			return util.ValidationError("application is already withdrawn")
		}

		if err := tx.Model(&app).Update("status", model.ApplicationWithdrawn).Error; err != nil {
			return err
		}

		return tx.Model(&model.Project{}).
			Where("id = ? AND application_count > 0", app.ProjectID).
			Update("application_count", gorm.Expr("application_count - 1")).Error
	})
}

func (s *ApplicationService) ListByStudent(studentID uint) ([]model.Application, error) {
	return s.ApplicationRepo.ListByStudent(studentID)
}

// ListByProject exposes a project's applications to its owner.
func (s *ApplicationService) ListByProject(companyUserID, projectID uint) ([]model.Application, error) {
	project, err := s.ProjectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("project not found")
		}
		return nil, err
	}

	if !OwnsProject(project, companyUserID) {
		return nil, util.UnauthorizedError("not the project owner")
	}

	return s.ApplicationRepo.ListByProject(projectID)
}

func (s *ApplicationService) loadForCompany(tx *gorm.DB, companyUserID, applicationID uint) (*model.Application, *model.Project, error) {
	var app model.Application
	if err := lockForUpdate(tx).First(&app, applicationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.NotFoundError("application not found")
		}
		return nil, nil, err
	}

	var project model.Project
	if err := tx.First(&project, app.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, util.NotFoundError("project not found")
		}
		return nil, nil, err
	}

	if !OwnsProject(&project, companyUserID) {
		return nil, nil, util.UnauthorizedError("not the project owner")
	}

	return &app, &project, nil
}
