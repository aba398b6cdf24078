package service

import (
	"errors"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProjectService struct {
	ProjectRepo *repository.ProjectRepository
	DB          *gorm.DB
}

func NewProjectService(projectRepo *repository.ProjectRepository, db *gorm.DB) *ProjectService {
	return &ProjectService{ProjectRepo: projectRepo, DB: db}
}

type ProjectCreateRequest struct {
	Title               string     `json:"title" binding:"required"`
	Description         string     `json:"description"`
	Location            string     `json:"location"`
	MaxApplicants       int        `json:"maxApplicants"`
	ApplicationDeadline *time.Time `json:"applicationDeadline"`
}

func (s *ProjectService) CreateProject(user *util.Claims, req ProjectCreateRequest) (*model.Project, error) {
	project := &model.Project{
		CompanyID:           user.UserID,
		CreatedBy:           user.UserID,
		Title:               req.Title,
		Description:         req.Description,
		Location:            req.Location,
		Status:              model.ProjectDraft,
		MaxApplicants:       req.MaxApplicants,
		ApplicationDeadline: req.ApplicationDeadline,
	}
	if err := s.ProjectRepo.Create(project); err != nil {
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) GetProject(id uint) (*model.Project, error) {
	project, err := s.ProjectRepo.FindWithModules(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("project not found")
		}
		return nil, err
	}
	return project, nil
}

func (s *ProjectService) ListActive(page, limit int) ([]model.Project, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.ProjectRepo.ListActive(page, limit)
}

func (s *ProjectService) ListByCompany(companyID uint) ([]model.Project, error) {
	return s.ProjectRepo.ListByCompany(companyID)
}

var allowedStatusChanges = map[model.ProjectStatus][]model.ProjectStatus{
	model.ProjectDraft:    {model.ProjectActive, model.ProjectCancelled},
	model.ProjectActive:   {model.ProjectPending, model.ProjectClosed, model.ProjectCancelled},
	model.ProjectPending:  {model.ProjectActive, model.ProjectComplete, model.ProjectCancelled},
	model.ProjectComplete: {model.ProjectClosed},
}

func (s *ProjectService) UpdateStatus(userID, projectID uint, status model.ProjectStatus) error {
	project, err := s.ProjectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("project not found")
		}
		return err
	}

	if !OwnsProject(project, userID) {
		return util.UnauthorizedError("not the project owner")
	}

	for _, next := range allowedStatusChanges[project.Status] {
		if next == status {
			return s.ProjectRepo.UpdateStatus(projectID, status)
		}
	}
	return util.ValidationError("invalid status transition")
}

// CloseExpiredProjects 后台定时任务：关闭超过报名截止时间的项目
func (s *ProjectService) CloseExpiredProjects() error {
	closed, err := s.ProjectRepo.CloseExpired(time.Now())
	if err != nil {
		return err
	}
	if closed > 0 {
		logger.Log.Info("closed expired projects", zap.Int64("count", closed))
	}
	return nil
}
