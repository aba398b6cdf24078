package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/repository"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const moduleCacheTTL = 10 * time.Minute

// ModuleService 维护项目模块的稠密排序序列（1..N，无空洞无重复）
type ModuleService struct {
	ProjectRepo *repository.ProjectRepository
	ModuleRepo  *repository.ModuleRepository
	Redis       *redis.Client
	DB          *gorm.DB
}

func NewModuleService(projectRepo *repository.ProjectRepository, moduleRepo *repository.ModuleRepository, rdb *redis.Client, db *gorm.DB) *ModuleService {
	return &ModuleService{
		ProjectRepo: projectRepo,
		ModuleRepo:  moduleRepo,
		Redis:       rdb,
		DB:          db,
	}
}

type ModuleCreateRequest struct {
	Title             string `json:"title" binding:"required"`
	Description       string `json:"description"`
	EstimatedDuration string `json:"estimatedDuration"`
	OrderIndex        int    `json:"orderIndex"` // optional; <=0 appends
}

// AddModule inserts a module at the requested position, shifting siblings at
// or after it up by one. A missing or out-of-range position appends.
func (s *ModuleService) AddModule(userID, projectID uint, req ModuleCreateRequest) (*model.ProjectModule, error) {
	var created *model.ProjectModule

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := lockForUpdate(tx).First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("project not found")
			}
			return err
		}

		if !OwnsProject(&project, userID) {
			return util.UnauthorizedError("not the project owner")
		}

		count, err := s.ModuleRepo.CountByProject(tx, projectID)
		if err != nil {
			return err
		}

		// absent/zero/negative appends; beyond the end clamps to append
		pos := req.OrderIndex
		if pos <= 0 || pos > int(count)+1 {
			pos = int(count) + 1
		}

		if pos <= int(count) {
			if err := s.ModuleRepo.ShiftUpFrom(tx, projectID, pos); err != nil {
				return err
			}
		}

		m := &model.ProjectModule{
			ProjectID:         projectID,
			Title:             req.Title,
			Description:       req.Description,
			EstimatedDuration: req.EstimatedDuration,
			OrderIndex:        pos,
		}
		if err := tx.Create(m).Error; err != nil {
			return err
		}

		created = m
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateCache(projectID)
	return created, nil
}

// GetProjectModules returns the project's modules ordered by OrderIndex,
// serving from the redis cache when possible.
func (s *ModuleService) GetProjectModules(projectID uint) ([]model.ProjectModule, error) {
	if _, err := s.ProjectRepo.FindByID(projectID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("project not found")
		}
		return nil, err
	}

	if cached, ok := s.cachedModules(projectID); ok {
		return cached, nil
	}

	modules, err := s.ModuleRepo.ListByProject(projectID)
	if err != nil {
		return nil, err
	}

	s.cacheModules(projectID, modules)
	return modules, nil
}

// DeleteModule removes a module and renumbers the survivors into a dense
// 1..N sequence. The full reindex tolerates any prior inconsistency.
func (s *ModuleService) DeleteModule(userID, moduleID uint) error {
	var projectID uint

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var m model.ProjectModule
		if err := tx.First(&m, moduleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("module not found")
			}
			return err
		}

		var project model.Project
		if err := lockForUpdate(tx).First(&project, m.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("project not found")
			}
			return err
		}

		if !OwnsProject(&project, userID) {
			return util.UnauthorizedError("not the project owner")
		}

		if err := tx.Delete(&m).Error; err != nil {
			return err
		}

		var survivors []model.ProjectModule
		if err := tx.Where("project_id = ?", m.ProjectID).
			Order("order_index asc").Find(&survivors).Error; err != nil {
			return err
		}

		ids := make([]uint, len(survivors))
		for i, sm := range survivors {
			ids[i] = sm.ID
		}

		projectID = m.ProjectID
		return s.ModuleRepo.ApplyOrder(tx, m.ProjectID, ids)
	})
	if err != nil {
		return err
	}

	s.invalidateCache(projectID)
	return nil
}

// ReorderModules replaces the full order. The id list must be an exact
// permutation of the project's current modules.
func (s *ModuleService) ReorderModules(userID, projectID uint, orderedIDs []uint) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var project model.Project
		if err := lockForUpdate(tx).First(&project, projectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.NotFoundError("project not found")
			}
			return err
		}

		if !OwnsProject(&project, userID) {
			return util.UnauthorizedError("not the project owner")
		}

		var modules []model.ProjectModule
		if err := tx.Where("project_id = ?", projectID).Find(&modules).Error; err != nil {
			return err
		}

		if len(orderedIDs) != len(modules) {
			return util.ValidationError(fmt.Sprintf(
				"expected %d module ids, got %d", len(modules), len(orderedIDs)))
		}

		members := make(map[uint]bool, len(modules))
		for _, m := range modules {
			members[m.ID] = true
		}

		// set membership check also rejects duplicates: each visit consumes
		// the id, so a repeat reads as unknown
		for _, id := range orderedIDs {
			if !members[id] {
				return util.ValidationError(fmt.Sprintf("module %d does not belong to this project", id))
			}
			delete(members, id)
		}

		return s.ModuleRepo.ApplyOrder(tx, projectID, orderedIDs)
	})
	if err != nil {
		return err
	}

	s.invalidateCache(projectID)
	return nil
}

func moduleCacheKey(projectID uint) string {
	return fmt.Sprintf("project:%d:modules", projectID)
}

func (s *ModuleService) cachedModules(projectID uint) ([]model.ProjectModule, bool) {
	if s.Redis == nil {
		return nil, false
	}

	val, err := s.Redis.Get(context.Background(), moduleCacheKey(projectID)).Result()
	if err != nil {
		return nil, false
	}

	var modules []model.ProjectModule
	if err := json.Unmarshal([]byte(val), &modules); err != nil {
		return nil, false
	}
	return modules, true
}

func (s *ModuleService) cacheModules(projectID uint, modules []model.ProjectModule) {
	if s.Redis == nil {
		return
	}

	data, err := json.Marshal(modules)
	if err != nil {
		return
	}
	if err := s.Redis.Set(context.Background(), moduleCacheKey(projectID), data, moduleCacheTTL).Err(); err != nil {
		logger.Log.Warn("module cache write failed", zap.Uint("projectId", projectID), zap.Error(err))
	}
}

func (s *ModuleService) invalidateCache(projectID uint) {
	if s.Redis == nil || projectID == 0 {
		return
	}
	s.Redis.Del(context.Background(), moduleCacheKey(projectID))
}
