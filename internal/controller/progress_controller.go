package controller

import (
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

type UpdateProgressRequest struct {
	ModuleID    uint  `json:"moduleId" binding:"required"`
	IsCompleted *bool `json:"isCompleted" binding:"required"`
}

// UpdateProgress godoc
// @Summary 更新模块完成状态
// @Description 申请人勾选/取消勾选某个模块的完成状态，返回最新进度
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Param body body UpdateProgressRequest true "模块及完成状态"
// @Success 200 {object} util.Response{data=service.ProgressSnapshot}
// @Failure 400 {object} util.Response "模块不属于该项目"
// @Failure 403 {object} util.Response "非申请人"
// @Router /api/applications/{id}/progress [put]
func (c *ProgressController) UpdateProgress(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	applicationID := util.MustParseUint(ctx.Param("id"))

	var req UpdateProgressRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	snapshot, err := c.ProgressService.ToggleModuleCompletion(user.UserID, applicationID, req.ModuleID, *req.IsCompleted)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}

// GetProgress godoc
// @Summary 查询申请进度
// @Description 返回申请的模块完成数量与百分比
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Success 200 {object} util.Response{data=service.ProgressSnapshot}
// @Failure 404 {object} util.Response
// @Router /api/applications/{id}/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	applicationID := util.MustParseUint(ctx.Param("id"))

	snapshot, err := c.ProgressService.GetApplicationProgress(applicationID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, snapshot)
}
