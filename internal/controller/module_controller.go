package controller

import (
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"
	"talentbridge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ModuleController struct {
	ModuleService *service.ModuleService
}

func NewModuleController(moduleService *service.ModuleService) *ModuleController {
	return &ModuleController{ModuleService: moduleService}
}

func recordOrderMutation(operation string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	monitoring.ModuleReorders.WithLabelValues(operation, outcome).Inc()
}

// AddModule godoc
// @Summary 添加项目模块
// @Description 在指定位置插入课程模块，位置缺省或越界时追加到末尾
// @Tags 模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param body body service.ModuleCreateRequest true "模块信息"
// @Success 201 {object} util.Response{data=model.ProjectModule}
// @Failure 403 {object} util.Response "非项目所有者"
// @Router /api/projects/{id}/modules [post]
func (c *ModuleController) AddModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	projectID := util.MustParseUint(ctx.Param("id"))

	var req service.ModuleCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	module, err := c.ModuleService.AddModule(user.UserID, projectID, req)
	recordOrderMutation("add", err)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, module)
}

// GetProjectModules godoc
// @Summary 项目模块列表
// @Description 按 OrderIndex 升序返回项目的课程模块
// @Tags 模块
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} util.Response{data=[]model.ProjectModule}
// @Router /api/projects/{id}/modules [get]
func (c *ModuleController) GetProjectModules(ctx *gin.Context) {
	projectID := util.MustParseUint(ctx.Param("id"))

	modules, err := c.ModuleService.GetProjectModules(projectID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, modules)
}

// DeleteModule godoc
// @Summary 删除项目模块
// @Description 删除模块并对剩余模块重新编号（1..N 连续）
// @Tags 模块
// @Produce json
// @Security BearerAuth
// @Param moduleId path int true "模块ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/modules/{moduleId} [delete]
func (c *ModuleController) DeleteModule(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	moduleID := util.MustParseUint(ctx.Param("moduleId"))

	err := c.ModuleService.DeleteModule(user.UserID, moduleID)
	recordOrderMutation("delete", err)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"deleted": true})
}

type ReorderRequest struct {
	ModuleIDs []uint `json:"moduleIds" binding:"required,min=1"`
}

// ReorderModules godoc
// @Summary 调整模块顺序
// @Description 提交项目全部模块ID的新排列，整体替换顺序
// @Tags 模块
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param body body ReorderRequest true "模块ID新顺序"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "ID集合与当前模块不一致"
// @Router /api/projects/{id}/modules/order [put]
func (c *ModuleController) ReorderModules(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	projectID := util.MustParseUint(ctx.Param("id"))

	var req ReorderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	err := c.ModuleService.ReorderModules(user.UserID, projectID, req.ModuleIDs)
	recordOrderMutation("reorder", err)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"reordered": true})
}
