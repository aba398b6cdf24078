package controller

import (
	"strconv"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService     *service.ProjectService
	ApplicationService *service.ApplicationService
}

func NewProjectController(projectService *service.ProjectService, applicationService *service.ApplicationService) *ProjectController {
	return &ProjectController{
		ProjectService:     projectService,
		ApplicationService: applicationService,
	}
}

// CreateProject godoc
// @Summary 发布项目
// @Description 企业创建新的实习/项目岗位（初始为草稿状态）
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ProjectCreateRequest true "项目信息"
// @Success 201 {object} util.Response{data=model.Project}
// @Router /api/projects [post]
func (c *ProjectController) CreateProject(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ProjectCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	project, err := c.ProjectService.CreateProject(user, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, project)
}

// ListProjects godoc
// @Summary 项目列表
// @Description 分页获取开放申请中的项目
// @Tags 项目
// @Produce json
// @Param page query int false "页码"
// @Param limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse}
// @Router /api/projects [get]
func (c *ProjectController) ListProjects(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	projects, total, err := c.ProjectService.ListActive(page, limit)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  projects,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// GetProject godoc
// @Summary 项目详情
// @Description 获取项目及其模块列表
// @Tags 项目
// @Produce json
// @Param id path int true "项目ID"
// @Success 200 {object} util.Response{data=model.Project}
// @Failure 404 {object} util.Response
// @Router /api/projects/{id} [get]
func (c *ProjectController) GetProject(ctx *gin.Context) {
	projectID := util.MustParseUint(ctx.Param("id"))

	project, err := c.ProjectService.GetProject(projectID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, project)
}

// ListMyProjects godoc
// @Summary 我发布的项目
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Project}
// @Router /api/company/projects [get]
func (c *ProjectController) ListMyProjects(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	projects, err := c.ProjectService.ListByCompany(user.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, projects)
}

type ProjectStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft active pending complete cancelled closed"`
}

// UpdateProjectStatus godoc
// @Summary 更新项目状态
// @Description 项目所有者调整项目生命周期状态
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Param body body ProjectStatusRequest true "目标状态"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "非法状态流转"
// @Router /api/projects/{id}/status [patch]
func (c *ProjectController) UpdateProjectStatus(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	projectID := util.MustParseUint(ctx.Param("id"))

	var req ProjectStatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ProjectService.UpdateStatus(user.UserID, projectID, model.ProjectStatus(req.Status)); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"status": req.Status})
}

// ListProjectApplications godoc
// @Summary 项目收到的申请
// @Description 项目所有者查看该项目的全部申请
// @Tags 申请
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目ID"
// @Success 200 {object} util.Response{data=[]model.Application}
// @Router /api/projects/{id}/applications [get]
func (c *ProjectController) ListProjectApplications(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	projectID := util.MustParseUint(ctx.Param("id"))

	apps, err := c.ApplicationService.ListByProject(user.UserID, projectID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, apps)
}
