package controller

import (
	"fmt"
	"path/filepath"

	"talentbridge_backend/internal/model"
	"talentbridge_backend/internal/service"
	"talentbridge_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ApplicationController struct {
	ApplicationService *service.ApplicationService
	CompletionService  *service.CompletionService
	StorageService     *service.StorageService
}

func NewApplicationController(applicationService *service.ApplicationService, completionService *service.CompletionService, storageService *service.StorageService) *ApplicationController {
	return &ApplicationController{
		ApplicationService: applicationService,
		CompletionService:  completionService,
		StorageService:     storageService,
	}
}

// Apply godoc
// @Summary 申请项目
// @Description 学生向开放中的项目提交申请
// @Tags 申请
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.ApplyRequest true "申请内容"
// @Success 201 {object} util.Response{data=model.Application}
// @Failure 400 {object} util.Response "重复申请/项目不接受申请/人数已满"
// @Router /api/applications [post]
func (c *ApplicationController) Apply(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.ApplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	app, err := c.ApplicationService.Apply(user.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Created(ctx, app)
}

// ListMyApplications godoc
// @Summary 我的申请
// @Tags 申请
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.Application}
// @Router /api/applications [get]
func (c *ApplicationController) ListMyApplications(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	apps, err := c.ApplicationService.ListByStudent(user.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, apps)
}

// Withdraw godoc
// @Summary 撤回申请
// @Description 公司终审（接受/拒绝）前可撤回
// @Tags 申请
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response "申请已被终审"
// @Router /api/applications/{id}/withdraw [post]
func (c *ApplicationController) Withdraw(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	applicationID := util.MustParseUint(ctx.Param("id"))

	if err := c.ApplicationService.Withdraw(user.UserID, applicationID); err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"status": model.ApplicationWithdrawn})
}

// StartReview godoc
// @Summary 开始审核
// @Description 将待处理的申请置为审核中
// @Tags 申请
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Success 200 {object} util.Response{data=model.Application}
// @Router /api/applications/{id}/review/start [post]
func (c *ApplicationController) StartReview(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	applicationID := util.MustParseUint(ctx.Param("id"))

	app, err := c.ApplicationService.StartReview(user.UserID, applicationID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, app)
}

// Review godoc
// @Summary 审核申请
// @Description 项目所有者接受或拒绝申请
// @Tags 申请
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Param body body service.ReviewRequest true "审核决定"
// @Success 200 {object} util.Response{data=model.Application}
// @Failure 400 {object} util.Response "申请已被终审或已撤回"
// @Router /api/applications/{id}/review [post]
func (c *ApplicationController) Review(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	applicationID := util.MustParseUint(ctx.Param("id"))

	var req service.ReviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	app, err := c.ApplicationService.Review(user.UserID, applicationID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, app)
}

// CompleteJob godoc
// @Summary 完成岗位工作
// @Description 项目所有者正式关闭一个已接受的申请，记录反馈与交付物
// @Tags 申请
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body service.CompleteJobRequest true "完成信息"
// @Success 200 {object} util.Response{data=service.CompletionSummary}
// @Failure 400 {object} util.Response "申请状态不允许完成"
// @Router /api/applications/complete [post]
func (c *ApplicationController) CompleteJob(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CompleteJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	summary, err := c.CompletionService.CompleteJob(user.UserID, req)
	if err != nil {
		util.FromError(ctx, err)
		return
	}

	util.Success(ctx, summary)
}

// UploadDeliverable godoc
// @Summary 上传交付物
// @Description 上传项目交付文件，返回可供完成流程引用的URL
// @Tags 申请
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "申请ID"
// @Param file formData file true "交付文件"
// @Success 200 {object} util.Response{data=object}
// @Router /api/applications/{id}/deliverable [post]
func (c *ApplicationController) UploadDeliverable(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	applicationID := util.MustParseUint(ctx.Param("id"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	mimeType, err := util.ValidateMimeType(src, util.AllowedDeliverableTypes)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if _, err := src.Seek(0, 0); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := fmt.Sprintf("deliverables/%d/%s%s",
		applicationID, model.GenerateUUID(), filepath.Ext(fileHeader.Filename))

	url, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, fileHeader.Size, mimeType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"url": url})
}
