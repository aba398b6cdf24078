package app

import (
	"talentbridge_backend/docs"
	"talentbridge_backend/internal/config"
	"talentbridge_backend/internal/middleware"
	"talentbridge_backend/internal/model"
	"talentbridge_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)

		// 项目浏览对游客开放
		public.GET("/projects", c.project.ListProjects)
		public.GET("/projects/:id", middleware.TryAuthMiddleware(cfg), c.project.GetProject)
		public.GET("/projects/:id/modules", middleware.TryAuthMiddleware(cfg), c.module.GetProjectModules)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		authGroup.GET("/profile", c.auth.GetProfile)

		a.registerStudentRoutes(authGroup, c)
		a.registerCompanyRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	student := rg.Group("/")
	student.Use(middleware.RoleMiddleware(model.Student))
	{
		student.POST("/applications", c.application.Apply)
		student.GET("/applications", c.application.ListMyApplications)
		student.POST("/applications/:id/withdraw", c.application.Withdraw)
		student.PUT("/applications/:id/progress", c.progress.UpdateProgress)
		student.POST("/applications/:id/deliverable", c.application.UploadDeliverable)
	}

	// 进度查询对申请人和项目方都有意义，仅要求登录
	rg.GET("/applications/:id/progress", c.progress.GetProgress)
}

func (a *App) registerCompanyRoutes(rg *gin.RouterGroup, c *controllers) {
	company := rg.Group("/")
	company.Use(middleware.RoleMiddleware(model.Company))
	{
		company.POST("/projects", c.project.CreateProject)
		company.GET("/company/projects", c.project.ListMyProjects)
		company.PATCH("/projects/:id/status", c.project.UpdateProjectStatus)
		company.GET("/projects/:id/applications", c.project.ListProjectApplications)

		company.POST("/projects/:id/modules", c.module.AddModule)
		company.DELETE("/modules/:moduleId", c.module.DeleteModule)
		company.PUT("/projects/:id/modules/order", c.module.ReorderModules)

		company.POST("/applications/:id/review/start", c.application.StartReview)
		company.POST("/applications/:id/review", c.application.Review)
		company.POST("/applications/complete", c.application.CompleteJob)
	}
}
