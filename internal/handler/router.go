package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Sarojsin/school-management-system-by-group/internal/middleware"
	"github.com/Sarojsin/school-management-system-by-group/internal/models"
	"github.com/Sarojsin/school-management-system-by-group/internal/service"
	"github.com/Sarojsin/school-management-system-by-group/pkg/config"
	"github.com/Sarojsin/school-management-system-by-group/pkg/logger"
	corsmiddleware "github.com/Sarojsin/school-management-system-by-group/pkg/middleware/cors"
	reqidmiddleware "github.com/Sarojsin/school-management-system-by-group/pkg/middleware/requestid"
)

// Services bundles everything the router needs.
type Services struct {
	Auth       *service.AuthService
	Identity   *service.IdentityService
	Dashboards *service.DashboardService
	Profiles   *service.ProfileService
	Academics  *service.AcademicService
	Notices    *service.NoticeService
	Fees       *service.FeeService
	Exports    *service.ExportService
	Metrics    *service.MetricsService
}

// NewRouter assembles the gin engine with all routes and middleware.
func NewRouter(cfg *config.Config, logr *zap.Logger, svcs Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(svcs.Metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if svcs.Metrics != nil {
		r.GET("/metrics", gin.WrapH(svcs.Metrics.Handler()))
	}

	authHandler := NewAuthHandler(svcs.Auth, svcs.Identity, cfg.Session.CookieName)
	studentHandler := NewStudentHandler(svcs.Dashboards, svcs.Profiles)
	teacherHandler := NewTeacherHandler(svcs.Dashboards, svcs.Profiles, svcs.Academics)
	authorityHandler := NewAuthorityHandler(svcs.Dashboards, svcs.Profiles, svcs.Notices, svcs.Fees, svcs.Exports, svcs.Identity)
	noticeHandler := NewNoticeHandler(svcs.Notices, svcs.Fees)

	api := r.Group(cfg.APIPrefix)

	auth := api.Group("/auth")
	{
		auth.POST("/signup", authHandler.Signup)
		auth.POST("/login", authHandler.Login)
		auth.POST("/logout", authHandler.Logout)
		auth.GET("/logout", authHandler.Logout)
	}

	session := middleware.Session(svcs.Auth, cfg.Session.CookieName)

	api.GET("/me", session, authHandler.Me)
	api.GET("/notices", session, noticeHandler.Board)
	api.GET("/fees", session, noticeHandler.Fees)

	student := api.Group("/student", session, middleware.RequireRoles(models.RoleStudent))
	{
		student.GET("/dashboard", studentHandler.Dashboard)
		student.GET("/profile", studentHandler.Profile)
		student.PUT("/profile", studentHandler.UpdateProfile)
	}

	teacher := api.Group("/teacher", session, middleware.RequireRoles(models.RoleTeacher))
	{
		teacher.GET("/dashboard", teacherHandler.Dashboard)
		teacher.GET("/profile", teacherHandler.Profile)
		teacher.PUT("/profile", teacherHandler.UpdateProfile)
		teacher.POST("/subjects", teacherHandler.AddSubject)
		teacher.POST("/marks", teacherHandler.RecordMarks)
		teacher.POST("/attendance", teacherHandler.RecordAttendance)
		teacher.POST("/assignments", teacherHandler.RecordAssignment)
	}

	authority := api.Group("/authority", session, middleware.RequireRoles(models.RoleAuthority))
	{
		authority.GET("/dashboard", authorityHandler.Dashboard)
		authority.GET("/profile", authorityHandler.Profile)
		authority.PUT("/profile", authorityHandler.UpdateProfile)
		authority.POST("/notices", authorityHandler.CreateNotice)
		authority.GET("/notices", authorityHandler.ListNotices)
		authority.PATCH("/notices/:id/toggle", authorityHandler.ToggleNotice)
		authority.POST("/fees", authorityHandler.CreateFee)
		authority.GET("/fees", authorityHandler.ListFees)
		authority.GET("/students", authorityHandler.Students)
		authority.GET("/teachers", authorityHandler.Teachers)
		authority.GET("/staff", authorityHandler.Staff)
		authority.GET("/exports/students.csv", authorityHandler.ExportRoster)
		authority.GET("/exports/students/:id/marks.pdf", authorityHandler.ExportMarks)
		authority.GET("/audit/orphans", authorityHandler.OrphanedCredentials)
	}

	staff := api.Group("/staff", session, middleware.RequireRoles(models.RoleTeacher, models.RoleAuthority))
	{
		staff.GET("/students", authorityHandler.Students)
	}

	return r
}
