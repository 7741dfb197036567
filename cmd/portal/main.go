package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Sarojsin/school-management-system-by-group/internal/handler"
	"github.com/Sarojsin/school-management-system-by-group/internal/repository"
	"github.com/Sarojsin/school-management-system-by-group/internal/service"
	"github.com/Sarojsin/school-management-system-by-group/pkg/cache"
	"github.com/Sarojsin/school-management-system-by-group/pkg/config"
	"github.com/Sarojsin/school-management-system-by-group/pkg/database"
	"github.com/Sarojsin/school-management-system-by-group/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	stores, err := database.OpenStores(cfg.Stores)
	if err != nil {
		logr.Sugar().Fatalw("failed to open stores", "error", err)
	}
	defer stores.Close()

	bootCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := database.Bootstrap(bootCtx, stores); err != nil {
		logr.Sugar().Fatalw("failed to bootstrap schemas", "error", err)
	}

	redisClient, err := cache.NewRedis(cfg.Redis)
	if err != nil {
		logr.Sugar().Warnw("redis unavailable, notice board cache disabled", "error", err)
		redisClient = nil
	}

	validate := validator.New()
	metrics := service.NewMetricsService()

	userRepo := repository.NewUserRepository(stores.Public)
	studentRepo := repository.NewStudentRepository(stores.Student)
	teacherRepo := repository.NewTeacherRepository(stores.Teacher)
	authorityRepo := repository.NewAuthorityRepository(stores.Authority)
	academicRepo := repository.NewAcademicRepository(stores.Student)
	noticeRepo := repository.NewNoticeRepository(stores.Authority)
	feeRepo := repository.NewFeeRepository(stores.Authority)

	identitySvc := service.NewIdentityService(
		userRepo,
		[]service.RoleProfileStore{studentRepo, teacherRepo, authorityRepo},
		validate, logr, metrics, cfg.Stores.OpTimeout,
	)
	authSvc := service.NewAuthService(userRepo, validate, logr, service.SessionConfig{
		Secret: cfg.Session.Secret,
		Expiry: cfg.Session.Expiry,
		Issuer: cfg.Session.Issuer,
	})
	academicSvc := service.NewAcademicService(academicRepo, studentRepo, validate, logr)
	noticeSvc := service.NewNoticeService(noticeRepo, redisClient, cfg.Notices.CacheTTL, validate, logr, metrics)
	feeSvc := service.NewFeeService(feeRepo, validate, logr)
	profileSvc := service.NewProfileService(identitySvc, studentRepo, teacherRepo, authorityRepo, validate, logr)
	dashboardSvc := service.NewDashboardService(identitySvc, studentRepo, teacherRepo, authorityRepo, academicSvc, noticeSvc, logr)
	exportSvc := service.NewExportService(studentRepo, academicSvc, logr)

	r := handler.NewRouter(cfg, logr, handler.Services{
		Auth:       authSvc,
		Identity:   identitySvc,
		Dashboards: dashboardSvc,
		Profiles:   profileSvc,
		Academics:  academicSvc,
		Notices:    noticeSvc,
		Fees:       feeSvc,
		Exports:    exportSvc,
		Metrics:    metrics,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
