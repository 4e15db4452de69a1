package main

import (
	"context"
	"embed"
	"flag"
	"io/fs"
	"net/http"
	"os"
	"time"

	"milhas-tracker/internal/config"
	"milhas-tracker/internal/handler"
	"milhas-tracker/internal/logger"
	"milhas-tracker/internal/middleware"
	"milhas-tracker/internal/model"
	"milhas-tracker/internal/service"
	"milhas-tracker/internal/valuation"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed dist/*
var staticFS embed.FS

func main() {
	configFile := flag.String("config", "", "config file path (e.g. etc/config-dev.yaml)")
	flag.Parse()

	cfg := config.Load(*configFile)
	logger.Init(cfg.Log)

	db, err := cfg.OpenGormDB()
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.AutoMigrate(
		&model.User{},
		&model.LoyaltyProgram{},
		&model.FamilyMember{},
		&model.MemberProgram{},
		&model.ActivityLog{},
	); err != nil {
		logger.Error("db migrate failed", "err", err)
		os.Exit(1)
	}

	table := valuation.DefaultTable()

	activitySvc := service.NewActivityService(db)
	authSvc := service.NewAuthService(db)
	memberSvc := service.NewMemberService(db, activitySvc)
	programSvc := service.NewProgramService(db, activitySvc)
	enrollSvc := service.NewEnrollmentService(db, table, activitySvc)
	dashSvc := service.NewDashboardService(db, table)
	reportSvc := service.NewReportService(dashSvc)

	if err := authSvc.EnsureAdmin(context.Background(), cfg.Auth.AdminUser, cfg.Auth.AdminPass, cfg.Auth.AdminName); err != nil {
		logger.Warn("admin seed failed", "err", err)
	}

	secret := []byte(cfg.Auth.JWTSecret)
	ttl := time.Duration(cfg.Auth.TokenTTLHours) * time.Hour

	authH := handler.NewAuthHandler(authSvc, secret, ttl)
	memberH := handler.NewMemberHandler(memberSvc, enrollSvc)
	programH := handler.NewProgramHandler(programSvc)
	enrollH := handler.NewEnrollmentHandler(enrollSvc)
	dashH := handler.NewDashboardHandler(dashSvc)
	activityH := handler.NewActivityHandler(activitySvc)
	reportH := handler.NewReportHandler(reportSvc)
	importH := handler.NewImportHandler(db, activitySvc)

	r := gin.Default()
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.POST("/api/login", authH.Login)

	api := r.Group("/api", middleware.JWTAuth(secret, ttl))
	api.GET("/users/:userId/members", memberH.List)
	api.POST("/users/:userId/members", memberH.Create)
	api.PUT("/members/:id", memberH.Update)
	api.DELETE("/members/:id", memberH.Delete)
	api.GET("/members/:id/programs", memberH.Programs)
	api.GET("/programs", programH.List)
	api.POST("/programs", programH.Create)
	api.PUT("/programs/:id", programH.Update)
	api.DELETE("/programs/:id", programH.Delete)
	api.POST("/member-programs", enrollH.Create)
	api.PUT("/member-programs/:id", enrollH.Update)
	api.DELETE("/member-programs/:id", enrollH.Delete)
	api.GET("/dashboard/stats/:userId", dashH.Stats)
	api.GET("/dashboard/members-with-programs/:userId", dashH.MembersWithPrograms)
	api.GET("/activity/:userId", activityH.List)
	api.GET("/reports/whatsapp/:userId", reportH.WhatsApp)
	api.POST("/import/preview", importH.Preview)
	api.POST("/import/confirm", importH.Confirm)

	distFS, _ := fs.Sub(staticFS, "dist")
	r.NoRoute(gin.WrapH(http.FileServer(http.FS(distFS))))

	logger.Info("server starting", "addr", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		logger.Error("server failed", "err", err)
	}
}
