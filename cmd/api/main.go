package main

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	httpadp "fleet-checklist-backend/internal/adapter/http"
	mw "fleet-checklist-backend/internal/adapter/middleware"
	"fleet-checklist-backend/internal/adapter/repository/mysql"
	"fleet-checklist-backend/internal/config"
	"fleet-checklist-backend/internal/infrastructure/cache"
	"fleet-checklist-backend/internal/infrastructure/db"
	"fleet-checklist-backend/internal/logger"
	checklistUC "fleet-checklist-backend/internal/usecase/checklist"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	zlog := logger.New(cfg.LogLevel)
	defer func() { _ = zlog.Sync() }()

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		zlog.Fatalw("open mysql", "err", err)
	}
	if err := db.Migrate(gdb); err != nil {
		zlog.Fatalw("migrate", "err", err)
	}

	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		zlog.Fatalw("open redis", "err", err)
	}

	repo := mysql.NewChecklistRepository(gdb)
	uc := checklistUC.NewUsecase(repo, zlog)
	h := httpadp.NewHandler()
	ch := httpadp.NewChecklistHandler(uc, zlog)

	e := echo.New()
	e.HideBanner = true
	e.Validator = httpadp.NewValidator()
	e.Use(middleware.Logger(), middleware.Recover())
	e.Use(mw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second))

	// routes
	e.GET("/health", h.Health)
	e.POST("/checklists", ch.Create)
	e.GET("/checklists", ch.List)
	e.GET("/checklists/:id", ch.Get)
	e.PATCH("/checklists/:id", ch.Update)
	e.GET("/vehicle/:vehicleNumber/today", ch.Today)
	e.GET("/dashboard", ch.Dashboard)
	e.GET("/export/checklists", ch.Export)

	addr := ":" + cfg.AppPort
	zlog.Infow("listening", "addr", addr)
	if err := e.Start(addr); err != nil {
		zlog.Fatalw("server stopped", "err", err)
	}
}
