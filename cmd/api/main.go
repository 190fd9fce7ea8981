package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/alphaclinic/clinic-manager/internal/config"
	dbpkg "github.com/alphaclinic/clinic-manager/internal/db"
	"github.com/alphaclinic/clinic-manager/internal/routes"
)

func main() {

	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	scheduler := routes.RegisterRoutes(r, db, cfg, log)

	if cfg.NotificationsEnabled {
		if _, err := scheduler.Start(); err != nil {
			log.WithError(err).Fatal("failed to start reminder scheduler")
		}
	}

	log.WithField("addr", cfg.Addr()).Info("server running")
	if err := r.Run(cfg.Addr()); err != nil {
		log.WithError(err).Fatal("failed to start server")
	}
}
