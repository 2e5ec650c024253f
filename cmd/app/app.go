package main

import (
	"os"

	"github.com/floralab/catalog-backend/internal/app"
	config "github.com/floralab/catalog-backend/internal/cfg"
	"github.com/floralab/catalog-backend/pkg/logger"
)

// @title			Flower Catalog Backend API
// @version		1.0
// @description	Синхронизация каталогов цветочных магазинов из CRM и поиск по визуальному сходству
// @BasePath		/api/v1
func main() {
	log := logger.NewSlogLogger()

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
