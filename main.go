package main

import (
	"embed"
	"log"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"go.uber.org/zap"

	"github.com/meshlens/meshlens/internal/config"
	"github.com/meshlens/meshlens/internal/logger"
)

//go:embed all:frontend/dist
var frontendAssets embed.FS

func main() {
	config.ParseFlags()

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	app := NewApp(cfg)

	err = wails.Run(&options.App{
		Title:  "MeshLens",
		Width:  1280,
		Height: 800,
		AssetServer: &assetserver.Options{
			Assets: frontendAssets,
		},
		OnStartup: app.startup,
		Bind: []interface{}{
			app,
		},
	})
	if err != nil {
		logger.Log.Fatal("wails run failed", zap.Error(err))
	}
}
