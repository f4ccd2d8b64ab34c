package main

import (
	"github.com/serenspace/serenspace/config"
	"github.com/serenspace/serenspace/models"
	"github.com/serenspace/serenspace/routes"
	"github.com/serenspace/serenspace/utils"
)

func main() {
	cfg := config.Load()

	// Initialize logger early
	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(
		&models.User{},
		&models.Mood{},
		&models.Insight{},
		&models.Post{},
		&models.Report{},
		&models.CopingTool{},
	)

	r := routes.SetupRouter(db)

	utils.Sugar.Infof("Starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}
