package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/tournament-ranking-backend/api"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/config"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/shutdown"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/startup"
	"github.com/SlpAus/tournament-ranking-backend/internal/seed"
	"github.com/SlpAus/tournament-ranking-backend/pkg/lifecycle"
	"github.com/SlpAus/tournament-ranking-backend/pkg/token"
)

func main() {
	if _, err := config.LoadConfig(); err != nil {
		panic(fmt.Sprintf("配置加载失败: %v", err))
	}
	gin.SetMode(config.Cfg.Server.Mode)

	token.GenerateSecretKey()
	database.InitDB(config.Cfg.Database.Sqlite)
	database.InitRedis(config.Cfg.Database.Redis)

	if err := startup.InitializeApplication(); err != nil {
		panic(fmt.Sprintf("应用初始化失败，无法启动: %v", err))
	}

	// 两级生命周期管理：第一级优雅收尾，第二级强制退出
	gracefulMgr := lifecycle.NewManager()
	forcefulMgr := lifecycle.NewManager()

	analyzerHandle, err := gracefulMgr.NewServiceHandle("种子批量分析")
	if err != nil {
		panic(fmt.Sprintf("后台任务注册失败: %v", err))
	}
	seed.StartAnalyzer(analyzerHandle)

	r := api.SetupRouter()
	server := &http.Server{
		Addr:    config.Cfg.Server.Address,
		Handler: r,
	}

	go func() {
		fmt.Println("服务器已准备就绪，开始监听", config.Cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			panic("服务器启动失败: " + err.Error())
		}
	}()

	coordinator := shutdown.NewCoordinator(gracefulMgr, forcefulMgr)
	coordinator.ListenForSignalsAndShutdown(server)
}
