package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/SlpAus/tournament-ranking-backend/internal/platform/config"
	"github.com/SlpAus/tournament-ranking-backend/internal/profile"
	"github.com/SlpAus/tournament-ranking-backend/internal/ranking"
	"github.com/SlpAus/tournament-ranking-backend/internal/seed"
)

// SetupRouter 组装全部HTTP路由
func SetupRouter() *gin.Engine {
	r := gin.Default()

	corsConfig := cors.Config{
		AllowOrigins:     config.Cfg.Server.Cors.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsConfig.AllowOrigins) == 0 {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}
	r.Use(cors.New(corsConfig))

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/seeds", seed.QueryByDifficultyHandler)
		apiGroup.GET("/seeds/recommend", seed.RecommendHandler)
		apiGroup.GET("/seeds/trend", seed.DifficultyTrendHandler)
		apiGroup.GET("/profiles/:uid", profile.GetProfileHandler)
		apiGroup.POST("/matches", ranking.IssueMatchHandler)
		apiGroup.POST("/matches/submit", ranking.SubmitHandler)
	}
	return r
}
