package seed

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
	"github.com/SlpAus/tournament-ranking-backend/internal/profile"
)

// DifficultyInfo 是难度查询接口的响应条目
type DifficultyInfo struct {
	SeedID           string    `json:"seedId"`
	DifficultyLevel  string    `json:"difficultyLevel"`
	Coefficient      float64   `json:"coefficient"`
	MatchCount       int       `json:"matchCount"`
	AverageScore     float64   `json:"averageScore"`
	LastAnalysisTime time.Time `json:"lastAnalysisTime"`
}

// QueryByDifficultyHandler 处理 GET /api/seeds 的难度检索
func QueryByDifficultyHandler(c *gin.Context) {
	level := c.Query("difficultyLevel")
	switch level {
	case LevelVeryEasy, LevelEasy, LevelNormal, LevelHard, LevelVeryHard:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "难度等级无效"})
		return
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	minMatches, _ := strconv.Atoi(c.DefaultQuery("minMatches", "0"))
	var exclude []string
	if raw := c.Query("excludeSeeds"); raw != "" {
		exclude = strings.Split(raw, ",")
	}

	stats, err := QuerySeedsByDifficulty(level, limit, exclude, minMatches)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "种子检索失败"})
		return
	}
	infos := make([]DifficultyInfo, 0, len(stats))
	for _, s := range stats {
		infos = append(infos, DifficultyInfo{
			SeedID:           s.SeedID,
			DifficultyLevel:  s.DifficultyLevel,
			Coefficient:      s.DifficultyCoefficient,
			MatchCount:       s.MatchCount,
			AverageScore:     s.AverageScore,
			LastAnalysisTime: s.LastAnalysisTime,
		})
	}
	c.JSON(http.StatusOK, infos)
}

// DifficultyTrendHandler 处理 GET /api/seeds/trend 的难度走势查询
func DifficultyTrendHandler(c *gin.Context) {
	level := c.Query("difficultyLevel")
	switch level {
	case LevelVeryEasy, LevelEasy, LevelNormal, LevelHard, LevelVeryHard:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "难度等级无效"})
		return
	}
	days, _ := strconv.Atoi(c.DefaultQuery("days", "14"))
	if days <= 0 {
		days = 14
	}

	current, points, err := DifficultyTrend(level, days)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "难度走势查询失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"difficultyLevel": level,
		"current":         current,
		"points":          points,
	})
}

// RecommendHandler 处理 GET /api/seeds/recommend 的个性化推荐
func RecommendHandler(c *gin.Context) {
	uid := c.Query("uid")
	gameType := c.DefaultQuery("gameType", "standard")
	if uid == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少uid"})
		return
	}

	p, err := profile.GetOrInit(database.DB, uid, gameType, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取玩家画像失败"})
		return
	}
	rec, err := RecommendForPlayer(uid, gameType, profile.SkillBucket(p), c.Query("preference"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "暂时没有可推荐的种子"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
