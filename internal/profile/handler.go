package profile

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
)

// GetProfileHandler 处理 GET /api/profiles/:uid 的画像查询。
// 不存在的玩家返回一份零值画像，不视为错误。
func GetProfileHandler(c *gin.Context) {
	uid := c.Param("uid")
	gameType := c.DefaultQuery("gameType", "standard")

	p, err := GetOrInit(database.DB, uid, gameType, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "读取玩家画像失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"uid":               p.UID,
		"gameType":          p.GameType,
		"matchCount":        p.MatchCount,
		"wins":              p.Wins,
		"losses":            p.Losses,
		"currentWinStreak":  p.CurrentWinStreak,
		"currentLoseStreak": p.CurrentLoseStreak,
		"averageScore":      p.AverageScore,
		"bestScore":         p.BestScore,
		"worstScore":        p.WorstScore,
		"averageRank":       p.AverageRank,
		"trend":             p.Trend,
		"consistency":       p.Consistency,
		"skillBucket":       SkillBucket(p),
	})
}
