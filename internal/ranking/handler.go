package ranking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SlpAus/tournament-ranking-backend/internal/points"
	"github.com/SlpAus/tournament-ranking-backend/pkg/token"
)

type issueRequest struct {
	UID      string `json:"uid" binding:"required"`
	SeedID   string `json:"seedId" binding:"required"`
	GameType string `json:"gameType"`
}

// IssueMatchHandler 处理 POST /api/matches，为一局新比赛签发凭证。
// 凭证绑定 (对局, 种子, 玩家)，提交时验签防止伪造。
func IssueMatchHandler(c *gin.Context) {
	var req issueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体无效"})
		return
	}

	matchID := uuid.NewString()
	signature, err := token.GenerateMatchSignature(token.MatchVoucher{
		MatchID: matchID,
		SeedID:  req.SeedID,
		UID:     req.UID,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "凭证签发失败"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"matchId":   matchID,
		"signature": signature,
	})
}

type submitRequest struct {
	UID       string           `json:"uid" binding:"required"`
	SeedID    string           `json:"seedId" binding:"required"`
	MatchID   string           `json:"matchId" binding:"required"`
	Signature string           `json:"signature" binding:"required"`
	GameType  string           `json:"gameType"`
	Score     *float64         `json:"score" binding:"required"`
	Telemetry points.Telemetry `json:"telemetry"`
}

// SubmitHandler 处理 POST /api/matches/submit 的成绩提交
func SubmitHandler(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求体无效"})
		return
	}
	if *req.Score < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "分数不能为负"})
		return
	}
	voucher := token.MatchVoucher{MatchID: req.MatchID, SeedID: req.SeedID, UID: req.UID}
	if !token.ValidateMatchSignature(voucher, req.Signature) {
		c.JSON(http.StatusForbidden, gin.H{"error": "凭证无效"})
		return
	}
	if req.GameType == "" {
		req.GameType = "standard"
	}

	outcome, err := SubmitScore(SubmitInput{
		UID:       req.UID,
		SeedID:    req.SeedID,
		MatchID:   req.MatchID,
		GameType:  req.GameType,
		Score:     *req.Score,
		Telemetry: req.Telemetry,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateSubmission) {
			c.JSON(http.StatusConflict, gin.H{"error": "该对局已提交过"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "成绩处理失败"})
		return
	}
	c.JSON(http.StatusOK, outcome)
}
