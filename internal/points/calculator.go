package points

import (
	"fmt"

	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
)

// Telemetry 是对局上报中与积分相关的附加信息
type Telemetry struct {
	DurationSec   int  `json:"durationSec"`
	WinningStreak int  `json:"winningStreak"`
	PerfectScore  bool `json:"perfectScore"`
}

// BonusAward 是一条命中的加成
type BonusAward struct {
	Kind   rules.BonusKind `json:"kind"`
	Points int             `json:"points"`
}

// Result 是一次积分计算的明细
type Result struct {
	Base    int          `json:"base"`
	Bonuses []BonusAward `json:"bonuses,omitempty"`
	Total   int          `json:"total"`
}

// OrdinalKey 把名次转成积分表的序数key，如 1 → "1st"、11 → "11th"
func OrdinalKey(rank int) string {
	// 11/12/13 一律用th
	if r := rank % 100; r >= 11 && r <= 13 {
		return fmt.Sprintf("%dth", rank)
	}
	switch rank % 10 {
	case 1:
		return fmt.Sprintf("%dst", rank)
	case 2:
		return fmt.Sprintf("%dnd", rank)
	case 3:
		return fmt.Sprintf("%drd", rank)
	default:
		return fmt.Sprintf("%dth", rank)
	}
}

// BasePoints 查名次对应的基础点数，映射之外走保底
func BasePoints(pr rules.PointRules, rank int) int {
	if pts, ok := pr.RankPoints[OrdinalKey(rank)]; ok {
		return pts
	}
	return pr.DefaultPoints
}

// Calculate 计算一局的总积分。加成规则相互独立，命中即叠加。
func Calculate(pr rules.PointRules, rank int, score float64, t Telemetry) Result {
	result := Result{Base: BasePoints(pr, rank)}
	result.Total = result.Base

	for _, b := range pr.Bonuses {
		hit := false
		switch b.Kind {
		case rules.BonusWinningStreak:
			hit = t.WinningStreak >= b.MinStreak
		case rules.BonusPerfectScore:
			hit = t.PerfectScore
		case rules.BonusQuickWin:
			hit = rank == 1 && t.DurationSec > 0 && t.DurationSec < b.MaxDurationSec
		case rules.BonusHighScore:
			hit = score > b.MinScore
		}
		if hit {
			result.Bonuses = append(result.Bonuses, BonusAward{Kind: b.Kind, Points: b.Points})
			result.Total += b.Points
		}
	}
	return result
}
