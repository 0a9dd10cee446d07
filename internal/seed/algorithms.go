package seed

import "time"

// 难度系数的取值边界和基准分
const (
	MinCoefficient = 0.5
	MaxCoefficient = 2.0
	BaselineScore  = 1000.0
)

// 候选分的权重：对局量越大越可信，分析越陈旧越该重算
const (
	candidateMatchWeight = 0.7
	candidateAgeWeight   = 0.3
)

// Coefficient 由平均分计算难度系数。
// 平均分越低说明种子越难，系数越高；平均分非正时按最难处理。
func Coefficient(avgScore float64) float64 {
	if avgScore <= 0 {
		return MaxCoefficient
	}
	c := BaselineScore / avgScore
	if c < MinCoefficient {
		return MinCoefficient
	}
	if c > MaxCoefficient {
		return MaxCoefficient
	}
	return c
}

// LevelOf 把难度系数映射到离散等级
func LevelOf(coefficient float64) string {
	switch {
	case coefficient >= 1.8:
		return LevelVeryHard
	case coefficient >= 1.4:
		return LevelHard
	case coefficient >= 0.8:
		return LevelNormal
	case coefficient >= 0.6:
		return LevelEasy
	default:
		return LevelVeryEasy
	}
}

// CandidateScore 衡量一个种子被优先重算的价值
func CandidateScore(matchCount int, lastAnalysis, now time.Time) float64 {
	days := now.Sub(lastAnalysis).Hours() / 24
	if days < 0 {
		days = 0
	}
	return candidateMatchWeight*float64(matchCount) - candidateAgeWeight*days
}

// levelOrder 从易到难
var levelOrder = []string{LevelVeryEasy, LevelEasy, LevelNormal, LevelHard, LevelVeryHard}

// AdjustLevel 把难度等级上下平移若干档，越界时停在两端
func AdjustLevel(level string, delta int) string {
	idx := 2
	for i, l := range levelOrder {
		if l == level {
			idx = i
			break
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(levelOrder) {
		idx = len(levelOrder) - 1
	}
	return levelOrder[idx]
}

// LevelForSkill 把玩家技能分层映射到推荐的种子难度。
// 推荐略高于当前水平的难度，头部分层直接给最难的种子。
func LevelForSkill(bucket string) string {
	switch bucket {
	case "novice":
		return LevelEasy
	case "intermediate":
		return LevelNormal
	case "advanced":
		return LevelHard
	case "expert":
		return LevelVeryHard
	default:
		return LevelNormal
	}
}
