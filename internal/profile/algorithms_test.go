package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func newProfile() *Profile {
	return &Profile{
		UID:          "u1",
		GameType:     "standard",
		Trend:        TrendStable,
		Consistency:  0.5,
		RecentScores: []float64{},
	}
}

func TestApplyMatchBasics(t *testing.T) {
	p := newProfile()
	ApplyMatch(p, 800, 1, 0.1)

	assert.Equal(t, 1, p.MatchCount)
	assert.Equal(t, 1, p.Wins)
	assert.Equal(t, 1, p.CurrentWinStreak)
	assert.Equal(t, 800.0, p.AverageScore)
	assert.Equal(t, 800.0, p.BestScore)
	assert.Equal(t, 800.0, p.WorstScore)
	assert.Equal(t, 1.0, p.AverageRank)
}

func TestApplyMatchStreaks(t *testing.T) {
	p := newProfile()
	ApplyMatch(p, 500, 1, 0.1)
	ApplyMatch(p, 600, 1, 0.1)
	assert.Equal(t, 2, p.CurrentWinStreak)
	assert.Zero(t, p.CurrentLoseStreak)

	ApplyMatch(p, 300, 5, 0.1)
	assert.Zero(t, p.CurrentWinStreak, "非第一名打断连胜")
	assert.Equal(t, 1, p.CurrentLoseStreak)
	assert.Equal(t, 2, p.Wins)
	assert.Equal(t, 1, p.Losses)
}

func TestApplyMatchExtremes(t *testing.T) {
	p := newProfile()
	for _, s := range []float64{500, 1200, 300, 900} {
		ApplyMatch(p, s, 2, 0.1)
	}
	assert.Equal(t, 1200.0, p.BestScore)
	assert.Equal(t, 300.0, p.WorstScore)
	assert.InDelta(t, 725.0, p.AverageScore, 1e-9)
}

func TestApplyMatchWindowCap(t *testing.T) {
	p := newProfile()
	for i := 0; i < RecentWindowSize+5; i++ {
		ApplyMatch(p, float64(100+i), 2, 0.1)
	}
	assert.Len(t, p.RecentScores, RecentWindowSize)
	// 窗口里保留的是最近的分数
	assert.Equal(t, float64(100+RecentWindowSize+4), p.RecentScores[RecentWindowSize-1])
}

func TestTrendOf(t *testing.T) {
	assert.Equal(t, TrendStable, TrendOf([]float64{100, 110}, 0.1), "样本不足不判趋势")
	assert.Equal(t, TrendImproving, TrendOf([]float64{100, 100, 150, 160}, 0.1))
	assert.Equal(t, TrendDeclining, TrendOf([]float64{200, 200, 120, 110}, 0.1))
	assert.Equal(t, TrendStable, TrendOf([]float64{100, 100, 105, 102}, 0.1))
}

func TestConsistencyOrdering(t *testing.T) {
	steady := Consistency([]float64{500, 505, 498, 502, 501})
	wild := Consistency([]float64{100, 900, 200, 850, 150})
	assert.Greater(t, steady, wild, "波动越大稳定性越低")

	assert.GreaterOrEqual(t, wild, 0.0)
	assert.LessOrEqual(t, steady, 1.0)
}

func TestConsistencyColdStart(t *testing.T) {
	assert.Equal(t, 0.5, Consistency(nil))
	assert.Equal(t, 0.5, Consistency([]float64{500}))
}

func TestSkillBucket(t *testing.T) {
	p := newProfile()
	assert.Equal(t, BucketNovice, SkillBucket(p), "样本不足按新手处理")

	p.MatchCount = 20
	p.AverageScore = 400
	assert.Equal(t, BucketNovice, SkillBucket(p))
	p.AverageScore = 800
	assert.Equal(t, BucketIntermediate, SkillBucket(p))
	p.AverageScore = 2000
	assert.Equal(t, BucketAdvanced, SkillBucket(p))
	p.AverageScore = 5000
	assert.Equal(t, BucketExpert, SkillBucket(p))
}
