package ranking

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
)

func diamondSegment() rules.SegmentConfig {
	return rules.DefaultRuleSet().Segments["diamond"]
}

func TestSelectThresholdFirstMatchByPriority(t *testing.T) {
	seg := rules.SegmentConfig{
		MaxRank:                2,
		BaseRankingProbability: []float64{0.5, 0.5},
		ScoreThresholds: []rules.ScoreThreshold{
			{MinScore: 0, MaxScore: 1000, Priority: 2, RankingProbabilities: []float64{0.2, 0.8}},
			{MinScore: 0, MaxScore: 500, Priority: 1, RankingProbabilities: []float64{0.7, 0.3}},
		},
	}
	probs, matched := SelectThreshold(seg, 300)
	assert.True(t, matched)
	assert.Equal(t, []float64{0.7, 0.3}, probs, "priority小的区间优先")
}

func TestSelectThresholdFallback(t *testing.T) {
	seg := diamondSegment()
	probs, matched := SelectThreshold(seg, -5)
	assert.False(t, matched)
	assert.Equal(t, seg.BaseRankingProbability, probs)
}

func TestSampleRankWithinBounds(t *testing.T) {
	seg := diamondSegment()
	// 超高分区间的分布偏向头部，抽样也只能落在 [1, maxRank]
	probs, matched := SelectThreshold(seg, 12000)
	require.True(t, matched)

	for u := 0.0; u < 1.0; u += 0.001 {
		rank := SampleRank(probs, u)
		assert.GreaterOrEqual(t, rank, 1)
		assert.LessOrEqual(t, rank, seg.MaxRank)
	}
	// 前两个名次占75%的概率质量
	assert.Equal(t, 1, SampleRank(probs, 0.0))
	assert.Equal(t, 1, SampleRank(probs, 0.44))
	assert.Equal(t, 2, SampleRank(probs, 0.46))
	assert.Equal(t, 8, SampleRank(probs, 0.9999))
}

func TestSampleRankFloatTail(t *testing.T) {
	// 浮点和略小于1时兜底到最后一名
	probs := []float64{0.5, 0.49999999}
	assert.Equal(t, 2, SampleRank(probs, 0.9999999999))
}

func TestExpectedRank(t *testing.T) {
	assert.Equal(t, 1, ExpectedRank([]float64{1, 0, 0, 0}))
	assert.Equal(t, 4, ExpectedRank([]float64{0, 0, 0, 1}))
	assert.Equal(t, 2, ExpectedRank([]float64{0.3, 0.4, 0.3, 0}))
}

func TestRelativePerformanceBuckets(t *testing.T) {
	assert.Equal(t, PerfExcellent, RelativePerformance(1300, 1000))
	assert.Equal(t, PerfGood, RelativePerformance(1150, 1000))
	assert.Equal(t, PerfAverage, RelativePerformance(1000, 1000))
	assert.Equal(t, PerfPoor, RelativePerformance(850, 1000))
	assert.Equal(t, PerfAverage, RelativePerformance(500, 0), "无历史按平均档")
}

func TestAdaptiveBlendShiftsTowardTop(t *testing.T) {
	probs := []float64{0.1, 0.2, 0.3, 0.4}
	blended := AdaptiveBlend(probs, PerfExcellent, 0.5)

	sum := 0.0
	for _, p := range blended {
		sum += p
	}
	assert.InDelta(t, 1.0, sum, 1e-9, "混合后仍是概率分布")
	assert.Greater(t, blended[0], probs[0], "好表现向头部名次倾斜")
	assert.Less(t, blended[3], probs[3])
}

func TestAdaptiveBlendPoorShiftsDown(t *testing.T) {
	probs := []float64{0.4, 0.3, 0.2, 0.1}
	blended := AdaptiveBlend(probs, PerfPoor, 0.5)
	assert.Less(t, blended[0], probs[0])
	assert.Greater(t, blended[3], probs[3])
}

func TestAdaptiveBlendNoop(t *testing.T) {
	probs := []float64{0.25, 0.25, 0.25, 0.25}
	assert.Equal(t, probs, AdaptiveBlend(probs, PerfAverage, 0.5))
	assert.Equal(t, probs, AdaptiveBlend(probs, PerfExcellent, 0))
}

func TestConfidenceRange(t *testing.T) {
	for _, samples := range []int{0, 10, 100, 10000} {
		for _, consistency := range []float64{0, 0.5, 1} {
			for _, matched := range []bool{true, false} {
				c := Confidence(samples, consistency, matched)
				assert.GreaterOrEqual(t, c, 0.1)
				assert.LessOrEqual(t, c, 0.95)
				assert.False(t, math.IsNaN(c))
			}
		}
	}
	assert.Greater(t,
		Confidence(100, 0.8, true),
		Confidence(0, 0.2, false),
		"样本多、发挥稳、区间命中时置信度更高")
}
