package ranking

import (
	"math"

	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
)

// 近期相对表现的离散档位
const (
	PerfExcellent = "excellent"
	PerfGood      = "good"
	PerfAverage   = "average"
	PerfPoor      = "poor"
)

// SelectThreshold 按priority升序找到第一个覆盖该分数的区间，
// 返回其概率分布；没有命中时回退基础分布，matched为false。
func SelectThreshold(seg rules.SegmentConfig, score float64) (probs []float64, matched bool) {
	var best *rules.ScoreThreshold
	for i := range seg.ScoreThresholds {
		t := &seg.ScoreThresholds[i]
		if !t.Contains(score) {
			continue
		}
		if best == nil || t.Priority < best.Priority {
			best = t
		}
	}
	if best != nil {
		return best.RankingProbabilities, true
	}
	return seg.BaseRankingProbability, false
}

// RelativePerformance 把本局分数与历史均值的相对差折算成档位。
// 没有历史数据时按平均档处理。
func RelativePerformance(score, historicalMean float64) string {
	if historicalMean <= 0 {
		return PerfAverage
	}
	ratio := score / historicalMean
	switch {
	case ratio > 1.2:
		return PerfExcellent
	case ratio > 1.1:
		return PerfGood
	case ratio < 0.9:
		return PerfPoor
	default:
		return PerfAverage
	}
}

// perfShift 是各档位对名次分布的平移量，正值向头部名次移动
var perfShift = map[string]int{
	PerfExcellent: 2,
	PerfGood:      1,
	PerfAverage:   0,
	PerfPoor:      -1,
}

// AdaptiveBlend 把配置分布与按近期表现平移后的经验分布混合，
// learningRate 是经验分布的权重。结果重新归一化。
func AdaptiveBlend(probs []float64, performance string, learningRate float64) []float64 {
	out := make([]float64, len(probs))
	copy(out, probs)
	shift := perfShift[performance]
	if learningRate <= 0 || shift == 0 || len(probs) < 2 {
		return out
	}

	// 平移越界的概率质量堆到端点，总质量不变
	shifted := make([]float64, len(probs))
	for i, p := range probs {
		j := i - shift
		if j < 0 {
			j = 0
		}
		if j >= len(probs) {
			j = len(probs) - 1
		}
		shifted[j] += p
	}

	sum := 0.0
	for i := range out {
		out[i] = (1-learningRate)*probs[i] + learningRate*shifted[i]
		sum += out[i]
	}
	if sum > 0 {
		for i := range out {
			out[i] /= sum
		}
	}
	return out
}

// SampleRank 用累积概率法从分布中抽取名次，u ∈ [0,1)。
// 返回值保证落在 [1, len(probs)] 内。
func SampleRank(probs []float64, u float64) int {
	cum := 0.0
	for i, p := range probs {
		cum += p
		if u < cum {
			return i + 1
		}
	}
	// 浮点误差兜底
	return len(probs)
}

// ExpectedRank 取分布的期望名次并四舍五入，用于确定性模式
func ExpectedRank(probs []float64) int {
	expected := 0.0
	for i, p := range probs {
		expected += float64(i+1) * p
	}
	rank := int(math.Round(expected))
	if rank < 1 {
		rank = 1
	}
	if rank > len(probs) {
		rank = len(probs)
	}
	return rank
}
