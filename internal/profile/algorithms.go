package profile

import "math"

// 稳定性计算的时间衰减系数，越新的分数权重越大
const consistencyDecay = 0.9

// ApplyMatch 把一局成绩并入画像。纯函数式更新，只改传入的结构体。
// 取得第一名算胜场，其余算负场。epsilon 是趋势判定的相对阈值。
func ApplyMatch(p *Profile, score float64, rank int, epsilon float64) {
	n := float64(p.MatchCount)
	p.AverageScore = (p.AverageScore*n + score) / (n + 1)
	p.AverageRank = (p.AverageRank*n + float64(rank)) / (n + 1)
	p.MatchCount++

	if p.MatchCount == 1 {
		p.BestScore = score
		p.WorstScore = score
	} else {
		if score > p.BestScore {
			p.BestScore = score
		}
		if score < p.WorstScore {
			p.WorstScore = score
		}
	}

	if rank == 1 {
		p.Wins++
		p.CurrentWinStreak++
		p.CurrentLoseStreak = 0
	} else {
		p.Losses++
		p.CurrentLoseStreak++
		p.CurrentWinStreak = 0
	}

	p.RecentScores = append(p.RecentScores, score)
	if len(p.RecentScores) > RecentWindowSize {
		p.RecentScores = p.RecentScores[len(p.RecentScores)-RecentWindowSize:]
	}

	p.Trend = TrendOf(p.RecentScores, epsilon)
	p.Consistency = Consistency(p.RecentScores)
}

// TrendOf 比较窗口的后半段与前半段均值，相对差超过epsilon才认定趋势
func TrendOf(recent []float64, epsilon float64) string {
	if len(recent) < 4 {
		return TrendStable
	}
	mid := len(recent) / 2
	older := mean(recent[:mid])
	newer := mean(recent[mid:])
	if older <= 0 {
		return TrendStable
	}
	switch {
	case newer > older*(1+epsilon):
		return TrendImproving
	case newer < older*(1-epsilon):
		return TrendDeclining
	default:
		return TrendStable
	}
}

// Consistency 用时间加权的变异系数衡量发挥稳定性。
// 分数剧烈波动时再按极差分档打折。样本不足时取中性值。
func Consistency(recent []float64) float64 {
	if len(recent) < 2 {
		return 0.5
	}

	// 最新的分数在窗口尾部，权重从尾部向前衰减
	totalWeight := 0.0
	weightedSum := 0.0
	n := len(recent)
	for i := 0; i < n; i++ {
		w := math.Pow(consistencyDecay, float64(n-1-i))
		totalWeight += w
		weightedSum += w * recent[i]
	}
	weightedMean := weightedSum / totalWeight
	if weightedMean <= 0 {
		return 0.5
	}

	weightedVar := 0.0
	for i := 0; i < n; i++ {
		w := math.Pow(consistencyDecay, float64(n-1-i))
		d := recent[i] - weightedMean
		weightedVar += w * d * d
	}
	weightedVar /= totalWeight

	cv := math.Sqrt(weightedVar) / weightedMean
	c := 1 - cv
	if c < 0 {
		c = 0
	}
	if c > 1 {
		c = 1
	}

	// 极差修正：窗口内出现过大起大落时额外降档
	lo, hi := recent[0], recent[0]
	for _, s := range recent[1:] {
		if s < lo {
			lo = s
		}
		if s > hi {
			hi = s
		}
	}
	spread := (hi - lo) / weightedMean
	switch {
	case spread > 1.0:
		c *= 0.8
	case spread > 0.6:
		c *= 0.9
	}
	return c
}

// SkillBucket 把画像折算成技能分层。
// 样本太少时一律按新手处理，避免把运气当实力。
func SkillBucket(p *Profile) string {
	if p.MatchCount < 5 {
		return BucketNovice
	}
	switch {
	case p.AverageScore >= 3000:
		return BucketExpert
	case p.AverageScore >= 1500:
		return BucketAdvanced
	case p.AverageScore >= 500:
		return BucketIntermediate
	default:
		return BucketNovice
	}
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}
