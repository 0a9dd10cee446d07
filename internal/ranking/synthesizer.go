package ranking

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// 合成对手的难度标签，按名次四分位划分
const (
	OppExtreme = "extreme"
	OppHard    = "hard"
	OppNormal  = "normal"
	OppEasy    = "easy"
)

// 合成对手的行为风格
const (
	BehaviorSupportive  = "supportive"
	BehaviorBalanced    = "balanced"
	BehaviorCompetitive = "competitive"
)

// Opponent 是一个合成的对局参与者
type Opponent struct {
	ID         string  `json:"id"`
	Rank       int     `json:"rank"`
	Score      float64 `json:"score"`
	Difficulty string  `json:"difficulty"`
	Behavior   string  `json:"behavior"`
}

// SeedSnapshot 是合成时用到的种子画像切片
type SeedSnapshot struct {
	AverageScore float64
	MinScore     float64
	MaxScore     float64
	Coefficient  float64
	Level        string
	MatchCount   int
}

// DifficultyForRank 按名次在场内的四分位给对手贴难度标签，
// 头部名次的对手最强。
func DifficultyForRank(rank, maxRank int) string {
	q := float64(rank) / float64(maxRank)
	switch {
	case q <= 0.25:
		return OppExtreme
	case q <= 0.5:
		return OppHard
	case q <= 0.75:
		return OppNormal
	default:
		return OppEasy
	}
}

// behaviorWeights 是各难度下行为风格的抽取比例
var behaviorWeights = map[string][3]float64{
	// supportive, balanced, competitive
	OppExtreme: {0.0, 0.3, 0.7},
	OppHard:    {0.1, 0.4, 0.5},
	OppNormal:  {0.3, 0.5, 0.2},
	OppEasy:    {0.6, 0.4, 0.0},
}

// BehaviorFor 按难度对应的比例抽取行为风格，u ∈ [0,1)
func BehaviorFor(difficulty string, u float64) string {
	w, ok := behaviorWeights[difficulty]
	if !ok {
		return BehaviorBalanced
	}
	switch {
	case u < w[0]:
		return BehaviorSupportive
	case u < w[0]+w[1]:
		return BehaviorBalanced
	default:
		return BehaviorCompetitive
	}
}

// SynthesizeField 为一局比赛合成 maxRank-1 个对手。
// 玩家占据 playerRank，比玩家名次好的对手分数不低于玩家，
// 差的不高于玩家；各对手的分数取自互不重叠的区段，
// 保证整场按名次升序排列时分数单调不增。
func SynthesizeField(snap SeedSnapshot, playerScore float64, playerRank, maxRank int, rng *rand.Rand) []Opponent {
	above := playerRank - 1
	below := maxRank - playerRank
	opponents := make([]Opponent, 0, maxRank-1)

	// 上界参考种子历史最高分，没有参考或参考偏低时外推
	top := snap.MaxScore
	if top <= playerScore {
		top = playerScore*1.25 + float64(above)
	}
	bottom := snap.MinScore
	if bottom >= playerScore || bottom < 0 {
		bottom = playerScore * 0.4
	}

	// 名次越好区段越靠上，第i名占据均分后的第i个区段
	for i := 1; i <= above; i++ {
		span := (top - playerScore) / float64(above)
		hi := top - float64(i-1)*span
		lo := top - float64(i)*span
		opponents = append(opponents, newOpponent(i, maxRank, lo+rng.Float64()*(hi-lo), rng))
	}
	for i := 1; i <= below; i++ {
		rank := playerRank + i
		span := (playerScore - bottom) / float64(below)
		hi := playerScore - float64(i-1)*span
		lo := playerScore - float64(i)*span
		opponents = append(opponents, newOpponent(rank, maxRank, lo+rng.Float64()*(hi-lo), rng))
	}

	// 区段本身不重叠，这里再整体校正一次浮点边界:
	// 名次升序走一遍，把每个分数夹在前一名分数和玩家分数围成的范围里
	sort.Slice(opponents, func(i, j int) bool { return opponents[i].Rank < opponents[j].Rank })
	prev := top + 1
	for i := range opponents {
		o := &opponents[i]
		if o.Rank < playerRank && o.Score < playerScore {
			o.Score = playerScore
		}
		if o.Rank > playerRank {
			if prev > playerScore {
				prev = playerScore
			}
			if o.Score > playerScore {
				o.Score = playerScore
			}
		}
		if o.Score > prev {
			o.Score = prev
		}
		prev = o.Score
	}
	return opponents
}

func newOpponent(rank, maxRank int, score float64, rng *rand.Rand) Opponent {
	difficulty := DifficultyForRank(rank, maxRank)
	return Opponent{
		ID:         "ai-" + uuid.NewString()[:8],
		Rank:       rank,
		Score:      score,
		Difficulty: difficulty,
		Behavior:   BehaviorFor(difficulty, rng.Float64()),
	}
}

// Confidence 给推荐名次一个置信度，取值限制在 [0.1, 0.95]。
// 样本量、发挥稳定性和区间命中各自加分。
func Confidence(sampleCount int, consistency float64, bracketMatched bool) float64 {
	c := 0.5
	sampleBoost := float64(sampleCount) / 100 * 0.2
	if sampleBoost > 0.2 {
		sampleBoost = 0.2
	}
	c += sampleBoost
	c += 0.15 * consistency
	if bracketMatched {
		c += 0.1
	}
	if c < 0.1 {
		c = 0.1
	}
	if c > 0.95 {
		c = 0.95
	}
	return c
}

// Reasoning 生成一段人类可读的推荐说明，只用于诊断展示
func Reasoning(score, historicalMean float64, playerRank, maxRank int, opponents []Opponent) string {
	var sb strings.Builder
	if historicalMean > 0 {
		delta := (score - historicalMean) / historicalMean * 100
		fmt.Fprintf(&sb, "本局分数较历史均值 %+.1f%%，", delta)
	} else {
		sb.WriteString("玩家暂无历史数据，")
	}
	fmt.Fprintf(&sb, "%d人场推荐第%d名。", maxRank, playerRank)

	counts := map[string]int{}
	for _, o := range opponents {
		counts[o.Difficulty]++
	}
	parts := make([]string, 0, 4)
	for _, d := range []string{OppExtreme, OppHard, OppNormal, OppEasy} {
		if counts[d] > 0 {
			parts = append(parts, fmt.Sprintf("%s x%d", d, counts[d]))
		}
	}
	if len(parts) > 0 {
		sb.WriteString("对手构成: " + strings.Join(parts, ", "))
	}
	return sb.String()
}
