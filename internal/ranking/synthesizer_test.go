package ranking

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() SeedSnapshot {
	return SeedSnapshot{
		AverageScore: 1000,
		MinScore:     200,
		MaxScore:     2500,
		Coefficient:  1.0,
		Level:        "normal",
		MatchCount:   50,
	}
}

// 把玩家和合成对手拼成完整的场，校验名次与分数的单调关系
func assertFieldConsistent(t *testing.T, opponents []Opponent, playerScore float64, playerRank, maxRank int) {
	t.Helper()
	require.Len(t, opponents, maxRank-1)

	type entry struct {
		rank  int
		score float64
	}
	field := []entry{{playerRank, playerScore}}
	seen := map[int]bool{playerRank: true}
	for _, o := range opponents {
		assert.False(t, seen[o.Rank], "名次 %d 重复", o.Rank)
		seen[o.Rank] = true
		assert.GreaterOrEqual(t, o.Rank, 1)
		assert.LessOrEqual(t, o.Rank, maxRank)
		field = append(field, entry{o.Rank, o.Score})
	}

	sort.Slice(field, func(i, j int) bool { return field[i].rank < field[j].rank })
	for i := 1; i < len(field); i++ {
		assert.GreaterOrEqual(t, field[i-1].score, field[i].score,
			"名次 %d 的分数不应低于名次 %d", field[i].rank, field[i-1].rank)
	}
}

func TestSynthesizeFieldOrdering(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for playerRank := 1; playerRank <= 8; playerRank++ {
		opponents := SynthesizeField(testSnapshot(), 1200, playerRank, 8, rng)
		assertFieldConsistent(t, opponents, 1200, playerRank, 8)
	}
}

func TestSynthesizeFieldManySeeds(t *testing.T) {
	for s := int64(0); s < 50; s++ {
		rng := rand.New(rand.NewSource(s))
		opponents := SynthesizeField(testSnapshot(), 777, 4, 8, rng)
		assertFieldConsistent(t, opponents, 777, 4, 8)
	}
}

func TestSynthesizeFieldScoreAboveHistory(t *testing.T) {
	// 玩家分数高于种子历史最高分时仍能排出合法的场
	rng := rand.New(rand.NewSource(2))
	opponents := SynthesizeField(testSnapshot(), 9000, 3, 8, rng)
	assertFieldConsistent(t, opponents, 9000, 3, 8)
}

func TestSynthesizeFieldNoHistory(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	snap := SeedSnapshot{Coefficient: 1.0, Level: "normal"}
	opponents := SynthesizeField(snap, 500, 5, 8, rng)
	assertFieldConsistent(t, opponents, 500, 5, 8)
}

func TestSynthesizeFieldSoloField(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	assert.Empty(t, SynthesizeField(testSnapshot(), 100, 1, 1, rng))
}

func TestDifficultyForRankQuartiles(t *testing.T) {
	assert.Equal(t, OppExtreme, DifficultyForRank(1, 8))
	assert.Equal(t, OppExtreme, DifficultyForRank(2, 8))
	assert.Equal(t, OppHard, DifficultyForRank(3, 8))
	assert.Equal(t, OppHard, DifficultyForRank(4, 8))
	assert.Equal(t, OppNormal, DifficultyForRank(5, 8))
	assert.Equal(t, OppNormal, DifficultyForRank(6, 8))
	assert.Equal(t, OppEasy, DifficultyForRank(7, 8))
	assert.Equal(t, OppEasy, DifficultyForRank(8, 8))
}

func TestBehaviorForWeights(t *testing.T) {
	// 极端难度的对手不会是supportive，简单难度的不会是competitive
	for u := 0.0; u < 1.0; u += 0.01 {
		assert.NotEqual(t, BehaviorSupportive, BehaviorFor(OppExtreme, u))
		assert.NotEqual(t, BehaviorCompetitive, BehaviorFor(OppEasy, u))
	}
	assert.Equal(t, BehaviorBalanced, BehaviorFor("unknown", 0.5))
}

func TestReasoningMentionsField(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	opponents := SynthesizeField(testSnapshot(), 1200, 2, 8, rng)
	text := Reasoning(1200, 1000, 2, 8, opponents)
	assert.Contains(t, text, "第2名")
	assert.Contains(t, text, "8人场")
	assert.Contains(t, text, "对手构成")
}
