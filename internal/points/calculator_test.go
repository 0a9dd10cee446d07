package points

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
)

func TestOrdinalKey(t *testing.T) {
	cases := map[int]string{
		1: "1st", 2: "2nd", 3: "3rd", 4: "4th",
		11: "11th", 12: "12th", 13: "13th",
		21: "21st", 22: "22nd", 101: "101st", 111: "111th",
	}
	for rank, want := range cases {
		assert.Equal(t, want, OrdinalKey(rank))
	}
}

func TestBasePointsFallback(t *testing.T) {
	pr := rules.DefaultRuleSet().Points
	assert.Equal(t, 100, BasePoints(pr, 1))
	assert.Equal(t, 60, BasePoints(pr, 2))
	assert.Equal(t, 5, BasePoints(pr, 7), "映射外名次走保底点数")
}

func TestCalculateStreakBonus(t *testing.T) {
	pr := rules.DefaultRuleSet().Points

	got := Calculate(pr, 1, 800, Telemetry{WinningStreak: 4})
	assert.Equal(t, 100, got.Base)
	assert.Equal(t, 120, got.Total, "第一名100分加连胜20分")
	assert.Len(t, got.Bonuses, 1)
	assert.Equal(t, rules.BonusWinningStreak, got.Bonuses[0].Kind)
}

func TestCalculateBonusesStack(t *testing.T) {
	pr := rules.DefaultRuleSet().Points

	got := Calculate(pr, 1, 1500, Telemetry{
		WinningStreak: 5,
		DurationSec:   120,
		PerfectScore:  true,
	})
	// 100 + 连胜20 + 满分50 + 速胜30 + 高分25
	assert.Equal(t, 225, got.Total)
	assert.Len(t, got.Bonuses, 4)
}

func TestCalculateNoBonusBelowThresholds(t *testing.T) {
	pr := rules.DefaultRuleSet().Points

	got := Calculate(pr, 4, 900, Telemetry{WinningStreak: 2, DurationSec: 301})
	assert.Equal(t, 10, got.Total)
	assert.Empty(t, got.Bonuses)
}

func TestQuickWinRequiresFirstPlace(t *testing.T) {
	pr := rules.DefaultRuleSet().Points

	got := Calculate(pr, 2, 500, Telemetry{DurationSec: 100})
	assert.Equal(t, 60, got.Total, "非第一名不触发速胜加成")
}
