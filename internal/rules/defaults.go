package rules

// DefaultRuleSet 返回内置的规则表。
// 规则文件缺失时用它启动，规则文件存在时它是被整体覆盖的基线。
func DefaultRuleSet() *RuleSet {
	return &RuleSet{
		DefaultSegment: "gold",
		TrendEpsilon:   0.1,
		Segments: map[string]SegmentConfig{
			"bronze": {
				MaxRank:       8,
				Adaptive:      false,
				SelectionMode: SelectionWeighted,
				LearningRate:  0.0,
				BaseRankingProbability: []float64{
					0.08, 0.12, 0.15, 0.18, 0.17, 0.14, 0.10, 0.06,
				},
				ScoreThresholds: []ScoreThreshold{
					{MinScore: 0, MaxScore: 500, Priority: 1, RankingProbabilities: []float64{
						0.04, 0.08, 0.12, 0.16, 0.20, 0.18, 0.13, 0.09,
					}},
					{MinScore: 500, MaxScore: 0, Priority: 2, RankingProbabilities: []float64{
						0.12, 0.16, 0.18, 0.18, 0.14, 0.10, 0.07, 0.05,
					}},
				},
			},
			"gold": {
				MaxRank:       8,
				Adaptive:      true,
				SelectionMode: SelectionWeighted,
				LearningRate:  0.3,
				BaseRankingProbability: []float64{
					0.12, 0.14, 0.16, 0.16, 0.14, 0.12, 0.09, 0.07,
				},
				ScoreThresholds: []ScoreThreshold{
					{MinScore: 0, MaxScore: 800, Priority: 1, RankingProbabilities: []float64{
						0.06, 0.10, 0.13, 0.16, 0.18, 0.16, 0.12, 0.09,
					}},
					{MinScore: 800, MaxScore: 2000, Priority: 2, RankingProbabilities: []float64{
						0.12, 0.14, 0.16, 0.16, 0.14, 0.12, 0.09, 0.07,
					}},
					{MinScore: 2000, MaxScore: 0, Priority: 3, RankingProbabilities: []float64{
						0.20, 0.18, 0.16, 0.14, 0.11, 0.09, 0.07, 0.05,
					}},
				},
			},
			"diamond": {
				MaxRank:       8,
				Adaptive:      true,
				SelectionMode: SelectionWeighted,
				LearningRate:  0.3,
				BaseRankingProbability: []float64{
					0.15, 0.16, 0.16, 0.14, 0.13, 0.11, 0.08, 0.07,
				},
				ScoreThresholds: []ScoreThreshold{
					{MinScore: 0, MaxScore: 3000, Priority: 1, RankingProbabilities: []float64{
						0.08, 0.11, 0.14, 0.16, 0.16, 0.14, 0.11, 0.10,
					}},
					{MinScore: 3000, MaxScore: 10000, Priority: 2, RankingProbabilities: []float64{
						0.16, 0.17, 0.16, 0.14, 0.12, 0.10, 0.08, 0.07,
					}},
					// 超高分区间明显偏向头部名次
					{MinScore: 10000, MaxScore: 0, Priority: 3, RankingProbabilities: []float64{
						0.45, 0.30, 0.10, 0.05, 0.04, 0.03, 0.02, 0.01,
					}},
				},
			},
		},
		Limits: map[LimitKind]LimitConfig{
			KindExp: {
				FullRewardThreshold:    500,
				ReducedRewardThreshold: 500,
				ReductionStep:          100,
				ReductionRate:          0.10,
				MinRewardRate:          0.10,
			},
			KindSeasonPoints: {
				FullRewardThreshold:    300,
				ReducedRewardThreshold: 300,
				ReductionStep:          60,
				ReductionRate:          0.10,
				MinRewardRate:          0.10,
				SourceCaps: map[string]int{
					"tournament": 200,
				},
			},
		},
		Points: PointRules{
			RankPoints: map[string]int{
				"1st": 100,
				"2nd": 60,
				"3rd": 30,
				"4th": 10,
			},
			DefaultPoints: 5,
			Bonuses: []BonusRule{
				{Kind: BonusWinningStreak, Points: 20, MinStreak: 3},
				{Kind: BonusPerfectScore, Points: 50},
				{Kind: BonusQuickWin, Points: 30, MaxDurationSec: 300},
				{Kind: BonusHighScore, Points: 25, MinScore: 1000},
			},
		},
	}
}
