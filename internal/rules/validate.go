package rules

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidRules 表示规则文件未通过结构校验，加载方应保留旧快照
var ErrInvalidRules = errors.New("规则配置校验失败")

const probabilitySumTolerance = 0.01

// requiredRankKeys 是积分映射必须覆盖的名次
var requiredRankKeys = []string{"1st", "2nd", "3rd", "4th"}

// Validate 对整个规则快照做结构校验。
// 任何一处不合法都拒绝整份配置，不做部分接受。
func (rs *RuleSet) Validate() error {
	if len(rs.Segments) == 0 {
		return fmt.Errorf("%w: 至少需要一个段位配置", ErrInvalidRules)
	}
	if _, ok := rs.Segments[rs.DefaultSegment]; !ok {
		return fmt.Errorf("%w: 缺省段位 %q 不存在", ErrInvalidRules, rs.DefaultSegment)
	}
	for name, seg := range rs.Segments {
		if err := validateSegment(name, seg); err != nil {
			return err
		}
	}
	// 两种账目类型缺一不可，零值配置会把所有发放打到保底费率0
	for _, kind := range []LimitKind{KindExp, KindSeasonPoints} {
		if _, ok := rs.Limits[kind]; !ok {
			return fmt.Errorf("%w: 缺少 %s 的上限配置", ErrInvalidRules, kind)
		}
	}
	for kind, lc := range rs.Limits {
		if err := validateLimit(kind, lc); err != nil {
			return err
		}
	}
	if err := validatePoints(rs.Points); err != nil {
		return err
	}
	if rs.TrendEpsilon < 0 || rs.TrendEpsilon >= 1 {
		return fmt.Errorf("%w: trendEpsilon 必须在 [0,1) 内，当前为 %v", ErrInvalidRules, rs.TrendEpsilon)
	}
	return nil
}

func validateSegment(name string, seg SegmentConfig) error {
	if seg.MaxRank < 1 {
		return fmt.Errorf("%w: 段位 %s 的 maxRank 必须为正", ErrInvalidRules, name)
	}
	if seg.SelectionMode != SelectionWeighted && seg.SelectionMode != SelectionExpected {
		return fmt.Errorf("%w: 段位 %s 的 selectionMode %q 未知", ErrInvalidRules, name, seg.SelectionMode)
	}
	if seg.LearningRate < 0 || seg.LearningRate > 1 {
		return fmt.Errorf("%w: 段位 %s 的 learningRate 必须在 [0,1] 内", ErrInvalidRules, name)
	}
	if err := validateDistribution(name, "baseRankingProbability", seg.BaseRankingProbability, seg.MaxRank); err != nil {
		return err
	}
	for i, t := range seg.ScoreThresholds {
		if t.MaxScore > 0 && t.MinScore > t.MaxScore {
			return fmt.Errorf("%w: 段位 %s 第 %d 个分数区间上下界颠倒", ErrInvalidRules, name, i)
		}
		field := fmt.Sprintf("scoreThresholds[%d]", i)
		if err := validateDistribution(name, field, t.RankingProbabilities, seg.MaxRank); err != nil {
			return err
		}
	}
	return nil
}

func validateDistribution(segment, field string, probs []float64, maxRank int) error {
	if len(probs) != maxRank {
		return fmt.Errorf("%w: 段位 %s 的 %s 长度 %d 与 maxRank %d 不一致",
			ErrInvalidRules, segment, field, len(probs), maxRank)
	}
	sum := 0.0
	for i, p := range probs {
		if p < 0 {
			return fmt.Errorf("%w: 段位 %s 的 %s 第 %d 项为负", ErrInvalidRules, segment, field, i)
		}
		sum += p
	}
	if math.Abs(sum-1.0) > probabilitySumTolerance {
		return fmt.Errorf("%w: 段位 %s 的 %s 概率和为 %.4f，超出容差", ErrInvalidRules, segment, field, sum)
	}
	return nil
}

func validateLimit(kind LimitKind, lc LimitConfig) error {
	if kind != KindExp && kind != KindSeasonPoints {
		return fmt.Errorf("%w: 未知的上限账目类型 %q", ErrInvalidRules, kind)
	}
	if lc.FullRewardThreshold < 0 || lc.ReducedRewardThreshold < 0 {
		return fmt.Errorf("%w: %s 的阈值不能为负", ErrInvalidRules, kind)
	}
	if lc.ReductionStep <= 0 {
		return fmt.Errorf("%w: %s 的 reductionStep 必须为正", ErrInvalidRules, kind)
	}
	if lc.ReductionRate <= 0 || lc.ReductionRate >= 1 {
		return fmt.Errorf("%w: %s 的 reductionRate 必须在 (0,1) 内", ErrInvalidRules, kind)
	}
	if lc.MinRewardRate < 0 || lc.MinRewardRate > 1 {
		return fmt.Errorf("%w: %s 的 minRewardRate 必须在 [0,1] 内", ErrInvalidRules, kind)
	}
	for src, cap := range lc.SourceCaps {
		if cap < 0 {
			return fmt.Errorf("%w: %s 来源 %q 的单来源上限不能为负", ErrInvalidRules, kind, src)
		}
	}
	return nil
}

func validatePoints(pr PointRules) error {
	for _, key := range requiredRankKeys {
		if _, ok := pr.RankPoints[key]; !ok {
			return fmt.Errorf("%w: rankPoints 缺少必需名次 %q", ErrInvalidRules, key)
		}
	}
	for key, pts := range pr.RankPoints {
		if pts < 0 {
			return fmt.Errorf("%w: rankPoints[%s] 不能为负", ErrInvalidRules, key)
		}
	}
	if pr.DefaultPoints < 0 {
		return fmt.Errorf("%w: defaultPoints 不能为负", ErrInvalidRules)
	}
	for i, b := range pr.Bonuses {
		if b.Points < 0 {
			return fmt.Errorf("%w: 第 %d 条加成规则点数为负", ErrInvalidRules, i)
		}
		switch b.Kind {
		case BonusWinningStreak:
			if b.MinStreak < 1 {
				return fmt.Errorf("%w: winning_streak 规则的 minStreak 必须为正", ErrInvalidRules)
			}
		case BonusPerfectScore:
			// 无参数
		case BonusQuickWin:
			if b.MaxDurationSec <= 0 {
				return fmt.Errorf("%w: quick_win 规则的 maxDurationSec 必须为正", ErrInvalidRules)
			}
		case BonusHighScore:
			if b.MinScore <= 0 {
				return fmt.Errorf("%w: high_score 规则的 minScore 必须为正", ErrInvalidRules)
			}
		default:
			return fmt.Errorf("%w: 第 %d 条加成规则类型 %q 未知", ErrInvalidRules, i, b.Kind)
		}
	}
	return nil
}
