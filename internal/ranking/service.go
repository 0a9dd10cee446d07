package ranking

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
	"github.com/SlpAus/tournament-ranking-backend/internal/points"
	"github.com/SlpAus/tournament-ranking-backend/internal/profile"
	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
	"github.com/SlpAus/tournament-ranking-backend/internal/seed"
)

// ErrDuplicateSubmission 表示该对局凭证已经提交过
var ErrDuplicateSubmission = errors.New("对局已提交过")

// SubmitInput 是一次成绩提交的全部输入
type SubmitInput struct {
	UID       string
	SeedID    string
	MatchID   string
	GameType  string
	Score     float64
	Telemetry points.Telemetry
}

// SubmitOutcome 是提交处理的完整结果。
// Points 是限额前的计算明细，PointsAwarded 是限额后实际发放的经验值。
type SubmitOutcome struct {
	RecommendedRank int              `json:"recommendedRank"`
	Confidence      float64          `json:"confidence"`
	Reasoning       string           `json:"reasoning"`
	Opponents       []Opponent       `json:"syntheticOpponents"`
	Points          points.Result    `json:"points"`
	PointsAwarded   int              `json:"pointsAwarded"`
	ExpLimit        points.LimitInfo `json:"expLimit"`
	SeasonLimit     points.LimitInfo `json:"seasonLimit"`
}

// rng 是有锁的共享随机源，纯算法层通过参数接收随机数以便测试
var (
	rngMu sync.Mutex
	rng   = rand.New(rand.NewSource(time.Now().UnixNano()))
)

func randomFloat() float64 {
	rngMu.Lock()
	defer rngMu.Unlock()
	return rng.Float64()
}

// segmentForBucket 把技能分层映射到段位配置名
func segmentForBucket(bucket string) string {
	switch bucket {
	case profile.BucketNovice:
		return "bronze"
	case profile.BucketIntermediate:
		return "gold"
	case profile.BucketAdvanced, profile.BucketExpert:
		return "diamond"
	default:
		return ""
	}
}

// SubmitScore 处理一次成绩提交。整个流程按
// 建档、定名次、算积分、限额、落库的顺序推进，
// 任何一步失败都在持久化之前中止，所有聚合写入走同一个事务。
func SubmitScore(in SubmitInput) (*SubmitOutcome, error) {
	rs := rules.Active()
	now := time.Now()

	// 种子画像缺失按中性难度处理，首次使用不算错误
	snap := SeedSnapshot{Coefficient: 1.0, Level: seed.LevelNormal}
	stats, err := seed.GetStatistics(database.DB, in.SeedID)
	if err != nil {
		return nil, fmt.Errorf("提交预检失败: %w", err)
	}
	if stats != nil {
		snap = SeedSnapshot{
			AverageScore: stats.AverageScore,
			MinScore:     stats.MinScore,
			MaxScore:     stats.MaxScore,
			Coefficient:  stats.DifficultyCoefficient,
			Level:        stats.DifficultyLevel,
			MatchCount:   stats.MatchCount,
		}
	}

	var (
		outcome  *SubmitOutcome
		newStats *seed.Statistics
	)
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		p, err := profile.GetOrInit(tx, in.UID, in.GameType, true)
		if err != nil {
			return fmt.Errorf("建档阶段失败: %w", err)
		}

		seg := rs.SegmentFor(segmentForBucket(profile.SkillBucket(p)))
		probs, matched := SelectThreshold(seg, in.Score)
		performance := RelativePerformance(in.Score, p.AverageScore)
		if seg.Adaptive {
			probs = AdaptiveBlend(probs, performance, seg.LearningRate)
		}

		var rank int
		if seg.SelectionMode == rules.SelectionExpected {
			rank = ExpectedRank(probs)
		} else {
			rank = SampleRank(probs, randomFloat())
		}

		rngMu.Lock()
		opponents := SynthesizeField(snap, in.Score, rank, seg.MaxRank, rng)
		rngMu.Unlock()

		telemetry := in.Telemetry
		if telemetry.WinningStreak == 0 && rank == 1 {
			telemetry.WinningStreak = p.CurrentWinStreak + 1
		}
		calc := points.Calculate(rs.Points, rank, in.Score, telemetry)

		expInfo, err := points.Grant(tx, in.UID, "match", rules.KindExp, calc.Total, now, rs.Limits[rules.KindExp])
		if err != nil {
			return fmt.Errorf("限额阶段失败: %w", err)
		}
		seasonInfo, err := points.Grant(tx, in.UID, "match", rules.KindSeasonPoints, calc.Total, now, rs.Limits[rules.KindSeasonPoints])
		if err != nil {
			return fmt.Errorf("限额阶段失败: %w", err)
		}

		err = seed.RecordMatch(tx, &seed.MatchResult{
			MatchID:  in.MatchID,
			UID:      in.UID,
			GameType: in.GameType,
			SeedID:   in.SeedID,
			Score:    in.Score,
			Rank:     rank,
			Duration: telemetry.DurationSec,
			Perfect:  telemetry.PerfectScore,
			PlayedAt: now,
		})
		if err != nil {
			if errors.Is(err, seed.ErrDuplicateMatch) {
				return ErrDuplicateSubmission
			}
			return fmt.Errorf("落库阶段失败: %w", err)
		}

		newStats, err = seed.RecomputeStatistics(tx, in.SeedID, now)
		if err != nil {
			return fmt.Errorf("落库阶段失败: %w", err)
		}

		profile.ApplyMatch(p, in.Score, rank, rs.TrendEpsilon)
		if err := profile.Save(tx, p); err != nil {
			return fmt.Errorf("落库阶段失败: %w", err)
		}

		outcome = &SubmitOutcome{
			RecommendedRank: rank,
			Confidence:      Confidence(snap.MatchCount, p.Consistency, matched),
			Reasoning:       Reasoning(in.Score, snap.AverageScore, rank, seg.MaxRank, opponents),
			Opponents:       opponents,
			Points:          calc,
			PointsAwarded:   expInfo.GrantedPoints,
			ExpLimit:        expInfo,
			SeasonLimit:     seasonInfo,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务提交后同步缓存索引，失败只影响推荐性能
	if err := seed.WriteThrough(newStats); err != nil {
		fmt.Println("警告:", err)
	}
	return outcome, nil
}
