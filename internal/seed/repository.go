package seed

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrDuplicateMatch 表示该对局已经入账过
var ErrDuplicateMatch = errors.New("对局已存在")

// ErrNoData 表示种子没有任何有效对局，无法给出画像
var ErrNoData = errors.New("种子没有可分析的对局")

// RecordMatch 追加一条对局记录。MatchID重复时返回 ErrDuplicateMatch。
func RecordMatch(tx *gorm.DB, result *MatchResult) error {
	if err := tx.Create(result).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return ErrDuplicateMatch
		}
		return fmt.Errorf("写入对局记录失败: %w", err)
	}
	return nil
}

// RecomputeStatistics 从对局记录整体重算一个种子的画像并落库。
// 统计口径只认追加式的对局表，聚合行永远可以重建。
func RecomputeStatistics(tx *gorm.DB, seedID string, now time.Time) (*Statistics, error) {
	var agg struct {
		Count int
		Avg   float64
		Min   float64
		Max   float64
	}
	err := tx.Model(&MatchResult{}).
		Select("COUNT(*) AS count, COALESCE(AVG(score), 0) AS avg, "+
			"COALESCE(MIN(score), 0) AS min, COALESCE(MAX(score), 0) AS max").
		Where("seed_id = ?", seedID).
		Scan(&agg).Error
	if err != nil {
		return nil, fmt.Errorf("聚合种子 %s 的对局失败: %w", seedID, err)
	}
	if agg.Count == 0 {
		// 没有数据就不编造系数
		return nil, fmt.Errorf("种子 %s: %w", seedID, ErrNoData)
	}

	coeff := Coefficient(agg.Avg)
	stats := Statistics{
		SeedID:                seedID,
		MatchCount:            agg.Count,
		ScoreCount:            agg.Count,
		AverageScore:          agg.Avg,
		MinScore:              agg.Min,
		MaxScore:              agg.Max,
		DifficultyCoefficient: coeff,
		DifficultyLevel:       LevelOf(coeff),
		LastAnalysisTime:      now,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "seed_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"match_count", "score_count", "average_score", "min_score", "max_score",
			"difficulty_coefficient", "difficulty_level", "last_analysis_time",
		}),
	}).Create(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("写入种子 %s 的画像失败: %w", seedID, err)
	}
	return &stats, nil
}

// GetStatistics 读取单个种子的画像。不存在时返回 (nil, nil)。
func GetStatistics(db *gorm.DB, seedID string) (*Statistics, error) {
	var stats Statistics
	err := db.Where("seed_id = ?", seedID).First(&stats).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询种子 %s 失败: %w", seedID, err)
	}
	return &stats, nil
}

// ListByLevel 返回某难度等级下样本量达标的种子，供候选排序使用
func ListByLevel(db *gorm.DB, level string, minMatches, limit int) ([]Statistics, error) {
	var stats []Statistics
	err := db.Where("difficulty_level = ? AND match_count >= ?", level, minMatches).
		Order("match_count DESC").Limit(limit).Find(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("按难度 %s 查询种子失败: %w", level, err)
	}
	return stats, nil
}

// StaleSeeds 找出画像已落后于对局数据的种子，供批量重算使用。
// 画像尚不存在的新种子也会被选中。
func StaleSeeds(db *gorm.DB, limit int) ([]string, error) {
	var seedIDs []string
	err := db.Raw(`
		SELECT m.seed_id FROM match_results m
		LEFT JOIN seed_statistics s ON s.seed_id = m.seed_id
		GROUP BY m.seed_id
		HAVING s.seed_id IS NULL OR MAX(m.played_at) > s.last_analysis_time
		LIMIT ?`, limit).Scan(&seedIDs).Error
	if err != nil {
		return nil, fmt.Errorf("查询待重算种子失败: %w", err)
	}
	return seedIDs, nil
}

// AllStatistics 返回全部种子画像，升序遍历用于缓存预热
func AllStatistics(db *gorm.DB) ([]Statistics, error) {
	var stats []Statistics
	if err := db.Order("seed_id ASC").Find(&stats).Error; err != nil {
		return nil, fmt.Errorf("遍历种子画像失败: %w", err)
	}
	return stats, nil
}

// PlayerMatches 返回某玩家在某玩法下最近的对局，按时间倒序
func PlayerMatches(db *gorm.DB, uid, gameType string, limit int) ([]MatchResult, error) {
	var results []MatchResult
	err := db.Where("uid = ? AND game_type = ?", uid, gameType).
		Order("played_at DESC").Limit(limit).Find(&results).Error
	if err != nil {
		return nil, fmt.Errorf("查询玩家 %s 的对局失败: %w", uid, err)
	}
	return results, nil
}
