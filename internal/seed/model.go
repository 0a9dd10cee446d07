package seed

import "time"

// 难度等级，由难度系数映射得到
const (
	LevelVeryEasy = "very_easy"
	LevelEasy     = "easy"
	LevelNormal   = "normal"
	LevelHard     = "hard"
	LevelVeryHard = "very_hard"
)

// MatchResult 是一局对局的追加式记录，统计口径全部从这张表重算。
// MatchID 唯一，用于拦截重复提交。
type MatchResult struct {
	ID       uint   `gorm:"primaryKey"`
	MatchID  string `gorm:"type:varchar(36);uniqueIndex;not null"`
	UID      string `gorm:"type:varchar(36);index:idx_uid_game,priority:1;not null"`
	GameType string `gorm:"type:varchar(32);index:idx_uid_game,priority:2;not null"`
	SeedID   string `gorm:"type:varchar(64);index;not null"`

	Score    float64 `gorm:"not null"`
	Rank     int     `gorm:"not null"` // 最终名次，从1开始
	Duration int     `gorm:"not null"` // 对局时长，秒
	Perfect  bool    `gorm:"not null"`

	PlayedAt  time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (MatchResult) TableName() string {
	return "match_results"
}

// Statistics 是单个种子的聚合画像，由对局记录重算得出。
// LastAnalysisTime 同时充当缓存写入的版本号。
type Statistics struct {
	ID     uint   `gorm:"primaryKey"`
	SeedID string `gorm:"type:varchar(64);uniqueIndex;not null"`

	MatchCount   int     `gorm:"not null;default:0"`
	ScoreCount   int     `gorm:"not null;default:0"`
	AverageScore float64 `gorm:"not null;default:0"`
	MinScore     float64 `gorm:"not null;default:0"`
	MaxScore     float64 `gorm:"not null;default:0"`
	// DifficultyCoefficient 由平均分反推，限制在 [0.5, 2.0]
	DifficultyCoefficient float64 `gorm:"not null;default:1"`
	DifficultyLevel       string  `gorm:"type:varchar(16);not null;default:'normal';index"`

	LastAnalysisTime time.Time `gorm:"not null"`
}

func (Statistics) TableName() string {
	return "seed_statistics"
}
