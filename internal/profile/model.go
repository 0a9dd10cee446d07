package profile

import "time"

// 近期分数窗口的最大长度
const RecentWindowSize = 10

// 表现趋势
const (
	TrendImproving = "improving"
	TrendStable    = "stable"
	TrendDeclining = "declining"
)

// 技能分层，推荐和名次合成都以它为入口
const (
	BucketNovice       = "novice"
	BucketIntermediate = "intermediate"
	BucketAdvanced     = "advanced"
	BucketExpert       = "expert"
)

// Profile 是玩家在某个玩法下的表现画像。
// (UID, GameType) 唯一，每次成绩入账后原地更新。
type Profile struct {
	ID       uint   `gorm:"primaryKey"`
	UID      string `gorm:"type:varchar(36);uniqueIndex:idx_uid_game,priority:1;not null"`
	GameType string `gorm:"type:varchar(32);uniqueIndex:idx_uid_game,priority:2;not null"`

	MatchCount int `gorm:"not null;default:0"`
	Wins       int `gorm:"not null;default:0"`
	Losses     int `gorm:"not null;default:0"`
	// 连胜连败互斥，一边增长另一边清零
	CurrentWinStreak  int `gorm:"not null;default:0"`
	CurrentLoseStreak int `gorm:"not null;default:0"`

	AverageScore float64 `gorm:"not null;default:0"`
	BestScore    float64 `gorm:"not null;default:0"`
	WorstScore   float64 `gorm:"not null;default:0"`
	AverageRank  float64 `gorm:"not null;default:0"`

	// RecentScores 是最近若干局的分数环形窗口，最旧的在前
	RecentScores []float64 `gorm:"serializer:json"`
	Trend        string    `gorm:"type:varchar(16);not null;default:'stable'"`
	// Consistency 在 [0,1] 内，越高表示发挥越稳定
	Consistency float64 `gorm:"not null;default:0.5"`

	UpdatedAt time.Time
}

func (Profile) TableName() string {
	return "player_profiles"
}
