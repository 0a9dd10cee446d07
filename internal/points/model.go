package points

import "time"

// DateLayout 是账本日期的规范格式，按本地日切日
const DateLayout = "2006-01-02"

// DailyLedger 是 (uid, 日期, 账目类型) 粒度的当日积分账本。
// TotalPoints 记当日已发放点数，递减阶段的推进以它为准；
// RawPoints 记截断后的原始点数，只做审计。
// ConfigHash 钉住当日首次记账时的上限配置。
type DailyLedger struct {
	ID   uint   `gorm:"primaryKey"`
	UID  string `gorm:"type:varchar(36);uniqueIndex:idx_uid_date_kind,priority:1;not null"`
	Date string `gorm:"type:varchar(10);uniqueIndex:idx_uid_date_kind,priority:2;not null"`
	Kind string `gorm:"type:varchar(16);uniqueIndex:idx_uid_date_kind,priority:3;not null"`

	TotalPoints int `gorm:"not null;default:0"`
	RawPoints   int `gorm:"not null;default:0"`
	// SourcePoints 按来源拆分的原始计入点数
	SourcePoints map[string]int `gorm:"serializer:json"`
	ConfigHash   string         `gorm:"type:varchar(16);not null"`

	UpdatedAt time.Time
}

func (DailyLedger) TableName() string {
	return "daily_point_ledgers"
}
