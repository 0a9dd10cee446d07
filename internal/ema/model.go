package ema

// Record 是某条指标序列在某一天的平滑值。
// (Series, Date) 唯一，同一天重复写入按覆盖处理。
type Record struct {
	ID     uint   `gorm:"primaryKey"`
	Series string `gorm:"not null;uniqueIndex:idx_series_date,priority:1"`
	// Date 固定为 "2006-01-02" 格式，字典序即时间序
	Date     string  `gorm:"not null;uniqueIndex:idx_series_date,priority:2"`
	Raw      float64 `gorm:"not null"` // 当天的原始观测值
	Smoothed float64 `gorm:"not null"` // 平滑后的序列值
}

func (Record) TableName() string {
	return "ema_records"
}
