package ema

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DateLayout 是序列日期的规范格式
const DateLayout = "2006-01-02"

// Update 把一天的原始观测写入序列并计算平滑值。
// alpha 必须在 (0,1] 内，非法时回退缺省值。
// 同一天重复调用按覆盖处理：每次都从前一天的平滑值重算，结果幂等。
func Update(db *gorm.DB, series string, day time.Time, raw, alpha float64) (float64, error) {
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultAlpha
	}
	date := day.Format(DateLayout)

	// 只看前一天的记录，序列断档时重新冷启动
	prevDate := day.AddDate(0, 0, -1).Format(DateLayout)
	var prev Record
	hasPrev := true
	err := db.Where("series = ? AND date = ?", series, prevDate).First(&prev).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("查询序列 %s 的历史值失败: %w", series, err)
		}
		hasPrev = false
	}

	smoothed := Smooth(alpha, prev.Smoothed, raw, hasPrev)
	rec := Record{Series: series, Date: date, Raw: raw, Smoothed: smoothed}
	err = db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "series"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"raw", "smoothed"}),
	}).Create(&rec).Error
	if err != nil {
		return 0, fmt.Errorf("写入序列 %s 失败: %w", series, err)
	}
	return smoothed, nil
}

// Lookup 返回序列在指定日期的平滑值。没有记录时 ok 为 false，
// 调用方自行决定回退口径（比如当期算术平均）。
func Lookup(db *gorm.DB, series string, day time.Time) (float64, bool, error) {
	var rec Record
	err := db.Where("series = ? AND date = ?", series, day.Format(DateLayout)).First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("查询序列 %s 失败: %w", series, err)
	}
	return rec.Smoothed, true, nil
}

// Latest 返回序列最近一天的平滑值。序列为空时返回 (0, false, nil)。
func Latest(db *gorm.DB, series string) (float64, bool, error) {
	var rec Record
	err := db.Where("series = ?", series).Order("date DESC").First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("查询序列 %s 失败: %w", series, err)
	}
	return rec.Smoothed, true, nil
}

// History 返回序列最近n天的记录，按日期升序。
func History(db *gorm.DB, series string, n int) ([]Record, error) {
	var recs []Record
	err := db.Where("series = ?", series).
		Order("date DESC").Limit(n).Find(&recs).Error
	if err != nil {
		return nil, fmt.Errorf("查询序列 %s 历史失败: %w", series, err)
	}
	// 反转为升序
	for i, j := 0, len(recs)-1; i < j; i, j = i+1, j-1 {
		recs[i], recs[j] = recs[j], recs[i]
	}
	return recs, nil
}
