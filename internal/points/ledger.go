package points

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
)

// Grant 在调用方的事务内完成一笔积分的限额判定和落账。
// 当日账本行加行锁后读改写，同事务内与其余聚合一起提交或一起回滚。
func Grant(tx *gorm.DB, uid, source string, kind rules.LimitKind, basePoints int, day time.Time, cfg rules.LimitConfig) (LimitInfo, error) {
	date := day.Format(DateLayout)
	hash := cfg.Hash()

	var ledger DailyLedger
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("uid = ? AND date = ? AND kind = ?", uid, date, string(kind)).
		First(&ledger).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return LimitInfo{}, fmt.Errorf("读取玩家 %s 的当日账本失败: %w", uid, err)
		}
		ledger = DailyLedger{
			UID:          uid,
			Date:         date,
			Kind:         string(kind),
			SourcePoints: map[string]int{},
			ConfigHash:   hash,
		}
	}
	if ledger.SourcePoints == nil {
		ledger.SourcePoints = map[string]int{}
	}
	// 同一记账日内配置应当保持不变，变了只告警不阻断，
	// 账本保留当日首次记账的配置指纹供审计
	if ledger.ConfigHash != hash {
		fmt.Printf("警告: 玩家 %s 的 %s 账本在当日内配置发生变化 (%s -> %s)\n",
			uid, kind, ledger.ConfigHash, hash)
	}

	info := ApplySoftLimit(source, basePoints, ledger.TotalPoints, ledger.SourcePoints[source], cfg)

	ledger.TotalPoints += info.GrantedPoints
	ledger.RawPoints += info.CountedPoints
	if info.CountedPoints > 0 {
		ledger.SourcePoints[source] += info.CountedPoints
	}
	if err := tx.Save(&ledger).Error; err != nil {
		return LimitInfo{}, fmt.Errorf("写入玩家 %s 的当日账本失败: %w", uid, err)
	}
	return info, nil
}

// TodayLedger 读取玩家当日的账本快照，不存在时返回 (nil, nil)
func TodayLedger(db *gorm.DB, uid string, kind rules.LimitKind, day time.Time) (*DailyLedger, error) {
	var ledger DailyLedger
	err := db.Where("uid = ? AND date = ? AND kind = ?",
		uid, day.Format(DateLayout), string(kind)).First(&ledger).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询玩家 %s 的当日账本失败: %w", uid, err)
	}
	return &ledger, nil
}
