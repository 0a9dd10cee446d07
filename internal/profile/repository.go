package profile

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GetOrInit 读取玩家画像，不存在时返回一份零值画像（不落库）。
// forUpdate为真时加行锁，用于成绩入账事务。
func GetOrInit(tx *gorm.DB, uid, gameType string, forUpdate bool) (*Profile, error) {
	q := tx.Where("uid = ? AND game_type = ?", uid, gameType)
	if forUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var p Profile
	err := q.First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Profile{
				UID:          uid,
				GameType:     gameType,
				Trend:        TrendStable,
				Consistency:  0.5,
				RecentScores: []float64{},
			}, nil
		}
		return nil, fmt.Errorf("查询玩家 %s 的画像失败: %w", uid, err)
	}
	return &p, nil
}

// Save 落库整份画像，新画像走插入，已有画像整体覆盖
func Save(tx *gorm.DB, p *Profile) error {
	if err := tx.Save(p).Error; err != nil {
		return fmt.Errorf("保存玩家 %s 的画像失败: %w", p.UID, err)
	}
	return nil
}
