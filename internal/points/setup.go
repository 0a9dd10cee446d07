package points

import (
	"fmt"

	"gorm.io/gorm"
)

// PrimeModule 迁移当日账本表结构
func PrimeModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&DailyLedger{}); err != nil {
		return fmt.Errorf("迁移积分账本表失败: %w", err)
	}
	fmt.Println("积分模块已就绪")
	return nil
}
