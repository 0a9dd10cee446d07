package ema

import (
	"fmt"

	"gorm.io/gorm"
)

// PrimeModule 迁移序列表结构
func PrimeModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("迁移EMA序列表失败: %w", err)
	}
	fmt.Println("EMA模块已就绪")
	return nil
}
