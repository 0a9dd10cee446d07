package profile

import (
	"fmt"

	"gorm.io/gorm"
)

// PrimeModule 迁移画像表结构
func PrimeModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&Profile{}); err != nil {
		return fmt.Errorf("迁移玩家画像表失败: %w", err)
	}
	fmt.Println("画像模块已就绪")
	return nil
}
