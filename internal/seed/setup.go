package seed

import (
	"fmt"

	"gorm.io/gorm"
)

// PrimeModule 迁移对局表和画像表结构
func PrimeModule(db *gorm.DB) error {
	if err := db.AutoMigrate(&MatchResult{}, &Statistics{}); err != nil {
		return fmt.Errorf("迁移种子相关表失败: %w", err)
	}
	fmt.Println("种子模块数据库已就绪")
	return nil
}

// WarmupCache 把已有画像整体写入缓存索引。
// 缓存本身不可用时静默跳过，推荐路径会回退数据库。
func WarmupCache(db *gorm.DB) error {
	stats, err := AllStatistics(db)
	if err != nil {
		return err
	}
	for i := range stats {
		if err := WriteThrough(&stats[i]); err != nil {
			fmt.Println("警告:", err)
		}
	}
	fmt.Printf("种子缓存预热完成: %d 个画像\n", len(stats))
	return nil
}
