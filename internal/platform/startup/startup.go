package startup

import (
	"fmt"

	"github.com/SlpAus/tournament-ranking-backend/internal/ema"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/config"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
	"github.com/SlpAus/tournament-ranking-backend/internal/points"
	"github.com/SlpAus/tournament-ranking-backend/internal/profile"
	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
	"github.com/SlpAus/tournament-ranking-backend/internal/seed"
)

// InitializeApplication 是应用首次启动时执行的总入口
func InitializeApplication() error {
	fmt.Println("开始应用首次初始化...")

	if err := rules.PrimeModule(config.Cfg.Rules.Path); err != nil {
		return err
	}
	if err := ema.PrimeModule(database.DB); err != nil {
		return err
	}
	if err := seed.PrimeModule(database.DB); err != nil {
		return err
	}
	if err := profile.PrimeModule(database.DB); err != nil {
		return err
	}
	if err := points.PrimeModule(database.DB); err != nil {
		return err
	}

	if err := seed.WarmupCache(database.DB); err != nil {
		fmt.Printf("警告: 种子缓存预热失败: %v\n", err)
	}

	fmt.Println("应用初始化完成！")
	return nil
}
