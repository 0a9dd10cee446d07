package seed

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
)

// Redis键布局：
//   seed:stats:<seedID>   HASH  画像字段
//   seed:level:<level>    ZSET  member=seedID score=对局量
const (
	statsKeyPrefix = "seed:stats:"
	levelKeyPrefix = "seed:level:"

	maxCacheRetries = 3
)

func statsKey(seedID string) string { return statsKeyPrefix + seedID }
func levelKey(level string) string  { return levelKeyPrefix + level }

// WriteThrough 把一份画像快照写入缓存。
// 用 WATCH 保证并发重算下旧快照不会覆盖新快照：
// 只有当缓存中的分析时间不晚于本快照时才写入。
func WriteThrough(stats *Statistics) error {
	if !database.RedisAvailable {
		return nil
	}
	key := statsKey(stats.SeedID)
	version := stats.LastAnalysisTime.UnixMilli()

	txf := func(tx *redis.Tx) error {
		cached, err := tx.HGet(database.Ctx, key, "analyzed_at").Result()
		if err != nil && !errors.Is(err, redis.Nil) {
			return err
		}
		if err == nil {
			if cachedAt, perr := strconv.ParseInt(cached, 10, 64); perr == nil && cachedAt > version {
				// 缓存里已经是更新的快照，放弃本次写入
				return nil
			}
		}
		_, err = tx.TxPipelined(database.Ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(database.Ctx, key, map[string]interface{}{
				"coefficient": stats.DifficultyCoefficient,
				"level":       stats.DifficultyLevel,
				"match_count": stats.MatchCount,
				"avg_score":   stats.AverageScore,
				"analyzed_at": version,
			})
			for _, lvl := range levelOrder {
				if lvl == stats.DifficultyLevel {
					pipe.ZAdd(database.Ctx, levelKey(lvl), redis.Z{
						Score:  float64(stats.MatchCount),
						Member: stats.SeedID,
					})
				} else {
					pipe.ZRem(database.Ctx, levelKey(lvl), stats.SeedID)
				}
			}
			return nil
		})
		return err
	}

	for i := 0; i < maxCacheRetries; i++ {
		err := database.RDB.Watch(database.Ctx, txf, key)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return fmt.Errorf("种子 %s 的缓存写入失败: %w", stats.SeedID, err)
	}
	return fmt.Errorf("种子 %s 的缓存写入冲突重试耗尽", stats.SeedID)
}

// CachedSeedsByLevel 从缓存取某难度下对局量最高的若干种子。
// 缓存不可用或未命中时返回空切片，由调用方回退数据库。
func CachedSeedsByLevel(level string, limit int) []string {
	if !database.RedisAvailable {
		return nil
	}
	ids, err := database.RDB.ZRevRange(database.Ctx, levelKey(level), 0, int64(limit-1)).Result()
	if err != nil {
		fmt.Printf("警告: 读取难度 %s 的缓存索引失败: %v\n", level, err)
		return nil
	}
	return ids
}
