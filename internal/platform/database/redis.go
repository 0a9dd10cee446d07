package database

import (
	"context"
	"fmt"

	"github.com/SlpAus/tournament-ranking-backend/internal/platform/config"
	"github.com/redis/go-redis/v9"
)

// RDB 是一个全局的Redis客户端实例，供项目其他部分使用
var RDB *redis.Client

// Ctx 是一个全局的上下文，用于Redis操作
var Ctx = context.Background()

// RedisAvailable 标记Redis是否可用；连接失败时进入降级模式，
// 所有缓存读写都会被跳过，SQLite仍是唯一的事实来源
var RedisAvailable bool

// InitRedis 初始化与Redis数据库的连接
func InitRedis(cfg config.RedisConfig) {
	// 创建一个新的Redis客户端，使用从配置文件加载的参数
	RDB = redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 使用Ping命令来测试连接是否成功
	_, err := RDB.Ping(Ctx).Result()
	if err != nil {
		// 缓存层不可用只影响推荐索引的性能，不阻止启动
		fmt.Printf("警告: 无法连接到Redis，推荐索引进入降级模式: %v\n", err)
		RedisAvailable = false
		return
	}

	RedisAvailable = true
	fmt.Println("Redis 连接成功！")
}
