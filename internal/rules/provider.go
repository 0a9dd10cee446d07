package rules

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// current 始终指向最近一次通过校验的规则快照。
// 读路径无锁，热更新整体替换指针。
var current atomic.Pointer[RuleSet]

// Active 返回当前生效的规则快照。PrimeModule 成功后永不为nil。
func Active() *RuleSet {
	return current.Load()
}

// PrimeModule 加载规则文件并开始监听变更。
// 规则文件不存在时使用内置规则启动，不视为错误。
func PrimeModule(path string) error {
	rs, err := loadFile(path)
	if err != nil {
		return fmt.Errorf("规则加载失败: %w", err)
	}
	current.Store(rs)
	watchFile(path)
	fmt.Println("规则模块已就绪")
	return nil
}

func loadFile(path string) (*RuleSet, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Println("提示: 未找到规则文件，使用内置规则")
			return DefaultRuleSet(), nil
		}
		return nil, err
	}
	rs := &RuleSet{}
	if err := v.Unmarshal(rs); err != nil {
		return nil, fmt.Errorf("规则文件解析失败: %w", err)
	}
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// watchFile 注册文件变更回调。新文件校验失败时保留旧快照继续服务。
func watchFile(path string) {
	w := viper.New()
	w.SetConfigFile(path)
	w.OnConfigChange(func(e fsnotify.Event) {
		rs, err := loadFile(path)
		if err != nil {
			fmt.Printf("警告: 规则热更新被拒绝，沿用旧规则: %v\n", err)
			return
		}
		current.Store(rs)
		fmt.Println("规则已热更新:", e.Name)
	})
	w.WatchConfig()
}

// Hash 返回上限配置的内容指纹，记入当日账本以便审计规则变更
func (lc LimitConfig) Hash() string {
	data, err := json.Marshal(lc)
	if err != nil {
		return "unknown"
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:12]
}
