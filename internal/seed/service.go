package seed

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/SlpAus/tournament-ranking-backend/internal/ema"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
	"github.com/SlpAus/tournament-ranking-backend/pkg/lifecycle"
)

// Recommendation 是一次种子推荐的结果
type Recommendation struct {
	SeedID          string  `json:"seedId"`
	DifficultyLevel string  `json:"difficultyLevel"`
	Coefficient     float64 `json:"coefficient"`
	Reason          string  `json:"reason"`
}

const (
	analyzeInterval  = 5 * time.Minute
	analyzeBatchSize = 50
	candidatePool    = 20
	recentWindow     = 10

	// DefaultMinMatches 是难度查询的缺省样本量门槛，滤掉噪声过大的小样本
	DefaultMinMatches = 10
)

// AnalyzeSeed 重算单个种子的画像并同步缓存。
// 缓存写入失败不回滚数据库，缓存只是索引。
func AnalyzeSeed(seedID string) (*Statistics, error) {
	var stats *Statistics
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		stats, err = RecomputeStatistics(tx, seedID, time.Now())
		return err
	})
	if err != nil {
		return nil, err
	}
	if err := WriteThrough(stats); err != nil {
		fmt.Println("警告:", err)
	}
	return stats, nil
}

// BatchReanalyze 重算一批画像已过期的种子，并把各难度等级的
// 平均难度系数记入日粒度的平滑序列。
func BatchReanalyze(limit int) (int, error) {
	seedIDs, err := StaleSeeds(database.DB, limit)
	if err != nil {
		return 0, err
	}
	levelSum := map[string]float64{}
	levelCount := map[string]int{}
	done := 0
	for _, id := range seedIDs {
		stats, err := AnalyzeSeed(id)
		if err != nil {
			fmt.Printf("警告: 重算种子 %s 失败: %v\n", id, err)
			continue
		}
		levelSum[stats.DifficultyLevel] += stats.DifficultyCoefficient
		levelCount[stats.DifficultyLevel]++
		done++
	}
	now := time.Now()
	for lvl, cnt := range levelCount {
		avg := levelSum[lvl] / float64(cnt)
		if _, err := ema.Update(database.DB, difficultySeries(lvl), now, avg, ema.DefaultAlpha); err != nil {
			fmt.Println("警告:", err)
		}
	}
	return done, nil
}

func difficultySeries(level string) string {
	return "seed_difficulty:" + level
}

// TrendPoint 是难度走势里的一个观测日
type TrendPoint struct {
	Date     string  `json:"date"`
	Raw      float64 `json:"raw"`
	Smoothed float64 `json:"smoothed"`
}

// DifficultyTrend 返回某难度等级平均系数的平滑走势，
// 数据来自后台批量重算写入的日粒度序列。序列为空时返回空切片。
func DifficultyTrend(level string, days int) (float64, []TrendPoint, error) {
	latest, ok, err := ema.Latest(database.DB, difficultySeries(level))
	if err != nil {
		return 0, nil, err
	}
	if !ok {
		return 0, []TrendPoint{}, nil
	}
	recs, err := ema.History(database.DB, difficultySeries(level), days)
	if err != nil {
		return 0, nil, err
	}
	points := make([]TrendPoint, 0, len(recs))
	for _, r := range recs {
		points = append(points, TrendPoint{Date: r.Date, Raw: r.Raw, Smoothed: r.Smoothed})
	}
	return latest, points, nil
}

// QuerySeedsByDifficulty 按难度检索种子，按对局量与画像新鲜度的
// 加权分降序截断。excludeSeeds 是调用方提供的黑名单。
func QuerySeedsByDifficulty(level string, limit int, excludeSeeds []string, minMatches int) ([]Statistics, error) {
	if minMatches <= 0 {
		minMatches = DefaultMinMatches
	}
	if limit <= 0 {
		limit = candidatePool
	}
	excluded := make(map[string]bool, len(excludeSeeds))
	for _, id := range excludeSeeds {
		excluded[id] = true
	}

	// 候选池取大一些再打分，只按对局量预取会把画像更新的种子
	// 挡在加权排序之外，也给黑名单过滤留出余量
	pool := limit + len(excludeSeeds)
	if pool < candidatePool {
		pool = candidatePool
	}
	stats, err := ListByLevel(database.DB, level, minMatches, pool)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	filtered := make([]Statistics, 0, len(stats))
	for _, s := range stats {
		if !excluded[s.SeedID] {
			filtered = append(filtered, s)
		}
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		si := CandidateScore(filtered[i].MatchCount, filtered[i].LastAnalysisTime, now)
		sj := CandidateScore(filtered[j].MatchCount, filtered[j].LastAnalysisTime, now)
		return si > sj
	})
	if len(filtered) > limit {
		filtered = filtered[:limit]
	}
	return filtered, nil
}

// RecommendForPlayer 为玩家挑选一个匹配其水平的种子。
// preference 在技能映射的基础上平移目标难度：
// practice 降一档，challenge 升一档，其余不动。
// 优先从缓存索引取候选，排除玩家最近打过的种子，
// 按对局量与画像新鲜度的加权分挑选。
func RecommendForPlayer(uid, gameType, skillBucket, preference string) (*Recommendation, error) {
	level := LevelForSkill(skillBucket)
	switch preference {
	case "practice":
		level = AdjustLevel(level, -1)
	case "challenge":
		level = AdjustLevel(level, 1)
	}

	recent, err := PlayerMatches(database.DB, uid, gameType, recentWindow)
	if err != nil {
		return nil, err
	}
	played := make(map[string]bool, len(recent))
	for _, m := range recent {
		played[m.SeedID] = true
	}

	candidates, err := candidatesAtLevel(level)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	var best *Statistics
	bestScore := 0.0
	for i := range candidates {
		c := &candidates[i]
		if played[c.SeedID] {
			continue
		}
		score := CandidateScore(c.MatchCount, c.LastAnalysisTime, now)
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	if best == nil {
		// 该难度下没有可用种子，放宽到全部画像
		all, err := AllStatistics(database.DB)
		if err != nil {
			return nil, err
		}
		for i := range all {
			if !played[all[i].SeedID] {
				best = &all[i]
				break
			}
		}
	}
	if best == nil {
		return nil, fmt.Errorf("没有可推荐的种子")
	}
	return &Recommendation{
		SeedID:          best.SeedID,
		DifficultyLevel: best.DifficultyLevel,
		Coefficient:     best.DifficultyCoefficient,
		Reason: fmt.Sprintf("难度 %s，共 %d 局，平均分 %.0f",
			best.DifficultyLevel, best.MatchCount, best.AverageScore),
	}, nil
}

func candidatesAtLevel(level string) ([]Statistics, error) {
	if ids := CachedSeedsByLevel(level, candidatePool); len(ids) > 0 {
		var stats []Statistics
		err := database.DB.Where("seed_id IN ?", ids).Find(&stats).Error
		if err == nil && len(stats) > 0 {
			return stats, nil
		}
	}
	// 人工推荐场景放宽样本门槛，冷启动时也要给得出种子
	return ListByLevel(database.DB, level, 1, candidatePool)
}

// StartAnalyzer 启动后台批量重算循环，随生命周期句柄退出
func StartAnalyzer(handle *lifecycle.Handle) {
	go func() {
		defer handle.Close()
		for {
			if err := handle.Sleep(analyzeInterval); err != nil {
				fmt.Println("种子分析任务已停止")
				return
			}
			n, err := BatchReanalyze(analyzeBatchSize)
			if err != nil {
				fmt.Println("警告: 批量重算失败:", err)
				continue
			}
			if n > 0 {
				fmt.Printf("批量重算完成: %d 个种子\n", n)
			}
		}
	}()
}
