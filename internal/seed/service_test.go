package seed

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SlpAus/tournament-ranking-backend/internal/ema"
	"github.com/SlpAus/tournament-ranking-backend/internal/platform/database"
)

func useTestDB(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&MatchResult{}, &Statistics{}, &ema.Record{}))

	old := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = old })
}

func TestQuerySeedsByDifficultyScoresBeyondPrefetch(t *testing.T) {
	useTestDB(t)
	now := time.Now()
	stale := now.AddDate(0, 0, -60)

	for i := 0; i < 15; i++ {
		require.NoError(t, database.DB.Create(&Statistics{
			SeedID:           fmt.Sprintf("old-%02d", i),
			MatchCount:       100 - i,
			DifficultyLevel:  LevelNormal,
			LastAnalysisTime: stale,
		}).Error)
	}
	// 对局量排在预取窗口之外，但画像最新
	require.NoError(t, database.DB.Create(&Statistics{
		SeedID:           "fresh",
		MatchCount:       85,
		DifficultyLevel:  LevelNormal,
		LastAnalysisTime: now,
	}).Error)

	got, err := QuerySeedsByDifficulty(LevelNormal, 5, nil, 1)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, "fresh", got[0].SeedID, "加权排序要在完整候选池上进行，不能在预取时截掉新画像")
}

func TestQuerySeedsByDifficultyHonorsExclude(t *testing.T) {
	useTestDB(t)
	now := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, database.DB.Create(&Statistics{
			SeedID:           fmt.Sprintf("seed-%d", i),
			MatchCount:       50 - i,
			DifficultyLevel:  LevelHard,
			LastAnalysisTime: now,
		}).Error)
	}

	got, err := QuerySeedsByDifficulty(LevelHard, 10, []string{"seed-0"}, 1)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, s := range got {
		assert.NotEqual(t, "seed-0", s.SeedID)
	}
}

func TestDifficultyTrendReadsAnalyzerSeries(t *testing.T) {
	useTestDB(t)
	base := time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC)
	for i, avg := range []float64{1.0, 1.2, 1.1} {
		_, err := ema.Update(database.DB, difficultySeries(LevelNormal), base.AddDate(0, 0, i), avg, ema.DefaultAlpha)
		require.NoError(t, err)
	}

	current, points, err := DifficultyTrend(LevelNormal, 7)
	require.NoError(t, err)
	require.Len(t, points, 3)
	assert.Equal(t, "2026-08-25", points[0].Date, "走势按日期升序")
	assert.InDelta(t, points[2].Smoothed, current, 1e-9)

	// 没有数据的等级返回空走势，不报错
	current, points, err = DifficultyTrend(LevelVeryHard, 7)
	require.NoError(t, err)
	assert.Empty(t, points)
	assert.Zero(t, current)
}
