package ema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Record{}))
	return db
}

func day(s string) time.Time {
	d, _ := time.Parse(DateLayout, s)
	return d
}

func TestUpdateChainsFromPreviousDay(t *testing.T) {
	db := testDB(t)

	got, err := Update(db, "s", day("2026-08-01"), 100, 0.15)
	require.NoError(t, err)
	assert.Equal(t, 100.0, got, "序列首日直接采用原始值")

	got, err = Update(db, "s", day("2026-08-02"), 200, 0.15)
	require.NoError(t, err)
	assert.InDelta(t, 0.15*200+0.85*100, got, 1e-9)

	v, ok, err := Lookup(db, "s", day("2026-08-02"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.InDelta(t, got, v, 1e-9)
}

func TestUpdateSameDayOverwrite(t *testing.T) {
	db := testDB(t)
	_, err := Update(db, "s", day("2026-08-01"), 100, 0.15)
	require.NoError(t, err)
	_, err = Update(db, "s", day("2026-08-02"), 200, 0.15)
	require.NoError(t, err)

	// 同一天重写从前一天重算，不叠加上一次的写入
	got, err := Update(db, "s", day("2026-08-02"), 300, 0.15)
	require.NoError(t, err)
	assert.InDelta(t, 0.15*300+0.85*100, got, 1e-9)

	var count int64
	require.NoError(t, db.Model(&Record{}).Where("series = ?", "s").Count(&count).Error)
	assert.EqualValues(t, 2, count, "覆盖写不产生新行")
}

func TestUpdateColdRestartAfterGap(t *testing.T) {
	db := testDB(t)
	_, err := Update(db, "s", day("2026-08-01"), 100, 0.15)
	require.NoError(t, err)

	// 断档一天后重新冷启动，不回看更早的记录
	got, err := Update(db, "s", day("2026-08-03"), 500, 0.15)
	require.NoError(t, err)
	assert.Equal(t, 500.0, got)
}

func TestLookupMissing(t *testing.T) {
	db := testDB(t)
	_, ok, err := Lookup(db, "s", day("2026-08-01"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLatestAndHistory(t *testing.T) {
	db := testDB(t)
	for i, raw := range []float64{100, 120, 90} {
		_, err := Update(db, "s", day("2026-08-01").AddDate(0, 0, i), raw, 0.15)
		require.NoError(t, err)
	}
	_, err := Update(db, "other", day("2026-08-03"), 999, 0.15)
	require.NoError(t, err)

	latest, ok, err := Latest(db, "s")
	require.NoError(t, err)
	assert.True(t, ok)

	recs, err := History(db, "s", 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, "2026-08-02", recs[0].Date, "历史按日期升序返回")
	assert.Equal(t, "2026-08-03", recs[1].Date)
	assert.InDelta(t, latest, recs[1].Smoothed, 1e-9)
}
