package points

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
)

func ledgerDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DailyLedger{}))
	return db
}

func grantOnce(t *testing.T, db *gorm.DB, uid string, base int, day time.Time, cfg rules.LimitConfig) LimitInfo {
	var info LimitInfo
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		info, err = Grant(tx, uid, "match", rules.KindExp, base, day, cfg)
		return err
	})
	require.NoError(t, err)
	return info
}

func TestGrantAdvancesTotalByGrantedPoints(t *testing.T) {
	db := ledgerDB(t)
	cfg := expConfig()
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	first := grantOnce(t, db, "u1", 450, day, cfg)
	assert.Equal(t, 450, first.GrantedPoints)

	// 第二笔跨过全额阈值，只发本阶段余量50分
	second := grantOnce(t, db, "u1", 100, day, cfg)
	assert.Equal(t, PhaseFull, second.Phase)
	assert.Equal(t, 50, second.GrantedPoints)

	ledger, err := TodayLedger(db, "u1", rules.KindExp, day)
	require.NoError(t, err)
	require.NotNil(t, ledger)
	assert.Equal(t, 500, ledger.TotalPoints, "当日累计按实际发放额推进")
	assert.Equal(t, 550, ledger.RawPoints, "审计口径记截断后的原始点数")

	// 未发放的50分滚入递减区，第一个步长内仍全额发放
	third := grantOnce(t, db, "u1", 50, day, cfg)
	assert.Equal(t, PhaseReduced, third.Phase)
	assert.InDelta(t, 1.0, third.Rate, 1e-9)
	assert.Equal(t, 50, third.GrantedPoints)
}

func TestGrantSourceCapCountsRawPoints(t *testing.T) {
	db := ledgerDB(t)
	cfg := expConfig()
	cfg.SourceCaps = map[string]int{"tournament": 200}
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	var info LimitInfo
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		info, err = Grant(tx, "u1", "tournament", rules.KindExp, 150, day, cfg)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 150, info.GrantedPoints)

	err = db.Transaction(func(tx *gorm.DB) error {
		var err error
		info, err = Grant(tx, "u1", "tournament", rules.KindExp, 100, day, cfg)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, PhaseFull, info.Phase)
	assert.Equal(t, 50, info.GrantedPoints, "来源额度按原始点数截断")

	ledger, err := TodayLedger(db, "u1", rules.KindExp, day)
	require.NoError(t, err)
	require.NotNil(t, ledger)
	assert.Equal(t, 200, ledger.SourcePoints["tournament"])
}

func TestGrantSeparateDaysAndKinds(t *testing.T) {
	db := ledgerDB(t)
	cfg := expConfig()
	day := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)

	grantOnce(t, db, "u1", 300, day, cfg)
	grantOnce(t, db, "u1", 300, day.AddDate(0, 0, 1), cfg)

	ledger, err := TodayLedger(db, "u1", rules.KindExp, day)
	require.NoError(t, err)
	require.NotNil(t, ledger)
	assert.Equal(t, 300, ledger.TotalPoints, "不同记账日互不影响")

	ledger, err = TodayLedger(db, "u1", rules.KindSeasonPoints, day)
	require.NoError(t, err)
	assert.Nil(t, ledger, "不同账目类型各记各的账")
}
