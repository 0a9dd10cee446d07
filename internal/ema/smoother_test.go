package ema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothColdStart(t *testing.T) {
	// 没有前值时直接采用原始观测
	assert.Equal(t, 42.0, Smooth(DefaultAlpha, 0, 42.0, false))
}

func TestSmoothBlend(t *testing.T) {
	got := Smooth(0.15, 100, 200, true)
	assert.InDelta(t, 0.15*200+0.85*100, got, 1e-9)
}

func TestSmoothFullAlpha(t *testing.T) {
	// alpha为1时完全跟随原始值
	assert.Equal(t, 200.0, Smooth(1.0, 100, 200, true))
}

func TestSmoothDampens(t *testing.T) {
	// 平滑值应落在前值和原始值之间
	got := Smooth(0.15, 100, 200, true)
	assert.Greater(t, got, 100.0)
	assert.Less(t, got, 200.0)
}
