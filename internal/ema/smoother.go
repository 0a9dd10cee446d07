package ema

// DefaultAlpha 是指数滑动平均的缺省平滑系数。
// 值越大对新观测越敏感，0.15在日粒度序列上大约对应两周的记忆窗口。
const DefaultAlpha = 0.15

// Smooth 计算一步指数滑动平均。
// hasPrev为false表示序列首个观测，此时直接采用原始值。
func Smooth(alpha, prev, raw float64, hasPrev bool) float64 {
	if !hasPrev {
		return raw
	}
	return alpha*raw + (1-alpha)*prev
}
