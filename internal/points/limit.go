package points

import (
	"math"

	"github.com/SlpAus/tournament-ranking-backend/internal/rules"
)

// 软上限的阶段标签
const (
	PhaseFull         = "full"          // 全额区
	PhaseReduced      = "reduced"       // 递减区
	PhaseFloor        = "floor"         // 保底区
	PhaseSourceCapped = "source_capped" // 单来源封顶
)

// LimitInfo 是一次软上限判定的结果。
// GrantedPoints 推进当日累计，CountedPoints 是截断后的原始点数，
// 只用于单来源额度和审计，调用方负责落账。
type LimitInfo struct {
	Phase         string  `json:"phase"`
	Rate          float64 `json:"rate"`
	GrantedPoints int     `json:"grantedPoints"`
	CountedPoints int     `json:"countedPoints"`
}

// ApplySoftLimit 对一笔基础积分应用两阶段递减上限。纯函数，
// 不读写任何存储，当日累计由调用方提供并持久化。
//
// 阶段划分按当日已发放的点数：
//  1. 未达全额阈值时按100%发放，超出本阶段余量的部分留到下次调用；
//  2. 此后的递减区内，本阶段每攒满一个 reductionStep 费率下调
//     一次 reductionRate，不低于 minRewardRate，发放额向下取整；
//  3. 两个阶段耗尽后按 minRewardRate 保底发放，不做硬切断。
//
// 单来源封顶优先生效：来源额度用尽直接发0，临界时先截断再进入分段。
func ApplySoftLimit(source string, basePoints, dailyTotal, dailySource int, cfg rules.LimitConfig) LimitInfo {
	if basePoints <= 0 {
		return LimitInfo{Phase: PhaseFull, Rate: 1.0}
	}

	counted := basePoints
	if cap, ok := cfg.SourceCaps[source]; ok {
		if dailySource >= cap {
			return LimitInfo{Phase: PhaseSourceCapped, Rate: 0}
		}
		if dailySource+counted > cap {
			counted = cap - dailySource
		}
	}

	fullEnd := cfg.FullRewardThreshold
	reducedEnd := cfg.FullRewardThreshold + cfg.ReducedRewardThreshold

	switch {
	case dailyTotal < fullEnd:
		granted := counted
		if room := fullEnd - dailyTotal; granted > room {
			granted = room
		}
		return LimitInfo{Phase: PhaseFull, Rate: 1.0, GrantedPoints: granted, CountedPoints: counted}

	case dailyTotal < reducedEnd:
		// 0个完整步长不降费率，第一个 reductionStep 内仍按100%发放
		steps := (dailyTotal - fullEnd) / cfg.ReductionStep
		rate := 1.0 - cfg.ReductionRate*float64(steps)
		if rate < cfg.MinRewardRate {
			rate = cfg.MinRewardRate
		}
		eligible := counted
		if room := reducedEnd - dailyTotal; eligible > room {
			eligible = room
		}
		granted := int(math.Floor(float64(eligible) * rate))
		// 不足1分的零头放行1分，否则边界上的余量永远耗不尽
		if granted == 0 && eligible > 0 {
			granted = 1
		}
		return LimitInfo{Phase: PhaseReduced, Rate: rate, GrantedPoints: granted, CountedPoints: counted}

	default:
		granted := int(math.Floor(float64(counted) * cfg.MinRewardRate))
		return LimitInfo{Phase: PhaseFloor, Rate: cfg.MinRewardRate, GrantedPoints: granted, CountedPoints: counted}
	}
}
