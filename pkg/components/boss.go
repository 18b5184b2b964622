package components

import "github.com/decker502/spaceataque/pkg/types"

// BossComponent Boss 数据
type BossComponent struct {
	Health    float64 // 当前生命值 0..MaxHealth
	MaxHealth float64
	Stage     types.BossStage

	// MoveThresholds 剩余的移动阈值（降序），每越过一个阈值 Boss 重新定位一次
	MoveThresholds []float64

	// Patrolling 是否处于水平巡逻模式
	Patrolling bool
	// PatrolDir 巡逻方向 +1/-1
	PatrolDir float64

	Defeated bool
}
