package components

import "github.com/decker502/spaceataque/pkg/types"

// PlayerComponent 玩家飞船数据
// 生命值是团队共享的，保存在 GameState.Lives 中
type PlayerComponent struct {
	Index        types.PlayerIndex
	BaseSpeed    float64 // 基础移动速度（像素/秒）
	FireCooldown float64 // 射击冷却（秒）
	CooldownLeft float64 // 剩余冷却时间（秒）
}
