package components

import (
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// MeteorComponent 陨石数据
type MeteorComponent struct {
	// Resolved 是否已计分（被击毁、被躲避或被护盾挡下）
	// 每颗陨石最多计分一次
	Resolved bool
}

// ProjectileComponent 玩家子弹
type ProjectileComponent struct {
	Owner  ecs.EntityID // 发射者实体ID
	Damage float64
}

// PickupComponent 道具
type PickupComponent struct {
	Kind types.PickupKind
}
