package entities

import (
	"fmt"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// SpawnParams 创建实体所需的参数
// 不同种类只读取与自己相关的字段
type SpawnParams struct {
	X, Y   float64 // 位置（矩形为左上角，圆形为圆心）
	VX, VY float64 // 速度（像素/秒）

	Player types.PlayerIndex // 玩家编号（Player）
	Pickup types.PickupKind  // 道具种类（Pickup）
	Owner  ecs.EntityID      // 发射者（Projectile）
}

// newBaseEntity 创建带有公共组件的实体
func newBaseEntity(em *ecs.EntityManager, kind types.EntityKind, p SpawnParams, shape components.CollisionComponent) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.KindComponent{Kind: kind})
	ecs.AddComponent(em, id, &components.AliveComponent{Alive: true})
	ecs.AddComponent(em, id, &components.PositionComponent{X: p.X, Y: p.Y})
	ecs.AddComponent(em, id, &components.VelocityComponent{VX: p.VX, VY: p.VY})
	ecs.AddComponent(em, id, &shape)
	return id
}

func checkArgs(em *ecs.EntityManager, cfg *config.GameConfig) error {
	if em == nil {
		return fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return fmt.Errorf("game config cannot be nil")
	}
	return nil
}

// Spawn 按实体种类分派到对应的工厂函数
func Spawn(em *ecs.EntityManager, cfg *config.GameConfig, kind types.EntityKind, p SpawnParams) (ecs.EntityID, error) {
	switch kind {
	case types.KindPlayer:
		return NewPlayerShip(em, cfg, p)
	case types.KindMeteor:
		return NewMeteor(em, cfg, p)
	case types.KindProjectile:
		return NewProjectile(em, cfg, p)
	case types.KindPickup:
		return NewPickup(em, cfg, p)
	case types.KindBoss:
		return NewBoss(em, cfg, p)
	}
	return 0, fmt.Errorf("cannot spawn entity of kind %s", kind)
}
