package entities

import (
	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// NewProjectile 创建玩家子弹实体
// 未指定速度时子弹以配置速度向上飞行
func NewProjectile(em *ecs.EntityManager, cfg *config.GameConfig, p SpawnParams) (ecs.EntityID, error) {
	if err := checkArgs(em, cfg); err != nil {
		return 0, err
	}

	if p.VX == 0 && p.VY == 0 {
		p.VY = -cfg.Player.ProjectileSpeed
	}
	id := newBaseEntity(em, types.KindProjectile, p, components.CollisionComponent{
		Shape:  components.ShapeRect,
		Width:  cfg.Player.ProjectileWidth,
		Height: cfg.Player.ProjectileHeight,
	})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Owner:  p.Owner,
		Damage: cfg.Boss.DamagePerHit,
	})
	return id, nil
}

// MuzzlePosition 子弹出生点：飞船顶部中央
func MuzzlePosition(cfg *config.GameConfig, ship *components.PositionComponent) (float64, float64) {
	return ship.X + cfg.Player.Width/2 - cfg.Player.ProjectileWidth/2, ship.Y - cfg.Player.ProjectileHeight
}
