package entities

import (
	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// NewPickup 创建道具实体，以配置速度下落
func NewPickup(em *ecs.EntityManager, cfg *config.GameConfig, p SpawnParams) (ecs.EntityID, error) {
	if err := checkArgs(em, cfg); err != nil {
		return 0, err
	}

	if p.VY == 0 {
		p.VY = cfg.Pickups.FallSpeed
	}
	id := newBaseEntity(em, types.KindPickup, p, components.CollisionComponent{
		Shape:  components.ShapeRect,
		Width:  cfg.Pickups.Size,
		Height: cfg.Pickups.Size,
	})
	ecs.AddComponent(em, id, &components.PickupComponent{Kind: p.Pickup})
	return id, nil
}
