package entities

import (
	"math"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// NewMeteor 创建陨石实体
// 陨石使用圆形碰撞体，位置为圆心，向下运动
func NewMeteor(em *ecs.EntityManager, cfg *config.GameConfig, p SpawnParams) (ecs.EntityID, error) {
	if err := checkArgs(em, cfg); err != nil {
		return 0, err
	}

	id := newBaseEntity(em, types.KindMeteor, p, components.CollisionComponent{
		Shape:  components.ShapeCircle,
		Radius: MeteorRadius(cfg),
	})
	ecs.AddComponent(em, id, &components.MeteorComponent{})
	return id, nil
}

// MeteorRadius 陨石碰撞半径
func MeteorRadius(cfg *config.GameConfig) float64 {
	return math.Min(cfg.Meteor.Width, cfg.Meteor.Height) / 2
}
