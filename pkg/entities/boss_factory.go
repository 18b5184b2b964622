package entities

import (
	"slices"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// NewBoss 创建 Boss 实体，满血、沉睡阶段
func NewBoss(em *ecs.EntityManager, cfg *config.GameConfig, p SpawnParams) (ecs.EntityID, error) {
	if err := checkArgs(em, cfg); err != nil {
		return 0, err
	}

	id := newBaseEntity(em, types.KindBoss, p, components.CollisionComponent{
		Shape:  components.ShapeRect,
		Width:  cfg.Boss.Width,
		Height: cfg.Boss.Height,
	})
	ecs.AddComponent(em, id, &components.BossComponent{
		Health:         cfg.Boss.MaxHealth,
		MaxHealth:      cfg.Boss.MaxHealth,
		Stage:          types.BossSleeping,
		MoveThresholds: slices.Clone(cfg.Boss.MoveThresholds),
		PatrolDir:      1,
	})
	return id, nil
}

// BossStartPosition Boss 出生点：顶部居中
func BossStartPosition(cfg *config.GameConfig) (float64, float64) {
	return (cfg.Playfield.Width - cfg.Boss.Width) / 2, cfg.Boss.TopBandMinY
}
