package entities

import (
	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// NewPlayerShip 创建玩家飞船实体
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（飞船尺寸、速度、射击冷却）
//   - p: 位置与玩家编号
//
// 返回:
//   - ecs.EntityID: 创建的实体ID，失败返回 0
//   - error: 参数无效时返回错误
func NewPlayerShip(em *ecs.EntityManager, cfg *config.GameConfig, p SpawnParams) (ecs.EntityID, error) {
	if err := checkArgs(em, cfg); err != nil {
		return 0, err
	}

	p.VX, p.VY = 0, 0
	id := newBaseEntity(em, types.KindPlayer, p, components.CollisionComponent{
		Shape:  components.ShapeRect,
		Width:  cfg.Player.Width,
		Height: cfg.Player.Height,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{
		Index:        p.Player,
		BaseSpeed:    cfg.Player.Speed,
		FireCooldown: cfg.Player.FireCooldown,
	})
	return id, nil
}

// PlayerStartPosition 玩家出生点（左上角坐标）
// 单人居中；双人模式下 P1 位于 1/3 宽度，P2 位于 2/3 宽度
func PlayerStartPosition(cfg *config.GameConfig, index types.PlayerIndex, multiplayer bool) (float64, float64) {
	centerX := cfg.Playfield.Width / 2
	if multiplayer {
		centerX = cfg.Playfield.Width * float64(index+1) / 3
	}
	y := cfg.Playfield.Height - config.PlayerBottomMargin - cfg.Player.Height/2
	return centerX - cfg.Player.Width/2, y
}
