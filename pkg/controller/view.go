package controller

import (
	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/systems"
	"github.com/decker502/spaceataque/pkg/types"
)

// EntityView 渲染用的实体只读副本
type EntityView struct {
	ID     ecs.EntityID
	Kind   types.EntityKind
	Shape  components.ShapeKind
	X, Y   float64 // 外接矩形左上角
	W, H   float64
	Pickup types.PickupKind // 仅 KindPickup
	Player types.PlayerIndex
	// Shielded 玩家护盾生效中
	Shielded bool
}

// BossView Boss 状态
type BossView struct {
	Active    bool
	Health    float64
	MaxHealth float64
	Stage     types.BossStage
}

// View 一帧的只读快照，渲染器只依赖它
type View struct {
	State     game.GameState
	Entities  []EntityView
	Boss      BossView
	Effects   []systems.EffectEntry
	Playfield struct {
		Width, Height float64
	}
}

// View 构建当前帧的只读快照
// 返回的数据都是副本，修改它们不会影响游戏状态
func (gc *GameController) View() View {
	v := View{
		State:   gc.state.Clone(),
		Effects: gc.effects.Entries(),
	}
	v.Playfield.Width = gc.cfg.Playfield.Width
	v.Playfield.Height = gc.cfg.Playfield.Height

	health, maxHealth, active := gc.boss.Health()
	v.Boss = BossView{Active: active, Health: health, MaxHealth: maxHealth, Stage: gc.boss.Stage()}

	for _, kind := range []types.EntityKind{types.KindMeteor, types.KindPickup, types.KindProjectile, types.KindBoss, types.KindPlayer} {
		for _, id := range gc.store.AllOf(kind) {
			pos, ok := ecs.GetComponent[*components.PositionComponent](gc.em, id)
			if !ok {
				continue
			}
			col, ok := ecs.GetComponent[*components.CollisionComponent](gc.em, id)
			if !ok {
				continue
			}
			x, y, w, h := col.Bounds(pos)
			ev := EntityView{ID: id, Kind: kind, Shape: col.Shape, X: x, Y: y, W: w, H: h}
			switch kind {
			case types.KindPickup:
				if pk, ok := ecs.GetComponent[*components.PickupComponent](gc.em, id); ok {
					ev.Pickup = pk.Kind
				}
			case types.KindPlayer:
				if pc, ok := ecs.GetComponent[*components.PlayerComponent](gc.em, id); ok {
					ev.Player = pc.Index
				}
				ev.Shielded = gc.effects.Active(id, types.PickupShield)
			}
			v.Entities = append(v.Entities, ev)
		}
	}
	return v
}

// EffectRemaining 某个玩家的效果剩余时间（HUD 使用）
func (gc *GameController) EffectRemaining(index types.PlayerIndex, kind types.PickupKind) float64 {
	target := ecs.WorldEntity
	if kind != types.PickupSpeedMeteor {
		id, ok := gc.store.Player(index)
		if !ok {
			return 0
		}
		target = id
	}
	return gc.effects.Remaining(target, kind)
}
