package systems

import (
	"log"
	"math"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/entities"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// EntityStore 场上实体的唯一所有者
// 其他系统只持有实体 ID，通过 EntityStore 请求修改；销毁延迟到帧末 Compact
type EntityStore struct {
	em      *ecs.EntityManager
	cfg     *config.GameConfig
	effects *EffectRegistry
}

// NewEntityStore 创建实体仓库
//
// 参数：
//   - em: 实体管理器
//   - cfg: 游戏配置（场地尺寸、实体参数）
//   - effects: 效果注册表，用于推导移动速度倍率
func NewEntityStore(em *ecs.EntityManager, cfg *config.GameConfig, effects *EffectRegistry) *EntityStore {
	return &EntityStore{em: em, cfg: cfg, effects: effects}
}

// Manager 底层实体管理器（渲染快照使用）
func (s *EntityStore) Manager() *ecs.EntityManager {
	return s.em
}

// Spawn 创建实体
// 失败只记录日志并返回 0，不会中断当前帧
func (s *EntityStore) Spawn(kind types.EntityKind, p entities.SpawnParams) ecs.EntityID {
	id, err := entities.Spawn(s.em, s.cfg, kind, p)
	if err != nil {
		log.Printf("[EntityStore] Warning: failed to spawn %s: %v", kind, err)
		return 0
	}
	return id
}

// Update 推进所有存活实体
//
// 参数：
//   - dt: 帧时长（秒）
//   - intents: 各玩家输入，决定飞船移动
//
// 返回：
//   - []ExitEvent: 从底部离开场地的陨石（已标记销毁），侧面出界不计入
func (s *EntityStore) Update(dt float64, intents game.Intents) []ExitEvent {
	var exits []ExitEvent
	meteorMult := s.effects.MeteorSpeedMultiplier()

	for _, id := range ecs.GetEntitiesWith3[*components.KindComponent, *components.PositionComponent, *components.VelocityComponent](s.em) {
		if !s.IsAlive(id) {
			continue
		}
		kind, _ := ecs.GetComponent[*components.KindComponent](s.em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](s.em, id)

		switch kind.Kind {
		case types.KindPlayer:
			s.movePlayer(id, pos, vel, dt, intents)
			continue
		case types.KindBoss:
			// Boss 的移动由 BossSystem 负责
			continue
		case types.KindMeteor:
			pos.X += vel.VX * meteorMult * dt
			pos.Y += vel.VY * meteorMult * dt
		default:
			pos.X += vel.VX * dt
			pos.Y += vel.VY * dt
		}

		if out, bottom := s.outOfBounds(id, pos, vel); out {
			if bottom && kind.Kind == types.KindMeteor {
				exits = append(exits, ExitEvent{ID: id, Kind: kind.Kind})
			}
			s.Destroy(id)
		}
	}
	return exits
}

// movePlayer 按输入移动飞船并钳制在场地内
// Steer 非 nil 时以飞船中心跟随目标点，单帧位移不超过速度上限
func (s *EntityStore) movePlayer(id ecs.EntityID, pos *components.PositionComponent, vel *components.VelocityComponent, dt float64, intents game.Intents) {
	pc, ok := ecs.GetComponent[*components.PlayerComponent](s.em, id)
	if !ok || int(pc.Index) >= len(intents) {
		return
	}
	intent := intents[pc.Index]
	speed := pc.BaseSpeed * s.effects.SpeedMultiplier(id)

	var dir game.Vec2
	if intent.Steer != nil {
		cx := pos.X + s.cfg.Player.Width/2
		cy := pos.Y + s.cfg.Player.Height/2
		delta := game.Vec2{X: intent.Steer.X - cx, Y: intent.Steer.Y - cy}
		dist := delta.Len()
		if step := speed * dt; dist > 0 && step > 0 {
			dir = delta.Normalized()
			if dist < step {
				// 不越过目标点
				dir.X *= dist / step
				dir.Y *= dist / step
			}
		}
	} else {
		dir = intent.Move
		if dir.Len() > 1 {
			dir = dir.Normalized()
		}
	}

	vel.VX = dir.X * speed
	vel.VY = dir.Y * speed
	pos.X += vel.VX * dt
	pos.Y += vel.VY * dt

	pos.X = math.Max(0, math.Min(pos.X, s.cfg.Playfield.Width-s.cfg.Player.Width))
	pos.Y = math.Max(0, math.Min(pos.Y, s.cfg.Playfield.Height-s.cfg.Player.Height))
}

// outOfBounds 实体是否完全离开场地，bottom 表示从底部离开
// 场地上方是生成区，只有向上运动的实体从顶部离开才算出界
func (s *EntityStore) outOfBounds(id ecs.EntityID, pos *components.PositionComponent, vel *components.VelocityComponent) (out, bottom bool) {
	col, ok := ecs.GetComponent[*components.CollisionComponent](s.em, id)
	if !ok {
		return false, false
	}
	x, y, w, h := col.Bounds(pos)
	switch {
	case y > s.cfg.Playfield.Height:
		return true, true
	case y+h < 0 && vel.VY < 0:
		return true, false
	case x+w < 0 || x > s.cfg.Playfield.Width:
		return true, false
	}
	return false, false
}

// Destroy 标记实体死亡，帧末由 Compact 移除
func (s *EntityStore) Destroy(id ecs.EntityID) {
	if alive, ok := ecs.GetComponent[*components.AliveComponent](s.em, id); ok {
		alive.Alive = false
	}
	s.em.DestroyEntity(id)
}

// Compact 帧末移除已标记的实体，返回移除数量
func (s *EntityStore) Compact() int {
	return s.em.RemoveMarkedEntities()
}

// IsAlive 实体存在且未被标记死亡
func (s *EntityStore) IsAlive(id ecs.EntityID) bool {
	alive, ok := ecs.GetComponent[*components.AliveComponent](s.em, id)
	return ok && alive.Alive
}

// KindOf 返回实体种类
func (s *EntityStore) KindOf(id ecs.EntityID) types.EntityKind {
	if k, ok := ecs.GetComponent[*components.KindComponent](s.em, id); ok {
		return k.Kind
	}
	return types.KindUnknown
}

// AllOf 返回某一种类的全部存活实体，ID 升序
func (s *EntityStore) AllOf(kind types.EntityKind) []ecs.EntityID {
	var out []ecs.EntityID
	for _, id := range ecs.GetEntitiesWith2[*components.KindComponent, *components.AliveComponent](s.em) {
		k, _ := ecs.GetComponent[*components.KindComponent](s.em, id)
		alive, _ := ecs.GetComponent[*components.AliveComponent](s.em, id)
		if k.Kind == kind && alive.Alive {
			out = append(out, id)
		}
	}
	return out
}

// Count 某一种类的存活实体数量
func (s *EntityStore) Count(kind types.EntityKind) int {
	return len(s.AllOf(kind))
}

// Player 返回指定编号的玩家飞船
func (s *EntityStore) Player(index types.PlayerIndex) (ecs.EntityID, bool) {
	for _, id := range s.AllOf(types.KindPlayer) {
		if pc, ok := ecs.GetComponent[*components.PlayerComponent](s.em, id); ok && pc.Index == index {
			return id, true
		}
	}
	return 0, false
}

// Position 返回实体位置组件
func (s *EntityStore) Position(id ecs.EntityID) (*components.PositionComponent, bool) {
	return ecs.GetComponent[*components.PositionComponent](s.em, id)
}

// PlayerPositions 按编号返回玩家位置（存档使用）
func (s *EntityStore) PlayerPositions(multiplayer bool) []game.Vec2 {
	n := 1
	if multiplayer {
		n = types.MaxPlayers
	}
	out := make([]game.Vec2, 0, n)
	for i := 0; i < n; i++ {
		index := types.PlayerIndex(i)
		x, y := entities.PlayerStartPosition(s.cfg, index, multiplayer)
		if id, ok := s.Player(index); ok {
			pos, _ := s.Position(id)
			x, y = pos.X, pos.Y
		}
		out = append(out, game.Vec2{X: x, Y: y})
	}
	return out
}

// SpawnPlayers 清除旧飞船并按出生点（或给定位置）创建新飞船
//
// 参数：
//   - multiplayer: 是否创建第二艘飞船
//   - positions: 可选的位置（读档时使用），不足的按出生点补齐
func (s *EntityStore) SpawnPlayers(multiplayer bool, positions []game.Vec2) {
	for _, id := range s.AllOf(types.KindPlayer) {
		s.Destroy(id)
	}
	n := 1
	if multiplayer {
		n = types.MaxPlayers
	}
	for i := 0; i < n; i++ {
		index := types.PlayerIndex(i)
		x, y := entities.PlayerStartPosition(s.cfg, index, multiplayer)
		if i < len(positions) {
			x, y = positions[i].X, positions[i].Y
		}
		s.Spawn(types.KindPlayer, entities.SpawnParams{X: x, Y: y, Player: index})
	}
}

// ClearNonPlayers 销毁除玩家外的全部实体（阶段切换）
func (s *EntityStore) ClearNonPlayers() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.KindComponent](s.em) {
		if s.KindOf(id) != types.KindPlayer && s.IsAlive(id) {
			s.Destroy(id)
			n++
		}
	}
	return n
}
