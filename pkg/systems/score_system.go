package systems

import (
	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// TickReport 一帧事件消费的汇总，控制器据此触发音效
type TickReport struct {
	MeteorsDestroyed int // 被子弹击毁
	MeteorsAvoided   int // 从底部离开
	MeteorsBlocked   int // 被护盾挡下
	PlayerHits       int // 玩家受到陨石伤害的次数
	BossHits         int
	BossDefeated     bool
	ScoreGained      int
	LivesLost        int
	LivesDepleted    bool // 本帧生命归零
	Pickups          []PickupOutcome
}

// ScoreSystem 消费碰撞与离场事件，更新分数、生命与道具
type ScoreSystem struct {
	store    *EntityStore
	effects  *EffectRegistry
	powerups *PowerUpSystem
	boss     *BossSystem
}

// NewScoreSystem 创建计分系统
func NewScoreSystem(store *EntityStore, effects *EffectRegistry, powerups *PowerUpSystem, boss *BossSystem) *ScoreSystem {
	return &ScoreSystem{store: store, effects: effects, powerups: powerups, boss: boss}
}

// Consume 按固定顺序处理本帧事件
// 先结算离场陨石，再按 SortEvents 的顺序处理碰撞；
// 每个事件处理前检查双方仍存活，所以同一帧内先被子弹击毁的陨石不会再伤害玩家
//
// 参数：
//   - state: 当前游戏状态
//   - events: CollisionResolver 的输出
//   - exits: EntityStore.Update 的输出
func (s *ScoreSystem) Consume(state *game.GameState, events []CollisionEvent, exits []ExitEvent) TickReport {
	var report TickReport
	em := s.store.Manager()

	for _, exit := range exits {
		if exit.Kind != types.KindMeteor {
			continue
		}
		if s.resolveMeteor(exit.ID) {
			report.MeteorsAvoided++
			report.ScoreGained += state.AddScore(1)
		}
	}

	ordered := make([]CollisionEvent, len(events))
	copy(ordered, events)
	SortEvents(ordered)

	for _, ev := range ordered {
		if !s.store.IsAlive(ev.A) || !s.store.IsAlive(ev.B) {
			continue
		}

		switch ev.Pair() {
		case PairProjectileMeteor:
			s.store.Destroy(ev.A)
			s.store.Destroy(ev.B)
			if s.resolveMeteor(ev.B) {
				report.MeteorsDestroyed++
				report.ScoreGained += state.AddScore(1)
			}

		case PairProjectileBoss:
			damage := 0.0
			if pc, ok := ecs.GetComponent[*components.ProjectileComponent](em, ev.A); ok {
				damage = pc.Damage
			}
			s.store.Destroy(ev.A)
			report.BossHits++
			if s.boss.Hit(state, damage) {
				report.BossDefeated = true
			}

		case PairPlayerMeteor:
			s.store.Destroy(ev.B)
			if !s.resolveMeteor(ev.B) {
				continue
			}
			if s.effects.Active(ev.A, types.PickupShield) {
				report.MeteorsBlocked++
				report.ScoreGained += state.AddScore(1)
				continue
			}
			before := state.Lives
			if state.LoseLives(1) {
				report.LivesDepleted = true
			}
			report.LivesLost += before - state.Lives
			report.PlayerHits++

		case PairPlayerPickup:
			pk, ok := ecs.GetComponent[*components.PickupComponent](em, ev.B)
			s.store.Destroy(ev.B)
			if !ok {
				continue
			}
			out := s.powerups.Collect(state, ev.A, pk.Kind)
			report.ScoreGained += out.ScoreGained
			report.LivesLost += out.LivesLost
			report.LivesDepleted = report.LivesDepleted || out.LivesDepleted
			report.Pickups = append(report.Pickups, out)
		}
	}

	state.ClampLives()
	return report
}

// resolveMeteor 标记陨石已结算，返回本次是否为首次结算
func (s *ScoreSystem) resolveMeteor(id ecs.EntityID) bool {
	mc, ok := ecs.GetComponent[*components.MeteorComponent](s.store.Manager(), id)
	if !ok || mc.Resolved {
		return false
	}
	mc.Resolved = true
	return true
}
