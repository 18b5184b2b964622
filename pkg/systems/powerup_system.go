package systems

import (
	"log"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// PickupOutcome 一次拾取的结果
type PickupOutcome struct {
	Kind             types.PickupKind
	MeteorsDestroyed int
	ScoreGained      int
	LivesGained      int
	LivesLost        int
	LivesDepleted    bool // 本次拾取使生命归零
}

// PowerUpSystem 应用道具效果
// 瞬时效果直接修改 GameState / EntityStore，定时效果写入 EffectRegistry
type PowerUpSystem struct {
	store   *EntityStore
	effects *EffectRegistry
	cfg     *config.GameConfig
}

// NewPowerUpSystem 创建道具系统
func NewPowerUpSystem(store *EntityStore, effects *EffectRegistry, cfg *config.GameConfig) *PowerUpSystem {
	return &PowerUpSystem{store: store, effects: effects, cfg: cfg}
}

// Collect 玩家拾取道具
//
// 参数：
//   - state: 当前游戏状态
//   - collector: 拾取者（玩家实体）
//   - kind: 道具种类
func (p *PowerUpSystem) Collect(state *game.GameState, collector ecs.EntityID, kind types.PickupKind) PickupOutcome {
	out := PickupOutcome{Kind: kind}

	switch kind {
	case types.PickupExtraLife:
		state.AddLives(1)
		out.LivesGained = 1

	case types.PickupStar:
		state.AddItem()

	case types.PickupMeteorBomb:
		out.MeteorsDestroyed = p.DestroyAllMeteors()
		out.ScoreGained = state.AddScore(out.MeteorsDestroyed)

	case types.PickupExplosion:
		// 护盾不阻挡爆炸伤害，被清除的陨石也不计分
		out.MeteorsDestroyed = p.DestroyAllMeteors()
		before := state.Lives
		out.LivesDepleted = state.LoseLives(p.cfg.Effects.ExplosionDamage)
		out.LivesLost = before - state.Lives

	case types.PickupSpeedBoost, types.PickupSlowdown, types.PickupShield:
		entry, ok := p.cfg.Effect(kind)
		if checkDuration(kind, entry, ok) {
			p.effects.Apply(collector, kind, entry.Duration)
		}

	case types.PickupSpeedMeteor:
		entry, ok := p.cfg.Effect(kind)
		if checkDuration(kind, entry, ok) {
			p.effects.Apply(ecs.WorldEntity, kind, entry.Duration)
		}

	default:
		log.Printf("[PowerUpSystem] Warning: unknown pickup kind %d", kind)
	}

	log.Printf("[PowerUpSystem] Entity %d collected %s", collector, kind)
	return out
}

// DestroyAllMeteors 销毁全部存活陨石并标记为已结算
// 返回被销毁的数量，场上没有陨石时为 0
func (p *PowerUpSystem) DestroyAllMeteors() int {
	em := p.store.Manager()
	n := 0
	for _, id := range p.store.AllOf(types.KindMeteor) {
		if mc, ok := ecs.GetComponent[*components.MeteorComponent](em, id); ok {
			if mc.Resolved {
				continue
			}
			mc.Resolved = true
		}
		p.store.Destroy(id)
		n++
	}
	return n
}
