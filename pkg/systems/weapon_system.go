package systems

import (
	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/entities"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// WeaponSystem 处理玩家射击与冷却
type WeaponSystem struct {
	store *EntityStore
	cfg   *config.GameConfig
}

// NewWeaponSystem 创建射击系统
func NewWeaponSystem(store *EntityStore, cfg *config.GameConfig) *WeaponSystem {
	return &WeaponSystem{store: store, cfg: cfg}
}

// Update 推进冷却并为按下射击的玩家发射子弹
//
// 返回：
//   - []ecs.EntityID: 本帧新建的子弹
func (w *WeaponSystem) Update(dt float64, intents game.Intents) []ecs.EntityID {
	var fired []ecs.EntityID
	em := w.store.Manager()
	for _, id := range w.store.AllOf(types.KindPlayer) {
		pc, ok := ecs.GetComponent[*components.PlayerComponent](em, id)
		if !ok {
			continue
		}
		pc.CooldownLeft = max(0, pc.CooldownLeft-dt)
		if int(pc.Index) >= len(intents) || !intents[pc.Index].Fire || pc.CooldownLeft > 0 {
			continue
		}

		pos, _ := w.store.Position(id)
		x, y := entities.MuzzlePosition(w.cfg, pos)
		if pid := w.store.Spawn(types.KindProjectile, entities.SpawnParams{X: x, Y: y, Owner: id}); pid != 0 {
			fired = append(fired, pid)
			pc.CooldownLeft = pc.FireCooldown
		}
	}
	return fired
}
