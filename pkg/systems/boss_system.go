package systems

import (
	"log"
	"math/rand"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/entities"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// healthEpsilon 低于该值的生命视为 0，避免浮点误差留下残血
const healthEpsilon = 1e-9

// BossSystem Boss 遭遇战状态机：Dormant → Active → Defeated
// 每局最多激活一次，击败后不会重生
type BossSystem struct {
	store *EntityStore
	cfg   *config.GameConfig
	rng   *rand.Rand
	id    ecs.EntityID
}

// NewBossSystem 创建 Boss 系统
//
// 参数：
//   - store: 实体仓库
//   - cfg: 游戏配置
//   - rng: 随机源，决定重新定位的位置
func NewBossSystem(store *EntityStore, cfg *config.GameConfig, rng *rand.Rand) *BossSystem {
	return &BossSystem{store: store, cfg: cfg, rng: rng}
}

// TryActivate 检查入场条件，满足时生成 Boss
// 条件：本阶段要求 Boss、基础目标（分数与星星）已达成、Boss 仍处于 Dormant
//
// 返回：
//   - bool: 本次调用是否激活了 Boss
func (b *BossSystem) TryActivate(state *game.GameState) bool {
	if state.Run != types.RunPlaying || state.Boss != types.BossDormant {
		return false
	}
	phase, ok := b.cfg.Phase(state.Phase)
	if !ok || !phase.BossRequired || !objectivesMet(b.cfg, state) {
		return false
	}

	x, y := entities.BossStartPosition(b.cfg)
	id := b.store.Spawn(types.KindBoss, entities.SpawnParams{X: x, Y: y})
	if id == 0 {
		return false
	}
	b.id = id
	state.Boss = types.BossActive
	log.Printf("[BossSystem] Boss activated in phase %d (score=%d, items=%d)", state.Phase, state.Score, state.ItemsCollected)
	return true
}

// Hit Boss 受到一次子弹伤害
//
// 参数：
//   - state: 当前游戏状态
//   - damage: 伤害值
//
// 返回：
//   - bool: 本次伤害是否击败了 Boss（每局只会返回一次 true）
func (b *BossSystem) Hit(state *game.GameState, damage float64) bool {
	if state.Boss != types.BossActive {
		return false
	}
	bc, ok := b.component()
	if !ok || bc.Defeated {
		return false
	}
	if damage < 0 {
		game.ReportInvariant("boss-damage", "negative damage %.3f ignored", damage)
		return false
	}

	bc.Health -= damage
	if bc.Health < healthEpsilon {
		bc.Health = 0
	}

	switch {
	case bc.Health <= b.cfg.Boss.EnragedAt:
		bc.Stage = types.BossEnraged
	case bc.Health <= b.cfg.Boss.AwakeAt:
		bc.Stage = types.BossAwake
	}

	relocate := false
	for len(bc.MoveThresholds) > 0 && bc.Health <= bc.MoveThresholds[0] {
		bc.MoveThresholds = bc.MoveThresholds[1:]
		relocate = true
	}
	if bc.Health <= b.cfg.Boss.PatrolFrom {
		bc.Patrolling = true
	}

	if bc.Health == 0 {
		bc.Defeated = true
		state.Boss = types.BossDefeated
		state.BossDefeated = true
		bonus := state.AddScore(b.cfg.Boss.DefeatBonus)
		b.store.Destroy(b.id)
		log.Printf("[BossSystem] Boss defeated, bonus %d (score=%d)", bonus, state.Score)
		return true
	}

	if relocate {
		b.relocate()
	}
	return false
}

// relocate 在顶部区域内随机重新定位
func (b *BossSystem) relocate() {
	pos, ok := b.store.Position(b.id)
	if !ok {
		return
	}
	maxX := max(0, b.cfg.Playfield.Width-b.cfg.Boss.Width)
	minY := b.cfg.Boss.TopBandMinY
	maxY := max(minY, b.cfg.Playfield.Height/4)
	pos.X = b.rng.Float64() * maxX
	pos.Y = minY + b.rng.Float64()*(maxY-minY)
}

// Update 巡逻模式下水平往返移动
func (b *BossSystem) Update(state *game.GameState, dt float64) {
	if state.Boss != types.BossActive {
		return
	}
	bc, ok := b.component()
	if !ok || !bc.Patrolling {
		return
	}
	pos, ok := b.store.Position(b.id)
	if !ok {
		return
	}

	maxX := max(0, b.cfg.Playfield.Width-b.cfg.Boss.Width)
	pos.X += bc.PatrolDir * b.cfg.Boss.PatrolSpeed * dt
	if pos.X <= 0 {
		pos.X = 0
		bc.PatrolDir = 1
	} else if pos.X >= maxX {
		pos.X = maxX
		bc.PatrolDir = -1
	}
}

// BossColumn Boss 占据的水平区间，Boss 未激活时 ok 为 false
func (b *BossSystem) BossColumn() (left, right float64, ok bool) {
	if !b.store.IsAlive(b.id) {
		return 0, 0, false
	}
	pos, ok := b.store.Position(b.id)
	if !ok {
		return 0, 0, false
	}
	return pos.X, pos.X + b.cfg.Boss.Width, true
}

// Health 当前生命值与上限；Boss 不在场时 active 为 false
func (b *BossSystem) Health() (health, maxHealth float64, active bool) {
	bc, ok := b.component()
	if !ok {
		return 0, b.cfg.Boss.MaxHealth, false
	}
	return bc.Health, bc.MaxHealth, b.store.IsAlive(b.id)
}

// Stage 当前视觉阶段
func (b *BossSystem) Stage() types.BossStage {
	if bc, ok := b.component(); ok {
		return bc.Stage
	}
	return types.BossSleeping
}

// ID 当前 Boss 实体（未生成时为 0）
func (b *BossSystem) ID() ecs.EntityID {
	return b.id
}

// Reset 阶段切换或读档时丢弃 Boss
func (b *BossSystem) Reset() {
	if b.id != 0 && b.store.IsAlive(b.id) {
		b.store.Destroy(b.id)
	}
	b.id = 0
}

func (b *BossSystem) component() (*components.BossComponent, bool) {
	if b.id == 0 {
		return nil, false
	}
	return ecs.GetComponent[*components.BossComponent](b.store.Manager(), b.id)
}
