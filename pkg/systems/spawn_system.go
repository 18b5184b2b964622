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

// meteorSpawnBand 陨石在场地上方生成的随机高度范围
const meteorSpawnBand = 60.0

// SpawnReport 一帧内生成的实体
type SpawnReport struct {
	Meteors []ecs.EntityID
	Pickups []types.PickupKind
}

// SpawnSystem 陨石与道具的生成策略
//
// 规则：
//   - 陨石按 MeteorSpawnInterval 节奏生成，同屏数量不超过 MeteorLimit，Boss 在场时避开 Boss 所在的列
//   - 星星：从 StarFromPhase 开始，分数每到 StarScoreStep 的倍数生成一颗，同屏最多一颗
//   - 护盾：分数每到 ShieldScoreStep 的倍数生成一个
//   - 其他道具按权重表定时生成
type SpawnSystem struct {
	store *EntityStore
	cfg   *config.GameConfig
	boss  *BossSystem
	rng   *rand.Rand

	meteorTimer float64
	pickupTimer float64

	nextStarScore   int
	nextShieldScore int

	pickupKinds   []types.PickupKind
	pickupWeights []int
	totalWeight   int
}

// NewSpawnSystem 创建生成系统
func NewSpawnSystem(store *EntityStore, cfg *config.GameConfig, boss *BossSystem, rng *rand.Rand) *SpawnSystem {
	s := &SpawnSystem{store: store, cfg: cfg, boss: boss, rng: rng}
	s.pickupKinds, s.pickupWeights = cfg.WeightedPickups()
	for _, w := range s.pickupWeights {
		s.totalWeight += w
	}
	return s
}

// Reset 新阶段或读档后重置计时器与分数节点
func (s *SpawnSystem) Reset(state *game.GameState) {
	s.meteorTimer = 0
	s.pickupTimer = 0
	s.nextStarScore = nextMultiple(state.Score, s.cfg.Pickups.StarScoreStep)
	s.nextShieldScore = nextMultiple(state.Score, s.cfg.Pickups.ShieldScoreStep)
}

// nextMultiple 大于 score 的最小 step 倍数
func nextMultiple(score, step int) int {
	if step <= 0 {
		return 0
	}
	return (score/step + 1) * step
}

// Update 推进生成计时器
func (s *SpawnSystem) Update(state *game.GameState, dt float64) SpawnReport {
	var report SpawnReport
	if state.Run != types.RunPlaying {
		return report
	}

	s.meteorTimer += dt
	interval := s.cfg.MeteorSpawnInterval(state.Difficulty, state.Phase)
	if s.meteorTimer >= interval {
		if s.store.Count(types.KindMeteor) < s.cfg.MeteorLimit(state.Difficulty, state.Phase) {
			if id := s.spawnMeteor(state); id != 0 {
				report.Meteors = append(report.Meteors, id)
			}
		}
		s.meteorTimer = 0
	}

	if s.spawnStar(state) {
		report.Pickups = append(report.Pickups, types.PickupStar)
	}
	if s.spawnShield(state) {
		report.Pickups = append(report.Pickups, types.PickupShield)
	}

	s.pickupTimer += dt
	if s.cfg.Pickups.SpawnInterval > 0 && s.pickupTimer >= s.cfg.Pickups.SpawnInterval {
		s.pickupTimer = 0
		if kind, ok := s.rollPickup(); ok {
			s.spawnPickup(kind)
			report.Pickups = append(report.Pickups, kind)
		}
	}
	return report
}

// spawnMeteor 在场地上方生成一颗陨石
func (s *SpawnSystem) spawnMeteor(state *game.GameState) ecs.EntityID {
	r := entities.MeteorRadius(s.cfg)
	minSpeed, maxSpeed := s.cfg.MeteorSpeedRange(state.Difficulty, state.Phase)
	return s.store.Spawn(types.KindMeteor, entities.SpawnParams{
		X:  s.meteorX(r),
		Y:  -r - s.rng.Float64()*meteorSpawnBand,
		VY: minSpeed + s.rng.Float64()*(maxSpeed-minSpeed),
	})
}

// meteorX 陨石圆心的横坐标；Boss 在场时只在 Boss 列两侧选择
func (s *SpawnSystem) meteorX(r float64) float64 {
	lo, hi := r, s.cfg.Playfield.Width-r
	left, right, ok := s.boss.BossColumn()
	if !ok {
		return lo + s.rng.Float64()*(hi-lo)
	}

	leftLen := max(0, left-r-lo)
	rightLen := max(0, hi-(right+r))
	if leftLen+rightLen <= 0 {
		log.Printf("[SpawnSystem] Warning: boss column covers the playfield, spawning anywhere")
		return lo + s.rng.Float64()*(hi-lo)
	}
	pick := s.rng.Float64() * (leftLen + rightLen)
	if pick < leftLen {
		return lo + pick
	}
	return right + r + (pick - leftLen)
}

func (s *SpawnSystem) spawnStar(state *game.GameState) bool {
	step := s.cfg.Pickups.StarScoreStep
	if step <= 0 || state.Phase < s.cfg.Pickups.StarFromPhase || state.Score < s.nextStarScore {
		return false
	}
	if s.pickupOnScreen(types.PickupStar) {
		return false
	}
	s.nextStarScore = nextMultiple(state.Score, step)
	s.spawnPickup(types.PickupStar)
	return true
}

func (s *SpawnSystem) spawnShield(state *game.GameState) bool {
	step := s.cfg.Pickups.ShieldScoreStep
	if step <= 0 || state.Score < s.nextShieldScore {
		return false
	}
	s.nextShieldScore = nextMultiple(state.Score, step)
	s.spawnPickup(types.PickupShield)
	return true
}

// rollPickup 按权重抽取一个定时道具
func (s *SpawnSystem) rollPickup() (types.PickupKind, bool) {
	if s.totalWeight <= 0 {
		return 0, false
	}
	n := s.rng.Intn(s.totalWeight)
	for i, w := range s.pickupWeights {
		if n < w {
			return s.pickupKinds[i], true
		}
		n -= w
	}
	return 0, false
}

func (s *SpawnSystem) spawnPickup(kind types.PickupKind) ecs.EntityID {
	size := s.cfg.Pickups.Size
	return s.store.Spawn(types.KindPickup, entities.SpawnParams{
		X:      s.rng.Float64() * max(0, s.cfg.Playfield.Width-size),
		Y:      -size,
		Pickup: kind,
	})
}

func (s *SpawnSystem) pickupOnScreen(kind types.PickupKind) bool {
	em := s.store.Manager()
	for _, id := range s.store.AllOf(types.KindPickup) {
		if pk, ok := ecs.GetComponent[*components.PickupComponent](em, id); ok && pk.Kind == kind {
			return true
		}
	}
	return false
}
