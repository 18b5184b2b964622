package systems

import (
	"math/rand"
	"testing"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/entities"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// testWorld 组装好的系统集合，供各测试共用
type testWorld struct {
	cfg        *config.GameConfig
	em         *ecs.EntityManager
	effects    *EffectRegistry
	store      *EntityStore
	boss       *BossSystem
	powerups   *PowerUpSystem
	score      *ScoreSystem
	phase      *PhaseSystem
	spawn      *SpawnSystem
	collisions *CollisionResolver
	state      *game.GameState
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()
	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	effects := NewEffectRegistry(cfg)
	store := NewEntityStore(em, cfg, effects)
	rng := rand.New(rand.NewSource(1))
	boss := NewBossSystem(store, cfg, rng)
	powerups := NewPowerUpSystem(store, effects, cfg)
	return &testWorld{
		cfg:        cfg,
		em:         em,
		effects:    effects,
		store:      store,
		boss:       boss,
		powerups:   powerups,
		score:      NewScoreSystem(store, effects, powerups, boss),
		phase:      NewPhaseSystem(cfg),
		spawn:      NewSpawnSystem(store, cfg, boss, rng),
		collisions: NewCollisionResolver(store),
		state:      game.NewGameState(cfg, types.DifficultyNormal, false, 0),
	}
}

func (w *testWorld) spawnPlayer(t *testing.T, x, y float64) ecs.EntityID {
	t.Helper()
	id := w.store.Spawn(types.KindPlayer, entities.SpawnParams{X: x, Y: y, Player: types.Player1})
	if id == 0 {
		t.Fatal("Failed to spawn player")
	}
	return id
}

// spawnMeteor 以圆心坐标生成静止陨石
func (w *testWorld) spawnMeteor(t *testing.T, cx, cy float64) ecs.EntityID {
	t.Helper()
	id := w.store.Spawn(types.KindMeteor, entities.SpawnParams{X: cx, Y: cy})
	if id == 0 {
		t.Fatal("Failed to spawn meteor")
	}
	return id
}

func (w *testWorld) spawnProjectile(t *testing.T, x, y float64) ecs.EntityID {
	t.Helper()
	id := w.store.Spawn(types.KindProjectile, entities.SpawnParams{X: x, Y: y})
	if id == 0 {
		t.Fatal("Failed to spawn projectile")
	}
	return id
}

func (w *testWorld) spawnPickup(t *testing.T, kind types.PickupKind, x, y float64) ecs.EntityID {
	t.Helper()
	id := w.store.Spawn(types.KindPickup, entities.SpawnParams{X: x, Y: y, Pickup: kind})
	if id == 0 {
		t.Fatal("Failed to spawn pickup")
	}
	return id
}

// tick 执行一次检测与事件消费
func (w *testWorld) tick() TickReport {
	report := w.score.Consume(w.state, w.collisions.Resolve(), nil)
	w.store.Compact()
	return report
}
