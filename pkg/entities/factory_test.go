package entities

import (
	"math"
	"testing"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// TestSpawnAllKinds 每种实体都带有公共组件
func TestSpawnAllKinds(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	kinds := []types.EntityKind{
		types.KindPlayer, types.KindMeteor, types.KindProjectile, types.KindPickup, types.KindBoss,
	}
	for _, kind := range kinds {
		t.Run(kind.String(), func(t *testing.T) {
			id, err := Spawn(em, cfg, kind, SpawnParams{X: 10, Y: 20})
			if err != nil {
				t.Fatalf("Spawn failed: %v", err)
			}
			kc, ok := ecs.GetComponent[*components.KindComponent](em, id)
			if !ok || kc.Kind != kind {
				t.Errorf("Expected kind %s, got %+v", kind, kc)
			}
			alive, ok := ecs.GetComponent[*components.AliveComponent](em, id)
			if !ok || !alive.Alive {
				t.Error("New entity should be alive")
			}
			pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
			if !ok || pos.X != 10 || pos.Y != 20 {
				t.Errorf("Expected position (10, 20), got %+v", pos)
			}
			if !ecs.HasComponent[*components.CollisionComponent](em, id) {
				t.Error("Entity should have a collision shape")
			}
		})
	}

	if _, err := Spawn(em, cfg, types.KindUnknown, SpawnParams{}); err == nil {
		t.Error("Expected error for unknown kind")
	}
}

// TestNewProjectileDefaults 子弹默认向上飞行
func TestNewProjectileDefaults(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	id, err := NewProjectile(em, cfg, SpawnParams{Owner: 7})
	if err != nil {
		t.Fatalf("NewProjectile failed: %v", err)
	}
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.VY != -cfg.Player.ProjectileSpeed {
		t.Errorf("Expected VY %f, got %f", -cfg.Player.ProjectileSpeed, vel.VY)
	}
	proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if proj.Owner != 7 {
		t.Errorf("Expected owner 7, got %d", proj.Owner)
	}
}

// TestNewBossFullHealth Boss 满血且阈值表独立拷贝
func TestNewBossFullHealth(t *testing.T) {
	em := ecs.NewEntityManager()
	cfg := config.DefaultGameConfig()

	id, err := NewBoss(em, cfg, SpawnParams{})
	if err != nil {
		t.Fatalf("NewBoss failed: %v", err)
	}
	boss, _ := ecs.GetComponent[*components.BossComponent](em, id)
	if boss.Health != 100 || boss.Stage != types.BossSleeping {
		t.Errorf("Expected full health sleeping boss, got %+v", boss)
	}
	boss.MoveThresholds[0] = -1
	if cfg.Boss.MoveThresholds[0] == -1 {
		t.Error("Boss thresholds must not alias the config slice")
	}
}

// TestPlayerStartPosition 测试单人与双人出生点
func TestPlayerStartPosition(t *testing.T) {
	cfg := config.DefaultGameConfig()

	x, _ := PlayerStartPosition(cfg, types.Player1, false)
	if x+cfg.Player.Width/2 != cfg.Playfield.Width/2 {
		t.Errorf("Single player should be centred, got x=%f", x)
	}

	x1, _ := PlayerStartPosition(cfg, types.Player1, true)
	x2, _ := PlayerStartPosition(cfg, types.Player2, true)
	if x1 >= x2 {
		t.Errorf("P1 should be left of P2, got %f and %f", x1, x2)
	}
	if got := x2 + cfg.Player.Width/2; math.Abs(got-cfg.Playfield.Width*2/3) > 1e-9 {
		t.Errorf("P2 centre should be at 2/3 width, got %f", got)
	}
}

func TestFactoryNilArgs(t *testing.T) {
	if _, err := NewMeteor(nil, config.DefaultGameConfig(), SpawnParams{}); err == nil {
		t.Error("Expected error for nil entity manager")
	}
	if _, err := NewMeteor(ecs.NewEntityManager(), nil, SpawnParams{}); err == nil {
		t.Error("Expected error for nil config")
	}
}
