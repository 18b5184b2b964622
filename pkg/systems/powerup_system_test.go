package systems

import (
	"testing"

	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// TestDestroyAllWithNoMeteors 场上没有陨石时，炸弹与爆炸不加分也不出错
func TestDestroyAllWithNoMeteors(t *testing.T) {
	for _, kind := range []types.PickupKind{types.PickupMeteorBomb, types.PickupExplosion} {
		t.Run(kind.String(), func(t *testing.T) {
			w := newTestWorld(t)
			player := w.spawnPlayer(t, 100, 400)

			out := w.powerups.Collect(w.state, player, kind)

			if out.MeteorsDestroyed != 0 || out.ScoreGained != 0 {
				t.Errorf("Expected nothing destroyed and no score, got %+v", out)
			}
			if w.state.Score != 0 {
				t.Errorf("Expected score 0, got %d", w.state.Score)
			}
		})
	}
}

// TestMeteorBomb 炸弹销毁全部陨石，每颗 +1 分
func TestMeteorBomb(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)
	for i := 0; i < 4; i++ {
		w.spawnMeteor(t, 100+float64(i)*100, 100)
	}

	out := w.powerups.Collect(w.state, player, types.PickupMeteorBomb)

	if out.MeteorsDestroyed != 4 || w.state.Score != 4 {
		t.Errorf("Expected 4 destroyed and score 4, got %+v score=%d", out, w.state.Score)
	}
	if n := w.store.Count(types.KindMeteor); n != 0 {
		t.Errorf("Expected no live meteors, got %d", n)
	}
}

// TestExplosion 爆炸销毁陨石但不计分，扣 1 条命且护盾不阻挡
func TestExplosion(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)
	w.spawnMeteor(t, 300, 100)
	w.spawnMeteor(t, 500, 100)
	w.effects.Apply(player, types.PickupShield, 5)
	lives := w.state.Lives

	out := w.powerups.Collect(w.state, player, types.PickupExplosion)

	if out.MeteorsDestroyed != 2 || w.state.Score != 0 {
		t.Errorf("Expected 2 destroyed without score, got %+v score=%d", out, w.state.Score)
	}
	if w.state.Lives != lives-1 || out.LivesLost != 1 {
		t.Errorf("Expected 1 life lost, lives %d -> %d", lives, w.state.Lives)
	}
}

// TestExplosionAtOneLife 最后一条命被爆炸扣除时报告归零
func TestExplosionAtOneLife(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)
	w.state.Lives = 1

	out := w.powerups.Collect(w.state, player, types.PickupExplosion)
	if !out.LivesDepleted || w.state.Lives != 0 {
		t.Errorf("Expected lives depleted, got %+v lives=%d", out, w.state.Lives)
	}
}

// TestInstantPickups 额外生命与星星
func TestInstantPickups(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)
	lives := w.state.Lives

	w.powerups.Collect(w.state, player, types.PickupExtraLife)
	w.powerups.Collect(w.state, player, types.PickupStar)
	w.powerups.Collect(w.state, player, types.PickupStar)

	if w.state.Lives != lives+1 {
		t.Errorf("Expected lives %d, got %d", lives+1, w.state.Lives)
	}
	if w.state.ItemsCollected != 2 {
		t.Errorf("Expected 2 items, got %d", w.state.ItemsCollected)
	}
}

// TestTimedPickups 定时道具写入注册表，SpeedMeteor 作用于世界
func TestTimedPickups(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)

	w.powerups.Collect(w.state, player, types.PickupShield)
	w.powerups.Collect(w.state, player, types.PickupSlowdown)
	w.powerups.Collect(w.state, player, types.PickupSpeedMeteor)

	if got := w.effects.Remaining(player, types.PickupShield); got != w.cfg.Effects.Shield.Duration {
		t.Errorf("Expected shield %fs, got %f", w.cfg.Effects.Shield.Duration, got)
	}
	if !w.effects.Active(player, types.PickupSlowdown) {
		t.Error("Slowdown should be active on the player")
	}
	if !w.effects.Active(ecs.WorldEntity, types.PickupSpeedMeteor) {
		t.Error("SpeedMeteor should be a world effect")
	}
	if w.effects.Active(player, types.PickupSpeedMeteor) {
		t.Error("SpeedMeteor should not be attached to the player")
	}
}
