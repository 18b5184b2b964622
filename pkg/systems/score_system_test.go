package systems

import (
	"testing"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// TestShotMeteorDoesNotDamagePlayer 同一帧内陨石同时与子弹和玩家重叠：
// 陨石被击毁并计 1 分，玩家不受伤
func TestShotMeteorDoesNotDamagePlayer(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, 100, 400)
	meteor := w.spawnMeteor(t, 140, 400)
	w.spawnProjectile(t, 137, 390)
	lives := w.state.Lives

	report := w.tick()

	if w.state.Score != 1 {
		t.Errorf("Expected score 1, got %d", w.state.Score)
	}
	if w.state.Lives != lives {
		t.Errorf("Expected lives %d, got %d", lives, w.state.Lives)
	}
	if report.MeteorsDestroyed != 1 || report.PlayerHits != 0 {
		t.Errorf("Expected 1 destroyed and 0 hits, got %+v", report)
	}
	if w.em.Exists(meteor) {
		t.Error("Meteor should be removed after compaction")
	}
}

// TestConsumeSortsEvents 调用方传入乱序事件时仍按固定顺序处理
func TestConsumeSortsEvents(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)
	meteor := w.spawnMeteor(t, 140, 400)
	proj := w.spawnProjectile(t, 137, 390)
	lives := w.state.Lives

	events := []CollisionEvent{
		{A: player, AKind: types.KindPlayer, B: meteor, BKind: types.KindMeteor},
		{A: proj, AKind: types.KindProjectile, B: meteor, BKind: types.KindMeteor},
	}
	w.score.Consume(w.state, events, nil)

	if w.state.Lives != lives || w.state.Score != 1 {
		t.Errorf("Expected lives %d and score 1, got lives %d score %d", lives, w.state.Lives, w.state.Score)
	}
	if events[0].A != player {
		t.Error("Consume should not reorder the caller's slice")
	}
}

// TestPlayerHitByMeteor 没有护盾时扣 1 条命，不计分
func TestPlayerHitByMeteor(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, 100, 400)
	w.spawnMeteor(t, 140, 400)
	lives := w.state.Lives

	report := w.tick()

	if w.state.Lives != lives-1 {
		t.Errorf("Expected lives %d, got %d", lives-1, w.state.Lives)
	}
	if w.state.Score != 0 {
		t.Errorf("Expected score 0, got %d", w.state.Score)
	}
	if report.PlayerHits != 1 || report.LivesLost != 1 {
		t.Errorf("Expected 1 hit and 1 life lost, got %+v", report)
	}
}

// TestShieldBlocksDamage 护盾挡下伤害，陨石被销毁并计 1 分
func TestShieldBlocksDamage(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)
	meteor := w.spawnMeteor(t, 140, 400)
	w.effects.Apply(player, types.PickupShield, 5)
	lives := w.state.Lives

	report := w.tick()

	if w.state.Lives != lives {
		t.Errorf("Shield should block damage, lives %d -> %d", lives, w.state.Lives)
	}
	if w.state.Score != 1 {
		t.Errorf("Blocked meteor should count +1, got score %d", w.state.Score)
	}
	if report.MeteorsBlocked != 1 {
		t.Errorf("Expected 1 blocked meteor, got %d", report.MeteorsBlocked)
	}
	if w.em.Exists(meteor) {
		t.Error("Blocked meteor should be destroyed")
	}
}

// TestLivesNeverNegativeAndGameOverOnce 同一帧两次伤害：生命停在 0，GameOver 只触发一次
func TestLivesNeverNegativeAndGameOverOnce(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, 100, 400)
	w.spawnMeteor(t, 120, 420)
	w.spawnMeteor(t, 160, 420)
	w.state.Lives = 1

	report := w.tick()

	if w.state.Lives != 0 {
		t.Fatalf("Expected lives 0, got %d", w.state.Lives)
	}
	if !report.LivesDepleted || report.LivesLost != 1 {
		t.Errorf("Expected depletion with exactly 1 life lost, got %+v", report)
	}

	for i := 0; i < 3; i++ {
		w.phase.Evaluate(w.state)
	}
	if w.state.Run != types.RunGameOver {
		t.Errorf("Expected GameOver, got %s", w.state.Run)
	}
	if w.state.GameOverCount != 1 {
		t.Errorf("Expected GameOver exactly once, got %d", w.state.GameOverCount)
	}

	// 终态后的伤害不会让生命变为负数
	w.spawnMeteor(t, 140, 420)
	w.tick()
	if w.state.Lives != 0 {
		t.Errorf("Expected lives to stay 0, got %d", w.state.Lives)
	}
}

// TestAvoidedMeteorCountsOnce 从底部离开的陨石只计一次分
func TestAvoidedMeteorCountsOnce(t *testing.T) {
	w := newTestWorld(t)
	meteor := w.spawnMeteor(t, 400, 100)
	exits := []ExitEvent{{ID: meteor, Kind: types.KindMeteor}}

	w.score.Consume(w.state, nil, exits)
	w.score.Consume(w.state, nil, exits)

	if w.state.Score != 1 {
		t.Errorf("Expected score 1, got %d", w.state.Score)
	}
	mc, _ := ecs.GetComponent[*components.MeteorComponent](w.em, meteor)
	if !mc.Resolved {
		t.Error("Meteor should be marked resolved")
	}
}

// TestScoreFrozenDuringInterlude 阶段间隔中分数与星星冻结
func TestScoreFrozenDuringInterlude(t *testing.T) {
	w := newTestWorld(t)
	w.state.Run = types.RunPhaseCleared
	meteor := w.spawnMeteor(t, 400, 100)

	w.score.Consume(w.state, nil, []ExitEvent{{ID: meteor, Kind: types.KindMeteor}})
	w.powerups.Collect(w.state, 0, types.PickupStar)

	if w.state.Score != 0 || w.state.ItemsCollected != 0 {
		t.Errorf("Expected frozen score/items, got score %d items %d", w.state.Score, w.state.ItemsCollected)
	}
}

// TestPickupCollision 玩家碰到道具时应用效果并移除道具
func TestPickupCollision(t *testing.T) {
	w := newTestWorld(t)
	player := w.spawnPlayer(t, 100, 400)
	pickup := w.spawnPickup(t, types.PickupSpeedBoost, 110, 410)

	report := w.tick()

	if len(report.Pickups) != 1 || report.Pickups[0].Kind != types.PickupSpeedBoost {
		t.Fatalf("Expected one speed boost pickup, got %+v", report.Pickups)
	}
	if !w.effects.Active(player, types.PickupSpeedBoost) {
		t.Error("Speed boost should be active on the collector")
	}
	if w.em.Exists(pickup) {
		t.Error("Pickup should be removed")
	}
}
