package systems

import (
	"testing"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/types"
)

// TestOverlaps 测试几何重叠判断
func TestOverlaps(t *testing.T) {
	rect := func(w, h float64) *components.CollisionComponent {
		return &components.CollisionComponent{Shape: components.ShapeRect, Width: w, Height: h}
	}
	circle := func(r float64) *components.CollisionComponent {
		return &components.CollisionComponent{Shape: components.ShapeCircle, Radius: r}
	}
	at := func(x, y float64) *components.PositionComponent {
		return &components.PositionComponent{X: x, Y: y}
	}

	tests := []struct {
		name     string
		pa       *components.PositionComponent
		ca       *components.CollisionComponent
		pb       *components.PositionComponent
		cb       *components.CollisionComponent
		expected bool
	}{
		{"rects overlap", at(0, 0), rect(10, 10), at(5, 5), rect(10, 10), true},
		{"rects touching edge", at(0, 0), rect(10, 10), at(10, 0), rect(10, 10), false},
		{"rects apart", at(0, 0), rect(10, 10), at(30, 30), rect(10, 10), false},
		{"circles overlap", at(0, 0), circle(5), at(8, 0), circle(5), true},
		{"circles apart", at(0, 0), circle(5), at(11, 0), circle(5), false},
		{"circle inside rect", at(50, 50), circle(5), at(0, 0), rect(100, 100), true},
		{"circle near rect corner", at(-3, -3), circle(5), at(0, 0), rect(10, 10), true},
		{"circle outside rect corner", at(-4, -4), circle(5), at(0, 0), rect(10, 10), false},
		{"rect then circle", at(0, 0), rect(10, 10), at(12, 5), circle(3), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.pa, tt.ca, tt.pb, tt.cb); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}

// TestResolveOrdering 事件按固定顺序输出
func TestResolveOrdering(t *testing.T) {
	w := newTestWorld(t)

	pickup := w.spawnPickup(t, types.PickupExtraLife, 110, 410)
	player := w.spawnPlayer(t, 100, 400)
	meteor := w.spawnMeteor(t, 140, 400)
	proj := w.spawnProjectile(t, 137, 390)

	events := w.collisions.Resolve()
	if len(events) != 3 {
		t.Fatalf("Expected 3 events, got %d: %+v", len(events), events)
	}

	expected := []struct {
		pair CollisionPair
		a, b uint64
	}{
		{PairProjectileMeteor, uint64(proj), uint64(meteor)},
		{PairPlayerMeteor, uint64(player), uint64(meteor)},
		{PairPlayerPickup, uint64(player), uint64(pickup)},
	}
	for i, e := range expected {
		if events[i].Pair() != e.pair || uint64(events[i].A) != e.a || uint64(events[i].B) != e.b {
			t.Errorf("Event %d: expected %s (%d,%d), got %s (%d,%d)",
				i, e.pair, e.a, e.b, events[i].Pair(), events[i].A, events[i].B)
		}
	}
}

// TestResolveIgnoresDeadEntities 已标记死亡的实体不参与检测
func TestResolveIgnoresDeadEntities(t *testing.T) {
	w := newTestWorld(t)
	w.spawnPlayer(t, 100, 400)
	meteor := w.spawnMeteor(t, 140, 400)

	w.store.Destroy(meteor)
	if events := w.collisions.Resolve(); len(events) != 0 {
		t.Errorf("Expected no events after destroy, got %d", len(events))
	}
}

// TestSortEventsStable 手工打乱的事件排序后恢复处理顺序
func TestSortEventsStable(t *testing.T) {
	events := []CollisionEvent{
		{A: 1, AKind: types.KindPlayer, B: 5, BKind: types.KindPickup},
		{A: 1, AKind: types.KindPlayer, B: 3, BKind: types.KindMeteor},
		{A: 9, AKind: types.KindProjectile, B: 4, BKind: types.KindBoss},
		{A: 8, AKind: types.KindProjectile, B: 3, BKind: types.KindMeteor},
		{A: 7, AKind: types.KindProjectile, B: 3, BKind: types.KindMeteor},
	}
	SortEvents(events)

	want := []CollisionPair{PairProjectileMeteor, PairProjectileMeteor, PairProjectileBoss, PairPlayerMeteor, PairPlayerPickup}
	for i, p := range want {
		if events[i].Pair() != p {
			t.Errorf("Position %d: expected %s, got %s", i, p, events[i].Pair())
		}
	}
	if events[0].A != 7 || events[1].A != 8 {
		t.Errorf("Expected ties ordered by id, got %d then %d", events[0].A, events[1].A)
	}
}
