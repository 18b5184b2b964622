package systems

import (
	"slices"

	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// CollisionPair 碰撞对类别，数值即处理顺序
type CollisionPair int

const (
	// PairProjectileMeteor 子弹击中陨石
	PairProjectileMeteor CollisionPair = iota
	// PairProjectileBoss 子弹击中 Boss
	PairProjectileBoss
	// PairPlayerMeteor 陨石撞上玩家
	PairPlayerMeteor
	// PairPlayerPickup 玩家拾取道具
	PairPlayerPickup
	// PairUnknown 不参与处理的组合
	PairUnknown
)

// String 返回碰撞对名称
func (p CollisionPair) String() string {
	switch p {
	case PairProjectileMeteor:
		return "projectile-meteor"
	case PairProjectileBoss:
		return "projectile-boss"
	case PairPlayerMeteor:
		return "player-meteor"
	case PairPlayerPickup:
		return "player-pickup"
	}
	return "unknown"
}

// CollisionEvent 一次重叠检测结果
// A 为主动方（子弹或玩家），B 为被动方（陨石、Boss 或道具）
type CollisionEvent struct {
	A     ecs.EntityID
	AKind types.EntityKind
	B     ecs.EntityID
	BKind types.EntityKind
}

// Pair 返回事件所属的碰撞对类别
func (e CollisionEvent) Pair() CollisionPair {
	switch {
	case e.AKind == types.KindProjectile && e.BKind == types.KindMeteor:
		return PairProjectileMeteor
	case e.AKind == types.KindProjectile && e.BKind == types.KindBoss:
		return PairProjectileBoss
	case e.AKind == types.KindPlayer && e.BKind == types.KindMeteor:
		return PairPlayerMeteor
	case e.AKind == types.KindPlayer && e.BKind == types.KindPickup:
		return PairPlayerPickup
	}
	return PairUnknown
}

// compareEvents 固定处理顺序：碰撞对类别，然后按 A、B 的 ID 升序
func compareEvents(x, y CollisionEvent) int {
	if px, py := x.Pair(), y.Pair(); px != py {
		return int(px) - int(py)
	}
	if x.A != y.A {
		if x.A < y.A {
			return -1
		}
		return 1
	}
	if x.B < y.B {
		return -1
	}
	if x.B > y.B {
		return 1
	}
	return 0
}

// SortEvents 按处理顺序原地排序
func SortEvents(events []CollisionEvent) {
	slices.SortStableFunc(events, compareEvents)
}

// ExitEvent 陨石从底部离开场地（计为躲避）
// 从侧面或顶部离开的实体只移除，不上报
type ExitEvent struct {
	ID   ecs.EntityID
	Kind types.EntityKind
}
