package systems

import (
	"math"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/types"
)

// CollisionResolver 每帧检测重叠并输出碰撞事件
// 只做检测，不修改任何实体；后果由 ScoreSystem 等消费者按固定顺序处理
type CollisionResolver struct {
	store *EntityStore
}

// NewCollisionResolver 创建碰撞检测器
func NewCollisionResolver(store *EntityStore) *CollisionResolver {
	return &CollisionResolver{store: store}
}

// collisionPairs 参与检测的组合，A 为主动方
var collisionPairs = []struct {
	a, b types.EntityKind
}{
	{types.KindProjectile, types.KindMeteor},
	{types.KindProjectile, types.KindBoss},
	{types.KindPlayer, types.KindMeteor},
	{types.KindPlayer, types.KindPickup},
}

// Resolve 检测全部存活实体之间的重叠
//
// 返回：
//   - []CollisionEvent: 按处理顺序排列（子弹-陨石、子弹-Boss、玩家-陨石、玩家-道具，同类按 ID 升序）
func (r *CollisionResolver) Resolve() []CollisionEvent {
	em := r.store.Manager()
	var events []CollisionEvent
	for _, pair := range collisionPairs {
		as := r.store.AllOf(pair.a)
		if len(as) == 0 {
			continue
		}
		bs := r.store.AllOf(pair.b)
		for _, a := range as {
			pa, ca, ok := shapeOf(em, a)
			if !ok {
				continue
			}
			for _, b := range bs {
				pb, cb, ok := shapeOf(em, b)
				if !ok {
					continue
				}
				if Overlaps(pa, ca, pb, cb) {
					events = append(events, CollisionEvent{A: a, AKind: pair.a, B: b, BKind: pair.b})
				}
			}
		}
	}
	SortEvents(events)
	return events
}

func shapeOf(em *ecs.EntityManager, id ecs.EntityID) (*components.PositionComponent, *components.CollisionComponent, bool) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return nil, nil, false
	}
	col, ok := ecs.GetComponent[*components.CollisionComponent](em, id)
	if !ok {
		return nil, nil, false
	}
	return pos, col, true
}

// Overlaps 判断两个碰撞体是否重叠
// 矩形以左上角定位，圆以圆心定位；边缘相接不算重叠
func Overlaps(pa *components.PositionComponent, ca *components.CollisionComponent,
	pb *components.PositionComponent, cb *components.CollisionComponent) bool {

	switch {
	case ca.Shape == components.ShapeCircle && cb.Shape == components.ShapeCircle:
		return circlesOverlap(pa.X, pa.Y, ca.Radius, pb.X, pb.Y, cb.Radius)
	case ca.Shape == components.ShapeCircle:
		return circleRectOverlap(pa.X, pa.Y, ca.Radius, pb.X, pb.Y, cb.Width, cb.Height)
	case cb.Shape == components.ShapeCircle:
		return circleRectOverlap(pb.X, pb.Y, cb.Radius, pa.X, pa.Y, ca.Width, ca.Height)
	}
	return rectsOverlap(pa.X, pa.Y, ca.Width, ca.Height, pb.X, pb.Y, cb.Width, cb.Height)
}

// rectsOverlap AABB 检测
func rectsOverlap(x1, y1, w1, h1, x2, y2, w2, h2 float64) bool {
	return x1 < x2+w2 && x2 < x1+w1 && y1 < y2+h2 && y2 < y1+h1
}

func circlesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	dx, dy := x1-x2, y1-y2
	rr := r1 + r2
	return dx*dx+dy*dy < rr*rr
}

// circleRectOverlap 圆心到矩形最近点的距离小于半径
func circleRectOverlap(cx, cy, r, x, y, w, h float64) bool {
	nx := math.Max(x, math.Min(cx, x+w))
	ny := math.Max(y, math.Min(cy, y+h))
	dx, dy := cx-nx, cy-ny
	return dx*dx+dy*dy < r*r
}
