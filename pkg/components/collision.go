package components

// ShapeKind 碰撞形状
type ShapeKind int

const (
	// ShapeRect 轴对齐矩形
	ShapeRect ShapeKind = iota
	// ShapeCircle 圆
	ShapeCircle
)

// CollisionComponent 定义实体的碰撞检测边界
// 用于碰撞系统检测实体之间的重叠（如子弹与陨石）
type CollisionComponent struct {
	Shape  ShapeKind
	Width  float64 // 矩形宽度（像素）
	Height float64 // 矩形高度（像素）
	Radius float64 // 圆半径（像素），仅 ShapeCircle 使用
}

// Bounds 返回实体在给定位置下的外接矩形
func (c *CollisionComponent) Bounds(pos *PositionComponent) (x, y, w, h float64) {
	if c.Shape == ShapeCircle {
		return pos.X - c.Radius, pos.Y - c.Radius, c.Radius * 2, c.Radius * 2
	}
	return pos.X, pos.Y, c.Width, c.Height
}
