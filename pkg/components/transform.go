package components

// PositionComponent 实体的逻辑位置（像素，左上角为原点）
// 矩形实体以左上角为锚点，圆形实体以圆心为锚点
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 实体速度（像素/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}
