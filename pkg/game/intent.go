package game

import "math"

// Vec2 二维向量
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Len 向量长度
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Normalized 返回单位向量；零向量原样返回
func (v Vec2) Normalized() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// PlayerIntent 一名玩家在一帧内的已解码输入
// 核心逻辑不关心输入来自键盘、鼠标还是第二个本地控制器
type PlayerIntent struct {
	Move        Vec2  // 移动方向，分量范围 -1..1
	Fire        bool  // 射击
	PauseToggle bool  // 切换暂停
	Skip        bool  // 跳过阶段间隔
	Steer       *Vec2 // 鼠标跟随目标点，非 nil 时覆盖 Move
}

// Intents 按玩家编号索引的输入
type Intents [2]PlayerIntent

// AnyPauseToggle 任意玩家请求切换暂停
func (in Intents) AnyPauseToggle() bool {
	return in[0].PauseToggle || in[1].PauseToggle
}

// AnySkip 任意玩家请求跳过
func (in Intents) AnySkip() bool {
	return in[0].Skip || in[1].Skip
}
