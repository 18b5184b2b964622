package game

// TickClock 固定步长时钟
// 暂停时 Step 返回 0，所有计时器都不会推进
type TickClock struct {
	step    float64
	elapsed float64
	ticks   uint64
	paused  bool
}

// NewTickClock 创建时钟
//
// 参数：
//   - ticksPerSecond: 每秒逻辑帧数（如 60）
func NewTickClock(ticksPerSecond int) *TickClock {
	if ticksPerSecond <= 0 {
		ticksPerSecond = 60
	}
	return &TickClock{step: 1.0 / float64(ticksPerSecond)}
}

// Step 推进一帧，返回本帧经过的秒数
func (c *TickClock) Step() float64 {
	if c.paused {
		return 0
	}
	c.ticks++
	c.elapsed += c.step
	return c.step
}

// StepSize 固定步长（秒）
func (c *TickClock) StepSize() float64 { return c.step }

// Elapsed 非暂停状态下累计的游戏时间（秒）
func (c *TickClock) Elapsed() float64 { return c.elapsed }

// Ticks 已推进的帧数
func (c *TickClock) Ticks() uint64 { return c.ticks }

// SetPaused 设置暂停状态
func (c *TickClock) SetPaused(paused bool) { c.paused = paused }

// Paused 是否暂停
func (c *TickClock) Paused() bool { return c.paused }
