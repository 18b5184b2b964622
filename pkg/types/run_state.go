package types

// RunState 一局游戏的顶层状态
//
// 状态流转：
//
//	Playing → PhaseCleared（阶段间隔） → Playing(下一阶段) … → Victory
//	Playing → GameOver
type RunState int

const (
	// RunPlaying 正常游戏中
	RunPlaying RunState = iota
	// RunPhaseCleared 阶段完成，间隔倒计时中
	RunPhaseCleared
	// RunVictory 通关（终态）
	RunVictory
	// RunGameOver 游戏结束（终态）
	RunGameOver
)

// String 返回状态名
func (s RunState) String() string {
	switch s {
	case RunPlaying:
		return "Playing"
	case RunPhaseCleared:
		return "PhaseCleared"
	case RunVictory:
		return "Victory"
	case RunGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// IsTerminal 是否为一局的终态
func (s RunState) IsTerminal() bool {
	return s == RunVictory || s == RunGameOver
}

// BossState Boss 遭遇战状态
type BossState int

const (
	// BossDormant 未激活
	BossDormant BossState = iota
	// BossActive 战斗中
	BossActive
	// BossDefeated 已击败（本局不再出现）
	BossDefeated
)

// String 返回状态名
func (s BossState) String() string {
	switch s {
	case BossActive:
		return "Active"
	case BossDefeated:
		return "Defeated"
	default:
		return "Dormant"
	}
}

// BossStage Boss 视觉阶段
type BossStage int

const (
	// BossSleeping 沉睡
	BossSleeping BossStage = iota
	// BossAwake 苏醒
	BossAwake
	// BossEnraged 狂暴
	BossEnraged
)

// String 返回阶段名
func (s BossStage) String() string {
	switch s {
	case BossAwake:
		return "Awake"
	case BossEnraged:
		return "Enraged"
	default:
		return "Sleeping"
	}
}
