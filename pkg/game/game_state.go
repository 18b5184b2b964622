package game

import (
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/types"
)

// GameState 一局游戏的显式状态
// 由唯一的控制器持有，各系统通过方法修改，方法内负责钳制不变量
type GameState struct {
	Difficulty  types.Difficulty
	Multiplayer bool

	Run   types.RunState
	Phase int // 从 1 开始

	Score           int // 累计分数，阶段内单调不减
	PhaseStartScore int // 进入当前阶段时的分数
	ItemsCollected  int // 本阶段收集的星星数
	Lives           int // 团队共享生命
	Highscore       int

	Boss         types.BossState
	BossDefeated bool

	// InterludeLeft 阶段间隔剩余秒数，仅在 RunPhaseCleared 时有效
	InterludeLeft float64

	Paused bool

	// GameOverCount/VictoryCount 进入终态的次数，用于断言"恰好一次"
	GameOverCount int
	VictoryCount  int
}

// NewGameState 按难度创建新局的初始状态
func NewGameState(cfg *config.GameConfig, difficulty types.Difficulty, multiplayer bool, highscore int) *GameState {
	return &GameState{
		Difficulty:  difficulty,
		Multiplayer: multiplayer,
		Run:         types.RunPlaying,
		Phase:       1,
		Lives:       cfg.Difficulty(difficulty).Lives,
		Highscore:   highscore,
		Boss:        types.BossDormant,
	}
}

// PhaseScore 阶段内显示分数
func (gs *GameState) PhaseScore() int {
	return gs.Score - gs.PhaseStartScore
}

// IsPlaying 是否处于正常游戏中（未暂停、非间隔、非终态）
func (gs *GameState) IsPlaying() bool {
	return gs.Run == types.RunPlaying && !gs.Paused
}

// AddScore 增加分数
// 阶段间隔与终态中分数冻结；负数视为程序错误
//
// 返回：
//   - int: 实际增加的分数
func (gs *GameState) AddScore(points int) int {
	if points < 0 {
		ReportInvariant("score-monotonic", "negative score delta %d ignored", points)
		return 0
	}
	if gs.Run != types.RunPlaying {
		return 0
	}
	gs.Score += points
	return points
}

// AddItem 收集一个星星（间隔与终态中冻结）
func (gs *GameState) AddItem() {
	if gs.Run != types.RunPlaying {
		return
	}
	gs.ItemsCollected++
}

// AddLives 增加生命
func (gs *GameState) AddLives(n int) {
	if n <= 0 {
		return
	}
	gs.Lives += n
}

// LoseLives 扣除生命，钳制到 0
//
// 返回：
//   - bool: 本次扣除是否使生命从正数变为 0
func (gs *GameState) LoseLives(n int) bool {
	if n <= 0 || gs.Lives <= 0 {
		return false
	}
	gs.Lives -= n
	if gs.Lives < 0 {
		gs.Lives = 0
	}
	return gs.Lives == 0
}

// ClampLives 修正负生命（程序错误）
func (gs *GameState) ClampLives() {
	if gs.Lives < 0 {
		ReportInvariant("lives-non-negative", "lives=%d clamped to 0", gs.Lives)
		gs.Lives = 0
	}
}

// UpdateHighscore highscore = max(highscore, score)
func (gs *GameState) UpdateHighscore() {
	if gs.Score > gs.Highscore {
		gs.Highscore = gs.Score
	}
}

// Clone 返回状态副本（渲染与测试使用）
func (gs *GameState) Clone() GameState {
	return *gs
}
