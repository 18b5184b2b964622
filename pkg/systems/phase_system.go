package systems

import (
	"log"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// PhaseSystem 阶段控制器
// Playing → PhaseCleared（间隔）→ Playing(phase+1) … → Victory；生命归零 → GameOver
type PhaseSystem struct {
	cfg *config.GameConfig
}

// NewPhaseSystem 创建阶段控制器
func NewPhaseSystem(cfg *config.GameConfig) *PhaseSystem {
	return &PhaseSystem{cfg: cfg}
}

// objectivesMet 基础目标：分数与星星
func objectivesMet(cfg *config.GameConfig, state *game.GameState) bool {
	phase, ok := cfg.Phase(state.Phase)
	if !ok {
		return false
	}
	return state.Score >= phase.ScoreThreshold && state.ItemsCollected >= phase.RequiredStars
}

// ObjectivesMet 当前阶段的分数与星星目标是否达成
func (p *PhaseSystem) ObjectivesMet(state *game.GameState) bool {
	return objectivesMet(p.cfg, state)
}

// CanClear 通关条件：score ≥ 阈值 且 items ≥ 要求 且（不要求 Boss 或 Boss 已击败）
func (p *PhaseSystem) CanClear(state *game.GameState) bool {
	phase, ok := p.cfg.Phase(state.Phase)
	if !ok {
		return false
	}
	return objectivesMet(p.cfg, state) && (!phase.BossRequired || state.BossDefeated)
}

// IsFinalPhase 是否为最后一个配置的阶段
func (p *PhaseSystem) IsFinalPhase(phase int) bool {
	return phase >= p.cfg.PhaseCount()
}

// Evaluate 根据当前状态决定运行状态转换
// 同一帧内生命归零优先于通关；终态只会进入一次
//
// 返回：
//   - types.RunState: 转换后的运行状态
func (p *PhaseSystem) Evaluate(state *game.GameState) types.RunState {
	if state.Run != types.RunPlaying {
		return state.Run
	}

	state.ClampLives()
	if state.Lives <= 0 {
		state.Run = types.RunGameOver
		state.GameOverCount++
		state.UpdateHighscore()
		log.Printf("[PhaseSystem] Game over in phase %d (score=%d, highscore=%d)", state.Phase, state.Score, state.Highscore)
		return state.Run
	}

	if !p.CanClear(state) {
		return state.Run
	}

	if p.IsFinalPhase(state.Phase) {
		state.Run = types.RunVictory
		state.VictoryCount++
		state.UpdateHighscore()
		log.Printf("[PhaseSystem] Victory (score=%d, highscore=%d)", state.Score, state.Highscore)
		return state.Run
	}

	state.Run = types.RunPhaseCleared
	state.InterludeLeft = p.cfg.InterludeSeconds
	log.Printf("[PhaseSystem] Phase %d cleared (score=%d, items=%d)", state.Phase, state.Score, state.ItemsCollected)
	return state.Run
}

// UpdateInterlude 推进阶段间隔倒计时
//
// 参数：
//   - dt: 帧时长（秒）
//   - skip: 玩家请求跳过
//
// 返回：
//   - bool: 间隔是否结束（调用方随后执行 Advance）
func (p *PhaseSystem) UpdateInterlude(state *game.GameState, dt float64, skip bool) bool {
	if state.Run != types.RunPhaseCleared {
		return false
	}
	if skip {
		state.InterludeLeft = 0
		return true
	}
	state.InterludeLeft -= dt
	if state.InterludeLeft <= 0 {
		state.InterludeLeft = 0
		return true
	}
	return false
}

// Advance 进入下一阶段：星星与 Boss 状态重置，分数保留
func (p *PhaseSystem) Advance(state *game.GameState) {
	if state.Run != types.RunPhaseCleared {
		return
	}
	state.Phase++
	state.PhaseStartScore = state.Score
	state.ItemsCollected = 0
	state.Boss = types.BossDormant
	state.BossDefeated = false
	state.InterludeLeft = 0
	state.Run = types.RunPlaying
	log.Printf("[PhaseSystem] Entering phase %d", state.Phase)
}
