package game

import (
	"errors"
	"log"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/types"
)

// SaveTrigger 触发保存的时机
type SaveTrigger int

const (
	// TriggerNone 不保存
	TriggerNone SaveTrigger = iota
	// TriggerSaveAndExit 暂停菜单"保存并退出"
	TriggerSaveAndExit
	// TriggerGameOver 进入 GameOver
	TriggerGameOver
	// TriggerVictory 进入 Victory
	TriggerVictory
)

// String 返回触发名
func (t SaveTrigger) String() string {
	switch t {
	case TriggerSaveAndExit:
		return "save-and-exit"
	case TriggerGameOver:
		return "game-over"
	case TriggerVictory:
		return "victory"
	default:
		return "none"
	}
}

// PersistenceGate 决定何时保存/加载以及快照内容
// 实际 I/O 委托给 SaveStore
type PersistenceGate struct {
	store SaveStore
	cfg   *config.GameConfig
}

// NewPersistenceGate 创建持久化闸门
func NewPersistenceGate(store SaveStore, cfg *config.GameConfig) *PersistenceGate {
	return &PersistenceGate{store: store, cfg: cfg}
}

// TriggerFor 根据状态转换判断是否需要保存
// 只有进入终态的那一次转换会触发
func (g *PersistenceGate) TriggerFor(prev, next types.RunState) SaveTrigger {
	if prev == next {
		return TriggerNone
	}
	switch next {
	case types.RunGameOver:
		return TriggerGameOver
	case types.RunVictory:
		return TriggerVictory
	}
	return TriggerNone
}

// Snapshot 从当前状态构建快照
//
// 参数：
//   - state: 当前游戏状态
//   - players: 玩家位置（按编号），长度 1 或 2
//   - audio: 当前音频设置
func (g *PersistenceGate) Snapshot(state *GameState, players []Vec2, audio AudioSettings) GameSnapshot {
	snap := GameSnapshot{
		Difficulty:     state.Difficulty,
		Score:          state.Score,
		Lives:          state.Lives,
		Phase:          state.Phase,
		Multiplayer:    state.Multiplayer,
		ItemsCollected: state.ItemsCollected,
		BossDefeated:   state.BossDefeated,
		Highscore:      max(state.Highscore, state.Score),
		Volumes:        audio.Volumes,
		SoundEnabled:   audio.Enabled,
	}
	if len(players) > 0 {
		snap.PlayerPosition = players[0]
	}
	if state.Multiplayer && len(players) > 1 {
		p2 := players[1]
		snap.Player2Position = &p2
	}
	return snap
}

// Save 写入快照，highscore = max(已保存的 highscore, score)
//
// 返回：
//   - error: 写入失败时返回 *PersistenceError（不致命）
func (g *PersistenceGate) Save(trigger SaveTrigger, snap GameSnapshot) error {
	snap.Highscore = max(snap.Highscore, snap.Score, g.StoredHighscore())

	data, err := snap.Encode()
	if err != nil {
		return &PersistenceError{Op: "save", Err: err}
	}
	if err := g.store.Write(data); err != nil {
		log.Printf("[PersistenceGate] Warning: save (%s) failed: %v", trigger, err)
		return &PersistenceError{Op: "save", Err: err}
	}
	log.Printf("[PersistenceGate] Saved on %s: phase=%d score=%d lives=%d highscore=%d",
		trigger, snap.Phase, snap.Score, snap.Lives, snap.Highscore)
	return nil
}

// HasSave 是否存在存档
func (g *PersistenceGate) HasSave() bool {
	return g.store.Exists()
}

// StoredHighscore 读取已保存的最高分；没有存档或存档损坏时为 0
func (g *PersistenceGate) StoredHighscore() int {
	if !g.store.Exists() {
		return 0
	}
	data, err := g.store.Read()
	if err != nil {
		return 0
	}
	snap, err := DecodeSnapshot(data, g.cfg)
	if err != nil {
		return 0
	}
	return snap.Highscore
}

// Load 读取存档
// 任何失败都回退到 DefaultSnapshot，同时返回 *PersistenceError 供调用方提示
func (g *PersistenceGate) Load() (GameSnapshot, error) {
	data, err := g.store.Read()
	if err != nil {
		if !errors.Is(err, ErrNoSave) {
			log.Printf("[PersistenceGate] Warning: failed to read save: %v (using defaults)", err)
		}
		return DefaultSnapshot(g.cfg), &PersistenceError{Op: "load", Err: err}
	}

	snap, err := DecodeSnapshot(data, g.cfg)
	if err != nil {
		log.Printf("[PersistenceGate] Warning: %v (using defaults)", err)
		return DefaultSnapshot(g.cfg), err
	}
	log.Printf("[PersistenceGate] Loaded save: difficulty=%s phase=%d score=%d", snap.Difficulty, snap.Phase, snap.Score)
	return snap, nil
}

// Restore 由快照生成新的状态基线
// 定时效果、场上实体、Boss 血量都不恢复；快照中生命为 0 时重置为难度初始生命
func (g *PersistenceGate) Restore(snap GameSnapshot) *GameState {
	gs := NewGameState(g.cfg, snap.Difficulty, snap.Multiplayer, snap.Highscore)
	gs.Phase = snap.Phase
	gs.Score = snap.Score
	gs.PhaseStartScore = g.cfg.PhaseMinScore(snap.Phase)
	gs.ItemsCollected = snap.ItemsCollected
	gs.BossDefeated = snap.BossDefeated
	if snap.BossDefeated {
		gs.Boss = types.BossDefeated
	}
	if snap.Lives > 0 {
		gs.Lives = snap.Lives
	} else {
		log.Printf("[PersistenceGate] Snapshot has no lives left, restarting phase %d with %d lives", snap.Phase, gs.Lives)
	}
	return gs
}
