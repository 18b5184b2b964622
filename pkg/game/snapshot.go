package game

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/entities"
	"github.com/decker502/spaceataque/pkg/types"
)

// GameSnapshot 持久化的游戏状态子集
// 定时效果与场上实体不保存，加载后从干净的阶段起点继续
type GameSnapshot struct {
	Difficulty      types.Difficulty `json:"difficulty"`
	Score           int              `json:"score"`
	Lives           int              `json:"lives"`
	Phase           int              `json:"phase"`
	PlayerPosition  Vec2             `json:"player_position"`
	Player2Position *Vec2            `json:"player2_position"`
	Multiplayer     bool             `json:"multiplayer"`
	ItemsCollected  int              `json:"items_collected"`
	BossDefeated    bool             `json:"boss_defeated"`
	Highscore       int              `json:"highscore"`
	Volumes         VolumeSet        `json:"volumes"`
	SoundEnabled    EnabledSet       `json:"sound_enabled"`
}

// DefaultSnapshot 全新一局的快照（普通难度、第一阶段）
func DefaultSnapshot(cfg *config.GameConfig) GameSnapshot {
	x, y := entities.PlayerStartPosition(cfg, types.Player1, false)
	audio := DefaultAudioSettings()
	return GameSnapshot{
		Difficulty:     types.DifficultyNormal,
		Lives:          cfg.Difficulty(types.DifficultyNormal).Lives,
		Phase:          1,
		PlayerPosition: Vec2{X: x, Y: y},
		Volumes:        audio.Volumes,
		SoundEnabled:   audio.Enabled,
	}
}

// Encode 序列化为 JSON
func (s GameSnapshot) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return data, nil
}

// DecodeSnapshot 解析 JSON 快照并校验
// 解析或校验失败返回 *PersistenceError
func DecodeSnapshot(data []byte, cfg *config.GameConfig) (GameSnapshot, error) {
	var snap GameSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return GameSnapshot{}, &PersistenceError{Op: "decode", Err: err}
	}
	if err := snap.Normalize(cfg); err != nil {
		return GameSnapshot{}, err
	}
	return snap, nil
}

// Normalize 校验并修正快照，保证内部一致
//
// 规则：
//   - phase 超出配置范围：无法修复，返回 *PersistenceError
//   - lives/score/items 为负：无法修复，返回 *PersistenceError
//   - score 低于该阶段最低分：钳制到最低分并记录日志
//   - highscore 低于 score：提升到 score
func (s *GameSnapshot) Normalize(cfg *config.GameConfig) error {
	if s.Phase < 1 || s.Phase > cfg.PhaseCount() {
		return &PersistenceError{Op: "validate", Err: fmt.Errorf("phase %d out of range 1..%d", s.Phase, cfg.PhaseCount())}
	}
	if s.Lives < 0 || s.Score < 0 || s.ItemsCollected < 0 {
		return &PersistenceError{Op: "validate", Err: fmt.Errorf("negative counters (lives=%d score=%d items=%d)", s.Lives, s.Score, s.ItemsCollected)}
	}
	if minScore := cfg.PhaseMinScore(s.Phase); s.Score < minScore {
		log.Printf("[Snapshot] Warning: score %d below phase %d minimum %d, clamped", s.Score, s.Phase, minScore)
		s.Score = minScore
	}
	if s.Highscore < s.Score {
		s.Highscore = s.Score
	}
	if s.Multiplayer && s.Player2Position == nil {
		x, y := entities.PlayerStartPosition(cfg, types.Player2, true)
		s.Player2Position = &Vec2{X: x, Y: y}
	}
	if !s.Multiplayer {
		s.Player2Position = nil
	}
	return nil
}

// AudioSettings 快照中的音频设置
func (s GameSnapshot) AudioSettings() AudioSettings {
	return AudioSettings{Volumes: s.Volumes, Enabled: s.SoundEnabled}
}
