package types

import (
	"fmt"
	"strings"
)

// Difficulty 游戏难度
type Difficulty int

const (
	// DifficultyEasy 简单
	DifficultyEasy Difficulty = iota
	// DifficultyNormal 普通
	DifficultyNormal
	// DifficultyHard 困难
	DifficultyHard
)

// String 返回难度名称（同时用于存档和配置键）
func (d Difficulty) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyNormal:
		return "normal"
	case DifficultyHard:
		return "hard"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Label 返回菜单显示文本
func (d Difficulty) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyHard:
		return "Hard"
	default:
		return "Normal"
	}
}

// AllDifficulties 返回全部难度（菜单顺序）
func AllDifficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// ParseDifficulty 解析难度名称，大小写不敏感
func ParseDifficulty(name string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "easy":
		return DifficultyEasy, nil
	case "normal":
		return DifficultyNormal, nil
	case "hard":
		return DifficultyHard, nil
	}
	return DifficultyNormal, fmt.Errorf("unknown difficulty %q", name)
}

// MarshalText 实现 encoding.TextMarshaler，存档与YAML中以名称保存
func (d Difficulty) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler
func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
