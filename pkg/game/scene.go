package game

import (
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game scene (e.g., main menu, gameplay, result screen).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，用于支持场景在窗口关闭时保存状态
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}

// SceneID 场景标识
type SceneID string

const (
	SceneMenu   SceneID = "menu"
	SceneGame   SceneID = "game"
	SceneResult SceneID = "result"
)

// SceneRequest 切换场景时携带的参数
type SceneRequest struct {
	ID          SceneID
	Difficulty  types.Difficulty // 新游戏难度
	Multiplayer bool             // 新游戏是否双人
	Continue    bool             // 从存档继续
	Result      *GameState       // 结果场景显示的终局状态
	Message     string           // 菜单底部提示
}
