// Package scenes 桌面端场景：主菜单、游戏、结算
package scenes

import (
	"image/color"
	"time"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/systems"
)

// Scene is a type alias for game.Scene.
type Scene = game.Scene

// Context 场景共享的依赖
// 由 pkg/app 创建一次，所有场景共用
type Context struct {
	Config   *config.GameConfig
	Scenes   *game.SceneManager
	Gate     *game.PersistenceGate
	Settings *game.SettingsManager
	Audio    *game.AudioManager
	Policy   *systems.AudioPolicy

	// Seed 新局的随机种子；nil 时使用当前时间
	Seed func() int64
	// Quit 请求退出程序
	Quit func()
	// Fullscreen 切换窗口全屏；nil 时只保存设置
	Fullscreen func(bool)
}

func (c *Context) seed() int64 {
	if c.Seed != nil {
		return c.Seed()
	}
	return time.Now().UnixNano()
}

func (c *Context) quit() {
	if c.Quit != nil {
		c.Quit()
	}
}

// applyMenuAudio 菜单场景的音频：只有菜单循环
func (c *Context) applyMenuAudio() {
	if c.Audio == nil || c.Policy == nil {
		return
	}
	c.Audio.Apply(c.Policy.Evaluate(systems.AudioState{
		InMenu:   true,
		Settings: c.Settings.Audio(),
	}))
}

// 调色板
var (
	colorBackground = color.RGBA{R: 8, G: 8, B: 24, A: 255}
	colorStar       = color.RGBA{R: 180, G: 180, B: 220, A: 255}
	colorHighlight  = color.RGBA{R: 60, G: 90, B: 180, A: 200}
	colorOverlay    = color.RGBA{R: 0, G: 0, B: 0, A: 160}
	colorPlayer1    = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	colorPlayer2    = color.RGBA{R: 120, G: 255, B: 120, A: 255}
	colorShield     = color.RGBA{R: 120, G: 220, B: 255, A: 255}
	colorMeteor     = color.RGBA{R: 150, G: 110, B: 80, A: 255}
	colorProjectile = color.RGBA{R: 255, G: 240, B: 90, A: 255}
	colorBoss       = color.RGBA{R: 200, G: 60, B: 200, A: 255}
	colorBossEnrage = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	colorBarBack    = color.RGBA{R: 60, G: 60, B: 60, A: 255}
	colorBarFill    = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)

// Register 注册全部场景工厂，并切换到主菜单
func Register(ctx *Context) {
	ctx.Scenes.Register(game.SceneMenu, func(req game.SceneRequest) game.Scene {
		return NewMainMenuScene(ctx, req.Message)
	})
	ctx.Scenes.Register(game.SceneGame, func(req game.SceneRequest) game.Scene {
		return NewGameScene(ctx, req)
	})
	ctx.Scenes.Register(game.SceneResult, func(req game.SceneRequest) game.Scene {
		return NewResultScene(ctx, req.Result)
	})
	ctx.Scenes.Request(game.SceneRequest{ID: game.SceneMenu})
}
