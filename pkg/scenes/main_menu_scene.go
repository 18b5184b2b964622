package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/decker502/spaceataque/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// menuPage 主菜单页面
type menuPage int

const (
	pageMain menuPage = iota
	pageSettings
)

// menuItem 主菜单条目
type menuItem int

const (
	itemNewGame menuItem = iota
	itemContinue
	itemDifficulty
	itemPlayers
	itemSettings
	itemQuit
)

// 菜单布局
const (
	menuTop        = 220
	menuLineHeight = 28
	menuLeft       = 300
	menuWidth      = 240
)

// MainMenuScene 主菜单
// 新游戏（难度、单人/双人）、继续存档、设置（各通道音量与开关、全屏）、退出
type MainMenuScene struct {
	ctx *Context

	page   menuPage
	cursor int

	difficulty  types.Difficulty
	multiplayer bool
	hasSave     bool
	highscore   int

	// message 底部提示（如存档读取失败）
	message string
}

// NewMainMenuScene 创建主菜单
//
// 参数：
//   - ctx: 场景共享依赖
//   - message: 进入菜单时显示的提示，可为空
func NewMainMenuScene(ctx *Context, message string) *MainMenuScene {
	s := &MainMenuScene{
		ctx:        ctx,
		difficulty: types.DifficultyNormal,
		message:    message,
	}
	if ctx.Gate != nil {
		s.hasSave = ctx.Gate.HasSave()
		s.highscore = ctx.Gate.StoredHighscore()
	}
	ctx.applyMenuAudio()
	log.Printf("[MainMenuScene] Created (hasSave=%v highscore=%d)", s.hasSave, s.highscore)
	return s
}

// mainItems 当前可见的主菜单条目
func (s *MainMenuScene) mainItems() []menuItem {
	items := []menuItem{itemNewGame}
	if s.hasSave {
		items = append(items, itemContinue)
	}
	return append(items, itemDifficulty, itemPlayers, itemSettings, itemQuit)
}

// settingsRows 设置页行数：基础通道 + 全屏 + 返回
func settingsRows() int {
	return len(game.BaseChannels()) + 2
}

func (s *MainMenuScene) rowCount() int {
	if s.page == pageSettings {
		return settingsRows()
	}
	return len(s.mainItems())
}

// Update 处理菜单输入
func (s *MainMenuScene) Update(deltaTime float64) {
	s.handle(utils.ReadMenu())
}

// handle 执行一个菜单动作
func (s *MainMenuScene) handle(action utils.MenuAction) {
	switch action {
	case utils.MenuUp:
		s.cursor = (s.cursor + s.rowCount() - 1) % s.rowCount()
	case utils.MenuDown:
		s.cursor = (s.cursor + 1) % s.rowCount()
	case utils.MenuNone:
		return
	default:
		if s.page == pageSettings {
			s.handleSettings(action)
		} else {
			s.handleMain(action)
		}
	}
}

func (s *MainMenuScene) handleMain(action utils.MenuAction) {
	items := s.mainItems()
	if s.cursor >= len(items) {
		s.cursor = 0
	}

	switch items[s.cursor] {
	case itemNewGame:
		if action == utils.MenuConfirm {
			s.ctx.Scenes.Request(game.SceneRequest{
				ID:          game.SceneGame,
				Difficulty:  s.difficulty,
				Multiplayer: s.multiplayer,
			})
		}
	case itemContinue:
		if action == utils.MenuConfirm {
			s.ctx.Scenes.Request(game.SceneRequest{ID: game.SceneGame, Continue: true})
		}
	case itemDifficulty:
		all := types.AllDifficulties()
		idx := int(s.difficulty)
		switch action {
		case utils.MenuLeft:
			idx = (idx + len(all) - 1) % len(all)
		case utils.MenuRight, utils.MenuConfirm:
			idx = (idx + 1) % len(all)
		}
		s.difficulty = all[idx]
	case itemPlayers:
		if action != utils.MenuBack {
			s.multiplayer = !s.multiplayer
		}
	case itemSettings:
		if action == utils.MenuConfirm {
			s.page = pageSettings
			s.cursor = 0
		}
	case itemQuit:
		if action == utils.MenuConfirm {
			s.ctx.quit()
		}
	}
}

func (s *MainMenuScene) handleSettings(action utils.MenuAction) {
	channels := game.BaseChannels()
	settings := s.ctx.Settings

	switch {
	case action == utils.MenuBack || (s.cursor == len(channels)+1 && action == utils.MenuConfirm):
		if err := settings.Save(); err != nil {
			log.Printf("[MainMenuScene] Warning: %v", err)
		}
		s.page = pageMain
		s.cursor = 0
		return

	case s.cursor < len(channels):
		ch := channels[s.cursor]
		switch action {
		case utils.MenuLeft:
			settings.StepVolume(ch, -1)
		case utils.MenuRight:
			settings.StepVolume(ch, 1)
		case utils.MenuConfirm:
			settings.ToggleChannel(ch)
		}

	case s.cursor == len(channels):
		enabled := !settings.GetSettings().Fullscreen
		settings.SetFullscreen(enabled)
		if s.ctx.Fullscreen != nil {
			s.ctx.Fullscreen(enabled)
		}
	}
	s.ctx.applyMenuAudio()
}

func (s *MainMenuScene) itemLabel(item menuItem) string {
	switch item {
	case itemNewGame:
		return "New Game"
	case itemContinue:
		return "Continue"
	case itemDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", s.difficulty.Label())
	case itemPlayers:
		if s.multiplayer {
			return "Players: 2"
		}
		return "Players: 1"
	case itemSettings:
		return "Settings"
	default:
		return "Quit"
	}
}

// settingsLabels 设置页每行的文本
func (s *MainMenuScene) settingsLabels() []string {
	audio := s.ctx.Settings.Audio()
	labels := make([]string, 0, settingsRows())
	for _, ch := range game.BaseChannels() {
		state := "on"
		if !audio.IsEnabled(ch) {
			state = "off"
		}
		labels = append(labels, fmt.Sprintf("%-6s < %3d > [%s]", ch, audio.Volume(ch), state))
	}
	fullscreen := "off"
	if s.ctx.Settings.GetSettings().Fullscreen {
		fullscreen = "on"
	}
	return append(labels, "Fullscreen: "+fullscreen, "Back")
}

// Draw 绘制菜单
func (s *MainMenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	ebitenutil.DebugPrintAt(screen, "S P A C E   A T A Q U E", menuLeft+30, 120)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Highscore: %d", s.highscore), menuLeft+60, 150)

	var labels []string
	if s.page == pageSettings {
		labels = s.settingsLabels()
		ebitenutil.DebugPrintAt(screen, "Left/Right: volume   Enter: on/off   Esc: back", menuLeft-60, menuTop-30)
	} else {
		for _, item := range s.mainItems() {
			labels = append(labels, s.itemLabel(item))
		}
	}

	for i, label := range labels {
		y := menuTop + i*menuLineHeight
		if i == s.cursor {
			vector.DrawFilledRect(screen, menuLeft-10, float32(y-6), menuWidth, menuLineHeight-4, colorHighlight, false)
		}
		ebitenutil.DebugPrintAt(screen, label, menuLeft, y)
	}

	if s.message != "" {
		ebitenutil.DebugPrintAt(screen, s.message, config.HUDMarginX, config.GameWindowHeight-30)
	}
}
