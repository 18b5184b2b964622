// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来：加载配置、打开存储、
// 创建音频管理器与场景管理器，并实现 ebiten.Game 接口。
package app

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log"
	"time"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/scenes"
	"github.com/decker502/spaceataque/pkg/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppName gdata 存储使用的应用名
const AppName = game.StorageAppName

// sampleRate 音频采样率
const sampleRate = 48000

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 覆盖内嵌游戏配置的 YAML 文件路径，为空时使用内嵌配置
	ConfigPath string
	// Seed 固定随机种子（0 表示使用当前时间）
	Seed int64
	// NoAudio 不创建音频上下文
	NoAudio bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	settings                 *game.SettingsManager
	audio                    *game.AudioManager
	verbose                  bool
	quitting                 bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 调用此函数前，必须先调用 embedded.Init() 初始化嵌入资源。
// 配置无效时返回 *config.ConfigError。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := config.LoadGameConfigFrom(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config: %w", err)
	}
	log.Printf("[App] Game config loaded: %d phases", gameConfig.PhaseCount())

	storage := game.OpenStorage(AppName)
	settings := game.NewSettingsManager(storage)
	gate := game.NewPersistenceGate(game.NewSaveManager(storage), gameConfig)

	audioManager := game.NewAudioManager(nil)
	if !cfg.NoAudio {
		resourceManager := game.NewResourceManager(audio.NewContext(sampleRate))
		if err := resourceManager.LoadResourceConfig(game.DefaultResourceConfigPath); err != nil {
			// 音频资源是可选的
			log.Printf("[App] Warning: %v (audio disabled)", err)
		} else {
			audioManager = game.NewResourceAudioManager(resourceManager)
			audioManager.Preload(game.AllChannels(), systems.IsLoopChannel)
		}
	}

	a := &App{
		sceneManager: game.NewSceneManager(),
		settings:     settings,
		audio:        audioManager,
		verbose:      cfg.Verbose,
	}

	ctx := &scenes.Context{
		Config:     gameConfig,
		Scenes:     a.sceneManager,
		Gate:       gate,
		Settings:   settings,
		Audio:      audioManager,
		Policy:     systems.NewAudioPolicy(gameConfig),
		Quit:       func() { a.quitting = true },
		Fullscreen: ebiten.SetFullscreen,
	}
	if cfg.Seed != 0 {
		seed := cfg.Seed
		ctx.Seed = func() int64 { return seed }
	} else {
		ctx.Seed = func() int64 { return time.Now().UnixNano() }
	}
	scenes.Register(ctx)

	if settings.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}
	log.Printf("[App] Initialized")
	return a, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if ebiten.IsWindowBeingClosed() {
		a.saveOnExit()
		return ebiten.Termination
	}
	if a.quitting {
		a.audio.StopAll()
		return ebiten.Termination
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	// 窗口失去焦点时静音
	a.audio.SetMuted(!ebiten.IsFocused())

	a.sceneManager.Update(1.0 / config.TicksPerSecond)
	return nil
}

func (a *App) toggleFullscreen() {
	if ebiten.IsFullscreen() {
		ebiten.SetFullscreen(false)
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.pendingWindowSizeReset = true
		a.windowSizeResetCountdown = 3
	} else {
		ebiten.SetFullscreen(true)
	}
	a.settings.SetFullscreen(ebiten.IsFullscreen())
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// saveOnExit 关闭窗口时让当前场景保存
func (a *App) saveOnExit() {
	if s, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
		if !s.SaveOnExit() {
			log.Printf("[App] Warning: scene failed to save on exit")
		}
	}
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// Run 打开窗口并运行游戏循环
func (a *App) Run(title string) error {
	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
