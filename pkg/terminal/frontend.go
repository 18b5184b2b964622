package terminal

import (
	"log"
	"time"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/controller"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// finishedInputDelay 终局后忽略按键的时长（秒），防止按住的键直接退出
const finishedInputDelay = 0.5

// Options 终端前端启动参数
type Options struct {
	Difficulty  types.Difficulty
	Multiplayer bool
	// Continue 从存档继续；存档的难度与人数优先
	Continue bool
	Seed     int64
	Audio    game.AudioSettings
}

// Frontend 终端游戏循环：tcell 事件 → 意图 → 控制器 → 渲染与合成音
type Frontend struct {
	screen   tcell.Screen
	gc       *controller.GameController
	keys     *KeyState
	renderer *Renderer
	synth    *Synth

	finishedFor float64
	quitting    bool
}

// NewFrontend 创建终端前端并开局
//
// 参数：
//   - screen: 已初始化的 tcell 屏幕
//   - gate: 存档闸门
//   - synth: 合成器，nil 表示无声
func NewFrontend(screen tcell.Screen, cfg *config.GameConfig, gate *game.PersistenceGate, synth *Synth, opts Options) *Frontend {
	gc := controller.NewGameController(cfg, gate, opts.Seed)
	if opts.Continue {
		if err := gc.LoadGame(); err != nil {
			log.Printf("[Terminal] Warning: %v (starting from defaults)", err)
		}
	} else {
		gc.NewGame(opts.Difficulty, opts.Multiplayer)
		gc.SetAudioSettings(opts.Audio)
	}

	return &Frontend{
		screen:   screen,
		gc:       gc,
		keys:     NewKeyState(gc.State().Multiplayer, DefaultHoldTicks),
		renderer: NewRenderer(cfg),
		synth:    synth,
	}
}

// Controller 返回游戏控制器
func (f *Frontend) Controller() *controller.GameController {
	return f.gc
}

// HandleEvent 处理一个 tcell 事件；返回 false 表示退出
func (f *Frontend) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch f.keys.Handle(ev) {
		case CmdQuit, CmdSaveAndExit:
			f.saveAndQuit()
		}
	case *tcell.EventResize:
		f.screen.Sync()
	}
	return !f.quitting
}

// saveAndQuit 进行中的一局先保存再退出
func (f *Frontend) saveAndQuit() {
	if !f.gc.Finished() {
		if err := f.gc.SaveAndExit(); err != nil {
			log.Printf("[Terminal] Warning: save on exit failed: %v", err)
		} else {
			log.Printf("[Terminal] Saved on exit")
		}
	}
	f.quitting = true
}

// Frame 推进一帧并重绘；返回 false 表示退出
func (f *Frontend) Frame() bool {
	if f.quitting {
		return false
	}

	if f.gc.Finished() {
		f.finishedFor += 1.0 / config.TicksPerSecond
		if f.keys.TakeAnyKey() && f.finishedFor >= finishedInputDelay {
			f.quitting = true
			return false
		}
	} else {
		f.keys.TakeAnyKey()
	}

	f.gc.Tick(f.keys.Intents())
	if f.synth != nil {
		f.synth.Apply(f.gc.DrainAudio())
	} else {
		f.gc.DrainAudio()
	}

	f.renderer.Draw(f.screen, f.gc.View())
	f.screen.Show()
	return true
}

// Run 运行事件循环直到退出
func (f *Frontend) Run() {
	ticker := time.NewTicker(time.Second / config.TicksPerSecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				// 屏幕已关闭
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			if !f.HandleEvent(ev) {
				return
			}
		case <-ticker.C:
			if !f.Frame() {
				return
			}
		}
	}
}

// Close 停止声音
func (f *Frontend) Close() {
	if f.synth != nil {
		f.synth.StopAll()
	}
}
