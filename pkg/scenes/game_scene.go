package scenes

import (
	"log"
	"math/rand"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/controller"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/decker502/spaceataque/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// resultDelay 终局后停留在游戏画面的时间（秒）
const resultDelay = 2.0

// 暂停菜单条目
const (
	pauseResume = iota
	pauseSaveAndExit
	pauseMainMenu
	pauseItemCount
)

// bgStar 背景星点
type bgStar struct {
	x, y  float32
	size  float32
	speed float32
}

// GameScene 游戏场景
// 持有一个 GameController，每帧读取输入、推进一帧、把音频指令交给 AudioManager
type GameScene struct {
	ctx   *Context
	gc    *controller.GameController
	input *utils.IntentReader

	pauseCursor int
	finishedFor float64
	stars       []bgStar

	// message 画面底部的一次性提示
	message      string
	messageTimer float64
}

// NewGameScene 创建游戏场景
//
// 参数：
//   - ctx: 场景共享依赖
//   - req: Continue=true 时从存档继续，否则按 Difficulty/Multiplayer 开新局
func NewGameScene(ctx *Context, req game.SceneRequest) *GameScene {
	seed := ctx.seed()
	s := &GameScene{
		ctx:   ctx,
		gc:    controller.NewGameController(ctx.Config, ctx.Gate, seed),
		input: utils.NewIntentReader(),
		stars: newStarfield(seed, 80),
	}

	if req.Continue {
		if err := s.gc.LoadGame(); err != nil {
			log.Printf("[GameScene] Warning: %v", err)
			s.gc.SetAudioSettings(ctx.Settings.Audio())
			s.showMessage("Save could not be loaded, starting a new game")
		} else {
			// 存档中的音量设置覆盖当前设置
			ctx.Settings.SetAudio(s.gc.AudioSettings())
		}
	} else {
		s.gc.NewGame(req.Difficulty, req.Multiplayer)
		s.gc.SetAudioSettings(ctx.Settings.Audio())
	}

	st := s.gc.State()
	log.Printf("[GameScene] Started: difficulty=%s multiplayer=%v phase=%d", st.Difficulty, st.Multiplayer, st.Phase)
	return s
}

func newStarfield(seed int64, n int) []bgStar {
	rng := rand.New(rand.NewSource(seed))
	stars := make([]bgStar, n)
	for i := range stars {
		stars[i] = bgStar{
			x:     float32(rng.Float64() * config.GameWindowWidth),
			y:     float32(rng.Float64() * config.GameWindowHeight),
			size:  float32(1 + rng.Intn(2)),
			speed: float32(10 + rng.Float64()*40),
		}
	}
	return stars
}

func (s *GameScene) showMessage(msg string) {
	s.message = msg
	s.messageTimer = 3
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	if s.messageTimer > 0 {
		s.messageTimer -= deltaTime
	}

	if s.gc.Finished() {
		s.finishedFor += deltaTime
		s.step(game.Intents{})
		if s.finishedFor >= resultDelay {
			final := s.gc.State()
			s.ctx.Scenes.Request(game.SceneRequest{ID: game.SceneResult, Result: &final})
		}
		return
	}

	st := s.gc.State()
	if st.Paused && s.handlePause(utils.ReadMenu()) {
		s.step(game.Intents{})
		return
	}

	intents := s.input.Read(st.Multiplayer)
	s.step(intents)

	if !st.Paused {
		s.scrollStars(deltaTime)
	}
}

// step 推进控制器并执行音频指令
func (s *GameScene) step(intents game.Intents) controller.TickResult {
	res := s.gc.Tick(intents)
	if s.ctx.Audio != nil {
		s.ctx.Audio.Apply(s.gc.DrainAudio())
	} else {
		s.gc.DrainAudio()
	}
	if res.Saved != game.TriggerNone {
		log.Printf("[GameScene] Saved on %s", res.Saved)
	}
	return res
}

// handlePause 处理暂停菜单
// 返回 true 表示输入已被菜单消费
func (s *GameScene) handlePause(action utils.MenuAction) bool {
	switch action {
	case utils.MenuUp:
		s.pauseCursor = (s.pauseCursor + pauseItemCount - 1) % pauseItemCount
	case utils.MenuDown:
		s.pauseCursor = (s.pauseCursor + 1) % pauseItemCount
	case utils.MenuBack:
		s.gc.SetPaused(false)
	case utils.MenuConfirm:
		switch s.pauseCursor {
		case pauseResume:
			s.gc.SetPaused(false)
		case pauseSaveAndExit:
			if err := s.gc.SaveAndExit(); err != nil {
				s.showMessage("Save failed")
				return true
			}
			s.leave("Game saved")
		case pauseMainMenu:
			s.leave("")
		}
	default:
		return false
	}
	return true
}

// leave 返回主菜单
func (s *GameScene) leave(message string) {
	if s.ctx.Audio != nil {
		s.ctx.Audio.StopAll()
	}
	s.ctx.Scenes.Request(game.SceneRequest{ID: game.SceneMenu, Message: message})
}

func (s *GameScene) scrollStars(dt float64) {
	for i := range s.stars {
		st := &s.stars[i]
		st.y += st.speed * float32(dt)
		if st.y > config.GameWindowHeight {
			st.y -= config.GameWindowHeight
		}
	}
}

// SaveOnExit 窗口关闭时保存进行中的一局
func (s *GameScene) SaveOnExit() bool {
	if s.gc.Finished() {
		return true
	}
	if err := s.gc.SaveAndExit(); err != nil {
		log.Printf("[GameScene] Warning: save on exit failed: %v", err)
		return false
	}
	return true
}

// Draw 绘制游戏画面
func (s *GameScene) Draw(screen *ebiten.Image) {
	view := s.gc.View()

	s.drawBackground(screen)
	s.drawEntities(screen, view)
	s.drawHUD(screen, view)
	s.drawBossBar(screen, view.Boss)

	switch {
	case view.State.Run == types.RunPhaseCleared:
		s.drawInterlude(screen, view.State)
	case view.State.Run.IsTerminal():
		s.drawFinished(screen, view.State)
	case view.State.Paused:
		s.drawPauseMenu(screen)
	}

	if s.messageTimer > 0 {
		drawCenteredText(screen, s.message, config.GameWindowHeight-40)
	}
}
