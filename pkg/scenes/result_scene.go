package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/decker502/spaceataque/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// 结算页计时（秒）
const (
	resultInputDelay = 0.5  // 防止终局时按住的键直接跳过结算页
	resultTimeout    = 10.0 // 无操作自动返回主菜单
)

// ResultScene 结算页：胜利或游戏结束
type ResultScene struct {
	ctx     *Context
	final   game.GameState
	elapsed float64
}

// NewResultScene 创建结算页
// final 为 nil 时显示空结果（不应发生）
func NewResultScene(ctx *Context, final *game.GameState) *ResultScene {
	s := &ResultScene{ctx: ctx}
	if final != nil {
		s.final = *final
	} else {
		log.Printf("[ResultScene] Warning: no final state")
	}
	log.Printf("[ResultScene] %s score=%d highscore=%d", s.final.Run, s.final.Score, s.final.Highscore)
	return s
}

// Update 等待任意键或超时
func (s *ResultScene) Update(deltaTime float64) {
	s.advance(deltaTime, utils.AnyKeyJustPressed())
}

// advance 推进计时；返回是否已请求返回主菜单
func (s *ResultScene) advance(deltaTime float64, pressed bool) bool {
	s.elapsed += deltaTime
	if (pressed && s.elapsed >= resultInputDelay) || s.elapsed >= resultTimeout {
		s.ctx.Scenes.Request(game.SceneRequest{ID: game.SceneMenu})
		return true
	}
	return false
}

// Draw 绘制结算信息
func (s *ResultScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	title := "GAME OVER"
	if s.final.Run == types.RunVictory {
		title = "VICTORY!"
	}
	drawCenteredText(screen, title, 200)
	drawCenteredText(screen, fmt.Sprintf("Difficulty: %s", s.final.Difficulty.Label()), 250)
	drawCenteredText(screen, fmt.Sprintf("Phase reached: %d", s.final.Phase), 270)
	drawCenteredText(screen, fmt.Sprintf("Score: %d", s.final.Score), 290)

	highscore := max(s.final.Highscore, s.final.Score)
	line := fmt.Sprintf("Highscore: %d", highscore)
	if s.final.Score > 0 && s.final.Score >= highscore {
		line += "  NEW!"
	}
	drawCenteredText(screen, line, 310)

	if s.elapsed >= resultInputDelay {
		drawCenteredText(screen, "Press any key", 360)
	}
}
