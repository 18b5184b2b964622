package scenes

import (
	"fmt"
	"image/color"
	"math"

	"github.com/decker502/spaceataque/pkg/components"
	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/controller"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// debugGlyphWidth ebitenutil 调试字体的字符宽度
const debugGlyphWidth = 6

// drawCenteredText 水平居中绘制一行文字
func drawCenteredText(screen *ebiten.Image, s string, y int) {
	x := (config.GameWindowWidth - len(s)*debugGlyphWidth) / 2
	ebitenutil.DebugPrintAt(screen, s, x, y)
}

// pickupColor 道具颜色；增益偏冷色，减益偏暖色
func pickupColor(kind types.PickupKind) color.RGBA {
	switch kind {
	case types.PickupStar:
		return color.RGBA{R: 255, G: 220, B: 0, A: 255}
	case types.PickupExtraLife:
		return color.RGBA{R: 255, G: 90, B: 140, A: 255}
	case types.PickupShield:
		return colorShield
	case types.PickupSpeedBoost:
		return color.RGBA{R: 90, G: 255, B: 200, A: 255}
	case types.PickupMeteorBomb:
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	case types.PickupSlowdown:
		return color.RGBA{R: 160, G: 120, B: 60, A: 255}
	case types.PickupExplosion:
		return color.RGBA{R: 255, G: 110, B: 0, A: 255}
	default:
		return color.RGBA{R: 255, G: 60, B: 60, A: 255}
	}
}

// pickupGlyph 道具上的字母
func pickupGlyph(kind types.PickupKind) string {
	switch kind {
	case types.PickupStar:
		return "*"
	case types.PickupExtraLife:
		return "+"
	case types.PickupShield:
		return "S"
	case types.PickupSpeedBoost:
		return "F"
	case types.PickupMeteorBomb:
		return "B"
	case types.PickupSlowdown:
		return "L"
	case types.PickupExplosion:
		return "X"
	default:
		return "M"
	}
}

func (s *GameScene) drawBackground(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	for _, st := range s.stars {
		vector.DrawFilledRect(screen, st.x, st.y, st.size, st.size, colorStar, false)
	}
}

func (s *GameScene) drawEntities(screen *ebiten.Image, view controller.View) {
	for _, e := range view.Entities {
		x, y, w, h := float32(e.X), float32(e.Y), float32(e.W), float32(e.H)
		cx, cy := x+w/2, y+h/2

		switch e.Kind {
		case types.KindMeteor:
			if e.Shape == components.ShapeCircle {
				vector.DrawFilledCircle(screen, cx, cy, w/2, colorMeteor, true)
			} else {
				vector.DrawFilledRect(screen, x, y, w, h, colorMeteor, false)
			}
		case types.KindPickup:
			vector.DrawFilledRect(screen, x, y, w, h, pickupColor(e.Pickup), false)
			ebitenutil.DebugPrintAt(screen, pickupGlyph(e.Pickup), int(cx)-3, int(cy)-8)
		case types.KindProjectile:
			vector.DrawFilledRect(screen, x, y, w, h, colorProjectile, false)
		case types.KindBoss:
			clr := colorBoss
			if view.Boss.Stage == types.BossEnraged {
				clr = colorBossEnrage
			}
			vector.DrawFilledRect(screen, x, y, w, h, clr, false)
			vector.StrokeRect(screen, x, y, w, h, 2, colorStar, false)
		case types.KindPlayer:
			drawShip(screen, x, y, w, h, e.Player)
			if e.Shielded {
				r := float32(math.Max(e.W, e.H)) * 0.7
				vector.StrokeCircle(screen, cx, cy, r, 2, colorShield, true)
			}
		}
	}
}

// drawShip 飞船：机身加两侧机翼
func drawShip(screen *ebiten.Image, x, y, w, h float32, index types.PlayerIndex) {
	clr := colorPlayer1
	if index == types.Player2 {
		clr = colorPlayer2
	}
	vector.DrawFilledRect(screen, x+w*0.35, y, w*0.3, h, clr, false)
	vector.DrawFilledRect(screen, x, y+h*0.5, w, h*0.3, clr, false)
}

func (s *GameScene) drawHUD(screen *ebiten.Image, view controller.View) {
	st := view.State
	cfg := s.ctx.Config

	lines := []string{
		fmt.Sprintf("Score: %d", st.PhaseScore()),
		fmt.Sprintf("Lives: %d", st.Lives),
		fmt.Sprintf("Phase: %d/%d", st.Phase, cfg.PhaseCount()),
	}
	if phase, ok := cfg.Phase(st.Phase); ok {
		lines[0] = fmt.Sprintf("Score: %d/%d", st.PhaseScore(), phase.ScoreThreshold-cfg.PhaseMinScore(st.Phase))
		if phase.RequiredStars > 0 {
			lines = append(lines, fmt.Sprintf("Stars: %d/%d", st.ItemsCollected, phase.RequiredStars))
		}
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, config.HUDMarginX, config.HUDMarginY+i*config.HUDLineHeight)
	}

	hs := fmt.Sprintf("Highscore: %d", max(st.Highscore, st.Score))
	ebitenutil.DebugPrintAt(screen, hs, config.GameWindowWidth-len(hs)*debugGlyphWidth-config.HUDMarginX, config.HUDMarginY)

	// 生效中的效果与剩余时间
	y := config.HUDMarginY + config.HUDLineHeight
	for _, e := range view.Effects {
		label := fmt.Sprintf("%s %.1fs", e.Kind, e.Remaining)
		ebitenutil.DebugPrintAt(screen, label, config.GameWindowWidth-len(label)*debugGlyphWidth-config.HUDMarginX, y)
		y += config.HUDLineHeight
	}
}

func (s *GameScene) drawBossBar(screen *ebiten.Image, boss controller.BossView) {
	if !boss.Active || boss.MaxHealth <= 0 {
		return
	}
	x := float32(config.GameWindowWidth-config.BossBarWidth) / 2
	y := float32(config.BossBarOffsetY)
	ratio := float32(boss.Health / boss.MaxHealth)

	vector.DrawFilledRect(screen, x, y, config.BossBarWidth, config.BossBarHeight, colorBarBack, false)
	vector.DrawFilledRect(screen, x, y, config.BossBarWidth*ratio, config.BossBarHeight, colorBarFill, false)
	vector.StrokeRect(screen, x, y, config.BossBarWidth, config.BossBarHeight, 1, colorStar, false)
	drawCenteredText(screen, fmt.Sprintf("BOSS (%s)", boss.Stage), int(y)+int(config.BossBarHeight)+2)
}

func drawOverlay(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, config.GameWindowWidth, config.GameWindowHeight, colorOverlay, false)
}

func (s *GameScene) drawInterlude(screen *ebiten.Image, st game.GameState) {
	drawOverlay(screen)
	drawCenteredText(screen, fmt.Sprintf("PHASE %d COMPLETE", st.Phase), 250)
	drawCenteredText(screen, fmt.Sprintf("Next phase in %d s", int(math.Ceil(st.InterludeLeft))), 280)
	drawCenteredText(screen, "Press Enter to skip", 310)
}

func (s *GameScene) drawFinished(screen *ebiten.Image, st game.GameState) {
	drawOverlay(screen)
	title := "GAME OVER"
	if st.Run == types.RunVictory {
		title = "VICTORY!"
	}
	drawCenteredText(screen, title, 270)
}

var pauseLabels = [pauseItemCount]string{"Resume", "Save and exit", "Main menu"}

func (s *GameScene) drawPauseMenu(screen *ebiten.Image) {
	drawOverlay(screen)
	drawCenteredText(screen, "PAUSED", menuTop-50)
	for i, label := range pauseLabels {
		y := menuTop + i*menuLineHeight
		if i == s.pauseCursor {
			vector.DrawFilledRect(screen, menuLeft-10, float32(y-6), menuWidth, menuLineHeight-4, colorHighlight, false)
		}
		ebitenutil.DebugPrintAt(screen, label, menuLeft, y)
	}
}
