package terminal

import (
	"fmt"
	"math"
	"strings"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/controller"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// Canvas 渲染目标，tcell.Screen 满足该接口
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// hudRows 屏幕顶部的 HUD 行数
const hudRows = 1

var (
	styleDefault    = tcell.StyleDefault
	styleHUD        = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleMeteor     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(170, 120, 80))
	styleProjectile = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	stylePlayer1    = tcell.StyleDefault.Foreground(tcell.NewRGBColor(80, 200, 255)).Bold(true)
	stylePlayer2    = tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	styleShield     = tcell.StyleDefault.Foreground(tcell.NewRGBColor(120, 220, 255))
	styleBoss       = tcell.StyleDefault.Foreground(tcell.ColorPurple)
	styleBossRage   = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleBuff       = tcell.StyleDefault.Foreground(tcell.ColorBlue).Bold(true)
	styleDebuff     = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleStar       = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleBanner     = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
)

// PickupGlyph 道具字符
func PickupGlyph(kind types.PickupKind) rune {
	switch kind {
	case types.PickupStar:
		return '*'
	case types.PickupExtraLife:
		return '+'
	case types.PickupShield:
		return 'S'
	case types.PickupSpeedBoost:
		return 'F'
	case types.PickupMeteorBomb:
		return 'B'
	case types.PickupSlowdown:
		return 'L'
	case types.PickupExplosion:
		return 'X'
	default:
		return 'M'
	}
}

func pickupStyle(kind types.PickupKind) tcell.Style {
	switch {
	case kind == types.PickupStar:
		return styleStar
	case kind.IsDebuff():
		return styleDebuff
	default:
		return styleBuff
	}
}

// Renderer 把 View 缩放到终端字符网格
type Renderer struct {
	cfg *config.GameConfig
}

// NewRenderer 创建渲染器
func NewRenderer(cfg *config.GameConfig) *Renderer {
	return &Renderer{cfg: cfg}
}

// cellRect 把场地坐标的矩形映射为字符区域（闭区间）
func (r *Renderer) cellRect(w, h int, x, y, ew, eh float64) (x0, y0, x1, y1 int) {
	sx := float64(w) / r.cfg.Playfield.Width
	sy := float64(h-hudRows) / r.cfg.Playfield.Height

	x0 = int(math.Floor(x * sx))
	y0 = int(math.Floor(y*sy)) + hudRows
	x1 = max(x0, int(math.Ceil((x+ew)*sx))-1)
	y1 = max(y0, int(math.Ceil((y+eh)*sy))-1+hudRows)
	return
}

func fill(c Canvas, x0, y0, x1, y1 int, ch rune, style tcell.Style) {
	w, h := c.Size()
	for y := max(y0, hudRows); y <= y1 && y < h; y++ {
		for x := max(x0, 0); x <= x1 && x < w; x++ {
			c.SetContent(x, y, ch, nil, style)
		}
	}
}

// drawText 从 (x, y) 开始写一行文字，超出宽度截断
func drawText(c Canvas, x, y int, s string, style tcell.Style) {
	w, h := c.Size()
	if y < 0 || y >= h {
		return
	}
	for _, ch := range s {
		if x >= w {
			return
		}
		if x >= 0 {
			c.SetContent(x, y, ch, nil, style)
		}
		x++
	}
}

func drawCentered(c Canvas, y int, s string, style tcell.Style) {
	w, _ := c.Size()
	drawText(c, (w-len([]rune(s)))/2, y, s, style)
}

// Draw 绘制一帧
func (r *Renderer) Draw(c Canvas, v controller.View) {
	w, h := c.Size()
	if w <= 0 || h <= hudRows {
		return
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c.SetContent(x, y, ' ', nil, styleDefault)
		}
	}

	for _, e := range v.Entities {
		x0, y0, x1, y1 := r.cellRect(w, h, e.X, e.Y, e.W, e.H)
		switch e.Kind {
		case types.KindMeteor:
			fill(c, x0, y0, x1, y1, 'O', styleMeteor)
		case types.KindProjectile:
			fill(c, x0, y0, x0, y0, '|', styleProjectile)
		case types.KindPickup:
			fill(c, x0, y0, x0, y0, PickupGlyph(e.Pickup), pickupStyle(e.Pickup))
		case types.KindBoss:
			style := styleBoss
			if v.Boss.Stage == types.BossEnraged {
				style = styleBossRage
			}
			fill(c, x0, y0, x1, y1, '#', style)
		case types.KindPlayer:
			style := stylePlayer1
			if e.Player == types.Player2 {
				style = stylePlayer2
			}
			if e.Shielded {
				fill(c, x0-1, y0, x0-1, y1, '(', styleShield)
				fill(c, x1+1, y0, x1+1, y1, ')', styleShield)
			}
			fill(c, x0, y0, x1, y1, 'A', style)
		}
	}

	drawText(c, 0, 0, r.hudLine(v), styleHUD)

	mid := hudRows + (h-hudRows)/2
	st := v.State
	switch {
	case st.Run == types.RunPhaseCleared:
		drawCentered(c, mid, fmt.Sprintf(" PHASE %d COMPLETE - next in %ds (Enter skips) ", st.Phase, int(math.Ceil(st.InterludeLeft))), styleBanner)
	case st.Run == types.RunVictory:
		drawCentered(c, mid, fmt.Sprintf(" VICTORY! score %d - press any key ", st.Score), styleBanner)
	case st.Run == types.RunGameOver:
		drawCentered(c, mid, fmt.Sprintf(" GAME OVER - score %d - press any key ", st.Score), styleBanner)
	case st.Paused:
		drawCentered(c, mid, " PAUSED - p: resume  Ctrl-S: save and exit  q: quit ", styleBanner)
	}
}

// hudLine 顶部状态行
func (r *Renderer) hudLine(v controller.View) string {
	st := v.State
	parts := []string{
		fmt.Sprintf("Score %d", st.PhaseScore()),
		fmt.Sprintf("Lives %d", st.Lives),
		fmt.Sprintf("Phase %d/%d", st.Phase, r.cfg.PhaseCount()),
	}
	if phase, ok := r.cfg.Phase(st.Phase); ok {
		parts[0] = fmt.Sprintf("Score %d/%d", st.PhaseScore(), phase.ScoreThreshold-r.cfg.PhaseMinScore(st.Phase))
		if phase.RequiredStars > 0 {
			parts = append(parts, fmt.Sprintf("Stars %d/%d", st.ItemsCollected, phase.RequiredStars))
		}
	}
	if v.Boss.Active && v.Boss.MaxHealth > 0 {
		parts = append(parts, fmt.Sprintf("Boss %d%%", int(math.Round(100*v.Boss.Health/v.Boss.MaxHealth))))
	}
	for _, e := range v.Effects {
		parts = append(parts, fmt.Sprintf("%s %.0fs", e.Kind, math.Ceil(e.Remaining)))
	}
	parts = append(parts, fmt.Sprintf("Hi %d", max(st.Highscore, st.Score)))
	return strings.Join(parts, "  ")
}
