// Package utils 提供通用工具函数
package utils

import (
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// KeyScheme 一名玩家的按键方案
type KeyScheme struct {
	Left, Right, Up, Down []ebiten.Key
	Fire                  []ebiten.Key
}

// ArrowScheme 方向键 + 空格
func ArrowScheme() KeyScheme {
	return KeyScheme{
		Left:  []ebiten.Key{ebiten.KeyArrowLeft},
		Right: []ebiten.Key{ebiten.KeyArrowRight},
		Up:    []ebiten.Key{ebiten.KeyArrowUp},
		Down:  []ebiten.Key{ebiten.KeyArrowDown},
		Fire:  []ebiten.Key{ebiten.KeySpace},
	}
}

// WASDScheme WASD + F
func WASDScheme() KeyScheme {
	return KeyScheme{
		Left:  []ebiten.Key{ebiten.KeyA},
		Right: []ebiten.Key{ebiten.KeyD},
		Up:    []ebiten.Key{ebiten.KeyW},
		Down:  []ebiten.Key{ebiten.KeyS},
		Fire:  []ebiten.Key{ebiten.KeyF},
	}
}

// BothScheme 单人模式下两套按键都控制同一艘飞船
func BothScheme() KeyScheme {
	a, w := ArrowScheme(), WASDScheme()
	return KeyScheme{
		Left:  append(a.Left, w.Left...),
		Right: append(a.Right, w.Right...),
		Up:    append(a.Up, w.Up...),
		Down:  append(a.Down, w.Down...),
		Fire:  append(a.Fire, w.Fire...),
	}
}

// 全局按键
var (
	pauseKeys = []ebiten.Key{ebiten.KeyEscape, ebiten.KeyP}
	skipKeys  = []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter}
)

// KeyFunc 查询按键状态
type KeyFunc func(ebiten.Key) bool

// InputSnapshot 一帧的原始输入
// Pressed/JustPressed 由调用方提供，便于在测试中构造
type InputSnapshot struct {
	Pressed     KeyFunc
	JustPressed KeyFunc
	CursorX     int
	CursorY     int
	CursorMoved bool // 鼠标本帧移动过
	MouseFire   bool // 鼠标左键按住
}

func anyKey(fn KeyFunc, keys []ebiten.Key) bool {
	if fn == nil {
		return false
	}
	for _, k := range keys {
		if fn(k) {
			return true
		}
	}
	return false
}

// axis 两个方向键合成 -1/0/1
func axis(fn KeyFunc, neg, pos []ebiten.Key) float64 {
	v := 0.0
	if anyKey(fn, neg) {
		v--
	}
	if anyKey(fn, pos) {
		v++
	}
	return v
}

// DecodeScheme 按方案解码一名玩家的移动与射击
func DecodeScheme(snap InputSnapshot, scheme KeyScheme) game.PlayerIntent {
	return game.PlayerIntent{
		Move: game.Vec2{
			X: axis(snap.Pressed, scheme.Left, scheme.Right),
			Y: axis(snap.Pressed, scheme.Up, scheme.Down),
		},
		Fire: anyKey(snap.Pressed, scheme.Fire),
	}
}

// DecodeIntents 把一帧原始输入解码为玩家意图
//
// 参数：
//   - snap: 原始输入
//   - multiplayer: 双人模式下 P1 使用方向键、P2 使用 WASD；单人模式两套都控制 P1
//
// 返回：
//   - 按玩家编号索引的意图；暂停与跳过只记在 P1 上，鼠标只控制 P1
func DecodeIntents(snap InputSnapshot, multiplayer bool) game.Intents {
	var in game.Intents
	if multiplayer {
		in[types.Player1] = DecodeScheme(snap, ArrowScheme())
		in[types.Player2] = DecodeScheme(snap, WASDScheme())
	} else {
		in[types.Player1] = DecodeScheme(snap, BothScheme())
	}

	p1 := &in[types.Player1]
	p1.PauseToggle = anyKey(snap.JustPressed, pauseKeys)
	p1.Skip = anyKey(snap.JustPressed, skipKeys)
	if snap.MouseFire {
		p1.Fire = true
	}
	if snap.CursorMoved && p1.Move == (game.Vec2{}) {
		p1.Steer = &game.Vec2{X: float64(snap.CursorX), Y: float64(snap.CursorY)}
	}
	return in
}

// IntentReader 从 ebiten 读取输入并解码
// 记住上一帧的鼠标位置，只有鼠标移动时才产生跟随目标
type IntentReader struct {
	lastX, lastY int
	primed       bool
}

// NewIntentReader 创建输入读取器
func NewIntentReader() *IntentReader {
	return &IntentReader{}
}

// Snapshot 采集本帧原始输入
func (r *IntentReader) Snapshot() InputSnapshot {
	x, y := ebiten.CursorPosition()
	moved := r.primed && (x != r.lastX || y != r.lastY)
	r.lastX, r.lastY, r.primed = x, y, true

	return InputSnapshot{
		Pressed:     ebiten.IsKeyPressed,
		JustPressed: inpututil.IsKeyJustPressed,
		CursorX:     x,
		CursorY:     y,
		CursorMoved: moved,
		MouseFire:   ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
	}
}

// Read 读取并解码本帧输入
func (r *IntentReader) Read(multiplayer bool) game.Intents {
	return DecodeIntents(r.Snapshot(), multiplayer)
}

// MenuAction 菜单导航动作
type MenuAction int

const (
	MenuNone MenuAction = iota
	MenuUp
	MenuDown
	MenuLeft
	MenuRight
	MenuConfirm
	MenuBack
)

// DecodeMenu 解码菜单导航（方向键或 WASD，回车/空格确认，Esc 返回）
func DecodeMenu(justPressed KeyFunc) MenuAction {
	switch {
	case anyKey(justPressed, []ebiten.Key{ebiten.KeyArrowUp, ebiten.KeyW}):
		return MenuUp
	case anyKey(justPressed, []ebiten.Key{ebiten.KeyArrowDown, ebiten.KeyS}):
		return MenuDown
	case anyKey(justPressed, []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA}):
		return MenuLeft
	case anyKey(justPressed, []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD}):
		return MenuRight
	case anyKey(justPressed, []ebiten.Key{ebiten.KeyEnter, ebiten.KeyNumpadEnter, ebiten.KeySpace}):
		return MenuConfirm
	case anyKey(justPressed, []ebiten.Key{ebiten.KeyEscape}):
		return MenuBack
	}
	return MenuNone
}

// ReadMenu 读取本帧的菜单导航
func ReadMenu() MenuAction {
	return DecodeMenu(inpututil.IsKeyJustPressed)
}

// AnyKeyJustPressed 本帧是否有任意按键或鼠标点击（结果页返回菜单）
func AnyKeyJustPressed() bool {
	return len(inpututil.AppendJustPressedKeys(nil)) > 0 ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}
