// Package terminal 终端前端：tcell 屏幕、按键解码、字符渲染与 beep 合成音效
package terminal

import (
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/gdamore/tcell/v2"
)

// DefaultHoldTicks 一次按键事件视为按住的帧数
// 终端只有按下事件（加上系统自动重复），没有松开事件
const DefaultHoldTicks = 8

// Command 按键产生的前端命令
type Command int

const (
	CmdNone Command = iota
	CmdQuit
	CmdSaveAndExit
)

// action 可持续按住的动作
type action int

const (
	actP1Left action = iota
	actP1Right
	actP1Up
	actP1Down
	actP1Fire
	actP2Left
	actP2Right
	actP2Up
	actP2Down
	actP2Fire
	actCount
)

// KeyState 把终端按键事件解码为每帧的玩家意图
type KeyState struct {
	multiplayer bool
	holdTicks   int
	held        [actCount]int
	pause       bool
	skip        bool
	any         bool
}

// NewKeyState 创建按键状态
//
// 参数：
//   - multiplayer: 双人模式下 WASD/F 控制 P2，否则也控制 P1
//   - holdTicks: 一次按键持续的帧数，<=0 时使用 DefaultHoldTicks
func NewKeyState(multiplayer bool, holdTicks int) *KeyState {
	if holdTicks <= 0 {
		holdTicks = DefaultHoldTicks
	}
	return &KeyState{multiplayer: multiplayer, holdTicks: holdTicks}
}

// second WASD 方案对应的动作（单人模式映射到 P1）
func (k *KeyState) second(a action) action {
	if k.multiplayer {
		return a
	}
	return a - actP2Left
}

func (k *KeyState) press(a action) {
	k.held[a] = k.holdTicks
}

// Handle 处理一个按键事件
func (k *KeyState) Handle(ev *tcell.EventKey) Command {
	k.any = true

	switch ev.Key() {
	case tcell.KeyCtrlC:
		return CmdQuit
	case tcell.KeyCtrlS:
		return CmdSaveAndExit
	case tcell.KeyLeft:
		k.press(actP1Left)
	case tcell.KeyRight:
		k.press(actP1Right)
	case tcell.KeyUp:
		k.press(actP1Up)
	case tcell.KeyDown:
		k.press(actP1Down)
	case tcell.KeyEscape:
		k.pause = true
	case tcell.KeyEnter:
		k.skip = true
	case tcell.KeyRune:
		switch ev.Rune() {
		case ' ':
			k.press(actP1Fire)
		case 'a', 'A':
			k.press(k.second(actP2Left))
		case 'd', 'D':
			k.press(k.second(actP2Right))
		case 'w', 'W':
			k.press(k.second(actP2Up))
		case 's', 'S':
			k.press(k.second(actP2Down))
		case 'f', 'F':
			k.press(k.second(actP2Fire))
		case 'p', 'P':
			k.pause = true
		case 'q', 'Q':
			return CmdQuit
		}
	}
	return CmdNone
}

func (k *KeyState) axis(neg, pos action) float64 {
	v := 0.0
	if k.held[neg] > 0 {
		v--
	}
	if k.held[pos] > 0 {
		v++
	}
	return v
}

// Intents 取出本帧的意图并让按住计时前进一帧
// 暂停与跳过只在按下后的第一帧生效
func (k *KeyState) Intents() game.Intents {
	var in game.Intents
	in[types.Player1] = game.PlayerIntent{
		Move:        game.Vec2{X: k.axis(actP1Left, actP1Right), Y: k.axis(actP1Up, actP1Down)},
		Fire:        k.held[actP1Fire] > 0,
		PauseToggle: k.pause,
		Skip:        k.skip,
	}
	if k.multiplayer {
		in[types.Player2] = game.PlayerIntent{
			Move: game.Vec2{X: k.axis(actP2Left, actP2Right), Y: k.axis(actP2Up, actP2Down)},
			Fire: k.held[actP2Fire] > 0,
		}
	}

	for i := range k.held {
		if k.held[i] > 0 {
			k.held[i]--
		}
	}
	k.pause, k.skip = false, false
	return in
}

// TakeAnyKey 自上次调用以来是否有任意按键
func (k *KeyState) TakeAnyKey() bool {
	pressed := k.any
	k.any = false
	return pressed
}
