package terminal

import (
	"testing"

	"github.com/decker502/spaceataque/pkg/types"
	"github.com/gdamore/tcell/v2"
)

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

// TestKeyStateHoldDecay 一次按键保持 holdTicks 帧后松开
func TestKeyStateHoldDecay(t *testing.T) {
	k := NewKeyState(false, 3)
	k.Handle(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))

	for i := 0; i < 3; i++ {
		in := k.Intents()
		if in[types.Player1].Move.X != -1 {
			t.Fatalf("Tick %d: expected move -1, got %v", i, in[types.Player1].Move.X)
		}
	}
	if in := k.Intents(); in[types.Player1].Move.X != 0 {
		t.Errorf("Expected key released after hold, got %v", in[types.Player1].Move.X)
	}
}

// TestKeyStateSinglePlayerSchemes 单人模式下两套按键都控制 P1
func TestKeyStateSinglePlayerSchemes(t *testing.T) {
	k := NewKeyState(false, 0)
	k.Handle(runeKey('d'))
	k.Handle(runeKey('w'))
	k.Handle(runeKey('f'))

	in := k.Intents()
	p1 := in[types.Player1]
	if p1.Move.X != 1 || p1.Move.Y != -1 || !p1.Fire {
		t.Errorf("Expected P1 moving right/up and firing, got %+v", p1)
	}
	if in[types.Player2].Fire || in[types.Player2].Move.X != 0 {
		t.Errorf("P2 should be idle in single player, got %+v", in[types.Player2])
	}
}

// TestKeyStateMultiplayer 双人模式下 WASD/F 控制 P2
func TestKeyStateMultiplayer(t *testing.T) {
	k := NewKeyState(true, 0)
	k.Handle(tcell.NewEventKey(tcell.KeyRight, 0, tcell.ModNone))
	k.Handle(runeKey(' '))
	k.Handle(runeKey('a'))
	k.Handle(runeKey('S'))
	k.Handle(runeKey('f'))

	in := k.Intents()
	if p1 := in[types.Player1]; p1.Move.X != 1 || !p1.Fire {
		t.Errorf("Unexpected P1 intent %+v", p1)
	}
	if p2 := in[types.Player2]; p2.Move.X != -1 || p2.Move.Y != 1 || !p2.Fire {
		t.Errorf("Unexpected P2 intent %+v", p2)
	}
}

// TestKeyStateEdgeActions 暂停与跳过只持续一帧
func TestKeyStateEdgeActions(t *testing.T) {
	k := NewKeyState(false, 0)
	k.Handle(runeKey('p'))
	k.Handle(tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone))

	in := k.Intents()
	if !in.AnyPauseToggle() || !in.AnySkip() {
		t.Errorf("Expected pause and skip on the first tick, got %+v", in[types.Player1])
	}
	in = k.Intents()
	if in.AnyPauseToggle() || in.AnySkip() {
		t.Error("Pause and skip should not repeat")
	}
}

// TestKeyStateCommands 退出与保存命令
func TestKeyStateCommands(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Command
	}{
		{"q", runeKey('q'), CmdQuit},
		{"ctrl-c", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), CmdQuit},
		{"ctrl-s", tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl), CmdSaveAndExit},
		{"move", runeKey('a'), CmdNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k := NewKeyState(false, 0)
			if got := k.Handle(tt.ev); got != tt.want {
				t.Errorf("Expected command %d, got %d", tt.want, got)
			}
			if !k.TakeAnyKey() {
				t.Error("Expected any-key flag to be set")
			}
			if k.TakeAnyKey() {
				t.Error("Any-key flag should reset after TakeAnyKey")
			}
		})
	}
}
