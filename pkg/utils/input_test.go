package utils

import (
	"testing"

	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// keys 构造只对给定按键返回 true 的查询函数
func keys(pressed ...ebiten.Key) KeyFunc {
	set := make(map[ebiten.Key]bool)
	for _, k := range pressed {
		set[k] = true
	}
	return func(k ebiten.Key) bool { return set[k] }
}

func TestDecodeIntentsSinglePlayer(t *testing.T) {
	tests := []struct {
		name string
		keys []ebiten.Key
		move game.Vec2
		fire bool
	}{
		{"arrows", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyArrowUp}, game.Vec2{X: -1, Y: -1}, false},
		{"wasd", []ebiten.Key{ebiten.KeyD, ebiten.KeyS}, game.Vec2{X: 1, Y: 1}, false},
		{"opposite keys cancel", []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyD}, game.Vec2{}, false},
		{"fire with space", []ebiten.Key{ebiten.KeySpace}, game.Vec2{}, true},
		{"fire with F", []ebiten.Key{ebiten.KeyF}, game.Vec2{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := DecodeIntents(InputSnapshot{Pressed: keys(tt.keys...)}, false)
			p1 := in[types.Player1]
			if p1.Move != tt.move {
				t.Errorf("Expected move %+v, got %+v", tt.move, p1.Move)
			}
			if p1.Fire != tt.fire {
				t.Errorf("Expected fire=%v, got %v", tt.fire, p1.Fire)
			}
			if in[types.Player2] != (game.PlayerIntent{}) {
				t.Errorf("Player 2 should be idle in single player, got %+v", in[types.Player2])
			}
		})
	}
}

// TestDecodeIntentsMultiplayer 双人模式下两套按键分别控制两名玩家
func TestDecodeIntentsMultiplayer(t *testing.T) {
	snap := InputSnapshot{Pressed: keys(ebiten.KeyArrowRight, ebiten.KeyA, ebiten.KeyF)}
	in := DecodeIntents(snap, true)

	if in[types.Player1].Move != (game.Vec2{X: 1}) || in[types.Player1].Fire {
		t.Errorf("Unexpected P1 intent %+v", in[types.Player1])
	}
	if in[types.Player2].Move != (game.Vec2{X: -1}) || !in[types.Player2].Fire {
		t.Errorf("Unexpected P2 intent %+v", in[types.Player2])
	}
}

// TestDecodeIntentsPauseAndSkip 暂停与跳过只在按下的那一帧触发
func TestDecodeIntentsPauseAndSkip(t *testing.T) {
	in := DecodeIntents(InputSnapshot{JustPressed: keys(ebiten.KeyEscape, ebiten.KeyEnter)}, false)
	if !in.AnyPauseToggle() || !in.AnySkip() {
		t.Errorf("Expected pause and skip, got %+v", in[types.Player1])
	}

	held := DecodeIntents(InputSnapshot{Pressed: keys(ebiten.KeyEscape)}, false)
	if held.AnyPauseToggle() {
		t.Error("Holding Escape should not toggle pause again")
	}
}

// TestDecodeIntentsMouse 鼠标移动时产生跟随目标，键盘移动优先
func TestDecodeIntentsMouse(t *testing.T) {
	in := DecodeIntents(InputSnapshot{CursorX: 120, CursorY: 300, CursorMoved: true, MouseFire: true}, false)
	p1 := in[types.Player1]
	if p1.Steer == nil || p1.Steer.X != 120 || p1.Steer.Y != 300 {
		t.Errorf("Expected steer target (120, 300), got %+v", p1.Steer)
	}
	if !p1.Fire {
		t.Error("Left mouse button should fire")
	}

	still := DecodeIntents(InputSnapshot{CursorX: 120, CursorY: 300}, false)
	if still[types.Player1].Steer != nil {
		t.Error("No steer target without mouse movement")
	}

	keyboard := DecodeIntents(InputSnapshot{Pressed: keys(ebiten.KeyArrowUp), CursorMoved: true}, false)
	if keyboard[types.Player1].Steer != nil {
		t.Error("Keyboard movement should take priority over the mouse")
	}
}

func TestDecodeMenu(t *testing.T) {
	tests := []struct {
		key  ebiten.Key
		want MenuAction
	}{
		{ebiten.KeyArrowUp, MenuUp},
		{ebiten.KeyS, MenuDown},
		{ebiten.KeyArrowLeft, MenuLeft},
		{ebiten.KeyD, MenuRight},
		{ebiten.KeyEnter, MenuConfirm},
		{ebiten.KeySpace, MenuConfirm},
		{ebiten.KeyEscape, MenuBack},
		{ebiten.KeyQ, MenuNone},
	}
	for _, tt := range tests {
		if got := DecodeMenu(keys(tt.key)); got != tt.want {
			t.Errorf("DecodeMenu(%v) = %d, want %d", tt.key, got, tt.want)
		}
	}
}
