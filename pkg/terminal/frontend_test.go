package terminal

import (
	"testing"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T) tcell.Screen {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return screen
}

// TestFrontendPauseAndSave 暂停后 Ctrl-S 保存并退出
func TestFrontendPauseAndSave(t *testing.T) {
	cfg := config.DefaultGameConfig()
	gate := game.NewPersistenceGate(game.NewSaveManager(nil), cfg)
	f := NewFrontend(newTestScreen(t), cfg, gate, NewSynth(), Options{
		Difficulty: types.DifficultyEasy,
		Seed:       1,
		Audio:      game.DefaultAudioSettings(),
	})

	for i := 0; i < 5; i++ {
		if !f.Frame() {
			t.Fatal("Frame() should keep running")
		}
	}

	f.HandleEvent(runeKey('p'))
	f.Frame()
	if !f.Controller().State().Paused {
		t.Fatal("Expected game paused")
	}

	if f.HandleEvent(tcell.NewEventKey(tcell.KeyCtrlS, 0, tcell.ModCtrl)) {
		t.Error("Ctrl-S should quit")
	}
	if !gate.HasSave() {
		t.Error("Expected a save after Ctrl-S")
	}
	if f.Frame() {
		t.Error("Frame() should stop after quitting")
	}
}

// TestFrontendContinue 从存档继续时采用存档的人数
func TestFrontendContinue(t *testing.T) {
	cfg := config.DefaultGameConfig()
	gate := game.NewPersistenceGate(game.NewSaveManager(nil), cfg)
	snap := game.DefaultSnapshot(cfg)
	snap.Multiplayer = true
	snap.Difficulty = types.DifficultyHard
	if err := gate.Save(game.TriggerSaveAndExit, snap); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	f := NewFrontend(newTestScreen(t), cfg, gate, nil, Options{Continue: true, Seed: 1})
	st := f.Controller().State()
	if !st.Multiplayer || st.Difficulty != types.DifficultyHard {
		t.Errorf("Unexpected restored state %+v", st)
	}
	if !f.keys.multiplayer {
		t.Error("Key decoding should follow the restored player count")
	}
}
