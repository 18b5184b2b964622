package systems

import (
	"testing"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

func directiveFor(t *testing.T, ds []game.AudioDirective, ch game.AudioChannel) game.AudioDirective {
	t.Helper()
	for _, d := range ds {
		if d.Channel == ch {
			return d
		}
	}
	t.Fatalf("No directive for channel %s", ch)
	return game.AudioDirective{}
}

// TestDuckingDuringInterlude 间隔期间除 phase_wait 外全部闪避，结束后立即恢复
func TestDuckingDuringInterlude(t *testing.T) {
	p := NewAudioPolicy(config.DefaultGameConfig())
	st := AudioState{Run: types.RunPhaseCleared, Lives: 10, Settings: game.DefaultAudioSettings()}

	ducked := p.Evaluate(st)
	if got := directiveFor(t, ducked, game.ChannelPoint).TargetVolume; got != 28 {
		t.Errorf("Expected ducked point volume 28, got %d", got)
	}
	if got := directiveFor(t, ducked, game.ChannelMusic).TargetVolume; got != 24 {
		t.Errorf("Expected ducked music volume 24, got %d", got)
	}
	wait := directiveFor(t, ducked, game.ChannelPhaseWait)
	if !wait.Enabled || !wait.Loop || wait.TargetVolume != 100 {
		t.Errorf("Expected phase_wait looping at 100, got %+v", wait)
	}

	st.Run = types.RunPlaying
	restored := p.Evaluate(st)
	if got := directiveFor(t, restored, game.ChannelPoint).TargetVolume; got != 70 {
		t.Errorf("Expected restored point volume 70, got %d", got)
	}
	if directiveFor(t, restored, game.ChannelPhaseWait).Enabled {
		t.Error("phase_wait should stop after the interlude")
	}
}

// TestSfxBase 提示音基础音量取已开启音效通道的最大值
func TestSfxBase(t *testing.T) {
	s := game.DefaultAudioSettings()
	s.SetVolume(game.ChannelPoint, 90)
	s.SetVolume(game.ChannelHit, 30)
	s.SetVolume(game.ChannelShoot, 50)
	s.SetEnabled(game.ChannelPoint, false)

	if got := SfxBase(s); got != 50 {
		t.Errorf("Expected base 50, got %d", got)
	}
	if got := AnySfxBase(s); got != 90 {
		t.Errorf("Expected any base 90, got %d", got)
	}
}

// TestBossCueFloor 音效全部关闭时 Boss 提示音仍保持最低音量
func TestBossCueFloor(t *testing.T) {
	cfg := config.DefaultGameConfig()
	p := NewAudioPolicy(cfg)
	s := game.DefaultAudioSettings()
	for _, ch := range []game.AudioChannel{game.ChannelPoint, game.ChannelHit, game.ChannelShoot} {
		s.SetEnabled(ch, false)
	}
	st := AudioState{Run: types.RunPlaying, Lives: 10, Settings: s}

	boss := p.Cue(game.ChannelBossFinal, st)
	if !boss.Enabled || !boss.Start || boss.TargetVolume != cfg.Audio.BossCueFloor {
		t.Errorf("Expected boss cue at floor %d, got %+v", cfg.Audio.BossCueFloor, boss)
	}

	star := p.Cue(game.ChannelCollectStar, st)
	if star.Enabled || star.Start {
		t.Errorf("Star cue should be silent with all SFX muted, got %+v", star)
	}

	// phase_wait 与 low_lives 不受静音影响
	if got := p.CueVolume(game.ChannelPhaseWait, st); got == 0 {
		t.Error("phase_wait should ignore SFX mute")
	}
}

// TestLoopChannels 循环提示音随状态开关
func TestLoopChannels(t *testing.T) {
	p := NewAudioPolicy(config.DefaultGameConfig())
	settings := game.DefaultAudioSettings()

	tests := []struct {
		name    string
		state   AudioState
		channel game.AudioChannel
		enabled bool
	}{
		{"low lives at threshold", AudioState{Run: types.RunPlaying, Lives: 3}, game.ChannelLowLives, true},
		{"low lives above threshold", AudioState{Run: types.RunPlaying, Lives: 4}, game.ChannelLowLives, false},
		{"low lives at zero", AudioState{Run: types.RunGameOver, Lives: 0}, game.ChannelLowLives, false},
		{"pause loop", AudioState{Run: types.RunPlaying, Paused: true, Lives: 10}, game.ChannelPause, true},
		{"music paused", AudioState{Run: types.RunPlaying, Paused: true, Lives: 10}, game.ChannelMusic, false},
		{"music playing", AudioState{Run: types.RunPlaying, Lives: 10}, game.ChannelMusic, true},
		{"menu loop", AudioState{InMenu: true}, game.ChannelMenu, true},
		{"menu loop in game", AudioState{Run: types.RunPlaying, Lives: 10}, game.ChannelMenu, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.state.Settings = settings
			d := directiveFor(t, p.Evaluate(tt.state), tt.channel)
			if d.Enabled != tt.enabled {
				t.Errorf("Expected enabled=%v, got %+v", tt.enabled, d)
			}
		})
	}
}

// TestEvaluateCoversAllChannels 每个通道恰好一条指令
func TestEvaluateCoversAllChannels(t *testing.T) {
	p := NewAudioPolicy(config.DefaultGameConfig())
	ds := p.Evaluate(AudioState{Run: types.RunPlaying, Lives: 10, Settings: game.DefaultAudioSettings()})
	if len(ds) != len(game.AllChannels()) {
		t.Fatalf("Expected %d directives, got %d", len(game.AllChannels()), len(ds))
	}
	for i, ch := range game.AllChannels() {
		if ds[i].Channel != ch {
			t.Errorf("Directive %d: expected %s, got %s", i, ch, ds[i].Channel)
		}
		if ds[i].Start {
			t.Errorf("Evaluate should never start one-shot cues, got %+v", ds[i])
		}
	}
}
