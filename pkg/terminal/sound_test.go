package terminal

import (
	"math"
	"testing"
	"time"

	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/systems"
	"github.com/gopxl/beep"
)

// 以下测试不初始化扬声器，只检查合成器状态

// TestSynthLoopLifecycle 循环通道的启动、调音量与停止
func TestSynthLoopLifecycle(t *testing.T) {
	s := NewSynth()

	s.Apply([]game.AudioDirective{{Channel: game.ChannelMusic, TargetVolume: 60, Enabled: true, Loop: true}})
	if !s.LoopPlaying(game.ChannelMusic) {
		t.Fatal("Expected music loop playing")
	}

	s.Apply([]game.AudioDirective{{Channel: game.ChannelMusic, TargetVolume: 0, Enabled: true, Loop: true}})
	if s.LoopPlaying(game.ChannelMusic) {
		t.Error("Zero volume should silence the loop")
	}

	s.Apply([]game.AudioDirective{{Channel: game.ChannelMusic, TargetVolume: 60, Enabled: false, Loop: true}})
	if s.LoopPlaying(game.ChannelMusic) {
		t.Error("Disabled loop should be paused")
	}
	if s.mixer.Len() != 1 {
		t.Errorf("Expected a single loop voice in the mixer, got %d", s.mixer.Len())
	}
}

// TestSynthDisabledLoopNotCreated 从未启用的循环不占用混音器
func TestSynthDisabledLoopNotCreated(t *testing.T) {
	s := NewSynth()
	s.Apply([]game.AudioDirective{{Channel: game.ChannelLowLives, TargetVolume: 50, Enabled: false, Loop: true}})
	if s.mixer.Len() != 0 {
		t.Errorf("Expected empty mixer, got %d streamers", s.mixer.Len())
	}
}

// TestSynthOneShots 一次性提示音只在 Start 且启用时播放
func TestSynthOneShots(t *testing.T) {
	s := NewSynth()
	s.Apply([]game.AudioDirective{
		{Channel: game.ChannelShoot, TargetVolume: 50, Enabled: true, Start: true},
		{Channel: game.ChannelPoint, TargetVolume: 50, Enabled: false, Start: true},
		{Channel: game.ChannelHit, TargetVolume: 0, Enabled: true, Start: true},
		{Channel: game.ChannelCollectStar, TargetVolume: 80, Enabled: true},
		{Channel: game.AudioChannel("unknown"), TargetVolume: 80, Enabled: true, Start: true},
	})
	if got := s.OneShots(); got != 1 {
		t.Errorf("Expected 1 one-shot, got %d", got)
	}

	s.StopAll()
	if s.mixer.Len() != 0 {
		t.Errorf("Expected mixer cleared, got %d", s.mixer.Len())
	}
}

// TestSynthCueTonesAudible 每个一次性通道的音色都能产生采样
func TestSynthCueTonesAudible(t *testing.T) {
	for ch, tn := range tones {
		if systems.IsLoopChannel(ch) {
			continue
		}
		t.Run(string(ch), func(t *testing.T) {
			if tn.duration <= 0 {
				t.Fatalf("Expected positive duration, got %v", tn.duration)
			}
			src, err := tn.newStreamer(synthSampleRate)
			if err != nil {
				t.Fatalf("newStreamer() failed: %v", err)
			}
			samples := make([][2]float64, 512)
			n, ok := beep.Take(synthSampleRate.N(tn.duration), src).Stream(samples)
			if n == 0 || !ok {
				t.Errorf("Expected samples, got n=%d ok=%v", n, ok)
			}
		})
	}
}

// TestSynthBossFinalStop Boss 入场提示音可以被停止指令截断
func TestSynthBossFinalStop(t *testing.T) {
	s := NewSynth()
	s.Apply([]game.AudioDirective{{Channel: game.ChannelBossFinal, TargetVolume: 25, Enabled: true, Start: true}})
	if !s.CuePlaying(game.ChannelBossFinal) {
		t.Fatal("Expected boss final cue playing")
	}

	s.Apply([]game.AudioDirective{{Channel: game.ChannelBossFinal}})
	if s.CuePlaying(game.ChannelBossFinal) {
		t.Error("Stop directive should end the boss final cue")
	}

	samples := make([][2]float64, 512)
	s.mixer.Stream(samples)
	if s.mixer.Len() != 0 {
		t.Errorf("Expected stopped cue removed from the mixer, got %d streamers", s.mixer.Len())
	}
}

// TestSynthUninitializedClose 未初始化时关闭是安全的
func TestSynthUninitializedClose(t *testing.T) {
	s := NewSynth()
	s.Close()
	s.Close()
}

// TestPulseGenerator 节拍内发声，节拍外静音
func TestPulseGenerator(t *testing.T) {
	g := NewPulseGenerator(synthSampleRate, 440, 100*time.Millisecond, 0.5)
	samples := make([][2]float64, synthSampleRate.N(100*time.Millisecond))
	n, ok := g.Stream(samples)
	if n != len(samples) || !ok {
		t.Fatalf("Expected an endless stream, got n=%d ok=%v", n, ok)
	}

	half := len(samples) / 2
	loud := 0.0
	for _, s := range samples[:half] {
		loud = math.Max(loud, math.Abs(s[0]))
	}
	if loud == 0 {
		t.Error("Expected sound in the first half of the beat")
	}
	for i, s := range samples[half+1:] {
		if s[0] != 0 || s[1] != 0 {
			t.Fatalf("Expected silence after the duty cycle, sample %d = %v", half+1+i, s)
		}
	}
	if g.Err() != nil {
		t.Errorf("Expected no error, got %v", g.Err())
	}
}
