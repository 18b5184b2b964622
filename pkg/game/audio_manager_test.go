package game

import (
	"errors"
	"testing"
)

// fakePlayer 记录调用的假播放器
type fakePlayer struct {
	volume  float64
	playing bool
	rewinds int
	plays   int
	loop    bool
}

func (p *fakePlayer) SetVolume(v float64) { p.volume = v }
func (p *fakePlayer) Rewind() error       { p.rewinds++; return nil }
func (p *fakePlayer) Play()               { p.playing = true; p.plays++ }
func (p *fakePlayer) Pause()              { p.playing = false }
func (p *fakePlayer) IsPlaying() bool     { return p.playing }

func newFakeAudio(t *testing.T, missing ...AudioChannel) (*AudioManager, map[AudioChannel]*fakePlayer) {
	t.Helper()
	players := make(map[AudioChannel]*fakePlayer)
	skip := make(map[AudioChannel]bool)
	for _, ch := range missing {
		skip[ch] = true
	}
	am := NewAudioManager(func(ch AudioChannel, loop bool) (ChannelPlayer, error) {
		if skip[ch] {
			return nil, errors.New("not found")
		}
		p := &fakePlayer{loop: loop}
		players[ch] = p
		return p, nil
	})
	return am, players
}

// TestApplyOneShot Start 指令从头播放一次
func TestApplyOneShot(t *testing.T) {
	am, players := newFakeAudio(t)

	am.Apply([]AudioDirective{{Channel: ChannelShoot, TargetVolume: 50, Enabled: true, Start: true}})

	p := players[ChannelShoot]
	if p == nil {
		t.Fatal("Expected shoot player to be loaded")
	}
	if p.rewinds != 1 || p.plays != 1 {
		t.Errorf("Expected one rewind and play, got rewinds=%d plays=%d", p.rewinds, p.plays)
	}
	if p.volume != 0.5 {
		t.Errorf("Expected volume 0.5, got %f", p.volume)
	}
	if p.loop {
		t.Error("One-shot channel should not be loaded as a loop")
	}
}

// TestApplyLoop 循环通道启用时播放，禁用时暂停，重复启用不重新开始
func TestApplyLoop(t *testing.T) {
	am, players := newFakeAudio(t)
	on := AudioDirective{Channel: ChannelMusic, TargetVolume: 60, Enabled: true, Loop: true}

	am.Apply([]AudioDirective{on})
	am.Apply([]AudioDirective{on})

	p := players[ChannelMusic]
	if !p.loop {
		t.Error("Music should be loaded as a loop")
	}
	if p.plays != 1 || p.rewinds != 0 {
		t.Errorf("Expected a single play without rewind, got plays=%d rewinds=%d", p.plays, p.rewinds)
	}

	off := on
	off.Enabled = false
	am.Apply([]AudioDirective{off})
	if am.Playing(ChannelMusic) {
		t.Error("Music should be paused when disabled")
	}
}

// TestApplyVolumeOnly 基础通道的 Evaluate 指令只调整音量，不播放
func TestApplyVolumeOnly(t *testing.T) {
	am, players := newFakeAudio(t)

	am.Apply([]AudioDirective{{Channel: ChannelPoint, TargetVolume: 28, Enabled: true}})

	p := players[ChannelPoint]
	if p.plays != 0 {
		t.Errorf("Volume-only directive should not play, got %d plays", p.plays)
	}
	if p.volume != 0.28 {
		t.Errorf("Expected volume 0.28, got %f", p.volume)
	}
}

// TestMissingChannelIgnored 缺失资源的通道只尝试加载一次
func TestMissingChannelIgnored(t *testing.T) {
	calls := 0
	am := NewAudioManager(func(ch AudioChannel, loop bool) (ChannelPlayer, error) {
		calls++
		return nil, errors.New("not found")
	})

	d := AudioDirective{Channel: ChannelHit, TargetVolume: 70, Enabled: true, Start: true}
	am.Apply([]AudioDirective{d, d, d})

	if calls != 1 {
		t.Errorf("Expected 1 load attempt, got %d", calls)
	}
	if am.Playing(ChannelHit) {
		t.Error("Missing channel cannot be playing")
	}
}

// TestNilLoader 无音频模式下所有指令都被忽略
func TestNilLoader(t *testing.T) {
	am := NewAudioManager(nil)
	am.Apply([]AudioDirective{{Channel: ChannelMenu, Enabled: true, Loop: true}})
	if am.Playing(ChannelMenu) {
		t.Error("Nothing should play without a loader")
	}
}

// TestMutedPausesAll 静音时暂停全部通道，指令不再开始播放
func TestMutedPausesAll(t *testing.T) {
	am, players := newFakeAudio(t)
	am.Apply([]AudioDirective{{Channel: ChannelMenu, TargetVolume: 60, Enabled: true, Loop: true}})

	am.SetMuted(true)
	if players[ChannelMenu].playing {
		t.Error("Menu loop should pause when muted")
	}

	am.Apply([]AudioDirective{{Channel: ChannelShoot, TargetVolume: 60, Enabled: true, Start: true}})
	if players[ChannelShoot].plays != 0 {
		t.Error("One-shot cues should not play while muted")
	}
}
