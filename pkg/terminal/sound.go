package terminal

import (
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	"github.com/decker502/spaceataque/pkg/game"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const synthSampleRate = beep.SampleRate(44100)

// tone 一个通道的合成参数
type tone struct {
	freq     float64
	duration time.Duration // 一次性提示音时长
	period   time.Duration // 节拍长度；一次性提示音为 0 时是连续正弦
	duty     float64       // 节拍内发声比例
}

// tones 终端模式下没有音频文件，每个通道用一个简单音色代替
var tones = map[game.AudioChannel]tone{
	game.ChannelPoint:         {freq: 880, duration: 60 * time.Millisecond},
	game.ChannelHit:           {freq: 140, duration: 180 * time.Millisecond},
	game.ChannelShoot:         {freq: 1320, duration: 30 * time.Millisecond},
	game.ChannelCollectStar:   {freq: 1760, duration: 120 * time.Millisecond},
	game.ChannelBossExplosion: {freq: 90, duration: 600 * time.Millisecond},
	game.ChannelGameOver:      {freq: 110, duration: 900 * time.Millisecond},
	game.ChannelPhaseWait:     {freq: 660, duration: 250 * time.Millisecond},
	game.ChannelPause:         {freq: 440, duration: 80 * time.Millisecond},
	game.ChannelMusic:         {freq: 110, period: 600 * time.Millisecond, duty: 0.5},
	game.ChannelMenu:          {freq: 220, period: 900 * time.Millisecond, duty: 0.4},
	game.ChannelLowLives:      {freq: 330, period: 500 * time.Millisecond, duty: 0.2},
	game.ChannelBossFinal:     {freq: 165, duration: 5 * time.Second, period: 300 * time.Millisecond, duty: 0.5},
}

// PulseGenerator 无限循环的节拍音：每个周期前 duty 部分发声
type PulseGenerator struct {
	sr     beep.SampleRate
	freq   float64
	period int
	on     int
	pos    int
}

// NewPulseGenerator 创建节拍音发生器
func NewPulseGenerator(sr beep.SampleRate, freq float64, period time.Duration, duty float64) *PulseGenerator {
	p := max(sr.N(period), 1)
	return &PulseGenerator{
		sr:     sr,
		freq:   freq,
		period: p,
		on:     int(float64(p) * math.Min(math.Max(duty, 0), 1)),
	}
}

func (g *PulseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		beatPos := g.pos % g.period
		sample := 0.0
		if beatPos < g.on {
			t := float64(g.pos) / float64(g.sr)
			// 简单淡出，避免节拍边缘的爆音
			env := 1.0 - float64(beatPos)/float64(g.on)
			sample = 0.2 * env * math.Sin(2*math.Pi*g.freq*t)
		}
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *PulseGenerator) Err() error {
	return nil
}

// setVolume 0..1 线性音量转换为 effects.Volume 的以 2 为底的对数音量
func setVolume(v *effects.Volume, vol float64) {
	v.Base = 2
	if vol <= 0 {
		v.Volume = 0
		v.Silent = true
		return
	}
	v.Volume = math.Log2(vol)
	v.Silent = false
}

type loopVoice struct {
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

// newStreamer 按音色创建声源：有节拍的用 PulseGenerator，否则是正弦波
func (t tone) newStreamer(sr beep.SampleRate) (beep.Streamer, error) {
	if t.period > 0 {
		return NewPulseGenerator(sr, t.freq, t.period, t.duty), nil
	}
	return generators.SineTone(sr, t.freq)
}

// Synth 用 beep 合成的音频协作者，消费核心输出的 AudioDirective
// 未初始化扬声器时仍然维护状态，只是不发声
type Synth struct {
	mu          sync.Mutex
	sr          beep.SampleRate
	mixer       *beep.Mixer
	loops       map[game.AudioChannel]*loopVoice
	cues        map[game.AudioChannel]*beep.Ctrl // 每个通道最近一次的提示音
	initialized bool
	oneShots    int
}

// NewSynth 创建合成器
func NewSynth() *Synth {
	return &Synth{
		sr:    synthSampleRate,
		mixer: &beep.Mixer{},
		loops: make(map[game.AudioChannel]*loopVoice),
		cues:  make(map[game.AudioChannel]*beep.Ctrl),
	}
}

// Init 初始化扬声器；没有音频设备时返回错误，游戏可以继续无声运行
func (s *Synth) Init() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	if err := speaker.Init(s.sr, s.sr.N(time.Second/10)); err != nil {
		return fmt.Errorf("failed to initialize speaker: %w", err)
	}
	speaker.Play(s.mixer)
	s.initialized = true
	log.Printf("[Synth] Speaker initialized at %d Hz", s.sr)
	return nil
}

// Close 停止全部声音并关闭扬声器
func (s *Synth) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	s.initialized = false
}

// lock 同时锁住扬声器回调（已初始化时）
func (s *Synth) lock() func() {
	s.mu.Lock()
	if s.initialized {
		speaker.Lock()
		return func() {
			speaker.Unlock()
			s.mu.Unlock()
		}
	}
	return s.mu.Unlock
}

// Apply 执行音频指令
func (s *Synth) Apply(directives []game.AudioDirective) {
	if len(directives) == 0 {
		return
	}
	unlock := s.lock()
	defer unlock()

	for _, d := range directives {
		t, ok := tones[d.Channel]
		if !ok {
			continue
		}
		vol := float64(game.ClampVolume(d.TargetVolume)) / 100

		if d.Loop {
			s.applyLoop(d, t, vol)
			continue
		}
		switch {
		case d.Start && d.Enabled && vol > 0:
			s.playOnce(d.Channel, t, vol)
		case !d.Enabled:
			// 停止指令：截断仍在播放的提示音
			// Streamer 为 nil 的 Ctrl 会被混音器移除
			if ctrl, ok := s.cues[d.Channel]; ok {
				ctrl.Streamer = nil
				delete(s.cues, d.Channel)
			}
		}
	}
}

func (s *Synth) applyLoop(d game.AudioDirective, t tone, vol float64) {
	voice, ok := s.loops[d.Channel]
	if !ok {
		if !d.Enabled {
			return
		}
		volume := &effects.Volume{Streamer: NewPulseGenerator(s.sr, t.freq, t.period, t.duty)}
		setVolume(volume, vol)
		voice = &loopVoice{ctrl: &beep.Ctrl{Streamer: volume}, volume: volume}
		s.loops[d.Channel] = voice
		s.mixer.Add(voice.ctrl)
	}
	setVolume(voice.volume, vol)
	voice.ctrl.Paused = !d.Enabled
}

func (s *Synth) playOnce(ch game.AudioChannel, t tone, vol float64) {
	if t.duration <= 0 {
		log.Printf("[Synth] Warning: tone for %s has no duration", ch)
		return
	}
	src, err := t.newStreamer(s.sr)
	if err != nil {
		log.Printf("[Synth] Warning: tone for %s: %v", ch, err)
		return
	}
	volume := &effects.Volume{Streamer: beep.Take(s.sr.N(t.duration), src)}
	if t.period > 0 {
		// PulseGenerator 自带 0.2 的幅度
		setVolume(volume, vol)
	} else {
		// 正弦波满幅过响，与循环音保持相近的响度
		setVolume(volume, vol*0.25)
	}
	ctrl := &beep.Ctrl{Streamer: volume}
	s.cues[ch] = ctrl
	s.mixer.Add(ctrl)
	s.oneShots++
}

// CuePlaying 通道最近一次的提示音是否还未被停止
// 不检查流是否已自然播放完毕
func (s *Synth) CuePlaying(ch game.AudioChannel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	ctrl, ok := s.cues[ch]
	return ok && ctrl.Streamer != nil
}

// StopAll 暂停全部循环音并丢弃正在播放的提示音
func (s *Synth) StopAll() {
	unlock := s.lock()
	defer unlock()
	s.mixer.Clear()
	s.loops = make(map[game.AudioChannel]*loopVoice)
	s.cues = make(map[game.AudioChannel]*beep.Ctrl)
}

// LoopPlaying 循环通道是否正在发声
func (s *Synth) LoopPlaying(ch game.AudioChannel) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	voice, ok := s.loops[ch]
	return ok && !voice.ctrl.Paused && !voice.volume.Silent
}

// OneShots 已触发的一次性提示音数量
func (s *Synth) OneShots() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.oneShots
}
