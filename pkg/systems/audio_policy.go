package systems

import (
	"math"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// AudioState 音频策略的输入
// 只描述游戏状态，不涉及任何音频设备
type AudioState struct {
	Run      types.RunState
	Paused   bool
	InMenu   bool
	Lives    int
	Settings game.AudioSettings
}

// Interlude 阶段间隔中（phase_wait 提示音播放期间）
func (s AudioState) Interlude() bool {
	return !s.InMenu && s.Run == types.RunPhaseCleared
}

// AudioPolicy 音量闪避策略
// 纯函数：相同的 AudioState 总是得到相同的指令
type AudioPolicy struct {
	cfg *config.GameConfig
}

// NewAudioPolicy 创建音频策略
func NewAudioPolicy(cfg *config.GameConfig) *AudioPolicy {
	return &AudioPolicy{cfg: cfg}
}

var sfxChannels = []game.AudioChannel{game.ChannelPoint, game.ChannelHit, game.ChannelShoot}

// SfxBase 提示音基础音量 = 已开启的 point/hit/shoot 中的最大值
// 关闭单个音效滑块不会让无关的提示音静音
func SfxBase(settings game.AudioSettings) int {
	base := 0
	for _, ch := range sfxChannels {
		if settings.IsEnabled(ch) {
			base = max(base, settings.Volume(ch))
		}
	}
	return base
}

// AnySfxBase 不考虑开关的 point/hit/shoot 最大值（phase_wait 与 low_lives 使用）
func AnySfxBase(settings game.AudioSettings) int {
	base := 0
	for _, ch := range sfxChannels {
		base = max(base, settings.Volume(ch))
	}
	return base
}

// duck 间隔期间除 phase_wait 外的通道乘以闪避系数
func (p *AudioPolicy) duck(st AudioState, ch game.AudioChannel) float64 {
	if st.Interlude() && ch != game.ChannelPhaseWait {
		return p.cfg.Audio.DuckFactor
	}
	return 1.0
}

func scaleVolume(base int, factor float64) int {
	return int(game.ClampVolume(int(math.Round(float64(base) * factor))))
}

// CueVolume 提示音目标音量：基础音量 × 倍率 × 闪避系数，钳制到 0..100
// Boss 提示音不低于 BossCueFloor
func (p *AudioPolicy) CueVolume(ch game.AudioChannel, st AudioState) int {
	base := SfxBase(st.Settings)
	switch ch {
	case game.ChannelPhaseWait, game.ChannelLowLives:
		base = AnySfxBase(st.Settings)
	}
	vol := scaleVolume(base, p.cfg.CueBoost(string(ch))*p.duck(st, ch))
	if isBossCue(ch) {
		vol = max(vol, p.cfg.Audio.BossCueFloor)
	}
	return vol
}

func isBossCue(ch game.AudioChannel) bool {
	return ch == game.ChannelBossFinal || ch == game.ChannelBossExplosion
}

// cueEnabled Boss 提示音不受静音影响，其余提示音在音量为 0 时视为关闭
func (p *AudioPolicy) cueEnabled(ch game.AudioChannel, st AudioState) bool {
	if isBossCue(ch) {
		return true
	}
	return p.CueVolume(ch, st) > 0
}

// loopActive 循环提示音在当前状态下是否应播放
func (p *AudioPolicy) loopActive(ch game.AudioChannel, st AudioState) bool {
	switch ch {
	case game.ChannelMenu:
		return st.InMenu
	case game.ChannelPause:
		return !st.InMenu && st.Paused
	case game.ChannelPhaseWait:
		return st.Interlude() && !st.Paused
	case game.ChannelLowLives:
		return !st.InMenu && !st.Paused && st.Run == types.RunPlaying &&
			st.Lives > 0 && st.Lives <= p.cfg.Audio.LowLivesThreshold
	}
	return false
}

// IsLoopChannel 循环播放的通道
func IsLoopChannel(ch game.AudioChannel) bool {
	switch ch {
	case game.ChannelMusic, game.ChannelMenu, game.ChannelPause, game.ChannelPhaseWait, game.ChannelLowLives:
		return true
	}
	return false
}

// Evaluate 计算全部通道的目标状态
// 返回顺序与 game.AllChannels 一致；一次性提示音只给出音量与开关，播放由 Cue 触发
func (p *AudioPolicy) Evaluate(st AudioState) []game.AudioDirective {
	channels := game.AllChannels()
	out := make([]game.AudioDirective, 0, len(channels))
	inGame := !st.InMenu && !st.Run.IsTerminal()

	for _, ch := range channels {
		d := game.AudioDirective{Channel: ch, Loop: IsLoopChannel(ch)}
		switch ch {
		case game.ChannelPoint, game.ChannelHit, game.ChannelShoot:
			d.TargetVolume = scaleVolume(st.Settings.Volume(ch), p.duck(st, ch))
			d.Enabled = st.Settings.IsEnabled(ch)
		case game.ChannelMusic:
			d.TargetVolume = scaleVolume(st.Settings.Volume(ch), p.duck(st, ch))
			d.Enabled = st.Settings.IsEnabled(ch) && inGame && !st.Paused
		default:
			d.TargetVolume = p.CueVolume(ch, st)
			d.Enabled = p.cueEnabled(ch, st)
			if d.Loop {
				d.Enabled = d.Enabled && p.loopActive(ch, st)
			}
		}
		out = append(out, d)
	}
	return out
}

// Cue 一次性提示音的播放指令
func (p *AudioPolicy) Cue(ch game.AudioChannel, st AudioState) game.AudioDirective {
	var vol int
	var enabled bool
	switch ch {
	case game.ChannelPoint, game.ChannelHit, game.ChannelShoot:
		vol = scaleVolume(st.Settings.Volume(ch), p.duck(st, ch))
		enabled = st.Settings.IsEnabled(ch)
	default:
		vol = p.CueVolume(ch, st)
		enabled = p.cueEnabled(ch, st)
	}
	return game.AudioDirective{
		Channel:      ch,
		TargetVolume: vol,
		Enabled:      enabled,
		Start:        enabled,
	}
}
