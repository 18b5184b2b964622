package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// AudioChannel 音频通道
type AudioChannel string

// 基础通道（玩家可调节音量）
const (
	ChannelPoint AudioChannel = "point"
	ChannelHit   AudioChannel = "hit"
	ChannelShoot AudioChannel = "shoot"
	ChannelMusic AudioChannel = "music"
)

// 提示音通道（音量由基础通道推导）
const (
	ChannelLowLives      AudioChannel = "low_lives"
	ChannelBossFinal     AudioChannel = "boss_final"
	ChannelBossExplosion AudioChannel = "boss_explosion"
	ChannelCollectStar   AudioChannel = "collect_star"
	ChannelGameOver      AudioChannel = "game_over"
	ChannelPhaseWait     AudioChannel = "phase_wait"
	ChannelPause         AudioChannel = "pause"
	ChannelMenu          AudioChannel = "menu"
)

// BaseChannels 可调节的基础通道
func BaseChannels() []AudioChannel {
	return []AudioChannel{ChannelPoint, ChannelHit, ChannelShoot, ChannelMusic}
}

// CueChannels 提示音通道
func CueChannels() []AudioChannel {
	return []AudioChannel{
		ChannelLowLives, ChannelBossFinal, ChannelBossExplosion, ChannelCollectStar,
		ChannelGameOver, ChannelPhaseWait, ChannelPause, ChannelMenu,
	}
}

// AllChannels 全部通道（基础通道在前）
func AllChannels() []AudioChannel {
	return append(BaseChannels(), CueChannels()...)
}

// AudioDirective 核心输出给音频协作者的指令
// 核心从不直接操作音频设备
type AudioDirective struct {
	Channel      AudioChannel
	TargetVolume int  // 0..100
	Enabled      bool // false 表示静音/停止
	Loop         bool // 循环播放
	Start        bool // 一次性提示音：立即从头播放
}

// Volume 0..100 的整数音量
// 解码时兼容旧存档中 0..1 的浮点数
type Volume int

// ClampVolume 钳制到 0..100
func ClampVolume(v int) Volume {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return Volume(v)
}

// UnmarshalJSON 支持整数 0..100 与浮点 0..1 两种格式
func (v *Volume) UnmarshalJSON(data []byte) error {
	raw := string(bytes.TrimSpace(data))
	if raw == "null" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*v = ClampVolume(n)
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("invalid volume %s: %w", raw, err)
	}
	if f <= 1.0 {
		f *= 100
	}
	*v = ClampVolume(int(math.Round(f)))
	return nil
}

// VolumeSet 各基础通道音量
type VolumeSet struct {
	Point Volume `json:"point" yaml:"point"`
	Hit   Volume `json:"hit" yaml:"hit"`
	Shoot Volume `json:"shoot" yaml:"shoot"`
	Music Volume `json:"music" yaml:"music"`
}

// EnabledSet 各基础通道开关
type EnabledSet struct {
	Point bool `json:"point" yaml:"point"`
	Hit   bool `json:"hit" yaml:"hit"`
	Shoot bool `json:"shoot" yaml:"shoot"`
	Music bool `json:"music" yaml:"music"`
}

// AudioSettings 玩家音频设置
type AudioSettings struct {
	Volumes VolumeSet  `json:"volumes" yaml:"volumes"`
	Enabled EnabledSet `json:"sound_enabled" yaml:"soundEnabled"`
}

// DefaultAudioSettings 默认音频设置
func DefaultAudioSettings() AudioSettings {
	return AudioSettings{
		Volumes: VolumeSet{Point: 70, Hit: 70, Shoot: 50, Music: 60},
		Enabled: EnabledSet{Point: true, Hit: true, Shoot: true, Music: true},
	}
}

// Volume 返回基础通道音量；非基础通道返回 0
func (s AudioSettings) Volume(ch AudioChannel) int {
	switch ch {
	case ChannelPoint:
		return int(s.Volumes.Point)
	case ChannelHit:
		return int(s.Volumes.Hit)
	case ChannelShoot:
		return int(s.Volumes.Shoot)
	case ChannelMusic:
		return int(s.Volumes.Music)
	}
	return 0
}

// IsEnabled 返回基础通道开关；非基础通道返回 false
func (s AudioSettings) IsEnabled(ch AudioChannel) bool {
	switch ch {
	case ChannelPoint:
		return s.Enabled.Point
	case ChannelHit:
		return s.Enabled.Hit
	case ChannelShoot:
		return s.Enabled.Shoot
	case ChannelMusic:
		return s.Enabled.Music
	}
	return false
}

// SetVolume 设置基础通道音量（钳制到 0..100）
func (s *AudioSettings) SetVolume(ch AudioChannel, v int) {
	vol := ClampVolume(v)
	switch ch {
	case ChannelPoint:
		s.Volumes.Point = vol
	case ChannelHit:
		s.Volumes.Hit = vol
	case ChannelShoot:
		s.Volumes.Shoot = vol
	case ChannelMusic:
		s.Volumes.Music = vol
	}
}

// SetEnabled 设置基础通道开关
func (s *AudioSettings) SetEnabled(ch AudioChannel, enabled bool) {
	switch ch {
	case ChannelPoint:
		s.Enabled.Point = enabled
	case ChannelHit:
		s.Enabled.Hit = enabled
	case ChannelShoot:
		s.Enabled.Shoot = enabled
	case ChannelMusic:
		s.Enabled.Music = enabled
	}
}

var _ json.Unmarshaler = (*Volume)(nil)
