package game

import (
	"log"
)

// ChannelPlayer 单个通道的播放器
// *audio.Player 满足该接口；测试中可以替换为不依赖音频设备的实现
type ChannelPlayer interface {
	SetVolume(volume float64)
	Rewind() error
	Play()
	Pause()
	IsPlaying() bool
}

// PlayerLoader 按通道加载播放器
// loop 为 true 时返回无限循环的播放器
type PlayerLoader func(ch AudioChannel, loop bool) (ChannelPlayer, error)

// AudioManager 音频管理器
// 只执行核心输出的 AudioDirective，不做任何策略判断：
//   - TargetVolume 映射到播放器音量（0..100 → 0..1）
//   - Enabled=false 暂停通道
//   - Start=true 从头播放一次性提示音
//   - Loop=true 的通道在启用期间保持播放
//
// 缺失的音频资源只记录一次警告，之后对该通道的指令全部忽略。
type AudioManager struct {
	loader  PlayerLoader
	players map[AudioChannel]ChannelPlayer
	missing map[AudioChannel]bool
	muted   bool
}

// NewAudioManager 创建音频管理器
//
// 参数：
//   - loader: 通道播放器加载函数，nil 时所有指令都被忽略（无音频模式）
func NewAudioManager(loader PlayerLoader) *AudioManager {
	return &AudioManager{
		loader:  loader,
		players: make(map[AudioChannel]ChannelPlayer),
		missing: make(map[AudioChannel]bool),
	}
}

// NewResourceAudioManager 使用 ResourceManager 加载通道音频
// 通道名即资源 ID（见 assets/config/resources.yaml）
func NewResourceAudioManager(rm *ResourceManager) *AudioManager {
	if rm == nil {
		return NewAudioManager(nil)
	}
	return NewAudioManager(func(ch AudioChannel, loop bool) (ChannelPlayer, error) {
		path, err := rm.SoundPath(string(ch))
		if err != nil {
			return nil, err
		}
		if loop {
			return rm.LoadAudio(path)
		}
		return rm.LoadSoundEffect(path)
	})
}

// Apply 按顺序执行音频指令
func (am *AudioManager) Apply(directives []AudioDirective) {
	for _, d := range directives {
		am.apply(d)
	}
}

func (am *AudioManager) apply(d AudioDirective) {
	player := am.player(d.Channel, d.Loop)
	if player == nil {
		return
	}

	player.SetVolume(float64(ClampVolume(d.TargetVolume)) / 100)

	if !d.Enabled || am.muted {
		if player.IsPlaying() {
			player.Pause()
		}
		return
	}

	switch {
	case d.Start:
		if err := player.Rewind(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to rewind %s: %v", d.Channel, err)
		}
		player.Play()
	case d.Loop:
		if !player.IsPlaying() {
			player.Play()
		}
	}
}

// player 获取或加载通道播放器
func (am *AudioManager) player(ch AudioChannel, loop bool) ChannelPlayer {
	if p, ok := am.players[ch]; ok {
		return p
	}
	if am.loader == nil || am.missing[ch] {
		return nil
	}

	p, err := am.loader(ch, loop)
	if err != nil || p == nil {
		log.Printf("[AudioManager] Warning: No audio for channel %s: %v", ch, err)
		am.missing[ch] = true
		return nil
	}
	am.players[ch] = p
	return p
}

// StopAll 暂停全部通道（切换场景或退出时调用）
func (am *AudioManager) StopAll() {
	for _, p := range am.players {
		if p.IsPlaying() {
			p.Pause()
		}
	}
}

// SetMuted 全局静音（窗口失去焦点时使用）
// 静音期间收到的指令只更新音量
func (am *AudioManager) SetMuted(muted bool) {
	am.muted = muted
	if muted {
		am.StopAll()
	}
}

// Playing 通道当前是否在播放
func (am *AudioManager) Playing(ch AudioChannel) bool {
	p, ok := am.players[ch]
	return ok && p.IsPlaying()
}

// Preload 预加载通道播放器，避免首次播放时的延迟
func (am *AudioManager) Preload(channels []AudioChannel, loop func(AudioChannel) bool) {
	loaded := 0
	for _, ch := range channels {
		if am.player(ch, loop != nil && loop(ch)) != nil {
			loaded++
		}
	}
	log.Printf("[AudioManager] Preloaded %d/%d channels", loaded, len(channels))
}
