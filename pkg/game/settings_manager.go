package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// GameSettings 全局游戏设置（不随存档变化）
type GameSettings struct {
	Audio      AudioSettings `yaml:"audio"`
	Fullscreen bool          `yaml:"fullscreen"` // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Audio:      DefaultAudioSettings(),
		Fullscreen: false,
	}
}

// VolumeStep 设置菜单中音量调节步长
const VolumeStep = 10

// SettingsManager 设置管理器
// 负责游戏设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings  // 当前设置
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	// 加载失败不是致命错误，使用默认设置
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或设置不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	if sm.gdataManager == nil {
		sm.settings = DefaultSettings()
		return nil
	}

	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		sm.settings = DefaultSettings()
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		sm.settings = DefaultSettings()
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	for _, ch := range BaseChannels() {
		loaded.Audio.SetVolume(ch, loaded.Audio.Volume(ch))
	}

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// gdataManager 为 nil 时返回 nil（降级模式，不报错）
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Audio 返回当前音频设置的副本
func (sm *SettingsManager) Audio() AudioSettings {
	return sm.settings.Audio
}

// SetAudio 整体替换音频设置（加载存档时使用）
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetAudio(audio AudioSettings) {
	for _, ch := range BaseChannels() {
		audio.SetVolume(ch, audio.Volume(ch))
	}
	sm.settings.Audio = audio
}

// StepVolume 按步长调节通道音量，返回调节后的值
//
// 参数：
//   - ch: 基础通道
//   - steps: 正数增大，负数减小
func (sm *SettingsManager) StepVolume(ch AudioChannel, steps int) int {
	sm.settings.Audio.SetVolume(ch, sm.settings.Audio.Volume(ch)+steps*VolumeStep)
	return sm.settings.Audio.Volume(ch)
}

// ToggleChannel 切换通道开关，返回新状态
func (sm *SettingsManager) ToggleChannel(ch AudioChannel) bool {
	enabled := !sm.settings.Audio.IsEnabled(ch)
	sm.settings.Audio.SetEnabled(ch, enabled)
	return enabled
}

// SetFullscreen 设置全屏模式
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}
