package game

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/decker502/spaceataque/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"gopkg.in/yaml.v3"
)

// DefaultResourceConfigPath 资源配置文件的默认路径
const DefaultResourceConfigPath = "assets/config/resources.yaml"

// ResourceManager 音频资源加载与缓存
// 文件统一经由 embedded 包读取，测试可以注入任意 fs.FS
// 非线程安全，只在游戏循环中使用
type ResourceManager struct {
	audioCache   map[string]*audio.Player // 文件路径 -> 播放器
	audioContext *audio.Context           // nil 时只能查询路径

	resourceMap map[AudioChannel]string // 通道 -> 文件路径
}

// NewResourceManager 创建资源管理器
//
// 参数：
//   - audioContext: 全局音频上下文，可为 nil（测试、工具只需要路径映射）
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		audioCache:   make(map[string]*audio.Player),
		audioContext: audioContext,
		resourceMap:  make(map[AudioChannel]string),
	}
}

// decodedStream ebiten 解码器的返回值
type decodedStream interface {
	io.ReadSeeker
	Length() int64
}

// decode 按扩展名解码音频文件
func (rm *ResourceManager) decode(path string) (decodedStream, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(data)

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".mp3":
		s, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return s, nil
	case ".ogg":
		s, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return s, nil
	case ".wav":
		s, err := wav.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg, .wav)", ext)
	}
}

// LoadAudio 加载循环播放的音轨（音乐与循环提示音）
func (rm *ResourceManager) LoadAudio(path string) (*audio.Player, error) {
	if cached, ok := rm.audioCache[path]; ok {
		return cached, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("failed to load audio %s: no audio context", path)
	}

	stream, err := rm.decode(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(audio.NewInfiniteLoop(stream, stream.Length()))
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	rm.audioCache[path] = player
	return player, nil
}

// LoadSoundEffect 加载一次性音效，不包装为无限循环
func (rm *ResourceManager) LoadSoundEffect(path string) (*audio.Player, error) {
	if cached, ok := rm.audioCache[path]; ok {
		return cached, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("failed to load sound effect %s: no audio context", path)
	}

	stream, err := rm.decode(path)
	if err != nil {
		return nil, err
	}

	player, err := rm.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	rm.audioCache[path] = player
	return player, nil
}

// LoadResourceConfig 读取音频资源表并建立通道 → 文件映射
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := embedded.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var config ResourceConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}
	for _, id := range config.UnknownIDs() {
		log.Printf("[ResourceManager] Warning: resource %q is not an audio channel", id)
	}

	rm.resourceMap = config.ChannelPaths()
	log.Printf("[ResourceManager] Loaded %s: %d sounds", configPath, len(rm.resourceMap))
	return nil
}

// SoundPath 按资源 ID 查找音频文件路径
// 资源未配置或文件不存在时返回错误（音频资源是可选的）
func (rm *ResourceManager) SoundPath(id string) (string, error) {
	path, ok := rm.resourceMap[AudioChannel(id)]
	if !ok {
		return "", fmt.Errorf("resource ID not found: %s", id)
	}
	if !embedded.Exists(path) {
		return "", fmt.Errorf("audio file missing: %s", path)
	}
	return path, nil
}
