package game

import (
	"testing"
	"testing/fstest"

	"github.com/decker502/spaceataque/pkg/embedded"
)

const testResourceYAML = `
version: "1.0"
base_path: assets
groups:
  sfx:
    sounds:
      - id: shoot
        path: audio/shoot.ogg
      - id: hit
        path: audio/hit
`

func initTestAssets(t *testing.T) {
	t.Helper()
	assets := fstest.MapFS{
		"assets/config/resources.yaml": {Data: []byte(testResourceYAML)},
		"assets/audio/shoot.ogg":       {Data: []byte("not really ogg")},
	}
	embedded.Init(assets, fstest.MapFS{})
	t.Cleanup(embedded.Reset)
}

// TestSoundPath 资源 ID 映射到完整路径，缺失文件返回错误
func TestSoundPath(t *testing.T) {
	initTestAssets(t)
	rm := NewResourceManager(nil)
	if err := rm.LoadResourceConfig(DefaultResourceConfigPath); err != nil {
		t.Fatalf("LoadResourceConfig() failed: %v", err)
	}

	path, err := rm.SoundPath("shoot")
	if err != nil || path != "assets/audio/shoot.ogg" {
		t.Errorf("Expected assets/audio/shoot.ogg, got %q (err=%v)", path, err)
	}

	// 没有扩展名时默认 .ogg，但文件不存在
	if _, err := rm.SoundPath("hit"); err == nil {
		t.Error("Expected error for missing audio file")
	}
	if _, err := rm.SoundPath("music"); err == nil {
		t.Error("Expected error for unknown resource ID")
	}
}

// TestLoadWithoutAudioContext 没有音频上下文时加载失败而不是崩溃
func TestLoadWithoutAudioContext(t *testing.T) {
	initTestAssets(t)
	rm := NewResourceManager(nil)
	if _, err := rm.LoadSoundEffect("assets/audio/shoot.ogg"); err == nil {
		t.Error("Expected error without an audio context")
	}
	if _, err := rm.LoadAudio("assets/audio/shoot.ogg"); err == nil {
		t.Error("Expected error without an audio context")
	}
}

// TestResourceAudioManagerMissingFiles 资源缺失时音频管理器静默
func TestResourceAudioManagerMissingFiles(t *testing.T) {
	initTestAssets(t)
	rm := NewResourceManager(nil)
	if err := rm.LoadResourceConfig(DefaultResourceConfigPath); err != nil {
		t.Fatalf("LoadResourceConfig() failed: %v", err)
	}
	am := NewResourceAudioManager(rm)
	am.Apply([]AudioDirective{{Channel: ChannelHit, TargetVolume: 70, Enabled: true, Start: true}})
	if am.Playing(ChannelHit) {
		t.Error("Missing channel should stay silent")
	}
}

// TestChannelPaths 路径拼接与未知资源 ID
func TestChannelPaths(t *testing.T) {
	cfg := ResourceConfig{
		BasePath: "assets",
		Groups: map[string]ResourceGroup{
			"a": {Sounds: []SoundResource{{ID: "shoot", Path: "/audio/shoot.wav"}, {ID: "typo", Path: "audio/x.ogg"}}},
			"b": {Sounds: []SoundResource{{ID: "music", Path: "audio/theme"}}},
		},
	}
	paths := cfg.ChannelPaths()
	tests := []struct {
		ch   AudioChannel
		want string
	}{
		{ChannelShoot, "assets/audio/shoot.wav"},
		{ChannelMusic, "assets/audio/theme.ogg"},
	}
	for _, tt := range tests {
		if got := paths[tt.ch]; got != tt.want {
			t.Errorf("Expected %s -> %q, got %q", tt.ch, tt.want, got)
		}
	}

	unknown := cfg.UnknownIDs()
	if len(unknown) != 1 || unknown[0] != "typo" {
		t.Errorf("Expected [typo], got %v", unknown)
	}

	if got := soundFilePath("", "audio/a.mp3"); got != "audio/a.mp3" {
		t.Errorf("Expected audio/a.mp3 without base path, got %q", got)
	}
}
