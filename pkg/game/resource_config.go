package game

import (
	"path"
	"sort"
	"strings"
)

// defaultSoundExt 未写扩展名的音频文件默认格式
const defaultSoundExt = ".ogg"

// ResourceConfig 音频资源表（assets/config/resources.yaml）
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  sfx:
//	    sounds:
//	      - id: shoot          # 音频通道名
//	        path: audio/shoot.ogg
//
// 分组只用于组织文件，查找时所有分组合并
type ResourceConfig struct {
	Version  string                   `yaml:"version"`
	BasePath string                   `yaml:"base_path"`
	Groups   map[string]ResourceGroup `yaml:"groups"`
}

// ResourceGroup 一组音频资源
type ResourceGroup struct {
	Sounds []SoundResource `yaml:"sounds"`
}

// SoundResource 一个音频通道对应的文件
type SoundResource struct {
	ID   string `yaml:"id"`
	Path string `yaml:"path"` // 相对 base_path
}

// ChannelPaths 通道 → 完整文件路径
// 分组按名称排序遍历，重复的 ID 以后出现的为准
func (c *ResourceConfig) ChannelPaths() map[AudioChannel]string {
	paths := make(map[AudioChannel]string)
	for _, name := range c.groupNames() {
		for _, sound := range c.Groups[name].Sounds {
			paths[AudioChannel(sound.ID)] = soundFilePath(c.BasePath, sound.Path)
		}
	}
	return paths
}

// UnknownIDs 不是任何音频通道的资源 ID（配置笔误）
func (c *ResourceConfig) UnknownIDs() []string {
	known := make(map[AudioChannel]bool)
	for _, ch := range AllChannels() {
		known[ch] = true
	}
	var unknown []string
	for _, name := range c.groupNames() {
		for _, sound := range c.Groups[name].Sounds {
			if !known[AudioChannel(sound.ID)] {
				unknown = append(unknown, sound.ID)
			}
		}
	}
	return unknown
}

func (c *ResourceConfig) groupNames() []string {
	names := make([]string, 0, len(c.Groups))
	for name := range c.Groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// soundFilePath 拼接 base_path 与相对路径，没有扩展名时补 .ogg
// 嵌入文件系统只接受正斜杠路径
func soundFilePath(basePath, relativePath string) string {
	p := path.Join(basePath, strings.TrimPrefix(relativePath, "/"))
	if path.Ext(p) == "" {
		p += defaultSoundExt
	}
	return p
}
