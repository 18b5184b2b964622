package config

import (
	"fmt"
	"log"

	"github.com/decker502/spaceataque/pkg/embedded"
)

// LoadGameConfigFrom 按优先级加载游戏配置
//
// 加载顺序：
//  1. overridePath 非空：从文件系统读取（--config 参数）
//  2. 内嵌资源 data/config/game.yaml
//  3. 内嵌资源未初始化（测试、工具）时使用 DefaultGameConfig
func LoadGameConfigFrom(overridePath string) (*GameConfig, error) {
	if overridePath != "" {
		return LoadGameConfig(overridePath)
	}

	if !embedded.IsInitialized() {
		log.Printf("[GameConfig] Embedded resources not initialized, using built-in defaults")
		return DefaultGameConfig(), nil
	}

	data, err := embedded.ReadFile(DefaultGameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded game config: %w", err)
	}
	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[GameConfig] Loaded embedded %s", DefaultGameConfigPath)
	return cfg, nil
}
