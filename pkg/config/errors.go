package config

import "fmt"

// ConfigError 游戏配置无效（缺少难度条目、阈值表错误、效果表错误等）
// 启动阶段致命：游戏不会开始
type ConfigError struct {
	Field  string // 出错的配置路径，如 "difficulties.hard"
	Reason string
	Err    error // 底层错误（如 YAML 解析错误），可能为 nil
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid game config %s: %s: %v", e.Field, e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid game config %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func configErrorf(field, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
