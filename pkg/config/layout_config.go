package config

// 游戏窗口（逻辑屏幕）尺寸
const (
	GameWindowWidth  = 800
	GameWindowHeight = 600
)

// TicksPerSecond 固定逻辑帧率
const TicksPerSecond = 60

// PlayerBottomMargin 玩家出生点距离屏幕底部的距离
const PlayerBottomMargin = 60.0

// HUD 布局
const (
	HUDMarginX     = 10
	HUDMarginY     = 10
	HUDLineHeight  = 18
	BossBarWidth   = 300.0
	BossBarHeight  = 12.0
	BossBarOffsetY = 40.0
)
