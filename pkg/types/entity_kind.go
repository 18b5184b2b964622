// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import "fmt"

// EntityKind 实体种类标签
type EntityKind int

const (
	// KindUnknown 未知实体
	KindUnknown EntityKind = iota
	// KindPlayer 玩家飞船
	KindPlayer
	// KindMeteor 陨石
	KindMeteor
	// KindProjectile 玩家子弹
	KindProjectile
	// KindPickup 道具（增益/减益）
	KindPickup
	// KindBoss Boss
	KindBoss
)

// String 返回实体种类的字符串表示
func (k EntityKind) String() string {
	switch k {
	case KindPlayer:
		return "Player"
	case KindMeteor:
		return "Meteor"
	case KindProjectile:
		return "Projectile"
	case KindPickup:
		return "Pickup"
	case KindBoss:
		return "Boss"
	default:
		return "Unknown"
	}
}

// PlayerIndex 玩家编号（本地双人模式）
type PlayerIndex int

const (
	// Player1 一号玩家（方向键）
	Player1 PlayerIndex = 0
	// Player2 二号玩家（WASD）
	Player2 PlayerIndex = 1
)

// MaxPlayers 最大本地玩家数
const MaxPlayers = 2

// String 返回玩家编号的显示名
func (p PlayerIndex) String() string {
	return fmt.Sprintf("P%d", int(p)+1)
}
