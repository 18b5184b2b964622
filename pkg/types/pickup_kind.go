package types

import "fmt"

// PickupKind 道具种类，同时作为效果计时器的效果种类
type PickupKind int

const (
	// PickupExtraLife 额外生命
	PickupExtraLife PickupKind = iota
	// PickupSpeedBoost 加速
	PickupSpeedBoost
	// PickupShield 护盾
	PickupShield
	// PickupMeteorBomb 陨石炸弹：清除全部陨石并计分
	PickupMeteorBomb
	// PickupSlowdown 减速（减益）
	PickupSlowdown
	// PickupExplosion 爆炸（减益）：清除全部陨石，拾取者受到伤害
	PickupExplosion
	// PickupSpeedMeteor 陨石加速（减益，全局）
	PickupSpeedMeteor
	// PickupStar 星星：阶段目标物品
	PickupStar
)

var pickupKindNames = map[PickupKind]string{
	PickupExtraLife:   "extra_life",
	PickupSpeedBoost:  "speed_boost",
	PickupShield:      "shield",
	PickupMeteorBomb:  "meteor_bomb",
	PickupSlowdown:    "slowdown",
	PickupExplosion:   "explosion",
	PickupSpeedMeteor: "speed_meteor",
	PickupStar:        "star",
}

// AllPickupKinds 按声明顺序返回全部道具种类
func AllPickupKinds() []PickupKind {
	return []PickupKind{
		PickupExtraLife, PickupSpeedBoost, PickupShield, PickupMeteorBomb,
		PickupSlowdown, PickupExplosion, PickupSpeedMeteor, PickupStar,
	}
}

// String 返回配置文件中使用的名称
func (k PickupKind) String() string {
	if name, ok := pickupKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("pickup(%d)", int(k))
}

// IsDebuff 是否为减益道具
func (k PickupKind) IsDebuff() bool {
	return k == PickupSlowdown || k == PickupExplosion || k == PickupSpeedMeteor
}

// ParsePickupKind 从配置名称解析道具种类
func ParsePickupKind(name string) (PickupKind, error) {
	for kind, n := range pickupKindNames {
		if n == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("unknown pickup kind %q", name)
}
