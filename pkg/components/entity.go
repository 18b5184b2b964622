package components

import "github.com/decker502/spaceataque/pkg/types"

// KindComponent 实体种类标签
type KindComponent struct {
	Kind types.EntityKind
}

// AliveComponent 存活标志
// Destroy 会先清除该标志，实体在帧末压缩时才真正移除
type AliveComponent struct {
	Alive bool
}
