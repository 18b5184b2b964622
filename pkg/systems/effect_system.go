package systems

import (
	"log"
	"slices"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/types"
)

// EffectEntry 一个定时效果
type EffectEntry struct {
	Target    ecs.EntityID     // 作用对象；世界效果为 ecs.WorldEntity
	Kind      types.PickupKind // 效果种类
	Remaining float64          // 剩余秒数
}

type effectKey struct {
	target ecs.EntityID
	kind   types.PickupKind
}

// EffectRegistry 定时效果注册表
// 每个 (target, kind) 最多一个条目，重复施加刷新剩余时间而不叠加
// 倍率由活跃条目实时推导，条目过期即恢复基础值
type EffectRegistry struct {
	cfg     *config.GameConfig
	entries map[effectKey]*EffectEntry
}

// NewEffectRegistry 创建效果注册表
func NewEffectRegistry(cfg *config.GameConfig) *EffectRegistry {
	return &EffectRegistry{
		cfg:     cfg,
		entries: make(map[effectKey]*EffectEntry),
	}
}

// Apply 施加或刷新效果
//
// 参数：
//   - target: 作用对象
//   - kind: 效果种类（必须是定时效果）
//   - duration: 持续秒数，刷新时直接覆盖剩余时间
func (r *EffectRegistry) Apply(target ecs.EntityID, kind types.PickupKind, duration float64) {
	if duration <= 0 {
		log.Printf("[EffectRegistry] Warning: ignoring %s with non-positive duration %.2f", kind, duration)
		return
	}
	key := effectKey{target: target, kind: kind}
	if e, ok := r.entries[key]; ok {
		e.Remaining = duration
		return
	}
	r.entries[key] = &EffectEntry{Target: target, Kind: kind, Remaining: duration}
}

// Tick 所有效果剩余时间减少 dt，返回本次过期（已移除）的条目
func (r *EffectRegistry) Tick(dt float64) []EffectEntry {
	var expired []EffectEntry
	for key, e := range r.entries {
		e.Remaining -= dt
		if e.Remaining <= 0 {
			expired = append(expired, EffectEntry{Target: e.Target, Kind: e.Kind})
			delete(r.entries, key)
		}
	}
	sortEffectEntries(expired)
	return expired
}

// Remaining 返回剩余秒数；无此效果返回 0
func (r *EffectRegistry) Remaining(target ecs.EntityID, kind types.PickupKind) float64 {
	if e, ok := r.entries[effectKey{target: target, kind: kind}]; ok {
		return e.Remaining
	}
	return 0
}

// Active 效果是否生效
func (r *EffectRegistry) Active(target ecs.EntityID, kind types.PickupKind) bool {
	_, ok := r.entries[effectKey{target: target, kind: kind}]
	return ok
}

// SpeedMultiplier 玩家速度倍率
// 加速与减速是独立的效果，同时生效时倍率相乘
func (r *EffectRegistry) SpeedMultiplier(target ecs.EntityID) float64 {
	mult := 1.0
	if r.Active(target, types.PickupSpeedBoost) {
		mult *= r.cfg.Effects.SpeedBoost.Factor
	}
	if r.Active(target, types.PickupSlowdown) {
		mult *= r.cfg.Effects.Slowdown.Factor
	}
	return mult
}

// MeteorSpeedMultiplier 陨石速度倍率（世界效果）
func (r *EffectRegistry) MeteorSpeedMultiplier() float64 {
	if r.Active(ecs.WorldEntity, types.PickupSpeedMeteor) {
		return r.cfg.Effects.SpeedMeteor.Factor
	}
	return 1.0
}

// ClearTarget 移除某个对象的全部效果
func (r *EffectRegistry) ClearTarget(target ecs.EntityID) {
	for key := range r.entries {
		if key.target == target {
			delete(r.entries, key)
		}
	}
}

// Clear 移除全部效果（阶段切换、读档）
func (r *EffectRegistry) Clear() {
	clear(r.entries)
}

// Entries 返回全部活跃条目的副本，按对象与种类排序
func (r *EffectRegistry) Entries() []EffectEntry {
	out := make([]EffectEntry, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, *e)
	}
	sortEffectEntries(out)
	return out
}

// Len 活跃条目数
func (r *EffectRegistry) Len() int {
	return len(r.entries)
}

func sortEffectEntries(entries []EffectEntry) {
	slices.SortFunc(entries, func(a, b EffectEntry) int {
		if a.Target != b.Target {
			if a.Target < b.Target {
				return -1
			}
			return 1
		}
		return int(a.Kind) - int(b.Kind)
	})
}

// checkDuration 配置中缺失的时长属于程序错误，按 InvariantViolation 处理
func checkDuration(kind types.PickupKind, entry config.EffectEntry, ok bool) bool {
	if !ok || entry.Duration <= 0 {
		game.ReportInvariant("effect-duration", "pickup %s has no timed effect configured", kind)
		return false
	}
	return true
}
