package config

import (
	"fmt"
	"log"
	"os"
	"sort"

	"github.com/decker502/spaceataque/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultGameConfigPath 内嵌游戏配置路径
const DefaultGameConfigPath = "data/config/game.yaml"

// GameConfig 游戏规则配置
// 对应 data/config/game.yaml
type GameConfig struct {
	Playfield        PlayfieldConfig             `yaml:"playfield"`
	InterludeSeconds float64                     `yaml:"interludeSeconds"` // 阶段间隔时长（秒）
	Difficulties     map[string]DifficultyConfig `yaml:"difficulties"`     // 难度名 -> 难度参数
	Phases           []PhaseConfig               `yaml:"phases"`           // 阶段表，第 i 项对应阶段 i+1
	Player           PlayerConfig                `yaml:"player"`
	Meteor           MeteorConfig                `yaml:"meteor"`
	Pickups          PickupSpawnConfig           `yaml:"pickups"`
	Effects          EffectsConfig               `yaml:"effects"`
	Boss             BossConfig                  `yaml:"boss"`
	Audio            AudioConfig                 `yaml:"audio"`
}

// PlayfieldConfig 逻辑场地尺寸
type PlayfieldConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// DifficultyConfig 单个难度的参数
// 速度单位：像素/秒
type DifficultyConfig struct {
	Lives              int     `yaml:"lives"`              // 初始生命
	MaxMeteors         int     `yaml:"maxMeteors"`         // 第一阶段同屏陨石上限
	MeteorsPerPhase    int     `yaml:"meteorsPerPhase"`    // 每阶段增加的同屏上限
	MinSpeed           float64 `yaml:"minSpeed"`           // 第一阶段陨石最小速度
	MaxSpeed           float64 `yaml:"maxSpeed"`           // 第一阶段陨石最大速度
	SpeedPerPhase      float64 `yaml:"speedPerPhase"`      // 每阶段速度增量
	SpawnIntervalScale float64 `yaml:"spawnIntervalScale"` // 生成间隔缩放（<1 更密集）
}

// PhaseConfig 单个阶段的通关目标
type PhaseConfig struct {
	ScoreThreshold     int     `yaml:"scoreThreshold"`     // 累计分数阈值
	RequiredStars      int     `yaml:"requiredStars"`      // 需要收集的星星数
	BossRequired       bool    `yaml:"bossRequired"`       // 是否需要击败 Boss
	SpawnIntervalScale float64 `yaml:"spawnIntervalScale"` // 阶段生成间隔缩放
}

// PlayerConfig 玩家飞船与子弹参数
type PlayerConfig struct {
	Width            float64 `yaml:"width"`
	Height           float64 `yaml:"height"`
	Speed            float64 `yaml:"speed"`        // 像素/秒
	FireCooldown     float64 `yaml:"fireCooldown"` // 秒
	ProjectileWidth  float64 `yaml:"projectileWidth"`
	ProjectileHeight float64 `yaml:"projectileHeight"`
	ProjectileSpeed  float64 `yaml:"projectileSpeed"` // 像素/秒，向上
}

// MeteorConfig 陨石参数
type MeteorConfig struct {
	Width             float64 `yaml:"width"`
	Height            float64 `yaml:"height"`
	BaseSpawnInterval float64 `yaml:"baseSpawnInterval"` // 基础生成间隔（秒）
}

// PickupSpawnConfig 道具生成参数
type PickupSpawnConfig struct {
	Size            float64        `yaml:"size"`
	FallSpeed       float64        `yaml:"fallSpeed"`       // 像素/秒
	SpawnInterval   float64        `yaml:"spawnInterval"`   // 随机道具生成间隔（秒）
	Weights         map[string]int `yaml:"weights"`         // 道具名 -> 权重（随机表）
	StarScoreStep   int            `yaml:"starScoreStep"`   // 星星按分数步长生成
	StarFromPhase   int            `yaml:"starFromPhase"`   // 星星开始出现的阶段
	ShieldScoreStep int            `yaml:"shieldScoreStep"` // 护盾按分数步长生成
}

// EffectEntry 定时效果参数
type EffectEntry struct {
	Duration float64 `yaml:"duration"` // 秒
	Factor   float64 `yaml:"factor"`   // 倍率（护盾不使用）
}

// EffectsConfig 效果目录
type EffectsConfig struct {
	SpeedBoost      EffectEntry `yaml:"speedBoost"`
	Slowdown        EffectEntry `yaml:"slowdown"`
	Shield          EffectEntry `yaml:"shield"`
	SpeedMeteor     EffectEntry `yaml:"speedMeteor"`
	ExplosionDamage int         `yaml:"explosionDamage"`
}

// BossConfig Boss 遭遇战参数
type BossConfig struct {
	Width          float64   `yaml:"width"`
	Height         float64   `yaml:"height"`
	MaxHealth      float64   `yaml:"maxHealth"`
	DamagePerHit   float64   `yaml:"damagePerHit"`
	AwakeAt        float64   `yaml:"awakeAt"`        // 生命值 <= 该值进入 Awake
	EnragedAt      float64   `yaml:"enragedAt"`      // 生命值 <= 该值进入 Enraged
	MoveThresholds []float64 `yaml:"moveThresholds"` // 降序，越过时重新定位
	PatrolFrom     float64   `yaml:"patrolFrom"`     // 生命值 <= 该值开始水平巡逻
	PatrolSpeed    float64   `yaml:"patrolSpeed"`    // 像素/秒
	TopBandMinY    float64   `yaml:"topBandMinY"`
	DefeatBonus    int       `yaml:"defeatBonus"`
}

// AudioConfig 音频策略参数
type AudioConfig struct {
	DuckFactor        float64            `yaml:"duckFactor"`
	BossCueFloor      int                `yaml:"bossCueFloor"`
	LowLivesThreshold int                `yaml:"lowLivesThreshold"`
	BossFinalSeconds  float64            `yaml:"bossFinalSeconds"`
	CueBoosts         map[string]float64 `yaml:"cueBoosts"` // 提示音通道 -> 音量倍率
}

// DefaultGameConfig 返回内置默认配置
// 数值来自原版游戏，速度由 像素/帧 换算为 像素/秒（60 TPS）
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		Playfield:        PlayfieldConfig{Width: GameWindowWidth, Height: GameWindowHeight},
		InterludeSeconds: 2.0,
		Difficulties: map[string]DifficultyConfig{
			"easy":   {Lives: 20, MaxMeteors: 3, MeteorsPerPhase: 2, MinSpeed: 120, MaxSpeed: 240, SpeedPerPhase: 60, SpawnIntervalScale: 1.3},
			"normal": {Lives: 10, MaxMeteors: 6, MeteorsPerPhase: 2, MinSpeed: 180, MaxSpeed: 360, SpeedPerPhase: 60, SpawnIntervalScale: 1.0},
			"hard":   {Lives: 5, MaxMeteors: 10, MeteorsPerPhase: 2, MinSpeed: 240, MaxSpeed: 480, SpeedPerPhase: 60, SpawnIntervalScale: 0.7},
		},
		Phases: []PhaseConfig{
			{ScoreThreshold: 100, RequiredStars: 0, SpawnIntervalScale: 1.0},
			{ScoreThreshold: 250, RequiredStars: 3, SpawnIntervalScale: 0.85},
			{ScoreThreshold: 350, RequiredStars: 3, BossRequired: true, SpawnIntervalScale: 0.7},
		},
		Player: PlayerConfig{
			Width: 80, Height: 60, Speed: 360, FireCooldown: 0.2,
			ProjectileWidth: 6, ProjectileHeight: 12, ProjectileSpeed: 720,
		},
		Meteor: MeteorConfig{Width: 80, Height: 60, BaseSpawnInterval: 0.6},
		Pickups: PickupSpawnConfig{
			Size: 32, FallSpeed: 150, SpawnInterval: 8,
			Weights: map[string]int{
				"extra_life": 1, "speed_boost": 2, "meteor_bomb": 1,
				"slowdown": 2, "explosion": 1, "speed_meteor": 2,
			},
			StarScoreStep: 20, StarFromPhase: 2, ShieldScoreStep: 33,
		},
		Effects: EffectsConfig{
			SpeedBoost:      EffectEntry{Duration: 6, Factor: 1.5},
			Slowdown:        EffectEntry{Duration: 6, Factor: 0.6},
			Shield:          EffectEntry{Duration: 5},
			SpeedMeteor:     EffectEntry{Duration: 6, Factor: 1.6},
			ExplosionDamage: 1,
		},
		Boss: BossConfig{
			Width: 220, Height: 160, MaxHealth: 100, DamagePerHit: 1.0,
			AwakeAt: 90, EnragedAt: 50,
			MoveThresholds: []float64{90, 80, 70, 60, 50, 40, 30, 20, 10},
			PatrolFrom:     50, PatrolSpeed: 120, TopBandMinY: 10, DefeatBonus: 5,
		},
		Audio: AudioConfig{
			DuckFactor: 0.4, BossCueFloor: 25, LowLivesThreshold: 3, BossFinalSeconds: 5,
			CueBoosts: map[string]float64{
				"low_lives": 6.0, "menu": 5.8, "phase_wait": 6.0, "pause": 4.0,
				"boss_final": 6.0, "boss_explosion": 7.0, "game_over": 3.15, "collect_star": 5.2,
			},
		},
	}
}

// LoadGameConfig 从 YAML 文件加载游戏配置
//
// 参数：
//   - filePath: 配置文件路径
//
// 返回：
//   - *GameConfig: 补全默认值并通过校验的配置
//   - error: 读取失败，或 *ConfigError
func LoadGameConfig(filePath string) (*GameConfig, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file: %w", err)
	}
	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, err
	}
	log.Printf("[GameConfig] Loaded %s: %d phases, %d difficulties", filePath, len(cfg.Phases), len(cfg.Difficulties))
	return cfg, nil
}

// ParseGameConfig 解析 YAML 数据
// 未填写的字段使用默认值；显式给出但无效的条目返回 *ConfigError
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, &ConfigError{Field: "yaml", Reason: "failed to parse game config", Err: err}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// applyDefaults 为缺省字段填充默认值
func (c *GameConfig) applyDefaults() {
	def := DefaultGameConfig()

	if c.Playfield.Width <= 0 {
		c.Playfield.Width = def.Playfield.Width
	}
	if c.Playfield.Height <= 0 {
		c.Playfield.Height = def.Playfield.Height
	}
	if c.InterludeSeconds == 0 {
		c.InterludeSeconds = def.InterludeSeconds
	}
	if c.Difficulties == nil {
		c.Difficulties = def.Difficulties
	}
	for name, d := range c.Difficulties {
		if d.SpawnIntervalScale == 0 {
			d.SpawnIntervalScale = 1.0
		}
		c.Difficulties[name] = d
	}
	if len(c.Phases) == 0 {
		c.Phases = def.Phases
	}
	for i := range c.Phases {
		if c.Phases[i].SpawnIntervalScale == 0 {
			c.Phases[i].SpawnIntervalScale = 1.0
		}
	}

	p := &c.Player
	setDefault(&p.Width, def.Player.Width)
	setDefault(&p.Height, def.Player.Height)
	setDefault(&p.Speed, def.Player.Speed)
	setDefault(&p.FireCooldown, def.Player.FireCooldown)
	setDefault(&p.ProjectileWidth, def.Player.ProjectileWidth)
	setDefault(&p.ProjectileHeight, def.Player.ProjectileHeight)
	setDefault(&p.ProjectileSpeed, def.Player.ProjectileSpeed)

	setDefault(&c.Meteor.Width, def.Meteor.Width)
	setDefault(&c.Meteor.Height, def.Meteor.Height)
	setDefault(&c.Meteor.BaseSpawnInterval, def.Meteor.BaseSpawnInterval)

	pk := &c.Pickups
	setDefault(&pk.Size, def.Pickups.Size)
	setDefault(&pk.FallSpeed, def.Pickups.FallSpeed)
	setDefault(&pk.SpawnInterval, def.Pickups.SpawnInterval)
	if pk.Weights == nil {
		pk.Weights = def.Pickups.Weights
	}
	if pk.StarScoreStep == 0 {
		pk.StarScoreStep = def.Pickups.StarScoreStep
	}
	if pk.StarFromPhase == 0 {
		pk.StarFromPhase = def.Pickups.StarFromPhase
	}
	if pk.ShieldScoreStep == 0 {
		pk.ShieldScoreStep = def.Pickups.ShieldScoreStep
	}

	e := &c.Effects
	setDefaultEffect(&e.SpeedBoost, def.Effects.SpeedBoost)
	setDefaultEffect(&e.Slowdown, def.Effects.Slowdown)
	setDefaultEffect(&e.Shield, def.Effects.Shield)
	setDefaultEffect(&e.SpeedMeteor, def.Effects.SpeedMeteor)
	if e.ExplosionDamage == 0 {
		e.ExplosionDamage = def.Effects.ExplosionDamage
	}

	b := &c.Boss
	setDefault(&b.Width, def.Boss.Width)
	setDefault(&b.Height, def.Boss.Height)
	setDefault(&b.MaxHealth, def.Boss.MaxHealth)
	setDefault(&b.DamagePerHit, def.Boss.DamagePerHit)
	setDefault(&b.AwakeAt, def.Boss.AwakeAt)
	setDefault(&b.EnragedAt, def.Boss.EnragedAt)
	setDefault(&b.PatrolFrom, def.Boss.PatrolFrom)
	setDefault(&b.PatrolSpeed, def.Boss.PatrolSpeed)
	setDefault(&b.TopBandMinY, def.Boss.TopBandMinY)
	if b.MoveThresholds == nil {
		b.MoveThresholds = def.Boss.MoveThresholds
	}
	if b.DefeatBonus == 0 {
		b.DefeatBonus = def.Boss.DefeatBonus
	}

	a := &c.Audio
	setDefault(&a.DuckFactor, def.Audio.DuckFactor)
	setDefault(&a.BossFinalSeconds, def.Audio.BossFinalSeconds)
	if a.BossCueFloor == 0 {
		a.BossCueFloor = def.Audio.BossCueFloor
	}
	if a.LowLivesThreshold == 0 {
		a.LowLivesThreshold = def.Audio.LowLivesThreshold
	}
	if a.CueBoosts == nil {
		a.CueBoosts = def.Audio.CueBoosts
	}
}

func setDefault(v *float64, def float64) {
	if *v == 0 {
		*v = def
	}
}

func setDefaultEffect(e *EffectEntry, def EffectEntry) {
	setDefault(&e.Duration, def.Duration)
	setDefault(&e.Factor, def.Factor)
}

// Validate 校验配置的有效性
// 返回第一个发现的 *ConfigError
func (c *GameConfig) Validate() error {
	for _, d := range types.AllDifficulties() {
		dc, ok := c.Difficulties[d.String()]
		if !ok {
			return configErrorf("difficulties."+d.String(), "missing difficulty entry")
		}
		if err := validateDifficulty(d.String(), dc); err != nil {
			return err
		}
	}
	for name := range c.Difficulties {
		if _, err := types.ParseDifficulty(name); err != nil {
			return configErrorf("difficulties."+name, "unknown difficulty")
		}
	}

	prev := -1
	for i, p := range c.Phases {
		field := fmt.Sprintf("phases[%d]", i)
		if p.ScoreThreshold <= prev {
			return configErrorf(field, "scoreThreshold must increase, got %d after %d", p.ScoreThreshold, prev)
		}
		if p.RequiredStars < 0 {
			return configErrorf(field, "requiredStars must be >= 0, got %d", p.RequiredStars)
		}
		if p.SpawnIntervalScale <= 0 {
			return configErrorf(field, "spawnIntervalScale must be > 0, got %g", p.SpawnIntervalScale)
		}
		prev = p.ScoreThreshold
	}
	if c.InterludeSeconds < 0 {
		return configErrorf("interludeSeconds", "must be >= 0, got %g", c.InterludeSeconds)
	}

	if c.Effects.SpeedBoost.Factor <= 1 {
		return configErrorf("effects.speedBoost.factor", "must be > 1, got %g", c.Effects.SpeedBoost.Factor)
	}
	if c.Effects.Slowdown.Factor <= 0 || c.Effects.Slowdown.Factor >= 1 {
		return configErrorf("effects.slowdown.factor", "must be in (0, 1), got %g", c.Effects.Slowdown.Factor)
	}
	if c.Effects.SpeedMeteor.Factor <= 1 {
		return configErrorf("effects.speedMeteor.factor", "must be > 1, got %g", c.Effects.SpeedMeteor.Factor)
	}
	for name, e := range map[string]EffectEntry{
		"speedBoost": c.Effects.SpeedBoost, "slowdown": c.Effects.Slowdown,
		"shield": c.Effects.Shield, "speedMeteor": c.Effects.SpeedMeteor,
	} {
		if e.Duration <= 0 {
			return configErrorf("effects."+name+".duration", "must be > 0, got %g", e.Duration)
		}
	}
	if c.Effects.ExplosionDamage < 0 {
		return configErrorf("effects.explosionDamage", "must be >= 0, got %d", c.Effects.ExplosionDamage)
	}

	for name, w := range c.Pickups.Weights {
		kind, err := types.ParsePickupKind(name)
		if err != nil {
			return &ConfigError{Field: "pickups.weights." + name, Reason: "unknown pickup", Err: err}
		}
		if kind == types.PickupStar || kind == types.PickupShield {
			return configErrorf("pickups.weights."+name, "spawned by score schedule, not by weight table")
		}
		if w < 0 {
			return configErrorf("pickups.weights."+name, "weight must be >= 0, got %d", w)
		}
	}

	b := c.Boss
	if b.DamagePerHit <= 0 || b.DamagePerHit > b.MaxHealth {
		return configErrorf("boss.damagePerHit", "must be in (0, maxHealth], got %g", b.DamagePerHit)
	}
	if b.EnragedAt > b.AwakeAt {
		return configErrorf("boss.enragedAt", "must be <= awakeAt")
	}
	for i := 1; i < len(b.MoveThresholds); i++ {
		if b.MoveThresholds[i] >= b.MoveThresholds[i-1] {
			return configErrorf("boss.moveThresholds", "must be strictly descending")
		}
	}

	if c.Audio.DuckFactor <= 0 || c.Audio.DuckFactor > 1 {
		return configErrorf("audio.duckFactor", "must be in (0, 1], got %g", c.Audio.DuckFactor)
	}
	if c.Audio.BossCueFloor < 0 || c.Audio.BossCueFloor > 100 {
		return configErrorf("audio.bossCueFloor", "must be in [0, 100], got %d", c.Audio.BossCueFloor)
	}
	return nil
}

func validateDifficulty(name string, d DifficultyConfig) error {
	field := "difficulties." + name
	if d.Lives <= 0 {
		return configErrorf(field+".lives", "must be > 0, got %d", d.Lives)
	}
	if d.MaxMeteors <= 0 {
		return configErrorf(field+".maxMeteors", "must be > 0, got %d", d.MaxMeteors)
	}
	if d.MinSpeed <= 0 || d.MaxSpeed < d.MinSpeed {
		return configErrorf(field, "invalid speed range %g..%g", d.MinSpeed, d.MaxSpeed)
	}
	if d.SpawnIntervalScale <= 0 {
		return configErrorf(field+".spawnIntervalScale", "must be > 0, got %g", d.SpawnIntervalScale)
	}
	return nil
}

// ========== 查询辅助 ==========

// PhaseCount 返回阶段数量
func (c *GameConfig) PhaseCount() int {
	return len(c.Phases)
}

// Phase 返回阶段 n（从1开始）的配置
func (c *GameConfig) Phase(n int) (PhaseConfig, bool) {
	if n < 1 || n > len(c.Phases) {
		return PhaseConfig{}, false
	}
	return c.Phases[n-1], true
}

// PhaseMinScore 返回进入阶段 n 时的最低累计分数（上一阶段阈值）
func (c *GameConfig) PhaseMinScore(n int) int {
	if n <= 1 || n-1 > len(c.Phases) {
		return 0
	}
	return c.Phases[n-2].ScoreThreshold
}

// Difficulty 返回难度参数；配置经过 Validate 后总能找到
func (c *GameConfig) Difficulty(d types.Difficulty) DifficultyConfig {
	if dc, ok := c.Difficulties[d.String()]; ok {
		return dc
	}
	log.Printf("[GameConfig] Warning: difficulty %s not configured, using normal", d)
	return DefaultGameConfig().Difficulties["normal"]
}

// MeteorLimit 同屏陨石上限（随阶段增加）
func (c *GameConfig) MeteorLimit(d types.Difficulty, phase int) int {
	dc := c.Difficulty(d)
	return dc.MaxMeteors + dc.MeteorsPerPhase*max(phase-1, 0)
}

// MeteorSpeedRange 陨石速度范围（像素/秒，随阶段增加）
func (c *GameConfig) MeteorSpeedRange(d types.Difficulty, phase int) (float64, float64) {
	dc := c.Difficulty(d)
	bonus := dc.SpeedPerPhase * float64(max(phase-1, 0))
	return dc.MinSpeed + bonus, dc.MaxSpeed + bonus
}

// MeteorSpawnInterval 陨石生成间隔（秒）= 基础间隔 × 难度缩放 × 阶段缩放
func (c *GameConfig) MeteorSpawnInterval(d types.Difficulty, phase int) float64 {
	scale := c.Difficulty(d).SpawnIntervalScale
	if p, ok := c.Phase(phase); ok {
		scale *= p.SpawnIntervalScale
	}
	return c.Meteor.BaseSpawnInterval * scale
}

// Effect 返回定时效果的参数
func (c *GameConfig) Effect(kind types.PickupKind) (EffectEntry, bool) {
	switch kind {
	case types.PickupSpeedBoost:
		return c.Effects.SpeedBoost, true
	case types.PickupSlowdown:
		return c.Effects.Slowdown, true
	case types.PickupShield:
		return c.Effects.Shield, true
	case types.PickupSpeedMeteor:
		return c.Effects.SpeedMeteor, true
	}
	return EffectEntry{}, false
}

// WeightedPickups 返回随机道具表（按名称排序，保证遍历顺序确定）
func (c *GameConfig) WeightedPickups() ([]types.PickupKind, []int) {
	names := make([]string, 0, len(c.Pickups.Weights))
	for name := range c.Pickups.Weights {
		names = append(names, name)
	}
	sort.Strings(names)

	kinds := make([]types.PickupKind, 0, len(names))
	weights := make([]int, 0, len(names))
	for _, name := range names {
		kind, err := types.ParsePickupKind(name)
		if err != nil || c.Pickups.Weights[name] <= 0 {
			continue
		}
		kinds = append(kinds, kind)
		weights = append(weights, c.Pickups.Weights[name])
	}
	return kinds, weights
}

// CueBoost 返回提示音通道的音量倍率，未配置时为 1
func (c *GameConfig) CueBoost(channel string) float64 {
	if b, ok := c.Audio.CueBoosts[channel]; ok && b > 0 {
		return b
	}
	return 1.0
}
