package controller

import (
	"errors"
	"log"
	"math/rand"

	"github.com/decker502/spaceataque/pkg/config"
	"github.com/decker502/spaceataque/pkg/ecs"
	"github.com/decker502/spaceataque/pkg/game"
	"github.com/decker502/spaceataque/pkg/systems"
	"github.com/decker502/spaceataque/pkg/types"
)

// TickResult 一帧的结果摘要
type TickResult struct {
	Run     types.RunState
	Report  systems.TickReport
	Spawned systems.SpawnReport
	Fired   int
	// Saved 本帧触发的保存（TriggerNone 表示未保存）
	Saved game.SaveTrigger
}

// GameController 一局游戏的唯一控制器
// 持有 GameState 与全部系统，按固定顺序推进每一帧
type GameController struct {
	cfg   *config.GameConfig
	gate  *game.PersistenceGate
	clock *game.TickClock

	state *game.GameState
	audio game.AudioSettings

	em         *ecs.EntityManager
	effects    *systems.EffectRegistry
	store      *systems.EntityStore
	weapons    *systems.WeaponSystem
	collisions *systems.CollisionResolver
	powerups   *systems.PowerUpSystem
	boss       *systems.BossSystem
	score      *systems.ScoreSystem
	phase      *systems.PhaseSystem
	spawn      *systems.SpawnSystem
	policy     *systems.AudioPolicy

	lastAudio map[game.AudioChannel]game.AudioDirective
	pending   []game.AudioDirective
	// bossFinalLeft Boss 入场提示音剩余秒数，0 表示未在播放
	bossFinalLeft float64
}

// NewGameController 创建控制器
//
// 参数：
//   - cfg: 经过校验的游戏配置
//   - gate: 持久化闸门（存档读写），nil 时存档只保存在内存中
//   - seed: 随机种子，决定生成位置与 Boss 重新定位
func NewGameController(cfg *config.GameConfig, gate *game.PersistenceGate, seed int64) *GameController {
	if gate == nil {
		gate = game.NewPersistenceGate(game.NewSaveManager(nil), cfg)
	}
	rng := rand.New(rand.NewSource(seed))
	em := ecs.NewEntityManager()
	effects := systems.NewEffectRegistry(cfg)
	store := systems.NewEntityStore(em, cfg, effects)
	boss := systems.NewBossSystem(store, cfg, rng)
	powerups := systems.NewPowerUpSystem(store, effects, cfg)

	gc := &GameController{
		cfg:        cfg,
		gate:       gate,
		clock:      game.NewTickClock(config.TicksPerSecond),
		audio:      game.DefaultAudioSettings(),
		em:         em,
		effects:    effects,
		store:      store,
		weapons:    systems.NewWeaponSystem(store, cfg),
		collisions: systems.NewCollisionResolver(store),
		powerups:   powerups,
		boss:       boss,
		score:      systems.NewScoreSystem(store, effects, powerups, boss),
		phase:      systems.NewPhaseSystem(cfg),
		spawn:      systems.NewSpawnSystem(store, cfg, boss, rng),
		policy:     systems.NewAudioPolicy(cfg),
		lastAudio:  make(map[game.AudioChannel]game.AudioDirective),
	}
	gc.state = game.NewGameState(cfg, types.DifficultyNormal, false, 0)
	return gc
}

// NewGame 开始新的一局
func (gc *GameController) NewGame(difficulty types.Difficulty, multiplayer bool) {
	highscore := gc.gate.StoredHighscore()
	gc.state = game.NewGameState(gc.cfg, difficulty, multiplayer, highscore)
	gc.resetWorld(nil)
	log.Printf("[GameController] New game: difficulty=%s multiplayer=%v highscore=%d", difficulty, multiplayer, highscore)
}

// LoadGame 从存档继续
// 存档缺失或损坏时以默认快照开局并返回 *game.PersistenceError（不致命）
func (gc *GameController) LoadGame() error {
	snap, err := gc.gate.Load()
	gc.Restore(snap)
	return err
}

// Restore 以快照为基线重建状态
// 定时效果与场上实体不恢复，只恢复快照中的标量字段与玩家位置
func (gc *GameController) Restore(snap game.GameSnapshot) {
	gc.state = gc.gate.Restore(snap)
	gc.audio = snap.AudioSettings()

	positions := []game.Vec2{snap.PlayerPosition}
	if snap.Player2Position != nil {
		positions = append(positions, *snap.Player2Position)
	}
	gc.resetWorld(positions)
	log.Printf("[GameController] Restored phase %d score=%d lives=%d", gc.state.Phase, gc.state.Score, gc.state.Lives)
}

// resetWorld 清空实体、效果与 Boss，按状态重新生成玩家
func (gc *GameController) resetWorld(positions []game.Vec2) {
	gc.em.Clear()
	gc.effects.Clear()
	gc.boss.Reset()
	gc.store.SpawnPlayers(gc.state.Multiplayer, positions)
	gc.spawn.Reset(gc.state)
	gc.clock.SetPaused(false)
	clear(gc.lastAudio)
	gc.pending = nil
	gc.bossFinalLeft = 0
}

// SetAudioSettings 更新玩家音频设置（设置菜单修改后调用）
func (gc *GameController) SetAudioSettings(s game.AudioSettings) {
	gc.audio = s
}

// AudioSettings 当前音频设置
func (gc *GameController) AudioSettings() game.AudioSettings {
	return gc.audio
}

// SetPaused 设置暂停；终态中无效
func (gc *GameController) SetPaused(paused bool) {
	if gc.state.Run.IsTerminal() {
		return
	}
	gc.state.Paused = paused
	gc.clock.SetPaused(paused)
	log.Printf("[GameController] Paused=%v", paused)
}

// TogglePause 切换暂停
func (gc *GameController) TogglePause() {
	gc.SetPaused(!gc.state.Paused)
}

// Tick 推进一帧
// 顺序：射击 → 移动 → 碰撞检测 → 事件消费 → Boss 入场 → 生成 → 效果到期 → 阶段判定 → 音频策略 → 帧末清理
// 暂停时只处理暂停切换与音频；任何错误都只记录日志，不会中断帧循环
func (gc *GameController) Tick(intents game.Intents) TickResult {
	defer gc.store.Compact()

	// 间隔期间只响应跳过
	if intents.AnyPauseToggle() && gc.state.Run != types.RunPhaseCleared {
		gc.TogglePause()
	}

	result := TickResult{Run: gc.state.Run}
	if gc.state.Run.IsTerminal() || gc.state.Paused {
		gc.evaluateAudio()
		return result
	}

	dt := gc.clock.Step()

	if gc.state.Run == types.RunPhaseCleared {
		// 间隔期间世界冻结，只有倒计时与跳过
		if gc.phase.UpdateInterlude(gc.state, dt, intents.AnySkip()) {
			gc.advancePhase()
		}
		result.Run = gc.state.Run
		gc.evaluateAudio()
		return result
	}

	fired := gc.weapons.Update(dt, intents)
	result.Fired = len(fired)
	if len(fired) > 0 {
		gc.cue(game.ChannelShoot)
	}

	exits := gc.store.Update(dt, intents)
	gc.boss.Update(gc.state, dt)

	events := gc.collisions.Resolve()
	result.Report = gc.score.Consume(gc.state, events, exits)
	gc.cueReport(result.Report)
	gc.updateBossFinal(dt, result.Report.BossDefeated)

	if gc.boss.TryActivate(gc.state) {
		gc.cue(game.ChannelBossFinal)
		gc.bossFinalLeft = gc.cfg.Audio.BossFinalSeconds
	}

	result.Spawned = gc.spawn.Update(gc.state, dt)

	for _, e := range gc.effects.Tick(dt) {
		log.Printf("[GameController] Effect %s expired on entity %d", e.Kind, e.Target)
	}

	prev := gc.state.Run
	gc.phase.Evaluate(gc.state)
	result.Run = gc.state.Run

	if gc.state.Run == types.RunGameOver && prev != types.RunGameOver {
		gc.stopBossFinal()
		gc.cue(game.ChannelGameOver)
	}
	if trigger := gc.gate.TriggerFor(prev, gc.state.Run); trigger != game.TriggerNone {
		if err := gc.save(trigger); err == nil {
			result.Saved = trigger
		}
	}

	gc.evaluateAudio()
	return result
}

// advancePhase 间隔结束：进入下一阶段并清场
func (gc *GameController) advancePhase() {
	gc.phase.Advance(gc.state)
	gc.store.ClearNonPlayers()
	gc.effects.Clear()
	gc.boss.Reset()
	gc.store.SpawnPlayers(gc.state.Multiplayer, nil)
	gc.spawn.Reset(gc.state)
	gc.stopBossFinal()
}

// updateBossFinal Boss 入场提示音只播放 BossFinalSeconds 秒，Boss 被击败时立即停止
func (gc *GameController) updateBossFinal(dt float64, defeated bool) {
	if gc.bossFinalLeft <= 0 {
		return
	}
	if defeated || gc.bossFinalLeft <= dt {
		gc.stopBossFinal()
		return
	}
	gc.bossFinalLeft -= dt
}

func (gc *GameController) stopBossFinal() {
	if gc.bossFinalLeft <= 0 {
		return
	}
	gc.bossFinalLeft = 0
	gc.pending = append(gc.pending, game.AudioDirective{Channel: game.ChannelBossFinal})
}

// cueReport 根据事件汇总触发一次性音效
func (gc *GameController) cueReport(r systems.TickReport) {
	if r.MeteorsDestroyed+r.MeteorsBlocked > 0 {
		gc.cue(game.ChannelPoint)
	}
	if r.PlayerHits > 0 || r.LivesLost > 0 {
		gc.cue(game.ChannelHit)
	}
	for _, p := range r.Pickups {
		if p.Kind == types.PickupStar {
			gc.cue(game.ChannelCollectStar)
		} else {
			gc.cue(game.ChannelPoint)
		}
	}
	if r.BossDefeated {
		gc.cue(game.ChannelBossExplosion)
	}
}

func (gc *GameController) audioState() systems.AudioState {
	return systems.AudioState{
		Run:      gc.state.Run,
		Paused:   gc.state.Paused,
		Lives:    gc.state.Lives,
		Settings: gc.audio,
	}
}

func (gc *GameController) cue(ch game.AudioChannel) {
	if d := gc.policy.Cue(ch, gc.audioState()); d.Start {
		gc.pending = append(gc.pending, d)
	}
}

// evaluateAudio 只输出与上一帧不同的通道指令
func (gc *GameController) evaluateAudio() {
	for _, d := range gc.policy.Evaluate(gc.audioState()) {
		if last, ok := gc.lastAudio[d.Channel]; ok && last == d {
			continue
		}
		gc.lastAudio[d.Channel] = d
		gc.pending = append(gc.pending, d)
	}
}

// DrainAudio 取出待执行的音频指令
func (gc *GameController) DrainAudio() []game.AudioDirective {
	out := gc.pending
	gc.pending = nil
	return out
}

// SaveAndExit 暂停菜单"保存并退出"
func (gc *GameController) SaveAndExit() error {
	if gc.state.Run.IsTerminal() {
		return errors.New("run already finished")
	}
	return gc.save(game.TriggerSaveAndExit)
}

func (gc *GameController) save(trigger game.SaveTrigger) error {
	snap := gc.gate.Snapshot(gc.state, gc.store.PlayerPositions(gc.state.Multiplayer), gc.audio)
	if err := gc.gate.Save(trigger, snap); err != nil {
		log.Printf("[GameController] Warning: %v", err)
		return err
	}
	gc.state.Highscore = max(gc.state.Highscore, snap.Highscore, gc.state.Score)
	return nil
}

// State 当前状态副本
func (gc *GameController) State() game.GameState {
	return gc.state.Clone()
}

// Finished 本局是否已结束
func (gc *GameController) Finished() bool {
	return gc.state.Run.IsTerminal()
}
