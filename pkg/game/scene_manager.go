package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 由上层（pkg/app）注册，避免 game 包依赖具体场景
type SceneFactory func(req SceneRequest) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	currentID    SceneID
	factories    map[SceneID]SceneFactory
	pending      *SceneRequest
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo or Request to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		factories: make(map[SceneID]SceneFactory),
	}
}

// Register 注册场景工厂
func (sm *SceneManager) Register(id SceneID, factory SceneFactory) {
	sm.factories[id] = factory
}

// SwitchTo changes the active scene immediately.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// Request 请求在下一次 Update 开始时切换场景
// 场景在自身 Update 中发起切换时使用，避免在更新过程中替换自己
func (sm *SceneManager) Request(req SceneRequest) {
	sm.pending = &req
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 返回当前场景标识
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

func (sm *SceneManager) applyPending() {
	if sm.pending == nil {
		return
	}
	req := *sm.pending
	sm.pending = nil

	factory, ok := sm.factories[req.ID]
	if !ok {
		log.Printf("[SceneManager] Error: no factory registered for scene %q", req.ID)
		return
	}
	scene := factory(req)
	if scene == nil {
		log.Printf("[SceneManager] Error: factory returned nil for scene %q", req.ID)
		return
	}
	sm.currentScene = scene
	sm.currentID = req.ID
	log.Printf("[SceneManager] Switched to scene %s", req.ID)
}

// Update updates the currently active scene.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	sm.applyPending()
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
