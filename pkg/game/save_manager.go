package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
)

// SaveStore 存档 I/O 端口
// PersistenceGate 只决定何时保存、保存什么，实际读写委托给实现
type SaveStore interface {
	// Exists 是否存在存档
	Exists() bool
	// Read 读取存档原始数据；不存在时返回 ErrNoSave
	Read() ([]byte, error)
	// Write 写入存档原始数据
	Write(data []byte) error
}

// 存储路径常量
const (
	saveObject   = "savegame"
	saveProperty = "slot"
)

// SaveManager 基于 gdata 的存档存储
//
// 职责：
//   - 在平台相关的数据目录中读写存档 blob
//   - gdataManager 为 nil 时退化为内存存档（测试、受限环境）
type SaveManager struct {
	gdataManager *gdata.Manager // 可为 nil
	memory       []byte         // 降级模式下的内存存档
}

// NewSaveManager 创建存档管理器
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存存档）
func NewSaveManager(gdataManager *gdata.Manager) *SaveManager {
	if gdataManager == nil {
		log.Printf("[SaveManager] Warning: gdata unavailable, saves are kept in memory only")
	}
	return &SaveManager{gdataManager: gdataManager}
}

// Exists 是否存在存档
func (sm *SaveManager) Exists() bool {
	if sm.gdataManager == nil {
		return sm.memory != nil
	}
	return sm.gdataManager.ObjectPropExists(saveObject, saveProperty)
}

// Read 读取存档
//
// 返回：
//   - []byte: 存档原始数据
//   - error: 不存在时返回 ErrNoSave，读取失败返回包装后的错误
func (sm *SaveManager) Read() ([]byte, error) {
	if !sm.Exists() {
		return nil, ErrNoSave
	}
	if sm.gdataManager == nil {
		return append([]byte(nil), sm.memory...), nil
	}
	data, err := sm.gdataManager.LoadObjectProp(saveObject, saveProperty)
	if err != nil {
		return nil, fmt.Errorf("failed to load save data: %w", err)
	}
	return data, nil
}

// Write 写入存档
func (sm *SaveManager) Write(data []byte) error {
	if sm.gdataManager == nil {
		sm.memory = append([]byte(nil), data...)
		return nil
	}
	if err := sm.gdataManager.SaveObjectProp(saveObject, saveProperty, data); err != nil {
		return fmt.Errorf("failed to write save data: %w", err)
	}
	log.Printf("[SaveManager] Saved %d bytes", len(data))
	return nil
}

// StorageAppName 桌面版与终端版共享的存储名（同一份存档与设置）
const StorageAppName = "spaceataque"

// OpenStorage 打开 gdata 存储，失败时返回 nil 并记录日志（调用方进入降级模式）
func OpenStorage(appName string) *gdata.Manager {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[Storage] Warning: failed to open gdata storage %q: %v", appName, err)
		return nil
	}
	return manager
}
