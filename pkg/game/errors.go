package game

import (
	"errors"
	"fmt"
	"log"
)

// ErrNoSave 没有可加载的存档
var ErrNoSave = errors.New("no saved game")

// PersistenceError 存档缺失或损坏
// 永远不致命：调用方回退到默认快照
type PersistenceError struct {
	Op  string // "load" / "save" / "decode" / "validate"
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s failed: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// InvariantViolation 程序错误类：不应发生的状态（负生命、重复效果条目、Boss 生命值为负等）
// 只记录日志并钳制到最近的有效值，不会传递到玩家可见层
type InvariantViolation struct {
	Rule   string
	Detail string
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("invariant violated (%s): %s", e.Rule, e.Detail)
}

// invariantHook 测试可替换，用于断言违规被报告
var invariantHook func(*InvariantViolation)

// ReportInvariant 记录一次不变量违规并返回错误值
func ReportInvariant(rule, format string, args ...interface{}) *InvariantViolation {
	v := &InvariantViolation{Rule: rule, Detail: fmt.Sprintf(format, args...)}
	log.Printf("[Invariant] Warning: %v", v)
	if invariantHook != nil {
		invariantHook(v)
	}
	return v
}

// SetInvariantHook 设置违规回调（测试用），返回恢复函数
func SetInvariantHook(hook func(*InvariantViolation)) func() {
	prev := invariantHook
	invariantHook = hook
	return func() { invariantHook = prev }
}
