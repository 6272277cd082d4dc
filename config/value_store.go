package config

import "sync/atomic"

// ValueStore 保存配置快照，读取无锁
type ValueStore struct {
	current atomic.Pointer[map[string]any]
}

func NewValueStore() *ValueStore {
	s := &ValueStore{}
	s.Store(nil)
	return s
}

// Load 返回当前快照，调用方不得修改
func (s *ValueStore) Load() map[string]any {
	if p := s.current.Load(); p != nil {
		return *p
	}
	return map[string]any{}
}

// Store 替换快照，nil 视为空配置
func (s *ValueStore) Store(data map[string]any) {
	s.Swap(data)
}

// Swap 替换快照并返回旧值
func (s *ValueStore) Swap(data map[string]any) map[string]any {
	if data == nil {
		data = map[string]any{}
	}
	if old := s.current.Swap(&data); old != nil {
		return *old
	}
	return nil
}
