package xstore

import (
	"context"
	"maps"
	"sync"
)

// Memory 是 Backend 的内存实现。
// 适合测试与临时配置。所有方法并发安全。
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

// 编译期确认 Memory 实现 Backend。
var _ Backend = (*Memory)(nil)

// NewMemory 创建内存后端。
// initial 非 nil 时复制其内容作为初始状态，调用方后续修改互不影响。
func NewMemory(initial map[string]string) *Memory {
	data := make(map[string]string, len(initial))
	maps.Copy(data, initial)
	return &Memory{data: data}
}

// Read 读取键对应的原生值。
func (m *Memory) Read(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	raw, ok := m.data[key]
	return raw, ok, nil
}

// Write 写入键值。
func (m *Memory) Write(_ context.Context, key, raw string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = raw
	return nil
}

// Delete 删除键。
func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Keys 枚举全部已知键。
func (m *Memory) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	return keys, nil
}

// Dump 返回当前内容的副本，便于测试断言。
func (m *Memory) Dump() map[string]string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return maps.Clone(m.data)
}
