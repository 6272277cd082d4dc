package di

import (
	"reflect"
	"sync"

	"github.com/gocrud/mvcdi/logging"
)

// Registry 是类型注册表（依赖注入容器）。
//
// 它保存 TypeKey 到工厂的映射：每个 key 至多一个工厂，重复注册时后者覆盖前者。
// 注册不会检查依赖是否存在，依赖在 Resolve 时才递归解析。
// 映射由读写锁保护，工厂在锁外执行，因此构造函数可以安全地递归解析。
type Registry struct {
	mu      sync.RWMutex
	entries map[TypeKey]*registration
	logger  logging.Logger
}

// NewRegistry 创建一个新的空注册表。
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		entries: make(map[TypeKey]*registration),
		logger:  logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// UseLogger 替换注册表的日志记录器，nil 表示关闭日志。
func (r *Registry) UseLogger(logger logging.Logger) {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logger = logger
}

// add 安装注册项，已存在的同 key 注册项被静默覆盖（包括其单例缓存）。
func (r *Registry) add(reg *registration) {
	r.mu.Lock()
	_, exists := r.entries[reg.key]
	r.entries[reg.key] = reg
	logger := r.logger
	r.mu.Unlock()

	fields := []logging.Field{
		{Key: "type", Value: reg.key.String()},
		{Key: "scope", Value: reg.scope.String()},
		{Key: "deps", Value: len(reg.deps)},
	}
	if exists {
		logger.Debug("di: overwriting registration", fields...)
		return
	}
	logger.Debug("di: registered type", fields...)
}

func (r *Registry) lookup(key TypeKey) (*registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.entries[key]
	return reg, ok
}

func (r *Registry) log() logging.Logger {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.logger
}

// Get 检索请求类型的实例（非泛型版本）。
func (r *Registry) Get(typ reflect.Type) (any, error) {
	return r.resolve(keyFor(typ))
}

// Contains 报告 key 是否已注册。
func (r *Registry) Contains(key TypeKey) bool {
	_, ok := r.lookup(key)
	return ok
}

// Len 返回已注册类型的数量。
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys 返回所有已注册的 key，按类型名排序。
func (r *Registry) Keys() []TypeKey {
	r.mu.RLock()
	keys := make([]TypeKey, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	r.mu.RUnlock()

	sortKeys(keys)
	return keys
}
