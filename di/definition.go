package di

import "sync"

// ScopeType 定义了注册项的实例生命周期。
type ScopeType int

const (
	// ScopeTransient 每次 Resolve 都调用工厂创建新实例（默认）。
	ScopeTransient ScopeType = iota
	// ScopeSingleton 首次成功创建后缓存实例，之后的 Resolve 返回同一实例。
	ScopeSingleton
)

// String 返回作用域名称
func (s ScopeType) String() string {
	switch s {
	case ScopeTransient:
		return "transient"
	case ScopeSingleton:
		return "singleton"
	default:
		return "unknown"
	}
}

// factory 是注册表内部保存的零参数工厂。
// resolution 由注册表提供，用于在创建过程中递归解析依赖。
type factory func(rs *resolution) (any, error)

// registration 包含一个已注册类型的元数据。
type registration struct {
	key   TypeKey
	scope ScopeType
	deps  []TypeKey // 构造依赖，按参数声明顺序
	build factory

	// 用于单例作用域
	mu       sync.Mutex
	instance any
	cached   bool
}

func newRegistration(key TypeKey, deps []TypeKey, build factory, opts []Option) *registration {
	reg := &registration{
		key:   key,
		scope: ScopeTransient,
		deps:  deps,
		build: build,
	}
	for _, opt := range opts {
		opt(reg)
	}
	return reg
}

// create 按作用域产生实例
func (reg *registration) create(rs *resolution) (any, error) {
	if reg.scope != ScopeSingleton {
		return reg.build(rs)
	}

	reg.mu.Lock()
	if reg.cached {
		inst := reg.instance
		reg.mu.Unlock()
		return inst, nil
	}
	reg.mu.Unlock()

	// 在锁外构建，工厂内部可能递归解析其他单例。
	inst, err := reg.build(rs)
	if err != nil {
		return nil, err
	}

	reg.mu.Lock()
	defer reg.mu.Unlock()
	// 并发首次创建时以先写入者为准
	if reg.cached {
		return reg.instance, nil
	}
	reg.instance = inst
	reg.cached = true
	return inst, nil
}
