package di

import "github.com/gocrud/mvcdi/logging"

// Option 配置单个注册项。
type Option func(*registration)

// WithScope 设置注册项的生命周期范围。
func WithScope(scope ScopeType) Option {
	return func(r *registration) {
		r.scope = scope
	}
}

// WithSingleton 将范围设置为 Singleton。
func WithSingleton() Option {
	return WithScope(ScopeSingleton)
}

// WithTransient 将范围设置为 Transient（默认）。
func WithTransient() Option {
	return WithScope(ScopeTransient)
}

// RegistryOption 配置注册表本身。
type RegistryOption func(*Registry)

// WithLogger 设置注册表使用的日志记录器。
func WithLogger(logger logging.Logger) RegistryOption {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}
