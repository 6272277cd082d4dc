package core

import (
	"fmt"

	"github.com/gocrud/mvcdi/di"
	"github.com/gocrud/mvcdi/logging"
)

// Extension 定义应用程序扩展的基础接口
// 扩展模块应该实现 ServiceConfigurator 或 RuntimeConfigurator 接口（或两者都实现）
type Extension interface {
	// Name 返回扩展的名称，用于日志记录和调试
	Name() string
}

// ServiceConfigurator 负责注册依赖注入服务
type ServiceConfigurator interface {
	// ConfigureServices 在此方法中注册服务到 DI 容器
	ConfigureServices(registry *di.Registry) error
}

// RuntimeConfigurator 负责配置运行时，用于添加生命周期钩子、托管服务等
type RuntimeConfigurator interface {
	ConfigureRuntime(rt *Runtime) error
}

// validateExtension 验证扩展是否实现了支持的接口
func validateExtension(ext Extension) error {
	_, isServiceConfigurator := ext.(ServiceConfigurator)
	_, isRuntimeConfigurator := ext.(RuntimeConfigurator)

	if !isServiceConfigurator && !isRuntimeConfigurator {
		return fmt.Errorf("core: extension '%s' does not implement any supported interfaces (ServiceConfigurator, RuntimeConfigurator)", ext.Name())
	}
	return nil
}

// WithExtension 按顺序应用扩展
// 每个扩展先注册服务，再配置运行时。
func WithExtension(exts ...Extension) Option {
	return func(rt *Runtime) error {
		for _, ext := range exts {
			if err := validateExtension(ext); err != nil {
				return err
			}

			if sc, ok := ext.(ServiceConfigurator); ok {
				if err := sc.ConfigureServices(rt.Registry); err != nil {
					return fmt.Errorf("core: extension '%s': %w", ext.Name(), err)
				}
			}
			if rc, ok := ext.(RuntimeConfigurator); ok {
				if err := rc.ConfigureRuntime(rt); err != nil {
					return fmt.Errorf("core: extension '%s': %w", ext.Name(), err)
				}
			}

			rt.Logger.Debug("extension applied", logging.Field{Key: "extension", Value: ext.Name()})
		}
		return nil
	}
}
