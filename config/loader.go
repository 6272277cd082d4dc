package config

import (
	"fmt"

	"github.com/gocrud/mvcdi/core"
	"github.com/gocrud/mvcdi/di"
)

// DefaultEnvPrefix 默认的环境变量前缀
const DefaultEnvPrefix = "GREETER_"

// LoadOptions 配置加载选项
type LoadOptions struct {
	Paths     []string
	Optional  bool
	EnvPrefix string
	InMemory  map[string]any
	Etcd      *EtcdOptions
}

// LoadOption 配置加载选项函数
type LoadOption func(*LoadOptions)

// WithOptional 配置文件不存在时不报错
func WithOptional() LoadOption {
	return func(o *LoadOptions) {
		o.Optional = true
	}
}

// WithEnvPrefix 设置环境变量前缀，空字符串表示不读取环境变量
func WithEnvPrefix(prefix string) LoadOption {
	return func(o *LoadOptions) {
		o.EnvPrefix = prefix
	}
}

// WithInMemory 添加内存配置，优先级高于文件、低于环境变量
func WithInMemory(data map[string]any) LoadOption {
	return func(o *LoadOptions) {
		o.InMemory = data
	}
}

// WithEtcd 启用 etcd 配置源（优先级最高）
// 未设置时，若配置中存在 etcd.endpoints 则自动启用
func WithEtcd(opts EtcdOptions) LoadOption {
	return func(o *LoadOptions) {
		o.Etcd = &opts
	}
}

// Load 加载配置并注册到运行时
//
// 配置源顺序（后者覆盖前者）：文件 -> 内存 -> 环境变量 -> etcd。
// 加载结果同时作为 Runtime Feature 保存，并以单例注册到 DI 注册表：
// Configuration 接口与 *Settings。
func Load(path string, opts ...LoadOption) core.Option {
	return func(rt *core.Runtime) error {
		options := LoadOptions{EnvPrefix: DefaultEnvPrefix}
		if path != "" {
			options.Paths = append(options.Paths, path)
		}
		for _, opt := range opts {
			opt(&options)
		}

		cfg, settings, err := Build(options)
		if err != nil {
			return err
		}

		core.SetFeature[Configuration](rt, cfg)
		core.SetFeature(rt, settings)

		di.RegisterInstance[Configuration](rt.Registry, cfg)
		di.RegisterInstance(rt.Registry, settings)
		return nil
	}
}

// Build 按选项构建配置并绑定 Settings
func Build(options LoadOptions) (Configuration, *Settings, error) {
	builder := NewConfigurationBuilder()
	for _, p := range options.Paths {
		builder.AddFile(p, options.Optional)
	}
	if options.InMemory != nil {
		builder.AddInMemory(options.InMemory)
	}
	if options.EnvPrefix != "" {
		builder.AddEnvironmentVariables(options.EnvPrefix)
	}

	cfg, settings, err := buildAndBind(builder)
	if err != nil {
		return nil, nil, err
	}

	etcd := options.Etcd
	if etcd == nil && len(settings.Etcd.Endpoints) > 0 {
		opts := settings.Etcd.EtcdOptions()
		etcd = &opts
	}
	if etcd == nil {
		return cfg, settings, nil
	}

	builder.AddEtcd(*etcd)
	return buildAndBind(builder)
}

func buildAndBind(builder *ConfigurationBuilder) (Configuration, *Settings, error) {
	cfg, err := builder.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}

	settings := DefaultSettings()
	if err := cfg.Bind("", &settings); err != nil {
		return nil, nil, fmt.Errorf("config: failed to bind settings: %w", err)
	}
	if settings.App.Name == "" {
		settings.App.Name = DefaultAppName
	}
	return cfg, &settings, nil
}
