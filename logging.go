package app

import (
	"context"
	"fmt"
	"io"

	"github.com/gocrud/mvcdi/config"
	"github.com/gocrud/mvcdi/core"
	"github.com/gocrud/mvcdi/logging"
)

// WithLogging 按 *config.Settings 的 logging 节构建结构化日志并安装到运行时
// 需要在 config.Load 之后应用，未加载配置时使用默认设置。
func WithLogging() core.Option {
	return func(rt *core.Runtime) error {
		settings, ok := core.LookupFeature[*config.Settings](rt)
		if !ok || settings == nil {
			defaults := config.DefaultSettings()
			settings = &defaults
		}

		factory, err := NewLoggerFactory(settings.Logging, rt.ErrOut)
		if err != nil {
			return err
		}

		rt.UseLogger(factory.CreateLogger("app"))
		rt.Lifecycle.OnStop(func(context.Context) error {
			// 终端输出上 Sync 可能返回 EINVAL，忽略
			_ = factory.Sync()
			return nil
		})
		return nil
	}
}

// NewLoggerFactory 根据日志设置创建日志工厂
func NewLoggerFactory(s config.LoggingSettings, w io.Writer) (logging.LoggerFactory, error) {
	level, err := logging.ParseLevel(s.Level)
	if err != nil {
		return nil, err
	}

	builder := logging.NewLoggingBuilder().SetMinimumLevel(level)
	json := false
	switch s.Format {
	case "", "text":
	case "json":
		json = true
	default:
		return nil, fmt.Errorf("app: unknown log format %q", s.Format)
	}

	switch s.Provider {
	case "", "console":
		if json {
			builder.AddJsonConsole(w)
		} else {
			builder.AddConsole(logging.ConsoleLoggerOptions{
				IncludeTimestamp: true,
				TimestampFormat:  "2006-01-02 15:04:05",
				Output:           w,
			})
		}
	case "zap":
		builder.AddZap(logging.NewZapLogger(w, level, json))
	default:
		return nil, fmt.Errorf("app: unknown log provider %q", s.Provider)
	}

	return builder.Build(), nil
}

// LoadOptions 将命令行的日志级别覆盖转换为配置加载选项
// 覆盖值以内存源注入，环境变量仍可再次覆盖。
func LoadOptions(logLevel string) []config.LoadOption {
	if logLevel == "" {
		return nil
	}
	return []config.LoadOption{config.WithInMemory(map[string]any{
		"logging": map[string]any{"level": logLevel},
	})}
}
