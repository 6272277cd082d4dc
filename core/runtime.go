package core

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/gocrud/mvcdi/di"
	"github.com/gocrud/mvcdi/logging"
)

// Runtime 是框架的上帝对象，作为状态容器
type Runtime struct {
	// Features 存放构建时特性 (配置、设置等)
	Features FeatureCollection

	// Registry 核心依赖注入容器
	Registry *di.Registry

	// Lifecycle 生命周期管理
	Lifecycle *LifecycleEvents

	// Logger 应用日志，默认丢弃所有输出
	Logger logging.Logger

	// In / Out 交互式组件使用的输入输出
	In  io.Reader
	Out io.Writer

	// ErrOut 结构化日志的输出，默认 os.Stderr
	ErrOut io.Writer

	// ErrorHandler 用于记录运行时产生的严重错误
	// 外部可以通过设置此字段来接管错误日志
	ErrorHandler func(err error)

	shutdownCh   chan struct{}
	shutdownOnce sync.Once

	errMu sync.Mutex
	errs  []error
}

// NewRuntime 创建一个新的运行时实例
func NewRuntime() *Runtime {
	logger := logging.NewNopLogger()
	rt := &Runtime{
		Registry:   di.NewRegistry(di.WithLogger(logger)),
		Lifecycle:  NewLifecycle(),
		Logger:     logger,
		In:         os.Stdin,
		Out:        os.Stdout,
		ErrOut:     os.Stderr,
		shutdownCh: make(chan struct{}),
	}
	rt.ErrorHandler = func(err error) {
		rt.Logger.Error("runtime error", logging.Field{Key: "error", Value: err})
	}
	return rt
}

// UseLogger 替换应用日志，DI 容器使用 "di" 类别的子日志
func (rt *Runtime) UseLogger(logger logging.Logger) {
	if logger == nil {
		return
	}
	rt.Logger = logger
	rt.Registry.UseLogger(logger.WithCategory("di"))
}

// Shutdown 请求应用退出
// 可重复调用
func (rt *Runtime) Shutdown() {
	rt.shutdownOnce.Do(func() {
		close(rt.shutdownCh)
	})
}

// Done 返回一个通道，当应用需要退出时该通道会关闭
func (rt *Runtime) Done() <-chan struct{} {
	return rt.shutdownCh
}

// Fail 记录错误并触发退出
func (rt *Runtime) Fail(err error) {
	if err == nil {
		return
	}
	rt.errMu.Lock()
	rt.errs = append(rt.errs, err)
	rt.errMu.Unlock()

	if rt.ErrorHandler != nil {
		rt.ErrorHandler(err)
	}
	rt.Shutdown()
}

// Err 返回通过 Fail 记录的全部错误
func (rt *Runtime) Err() error {
	rt.errMu.Lock()
	defer rt.errMu.Unlock()
	return errors.Join(rt.errs...)
}

// Apply 应用多个 Option
func (rt *Runtime) Apply(opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(rt); err != nil {
			return err
		}
	}
	return nil
}
