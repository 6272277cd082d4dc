package core

import (
	"context"
	"fmt"
	"sync"

	"github.com/gocrud/mvcdi/di"
)

// WithHostedService 将已注册到容器的 T 作为托管服务运行
// OnStart 时从容器解析 T 并在独立 Goroutine 中调用 Start，OnStop 时调用 Stop。
func WithHostedService[T HostedService]() Option {
	return func(rt *Runtime) error {
		key := di.KeyOf[T]()

		var (
			mu            sync.Mutex
			service       T
			started       bool
			serviceCancel context.CancelFunc
		)

		rt.Lifecycle.OnStart(func(ctx context.Context) error {
			svc, err := di.Resolve[T](rt.Registry)
			if err != nil {
				return fmt.Errorf("failed to resolve hosted service %v: %w", key, err)
			}

			// 服务上下文伴随应用运行，不随启动上下文取消
			serviceCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

			mu.Lock()
			service, started, serviceCancel = svc, true, cancel
			mu.Unlock()

			go func() {
				if err := svc.Start(serviceCtx); err != nil {
					rt.Fail(fmt.Errorf("hosted service %v exited with error: %w", key, err))
				}
			}()
			return nil
		})

		rt.Lifecycle.OnStop(func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			if !started {
				return nil
			}
			serviceCancel()
			return service.Stop(ctx)
		})

		return nil
	}
}

// WorkerFunc 定义简单的后台任务函数
// 这是一个阻塞函数，通过 ctx.Done() 判断退出。
type WorkerFunc func(ctx context.Context) error

// WithWorker 将一个阻塞的函数注册为后台服务
// 框架会自动将其适配为 HostedService (异步启动，Cancel停止)
func WithWorker(fn WorkerFunc) Option {
	return func(rt *Runtime) error {
		var (
			mu           sync.Mutex
			workerCancel context.CancelFunc
		)

		rt.Lifecycle.OnStart(func(ctx context.Context) error {
			workerCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
			mu.Lock()
			workerCancel = cancel
			mu.Unlock()

			go func() {
				if err := fn(workerCtx); err != nil {
					rt.Fail(fmt.Errorf("worker exited with error: %w", err))
				}
			}()
			return nil
		})

		rt.Lifecycle.OnStop(func(ctx context.Context) error {
			mu.Lock()
			defer mu.Unlock()
			if workerCancel != nil {
				workerCancel()
			}
			return nil
		})

		return nil
	}
}

// WithTask 注册一次性任务
// 任务返回后应用即退出，任务返回的错误由 Runtime.Err 报告。
func WithTask(fn WorkerFunc) Option {
	return func(rt *Runtime) error {
		rt.Lifecycle.OnStart(func(ctx context.Context) error {
			go func() {
				defer rt.Shutdown()
				if err := fn(ctx); err != nil {
					rt.Fail(err)
				}
			}()
			return nil
		})
		return nil
	}
}
