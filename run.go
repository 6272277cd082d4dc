package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gocrud/mvcdi/core"
)

// ShutdownTimeout 停止钩子可用的最长时间
const ShutdownTimeout = 5 * time.Second

// Run 启动应用程序
// 这是基于微内核架构的唯一入口
func Run(ctx context.Context, opts ...core.Option) error {
	rt := core.NewRuntime()

	// 1. Bootstrap (应用所有选项)
	// 这一步会加载配置、注册服务、添加生命周期钩子等
	if err := rt.Apply(opts...); err != nil {
		return err
	}

	// 2. 校验依赖图，缺失或循环依赖在任何构造发生之前报告
	if err := rt.Registry.Verify(); err != nil {
		return fmt.Errorf("app: invalid registrations: %w", err)
	}

	// 3. Start Lifecycle (启动生命周期)
	if err := rt.Lifecycle.Start(ctx); err != nil {
		return errors.Join(err, stop(rt))
	}

	// 4. 阻塞直到任务结束、运行时请求退出或 ctx 被取消
	select {
	case <-ctx.Done():
	case <-rt.Done():
	}

	// 5. Graceful Shutdown (优雅关闭)
	return errors.Join(rt.Err(), stop(rt))
}

func stop(rt *core.Runtime) error {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return rt.Lifecycle.Stop(shutdownCtx)
}
