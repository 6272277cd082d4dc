package core

import "context"

// HostedService 定义了一个具有启动和停止生命周期的托管服务
type HostedService interface {
	// Start 启动服务
	// 框架会在独立的 Goroutine 中调用此方法，因此【允许阻塞】。
	// 如果方法返回 error，Runtime 将记录错误并触发退出流程。
	Start(ctx context.Context) error

	// Stop 停止服务
	// 在应用关闭时调用，必须支持通过 ctx 进行超时控制。
	Stop(ctx context.Context) error
}
