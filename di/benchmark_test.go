package di_test

import (
	"testing"

	"github.com/gocrud/mvcdi/di"
)

// 基准测试用的 MVC 形状类型
type BenchLogger interface {
	Log(msg string)
}

type BenchConsoleLogger struct{}

func (l *BenchConsoleLogger) Log(msg string) {}

type BenchModel struct{ name string }

type BenchView struct{}

type BenchController struct {
	model  *BenchModel
	view   *BenchView
	logger BenchLogger
}

func NewBenchController(m *BenchModel, v *BenchView, l BenchLogger) *BenchController {
	return &BenchController{model: m, view: v, logger: l}
}

func newBenchRegistry(loggerScope di.Option) *di.Registry {
	r := di.NewRegistry()
	di.RegisterFunc[BenchLogger](r, func() BenchLogger { return &BenchConsoleLogger{} }, loggerScope)
	di.RegisterSimple[*BenchModel](r)
	di.RegisterSimple[*BenchView](r)
	return r
}

// BenchmarkResolveSimple 无依赖的瞬态解析
func BenchmarkResolveSimple(b *testing.B) {
	r := newBenchRegistry(di.WithTransient())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.Resolve[*BenchModel](r)
	}
}

// BenchmarkResolveSingleton 缓存命中
func BenchmarkResolveSingleton(b *testing.B) {
	r := newBenchRegistry(di.WithSingleton())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.Resolve[BenchLogger](r)
	}
}

// BenchmarkResolveTyped Register3 构造的三依赖服务
func BenchmarkResolveTyped(b *testing.B) {
	r := newBenchRegistry(di.WithSingleton())
	di.Register3(r, NewBenchController)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.Resolve[*BenchController](r)
	}
}

// BenchmarkResolveReflect RegisterWithDependencies 基于反射调用构造函数
func BenchmarkResolveReflect(b *testing.B) {
	r := newBenchRegistry(di.WithSingleton())
	if err := di.RegisterWithDependencies[*BenchController](r, NewBenchController); err != nil {
		b.Fatal(err)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = di.Resolve[*BenchController](r)
	}
}

// BenchmarkResolveParallel 并发解析
func BenchmarkResolveParallel(b *testing.B) {
	r := newBenchRegistry(di.WithSingleton())
	di.Register3(r, NewBenchController)
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			_, _ = di.Resolve[*BenchController](r)
		}
	})
}
