package app

import (
	"context"
	"fmt"

	"github.com/gocrud/mvcdi/config"
	"github.com/gocrud/mvcdi/core"
	"github.com/gocrud/mvcdi/di"
	"github.com/gocrud/mvcdi/mvc"
)

// ManualWiring 由组合根直接构造全部对象，不经过 DI 注册表
func ManualWiring() core.Option {
	return func(rt *core.Runtime) error {
		return rt.Apply(core.WithTask(func(ctx context.Context) error {
			cfg := mvc.FromSettings(core.GetFeature[*config.Settings](rt))
			logger := mvc.NewLogger(rt.Out, rt.Logger.WithCategory("mvc"))
			model := &mvc.Model{}
			view := mvc.NewView(rt.In, rt.Out)
			controller := mvc.NewController(model, view, logger)

			logger.Log(fmt.Sprintf("App Name: %s - Manual DI", cfg.AppName))
			return controller.Run()
		}))
	}
}

// ContainerWiring 将 MVC 组件注册到运行时的 DI 注册表，启动时逐个解析后运行
func ContainerWiring() core.Option {
	return func(rt *core.Runtime) error {
		return rt.Apply(core.WithExtension(&containerWiring{rt: rt}))
	}
}

// containerWiring 注册 MVC 组件的扩展
type containerWiring struct {
	rt *core.Runtime
}

func (w *containerWiring) Name() string { return "container-wiring" }

func (w *containerWiring) ConfigureServices(r *di.Registry) error {
	rt := w.rt

	// 未经 config.Load 时使用默认设置
	if !di.Has[*config.Settings](r) {
		di.RegisterFunc(r, func() *config.Settings {
			s := config.DefaultSettings()
			return &s
		}, di.WithSingleton())
	}

	di.RegisterFunc(r, func() *mvc.Logger {
		return mvc.NewLogger(rt.Out, rt.Logger.WithCategory("mvc"))
	}, di.WithSingleton())
	di.RegisterSimple[*mvc.Model](r)
	di.RegisterFunc(r, func() *mvc.View {
		return mvc.NewView(rt.In, rt.Out)
	})
	if err := di.RegisterWithDependencies[*mvc.Configuration](r, mvc.FromSettings); err != nil {
		return err
	}
	di.Register3(r, mvc.NewController)
	return nil
}

func (w *containerWiring) ConfigureRuntime(rt *core.Runtime) error {
	return rt.Apply(core.WithTask(func(ctx context.Context) error {
		cfg, err := di.Resolve[*mvc.Configuration](rt.Registry)
		if err != nil {
			return err
		}
		logger, err := di.Resolve[*mvc.Logger](rt.Registry)
		if err != nil {
			return err
		}
		// Model 与 View 单独解析一次，确认注册完整
		if _, err := di.Resolve[*mvc.Model](rt.Registry); err != nil {
			return err
		}
		if _, err := di.Resolve[*mvc.View](rt.Registry); err != nil {
			return err
		}
		controller, err := di.Resolve[*mvc.Controller](rt.Registry)
		if err != nil {
			return err
		}

		logger.Log(fmt.Sprintf("App Name: %s - Custom DI Framework", cfg.AppName))
		return controller.Run()
	}))
}
