// Command container 运行问候程序，对象由 DI 注册表解析
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	app "github.com/gocrud/mvcdi"
	"github.com/gocrud/mvcdi/config"
)

func main() {
	configPath := flag.String("config", "", "optional YAML/JSON config file")
	logLevel := flag.String("log-level", "", "override logging.level (trace, debug, info, warn, error)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := app.Run(ctx,
		config.Load(*configPath, app.LoadOptions(*logLevel)...),
		app.WithLogging(),
		app.ContainerWiring(),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
