package mvc

import (
	"fmt"
	"io"
	"os"

	"github.com/gocrud/mvcdi/logging"
)

// Logger 输出 "[LOG]: <msg>" 形式的应用日志
// 零值写入标准输出。
type Logger struct {
	out     io.Writer
	backend logging.Logger
}

// NewLogger 创建写入 out 的 Logger
// backend 非 nil 时，消息同时以 Info 级别写入结构化日志。
func NewLogger(out io.Writer, backend logging.Logger) *Logger {
	return &Logger{out: out, backend: backend}
}

func (l *Logger) Log(msg string) {
	out := l.out
	if out == nil {
		out = os.Stdout
	}
	fmt.Fprintf(out, "[LOG]: %s\n", msg)

	if l.backend != nil {
		l.backend.Info(msg)
	}
}
