package logging

import (
	"slices"
	"time"
)

// Formatter 将日志条目渲染为一行输出
type Formatter interface {
	Format(entry *LogEntry) ([]byte, error)
}

// FormatterFunc 函数形式的 Formatter
type FormatterFunc func(entry *LogEntry) ([]byte, error)

func (f FormatterFunc) Format(entry *LogEntry) ([]byte, error) {
	return f(entry)
}

// LogEntry 日志条目
type LogEntry struct {
	Time     time.Time
	Level    LogLevel
	Category string
	Message  string
	Fields   []Field
}

// newLogEntry 以当前时间创建条目，base 与 extra 合并为新的切片
func newLogEntry(level LogLevel, category, msg string, base, extra []Field) *LogEntry {
	return &LogEntry{
		Time:     time.Now(),
		Level:    level,
		Category: category,
		Message:  msg,
		Fields:   slices.Concat(base, extra),
	}
}
