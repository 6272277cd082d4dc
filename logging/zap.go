package logging

import (
	"io"
	"os"
	"slices"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapLoggerProvider 基于 zap 的日志提供者
//
// 类别映射为 zap 的 Named，Field 映射为 zap.Any。
// 最小级别由本提供者过滤，zap core 自身的级别应不高于它。
type ZapLoggerProvider struct {
	base         *zap.Logger
	minimumLevel LogLevel
	mu           sync.RWMutex
}

// NewZapLoggerProvider 使用已有的 zap.Logger 创建提供者，nil 时使用 zap.NewNop()
func NewZapLoggerProvider(base *zap.Logger) *ZapLoggerProvider {
	if base == nil {
		base = zap.NewNop()
	}
	return &ZapLoggerProvider{
		base:         base,
		minimumLevel: LogLevelInfo,
	}
}

// NewZapLogger 创建写入 w 的 zap.Logger
// json 为 true 时使用生产环境的 JSON 编码，否则使用开发环境的控制台编码。
func NewZapLogger(w io.Writer, level LogLevel, json bool) *zap.Logger {
	if w == nil {
		w = os.Stderr
	}

	var encoder zapcore.Encoder
	if json {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(w), zapLevel(level))
	return zap.New(core)
}

func (p *ZapLoggerProvider) CreateLogger(category string) Logger {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return newZapLogger(p.base, category, nil, p.minimumLevel)
}

func (p *ZapLoggerProvider) SetMinimumLevel(level LogLevel) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.minimumLevel = level
}

// Sync 刷新 zap 缓冲
func (p *ZapLoggerProvider) Sync() error {
	return p.base.Sync()
}

// zapLogger 将 Logger 接口适配到 zap.Logger
type zapLogger struct {
	root         *zap.Logger
	logger       *zap.Logger
	category     string
	fields       []Field
	minimumLevel LogLevel
}

func newZapLogger(root *zap.Logger, category string, fields []Field, minimumLevel LogLevel) *zapLogger {
	logger := root
	if category != "" {
		logger = logger.Named(category)
	}
	if len(fields) > 0 {
		logger = logger.With(zapFields(fields)...)
	}
	return &zapLogger{
		root:         root,
		logger:       logger,
		category:     category,
		fields:       fields,
		minimumLevel: minimumLevel,
	}
}

func (l *zapLogger) Trace(msg string, fields ...Field) {
	l.Log(LogLevelTrace, msg, fields...)
}

func (l *zapLogger) Debug(msg string, fields ...Field) {
	l.Log(LogLevelDebug, msg, fields...)
}

func (l *zapLogger) Info(msg string, fields ...Field) {
	l.Log(LogLevelInfo, msg, fields...)
}

func (l *zapLogger) Warn(msg string, fields ...Field) {
	l.Log(LogLevelWarn, msg, fields...)
}

func (l *zapLogger) Error(msg string, fields ...Field) {
	l.Log(LogLevelError, msg, fields...)
}

// Fatal 记录日志后退出进程（由 zap 执行 os.Exit）
func (l *zapLogger) Fatal(msg string, fields ...Field) {
	l.logger.Fatal(msg, zapFields(fields)...)
}

// Log 不会因 FATAL 级别退出进程，FATAL 以 error 级别写入
func (l *zapLogger) Log(level LogLevel, msg string, fields ...Field) {
	if level < l.minimumLevel {
		return
	}
	lvl := zapLevel(level)
	if lvl > zapcore.ErrorLevel {
		lvl = zapcore.ErrorLevel
	}
	l.logger.Log(lvl, msg, zapFields(fields)...)
}

func (l *zapLogger) WithFields(fields ...Field) Logger {
	return newZapLogger(l.root, l.category, slices.Concat(l.fields, fields), l.minimumLevel)
}

func (l *zapLogger) WithCategory(category string) Logger {
	return newZapLogger(l.root, category, l.fields, l.minimumLevel)
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelTrace, LogLevelDebug:
		return zapcore.DebugLevel
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError:
		return zapcore.ErrorLevel
	case LogLevelFatal:
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func zapFields(fields []Field) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, len(fields))
	for i, f := range fields {
		out[i] = zap.Any(f.Key, f.Value)
	}
	return out
}
