package core

import "io"

// Option 定义了修改 Runtime 状态的函数签名
// 这是框架唯一的扩展点
type Option func(rt *Runtime) error

// WithIO 替换运行时的标准输入输出
// nil 参数保持原值不变
func WithIO(in io.Reader, out io.Writer) Option {
	return func(rt *Runtime) error {
		if in != nil {
			rt.In = in
		}
		if out != nil {
			rt.Out = out
		}
		return nil
	}
}

// WithLogOutput 替换结构化日志的输出
func WithLogOutput(w io.Writer) Option {
	return func(rt *Runtime) error {
		if w != nil {
			rt.ErrOut = w
		}
		return nil
	}
}

// WithErrorHandler 接管运行时错误
func WithErrorHandler(handler func(err error)) Option {
	return func(rt *Runtime) error {
		rt.ErrorHandler = handler
		return nil
	}
}
