package mvc

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// View 负责控制台交互
// 零值使用标准输入输出。
type View struct {
	in     io.Reader
	out    io.Writer
	reader *bufio.Reader
}

func NewView(in io.Reader, out io.Writer) *View {
	return &View{in: in, out: out}
}

// AskForName 打印提示并读取一行，去掉行尾的 CR/LF
// 输入在换行前结束时，已读取的内容仍然有效。
func (v *View) AskForName() (string, error) {
	fmt.Fprint(v.writer(), "Enter your name: ")

	line, err := v.lineReader().ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", fmt.Errorf("mvc: reading name: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func (v *View) DisplayGreeting(name string) {
	fmt.Fprintf(v.writer(), "Hello %s!\n", name)
}

func (v *View) writer() io.Writer {
	if v.out == nil {
		return os.Stdout
	}
	return v.out
}

func (v *View) lineReader() *bufio.Reader {
	if v.reader == nil {
		in := v.in
		if in == nil {
			in = os.Stdin
		}
		v.reader = bufio.NewReader(in)
	}
	return v.reader
}
