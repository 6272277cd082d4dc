package logging

import (
	"bytes"
	"sync"
)

// maxPooledBufferSize 超过此容量的 buffer 不回收，避免单条超长日志长期占用内存
const maxPooledBufferSize = 64 << 10

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

func getBuffer() *bytes.Buffer {
	return bufferPool.Get().(*bytes.Buffer)
}

func putBuffer(b *bytes.Buffer) {
	if b.Cap() > maxPooledBufferSize {
		return
	}
	b.Reset()
	bufferPool.Put(b)
}

// detach 复制 buffer 内容，使返回值在 buffer 归还后仍然有效
func detach(b *bytes.Buffer) []byte {
	return bytes.Clone(b.Bytes())
}
