package config

import (
	"strings"
	"sync"
)

// maxCachedPaths 缓存条目上限，超过后不再缓存新路径
const maxCachedPaths = 1024

// PathCache 缓存 "a:b.c" 形式的键路径拆分结果
type PathCache struct {
	mu    sync.RWMutex
	paths map[string][]string
}

// GetPathSegments 返回路径片段，":" 与 "." 均为分隔符，空片段被忽略
// 返回的切片在调用方之间共享，不得修改。
func (c *PathCache) GetPathSegments(path string) []string {
	c.mu.RLock()
	parts, ok := c.paths[path]
	c.mu.RUnlock()
	if ok {
		return parts
	}

	parts = splitKeyPath(path)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.paths == nil {
		c.paths = make(map[string][]string)
	}
	if len(c.paths) < maxCachedPaths {
		c.paths[path] = parts
	}
	return parts
}

// Len 返回已缓存的路径数
func (c *PathCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.paths)
}

func splitKeyPath(path string) []string {
	return strings.FieldsFunc(path, func(r rune) bool {
		return r == ':' || r == '.'
	})
}

var globalPathCache = &PathCache{}
