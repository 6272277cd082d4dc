package di

import (
	"errors"
	"slices"
)

// Verify 在不调用任何工厂的前提下校验依赖图。
//
// 它报告两类问题：
//   - 声明的依赖未注册（每个缺失项一个 *UnregisteredTypeError）
//   - 依赖图中存在环（第一个发现的 *CyclicDependencyError）
//
// 所有问题通过 errors.Join 合并返回；依赖图完整时返回 nil。
// 只有通过 RegisterWithDependencies / Register1..3 声明的依赖参与校验，
// RegisterFunc 的工厂被视为没有依赖。
func (r *Registry) Verify() error {
	r.mu.RLock()
	dependencies := make(map[TypeKey][]TypeKey, len(r.entries))
	for key, reg := range r.entries {
		dependencies[key] = reg.deps
	}
	r.mu.RUnlock()

	keys := make([]TypeKey, 0, len(dependencies))
	for key := range dependencies {
		keys = append(keys, key)
	}
	sortKeys(keys)

	var errs []error

	// 1. 缺失的依赖
	for _, key := range keys {
		for _, dep := range dependencies[key] {
			if _, ok := dependencies[dep]; !ok {
				errs = append(errs, &UnregisteredTypeError{Key: dep, Path: []TypeKey{key, dep}})
			}
		}
	}

	// 2. 循环检测 (基于 DFS)
	visited := make(map[TypeKey]bool)
	onStack := make(map[TypeKey]bool)
	var stack []TypeKey

	var visit func(TypeKey) *CyclicDependencyError
	visit = func(u TypeKey) *CyclicDependencyError {
		visited[u] = true
		onStack[u] = true
		stack = append(stack, u)

		for _, v := range dependencies[u] {
			// 未注册的依赖已在上面报告
			if _, exists := dependencies[v]; !exists {
				continue
			}
			if onStack[v] {
				start := slices.Index(stack, v)
				cycle := append(slices.Clone(stack[start:]), v)
				return &CyclicDependencyError{Path: cycle}
			}
			if !visited[v] {
				if err := visit(v); err != nil {
					return err
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[u] = false
		return nil
	}

	for _, key := range keys {
		if visited[key] {
			continue
		}
		if err := visit(key); err != nil {
			errs = append(errs, err)
			break
		}
	}

	return errors.Join(errs...)
}
