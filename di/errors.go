package di

import (
	"errors"
	"fmt"
)

var (
	// ErrUnregisteredType is returned when Resolve reaches a type with no installed factory.
	ErrUnregisteredType = errors.New("di: type not registered")

	// ErrCyclicDependency is returned when a type depends on itself, directly or transitively.
	ErrCyclicDependency = errors.New("di: cyclic dependency")

	// ErrInvalidRegistration is returned when a constructor cannot serve the target type.
	ErrInvalidRegistration = errors.New("di: invalid registration")
)

// UnregisteredTypeError 表示解析路径上某个类型没有注册工厂。
// Path 为从顶层请求到缺失类型的完整路径（包含 Key 本身）。
type UnregisteredTypeError struct {
	Key  TypeKey
	Path []TypeKey
}

func (e *UnregisteredTypeError) Error() string {
	if len(e.Path) > 1 {
		return fmt.Sprintf("di: type %s not registered (resolving %s)", e.Key, formatPath(e.Path))
	}
	return fmt.Sprintf("di: type %s not registered", e.Key)
}

func (e *UnregisteredTypeError) Is(target error) bool {
	return target == ErrUnregisteredType
}

// CyclicDependencyError 表示依赖图中存在环。
// Path 的首尾是同一个类型。
type CyclicDependencyError struct {
	Path []TypeKey
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("di: cyclic dependency detected: %s", formatPath(e.Path))
}

func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}

// IsUnregistered reports whether err was caused by a missing registration.
func IsUnregistered(err error) bool {
	return errors.Is(err, ErrUnregisteredType)
}

// IsCyclic reports whether err was caused by a dependency cycle.
func IsCyclic(err error) bool {
	return errors.Is(err, ErrCyclicDependency)
}
