package di

import (
	"reflect"
	"slices"
	"strings"
)

// TypeKey 是注册表中类型的唯一标识
//
// 基于 reflect.Type 实现：同一个 Go 类型在进程内只有一个 reflect.Type，
// 因此同一逻辑类型总是得到相同的 key，不同类型之间永不冲突。
// 与按类型名字符串做 key 不同，两个包中同名的类型不会互相覆盖。
//
// 示例：
//
//	key := di.KeyOf[*mvc.Controller]()
//	fmt.Println(key) // *mvc.Controller
type TypeKey struct {
	typ reflect.Type
}

// KeyOf 返回类型 T 的 TypeKey
//
// 对接口类型同样有效，返回的是接口本身而不是其动态类型。
func KeyOf[T any]() TypeKey {
	return TypeKey{typ: TypeOf[T]()}
}

// keyFor 由 reflect.Type 构造 TypeKey
func keyFor(typ reflect.Type) TypeKey {
	return TypeKey{typ: typ}
}

// Type 返回 key 对应的 reflect.Type
func (k TypeKey) Type() reflect.Type {
	return k.typ
}

// String 返回类型名
func (k TypeKey) String() string {
	if k.typ == nil {
		return "<nil>"
	}
	return k.typ.String()
}

// TypeOf 获取类型 T 的 reflect.Type（泛型辅助函数）
//
// 示例：
//
//	controllerType := di.TypeOf[*mvc.Controller]()
//	instance, _ := registry.Get(controllerType)
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// formatPath 将解析路径渲染为 "A -> B -> C"
func formatPath(path []TypeKey) string {
	parts := make([]string, len(path))
	for i, k := range path {
		parts[i] = k.String()
	}
	return strings.Join(parts, " -> ")
}

// sortKeys 按类型名排序，保证遍历和错误输出稳定
func sortKeys(keys []TypeKey) {
	slices.SortFunc(keys, func(a, b TypeKey) int {
		return strings.Compare(a.String(), b.String())
	})
}
