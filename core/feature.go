package core

import (
	"reflect"
	"sync"
)

// FeatureCollection 是一个类型安全的特性集合
// 用于存放配置、设置等构建时特性
type FeatureCollection struct {
	features sync.Map
}

// Set 以值的动态类型注册一个特性
func (fc *FeatureCollection) Set(feature any) {
	if feature == nil {
		return
	}
	fc.features.Store(reflect.TypeOf(feature), feature)
}

// Get 获取一个特性
func (fc *FeatureCollection) Get(typ reflect.Type) (any, bool) {
	return fc.features.Load(typ)
}

// SetFeature 以 T 为键注册特性
// T 为接口时，GetFeature[T] 也能按接口取回
func SetFeature[T any](rt *Runtime, feature T) {
	rt.Features.features.Store(featureKey[T](), feature)
}

// LookupFeature 获取特性，第二个返回值表示是否存在
func LookupFeature[T any](rt *Runtime) (T, bool) {
	var zero T
	val, ok := rt.Features.Get(featureKey[T]())
	if !ok {
		return zero, false
	}
	v, ok := val.(T)
	return v, ok
}

// GetFeature 泛型辅助函数，从 Runtime 获取特性，不存在时返回零值
func GetFeature[T any](rt *Runtime) T {
	v, _ := LookupFeature[T](rt)
	return v
}

func featureKey[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
