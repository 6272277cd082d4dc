package di

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gocrud/mvcdi/logging"
)

// resolution 记录一次顶层 Resolve 的进行中路径。
// 每次顶层调用独立创建，不在调用之间共享，因此并发 Resolve 互不干扰。
type resolution struct {
	registry *Registry
	path     []TypeKey
	active   map[TypeKey]bool
}

func (r *Registry) newResolution() *resolution {
	return &resolution{
		registry: r,
		active:   make(map[TypeKey]bool),
	}
}

// resolve 是顶层入口，负责记录日志。
func (r *Registry) resolve(key TypeKey) (any, error) {
	val, err := r.newResolution().resolve(key)
	if err != nil {
		r.log().Debug("di: resolve failed",
			logging.Field{Key: "type", Value: key.String()},
			logging.Field{Key: "error", Value: err.Error()},
		)
		return nil, err
	}
	r.log().Debug("di: resolved type", logging.Field{Key: "type", Value: key.String()})
	return val, nil
}

// resolve 递归解析 key：先查环，再查注册项，最后调用工厂。
func (rs *resolution) resolve(key TypeKey) (any, error) {
	if rs.active[key] {
		return nil, &CyclicDependencyError{Path: append(slices.Clone(rs.path), key)}
	}

	reg, ok := rs.registry.lookup(key)
	if !ok {
		return nil, &UnregisteredTypeError{Key: key, Path: append(slices.Clone(rs.path), key)}
	}

	rs.active[key] = true
	rs.path = append(rs.path, key)
	defer func() {
		rs.path = rs.path[:len(rs.path)-1]
		delete(rs.active, key)
	}()

	return reg.create(rs)
}

// resolveAs 解析依赖并断言为 D
func resolveAs[D any](rs *resolution) (D, error) {
	var zero D
	key := KeyOf[D]()
	val, err := rs.resolve(key)
	if err != nil {
		return zero, err
	}
	if val == nil {
		return zero, nil
	}
	d, ok := val.(D)
	if !ok {
		return zero, fmt.Errorf("di: resolved value is %T, expected %v", val, key)
	}
	return d, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// constructorFactory 校验构造函数签名并生成工厂
//
// 支持的签名：
//
//	func(D1, ..., Dn) T
//	func(D1, ..., Dn) (T, error)
//
// 参数类型即依赖列表，解析时按声明顺序从左到右进行。
func constructorFactory(target reflect.Type, ctor any) ([]TypeKey, factory, error) {
	if ctor == nil {
		return nil, nil, fmt.Errorf("%w: %v: constructor is nil", ErrInvalidRegistration, target)
	}

	fn := reflect.ValueOf(ctor)
	fnType := fn.Type()
	if fnType.Kind() != reflect.Func {
		return nil, nil, fmt.Errorf("%w: %v: expected constructor function, got %v", ErrInvalidRegistration, target, fnType)
	}
	if fnType.IsVariadic() {
		return nil, nil, fmt.Errorf("%w: %v: variadic constructor %v is not supported", ErrInvalidRegistration, target, fnType)
	}

	switch fnType.NumOut() {
	case 1:
	case 2:
		if fnType.Out(1) != errorType {
			return nil, nil, fmt.Errorf("%w: %v: second result of %v must be error", ErrInvalidRegistration, target, fnType)
		}
	default:
		return nil, nil, fmt.Errorf("%w: %v: constructor %v must return (T) or (T, error)", ErrInvalidRegistration, target, fnType)
	}

	if !fnType.Out(0).AssignableTo(target) {
		return nil, nil, fmt.Errorf("%w: constructor returns %v, not assignable to %v", ErrInvalidRegistration, fnType.Out(0), target)
	}

	deps := make([]TypeKey, fnType.NumIn())
	for i := range deps {
		deps[i] = keyFor(fnType.In(i))
	}

	build := func(rs *resolution) (any, error) {
		args := make([]reflect.Value, len(deps))
		for i, dep := range deps {
			val, err := rs.resolve(dep)
			if err != nil {
				return nil, err
			}
			if val == nil {
				args[i] = reflect.Zero(fnType.In(i))
				continue
			}
			args[i] = reflect.ValueOf(val)
		}
		return invoke(target, fn, args)
	}
	return deps, build, nil
}

// invoke 调用构造函数并检查 error 与 nil 返回值
func invoke(target reflect.Type, fn reflect.Value, args []reflect.Value) (any, error) {
	results := fn.Call(args)

	if len(results) == 2 && !results[1].IsNil() {
		return nil, fmt.Errorf("di: constructing %v: %w", target, results[1].Interface().(error))
	}

	if isNilValue(results[0]) {
		return nil, fmt.Errorf("di: constructor for %v returned nil", target)
	}
	out := reflect.New(target).Elem()
	out.Set(results[0])
	return out.Interface(), nil
}

// checkInstance 拒绝工厂返回的 nil 指针或 nil 接口
func checkInstance(key TypeKey, v any) (any, error) {
	if v == nil || isNilValue(reflect.ValueOf(v)) {
		return nil, fmt.Errorf("di: factory for %v returned nil", key)
	}
	return v, nil
}

func isNilValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.Invalid:
		return true
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// defaultFactory 生成无参构造：指针类型分配新的元素，其余类型使用零值。
func defaultFactory(typ reflect.Type) (factory, error) {
	switch typ.Kind() {
	case reflect.Interface:
		return nil, fmt.Errorf("%w: %v is an interface and has no default constructor", ErrInvalidRegistration, typ)
	case reflect.Pointer:
		elem := typ.Elem()
		return func(*resolution) (any, error) {
			return reflect.New(elem).Interface(), nil
		}, nil
	default:
		return func(*resolution) (any, error) {
			return reflect.Zero(typ).Interface(), nil
		}, nil
	}
}
