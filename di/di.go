package di

import (
	"fmt"
)

// RegisterSimple registers T with a zero-argument default constructor.
//
// A pointer-to-struct T gets a freshly allocated value on every build; any other
// non-interface T gets its zero value. Interfaces have no default construction,
// use RegisterWithDependencies or RegisterFunc for them.
// A previous registration for T is replaced.
func RegisterSimple[T any](r *Registry, opts ...Option) {
	typ := TypeOf[T]()
	build, err := defaultFactory(typ)
	if err != nil {
		panic(fmt.Sprintf("di: failed to register %v: %v", typ, err))
	}
	r.add(newRegistration(KeyOf[T](), nil, build, opts))
}

// RegisterWithDependencies registers T with a constructor whose parameters are its dependencies.
//
// ctor must be func(D1, ..., Dn) T or func(D1, ..., Dn) (T, error). Nothing about D1..Dn is
// checked here: each Di is resolved from r, left to right, every time the factory runs.
// A previous registration for T is replaced.
func RegisterWithDependencies[T any](r *Registry, ctor any, opts ...Option) error {
	key := KeyOf[T]()
	deps, build, err := constructorFactory(key.Type(), ctor)
	if err != nil {
		return err
	}
	r.add(newRegistration(key, deps, build, opts))
	return nil
}

// Register1 is the typed form of RegisterWithDependencies for one dependency.
func Register1[T, D1 any](r *Registry, ctor func(D1) T, opts ...Option) {
	key := KeyOf[T]()
	deps := []TypeKey{KeyOf[D1]()}
	r.add(newRegistration(key, deps, func(rs *resolution) (any, error) {
		d1, err := resolveAs[D1](rs)
		if err != nil {
			return nil, err
		}
		return checkInstance(key, ctor(d1))
	}, opts))
}

// Register2 is the typed form of RegisterWithDependencies for two dependencies.
func Register2[T, D1, D2 any](r *Registry, ctor func(D1, D2) T, opts ...Option) {
	key := KeyOf[T]()
	deps := []TypeKey{KeyOf[D1](), KeyOf[D2]()}
	r.add(newRegistration(key, deps, func(rs *resolution) (any, error) {
		d1, err := resolveAs[D1](rs)
		if err != nil {
			return nil, err
		}
		d2, err := resolveAs[D2](rs)
		if err != nil {
			return nil, err
		}
		return checkInstance(key, ctor(d1, d2))
	}, opts))
}

// Register3 is the typed form of RegisterWithDependencies for three dependencies.
func Register3[T, D1, D2, D3 any](r *Registry, ctor func(D1, D2, D3) T, opts ...Option) {
	key := KeyOf[T]()
	deps := []TypeKey{KeyOf[D1](), KeyOf[D2](), KeyOf[D3]()}
	r.add(newRegistration(key, deps, func(rs *resolution) (any, error) {
		d1, err := resolveAs[D1](rs)
		if err != nil {
			return nil, err
		}
		d2, err := resolveAs[D2](rs)
		if err != nil {
			return nil, err
		}
		d3, err := resolveAs[D3](rs)
		if err != nil {
			return nil, err
		}
		return checkInstance(key, ctor(d1, d2, d3))
	}, opts))
}

// RegisterFunc registers T with a custom nullary factory.
func RegisterFunc[T any](r *Registry, fn func() T, opts ...Option) {
	key := KeyOf[T]()
	if fn == nil {
		panic(fmt.Sprintf("di: failed to register %v: factory is nil", key))
	}
	r.add(newRegistration(key, nil, func(*resolution) (any, error) {
		return checkInstance(key, fn())
	}, opts))
}

// RegisterInstance registers an existing value of T as a singleton.
func RegisterInstance[T any](r *Registry, v T) {
	key := KeyOf[T]()
	if _, err := checkInstance(key, v); err != nil {
		panic(fmt.Sprintf("di: failed to register %v: %v", key, err))
	}
	reg := newRegistration(key, nil, func(*resolution) (any, error) {
		return v, nil
	}, []Option{WithSingleton()})
	reg.instance = v
	reg.cached = true
	r.add(reg)
}

// Has reports whether T is registered.
func Has[T any](r *Registry) bool {
	return r.Contains(KeyOf[T]())
}

// Resolve resolves an instance of type T from the registry.
//
// Transient registrations run their factory on every call; singleton registrations
// return the cached instance after the first success. Errors match ErrUnregisteredType
// or ErrCyclicDependency under errors.Is, or wrap the constructor's own error.
func Resolve[T any](r *Registry) (T, error) {
	var zero T
	key := KeyOf[T]()

	val, err := r.resolve(key)
	if err != nil {
		return zero, err
	}
	if val == nil {
		return zero, nil
	}

	if v, ok := val.(T); ok {
		return v, nil
	}
	return zero, fmt.Errorf("di: resolved value is %T, expected %v", val, key)
}

// MustResolve 解析实例，失败时 panic
func MustResolve[T any](r *Registry) T {
	v, err := Resolve[T](r)
	if err != nil {
		panic(err)
	}
	return v
}
