package di

import (
	"bytes"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocrud/mvcdi/logging"
)

// 测试用的 MVC 形状类型
type testLogger struct{ lines []string }
type testModel struct{ name string }
type testView struct{}
type testController struct {
	model  *testModel
	view   *testView
	logger *testLogger
}

func newTestController(m *testModel, v *testView, l *testLogger) *testController {
	return &testController{model: m, view: v, logger: l}
}

type testConfig struct{ AppName string }

type greeter interface{ Greet() string }

type englishGreeter struct{ name string }

func (g *englishGreeter) Greet() string { return "Hello " + g.name }

func TestRegisterSimpleResolve(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testModel](r)

	m, err := Resolve[*testModel](r)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Empty(t, m.name)
}

func TestRegisterSimpleValueType(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[testConfig](r)
	RegisterSimple[int](r)

	cfg, err := Resolve[testConfig](r)
	require.NoError(t, err)
	assert.Equal(t, testConfig{}, cfg)

	n, err := Resolve[int](r)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestRegisterSimpleInterfacePanics(t *testing.T) {
	r := NewRegistry()
	assert.PanicsWithValue(t,
		"di: failed to register di.greeter: di: invalid registration: di.greeter is an interface and has no default constructor",
		func() { RegisterSimple[greeter](r) })
	assert.False(t, Has[greeter](r))
}

func TestTransientInstancesAreDistinct(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testModel](r)

	first := MustResolve[*testModel](r)
	second := MustResolve[*testModel](r)
	assert.NotSame(t, first, second)

	first.name = "changed"
	assert.Empty(t, second.name)
}

func TestResolveWithDependencies(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testLogger](r)
	RegisterSimple[*testModel](r)
	RegisterSimple[*testView](r)
	require.NoError(t, RegisterWithDependencies[*testController](r, newTestController))

	c, err := Resolve[*testController](r)
	require.NoError(t, err)
	assert.NotNil(t, c.model)
	assert.NotNil(t, c.view)
	assert.NotNil(t, c.logger)
}

func TestResolveBeforeRegister(t *testing.T) {
	r := NewRegistry()

	_, err := Resolve[*testController](r)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnregisteredType)

	var unregistered *UnregisteredTypeError
	require.ErrorAs(t, err, &unregistered)
	assert.Equal(t, KeyOf[*testController](), unregistered.Key)
	assert.Equal(t, "di: type *di.testController not registered", err.Error())
}

func TestNestedMissingDependency(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testModel](r)
	RegisterSimple[*testView](r)
	require.NoError(t, RegisterWithDependencies[*testController](r, newTestController))

	_, err := Resolve[*testController](r)
	require.Error(t, err)
	assert.True(t, IsUnregistered(err))

	var unregistered *UnregisteredTypeError
	require.ErrorAs(t, err, &unregistered)
	assert.Equal(t, KeyOf[*testLogger](), unregistered.Key)
	assert.Equal(t, []TypeKey{KeyOf[*testController](), KeyOf[*testLogger]()}, unregistered.Path)
	assert.Equal(t,
		"di: type *di.testLogger not registered (resolving *di.testController -> *di.testLogger)",
		err.Error())
}

func TestReRegistrationLastWins(t *testing.T) {
	r := NewRegistry()
	RegisterFunc(r, func() *testConfig { return &testConfig{AppName: "first"} })
	RegisterFunc(r, func() *testConfig { return &testConfig{AppName: "second"} })

	assert.Equal(t, 1, r.Len())
	assert.Equal(t, "second", MustResolve[*testConfig](r).AppName)
}

func TestRegisterSimpleThenWithDependencies(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testConfig](r)
	RegisterInstance(r, &testModel{name: "model"})
	require.NoError(t, RegisterWithDependencies[*testConfig](r, func(m *testModel) *testConfig {
		return &testConfig{AppName: m.name}
	}))

	assert.Equal(t, "model", MustResolve[*testConfig](r).AppName)
}

func TestReRegistrationDropsSingletonCache(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testModel](r, WithSingleton())
	before := MustResolve[*testModel](r)
	assert.Same(t, before, MustResolve[*testModel](r))

	RegisterSimple[*testModel](r, WithSingleton())
	assert.NotSame(t, before, MustResolve[*testModel](r))
}

func TestOverwriteIsLogged(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewLoggingBuilder().
		SetMinimumLevel(logging.LogLevelDebug).
		AddConsole(logging.ConsoleLoggerOptions{Output: &buf}).
		Build().
		CreateLogger("di")

	r := NewRegistry(WithLogger(logger))
	RegisterSimple[*testModel](r)
	RegisterSimple[*testModel](r, WithSingleton())
	_, _ = Resolve[*testView](r)

	out := buf.String()
	assert.Contains(t, out, "di: registered type {type=*di.testModel, scope=transient, deps=0}")
	assert.Contains(t, out, "di: overwriting registration {type=*di.testModel, scope=singleton, deps=0}")
	assert.Contains(t, out, "di: resolve failed {type=*di.testView")
}

func TestSingletonIdentity(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testLogger](r, WithSingleton())
	RegisterSimple[*testModel](r)
	RegisterSimple[*testView](r)
	Register3(r, newTestController)

	first := MustResolve[*testController](r)
	second := MustResolve[*testController](r)

	assert.NotSame(t, first, second)
	assert.NotSame(t, first.model, second.model)
	assert.Same(t, first.logger, second.logger)
}

func TestSingletonNotCachedOnError(t *testing.T) {
	r := NewRegistry()
	calls := 0
	require.NoError(t, RegisterWithDependencies[*testConfig](r, func() (*testConfig, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("not yet")
		}
		return &testConfig{AppName: "ready"}, nil
	}, WithSingleton()))

	_, err := Resolve[*testConfig](r)
	require.Error(t, err)

	cfg, err := Resolve[*testConfig](r)
	require.NoError(t, err)
	assert.Equal(t, "ready", cfg.AppName)
	assert.Same(t, cfg, MustResolve[*testConfig](r))
}

func TestConstructorError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	require.NoError(t, RegisterWithDependencies[*testConfig](r, func() (*testConfig, error) {
		return nil, boom
	}))

	_, err := Resolve[*testConfig](r)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, "di: constructing *di.testConfig: boom", err.Error())
}

func TestConstructorReturningNil(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, RegisterWithDependencies[greeter](r, func() *englishGreeter { return nil }))

	_, err := Resolve[greeter](r)
	assert.EqualError(t, err, "di: constructor for di.greeter returned nil")
}

func TestInvalidConstructors(t *testing.T) {
	tests := []struct {
		name string
		ctor any
	}{
		{"nil", nil},
		{"not a function", 42},
		{"no results", func() {}},
		{"three results", func() (*testConfig, int, error) { return nil, 0, nil }},
		{"second result not error", func() (*testConfig, int) { return nil, 0 }},
		{"wrong result type", func() *testModel { return nil }},
		{"variadic", func(...int) *testConfig { return nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			err := RegisterWithDependencies[*testConfig](r, tt.ctor)
			require.ErrorIs(t, err, ErrInvalidRegistration)
			assert.False(t, Has[*testConfig](r))
		})
	}
}

func TestRegisterInterfaceWithConstructor(t *testing.T) {
	r := NewRegistry()
	RegisterFunc(r, func() string { return "Ada" })
	require.NoError(t, RegisterWithDependencies[greeter](r, func(name string) *englishGreeter {
		return &englishGreeter{name: name}
	}))

	g, err := Resolve[greeter](r)
	require.NoError(t, err)
	assert.Equal(t, "Hello Ada", g.Greet())
}

func TestTypedRegisterForms(t *testing.T) {
	r := NewRegistry()
	RegisterInstance(r, &testConfig{AppName: "HelloApp"})
	RegisterSimple[*testModel](r)
	Register1(r, func(c *testConfig) string { return c.AppName })
	Register2(r, func(name string, m *testModel) greeter {
		m.name = name
		return &englishGreeter{name: m.name}
	})

	assert.Equal(t, "HelloApp", MustResolve[string](r))
	assert.Equal(t, "Hello HelloApp", MustResolve[greeter](r).Greet())
}

func TestRegisterInstance(t *testing.T) {
	r := NewRegistry()
	cfg := &testConfig{AppName: "HelloApp"}
	RegisterInstance(r, cfg)
	RegisterInstance[greeter](r, &englishGreeter{name: "Ada"})

	assert.Same(t, cfg, MustResolve[*testConfig](r))
	assert.Same(t, cfg, MustResolve[*testConfig](r))
	assert.Equal(t, "Hello Ada", MustResolve[greeter](r).Greet())

	assert.Panics(t, func() { RegisterInstance[*testConfig](r, nil) })
	assert.Panics(t, func() { RegisterInstance[greeter](r, nil) })
}

func TestRegisterFuncNilPanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() { RegisterFunc[*testConfig](r, nil) })
}

func TestFactoryReturningNil(t *testing.T) {
	r := NewRegistry()
	RegisterFunc(r, func() *testConfig { return nil })

	_, err := Resolve[*testConfig](r)
	assert.EqualError(t, err, "di: factory for *di.testConfig returned nil")
}

func TestMustResolvePanics(t *testing.T) {
	r := NewRegistry()
	assert.Panics(t, func() { MustResolve[*testModel](r) })
}

type cycleA struct{ b *cycleB }
type cycleB struct{ a *cycleA }

func TestCycleDetectedOnResolve(t *testing.T) {
	r := NewRegistry()
	Register1(r, func(b *cycleB) *cycleA { return &cycleA{b: b} })
	Register1(r, func(a *cycleA) *cycleB { return &cycleB{a: a} }, WithSingleton())

	_, err := Resolve[*cycleA](r)
	require.Error(t, err)
	assert.True(t, IsCyclic(err))

	var cyclic *CyclicDependencyError
	require.ErrorAs(t, err, &cyclic)
	assert.Equal(t, []TypeKey{KeyOf[*cycleA](), KeyOf[*cycleB](), KeyOf[*cycleA]()}, cyclic.Path)
	assert.Equal(t, "di: cyclic dependency detected: *di.cycleA -> *di.cycleB -> *di.cycleA", err.Error())
}

func TestSelfDependency(t *testing.T) {
	r := NewRegistry()
	Register1(r, func(*cycleA) *cycleA { return &cycleA{} })

	_, err := Resolve[*cycleA](r)
	assert.ErrorIs(t, err, ErrCyclicDependency)
}

func TestVerify(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testModel](r)
	RegisterSimple[*testView](r)
	Register3(r, newTestController)
	Register1(r, func(b *cycleB) *cycleA { return &cycleA{b: b} })
	Register1(r, func(a *cycleA) *cycleB { return &cycleB{a: a} })

	err := r.Verify()
	require.Error(t, err)
	assert.True(t, IsUnregistered(err))
	assert.True(t, IsCyclic(err))
	assert.Contains(t, err.Error(), "*di.testLogger not registered (resolving *di.testController -> *di.testLogger)")
	assert.Contains(t, err.Error(), "cyclic dependency detected: *di.cycleA -> *di.cycleB -> *di.cycleA")
}

func TestVerifyDoesNotInvokeFactories(t *testing.T) {
	r := NewRegistry()
	called := false
	RegisterFunc(r, func() *testLogger {
		called = true
		return &testLogger{}
	})
	RegisterSimple[*testModel](r)
	RegisterSimple[*testView](r)
	Register3(r, newTestController)

	require.NoError(t, r.Verify())
	assert.False(t, called)
}

func TestKeys(t *testing.T) {
	r := NewRegistry()
	RegisterSimple[*testView](r)
	RegisterSimple[*testModel](r)
	RegisterSimple[*testLogger](r)

	var names []string
	for _, k := range r.Keys() {
		names = append(names, k.String())
	}
	assert.Equal(t, []string{"*di.testLogger", "*di.testModel", "*di.testView"}, names)
	assert.True(t, r.Contains(KeyOf[*testView]()))
	assert.False(t, Has[*testController](r))

	v, err := r.Get(TypeOf[*testView]())
	require.NoError(t, err)
	assert.IsType(t, &testView{}, v)
}

func TestTypeKeyIdentity(t *testing.T) {
	assert.Equal(t, KeyOf[*testModel](), KeyOf[*testModel]())
	assert.NotEqual(t, KeyOf[*testModel](), KeyOf[testModel]())
	assert.Equal(t, "di.greeter", KeyOf[greeter]().String())
	assert.Equal(t, "<nil>", TypeKey{}.String())
}

func TestConcurrentResolve(t *testing.T) {
	r := NewRegistry()
	var built sync.Map
	RegisterFunc(r, func() *testLogger {
		l := &testLogger{}
		built.Store(l, true)
		return l
	}, WithSingleton())
	RegisterSimple[*testModel](r)
	RegisterSimple[*testView](r)
	Register3(r, newTestController)

	const workers = 32
	results := make([]*testController, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = Resolve[*testController](r)
		}(i)
	}

	// 并发注册与解析交错
	for i := 0; i < workers; i++ {
		RegisterFunc(r, func() string { return fmt.Sprint(i) })
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Same(t, results[0].logger, results[i].logger)
	}
	assert.Equal(t, 5, r.Len())
}
