package core

import (
	"errors"
	"strings"
	"testing"

	"github.com/gocrud/mvcdi/di"
)

// 定义各种 Extension 实现用于测试

// EmptyExtension 未实现任何接口
type EmptyExtension struct{}

func (e *EmptyExtension) Name() string { return "Empty" }

// ServiceOnlyExtension 仅实现 ServiceConfigurator
type ServiceOnlyExtension struct{}

type serviceOnlyValue struct{}

func (e *ServiceOnlyExtension) Name() string { return "ServiceOnly" }
func (e *ServiceOnlyExtension) ConfigureServices(r *di.Registry) error {
	di.RegisterSimple[*serviceOnlyValue](r)
	return nil
}

// RuntimeOnlyExtension 仅实现 RuntimeConfigurator
type RuntimeOnlyExtension struct{ applied bool }

func (e *RuntimeOnlyExtension) Name() string { return "RuntimeOnly" }
func (e *RuntimeOnlyExtension) ConfigureRuntime(rt *Runtime) error {
	e.applied = true
	return nil
}

// FullExtension 同时实现两个接口，并记录调用顺序
type FullExtension struct{ calls []string }

func (e *FullExtension) Name() string { return "Full" }
func (e *FullExtension) ConfigureServices(r *di.Registry) error {
	e.calls = append(e.calls, "services")
	return nil
}
func (e *FullExtension) ConfigureRuntime(rt *Runtime) error {
	e.calls = append(e.calls, "runtime")
	return nil
}

// FailingExtension 注册服务时返回错误
type FailingExtension struct{}

func (e *FailingExtension) Name() string { return "Failing" }
func (e *FailingExtension) ConfigureServices(r *di.Registry) error {
	return errors.New("boom")
}

func TestWithExtension_Error_WhenNoInterfaceImplemented(t *testing.T) {
	rt := NewRuntime()
	err := rt.Apply(WithExtension(&EmptyExtension{}))
	if err == nil {
		t.Fatal("expected error for EmptyExtension")
	}
	if !strings.Contains(err.Error(), "extension 'Empty' does not implement any supported interfaces") {
		t.Errorf("error message not match. Got: %v", err)
	}
}

func TestWithExtension_ServiceOnly(t *testing.T) {
	rt := NewRuntime()
	if err := rt.Apply(WithExtension(&ServiceOnlyExtension{})); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !di.Has[*serviceOnlyValue](rt.Registry) {
		t.Error("expected service to be registered")
	}
}

func TestWithExtension_RuntimeOnly(t *testing.T) {
	rt := NewRuntime()
	ext := &RuntimeOnlyExtension{}
	if err := rt.Apply(WithExtension(ext)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ext.applied {
		t.Error("expected ConfigureRuntime to be called")
	}
}

func TestWithExtension_Full_ServicesBeforeRuntime(t *testing.T) {
	rt := NewRuntime()
	ext := &FullExtension{}
	if err := rt.Apply(WithExtension(ext)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Join(ext.calls, ",") != "services,runtime" {
		t.Errorf("unexpected call order %v", ext.calls)
	}
}

func TestWithExtension_WrapsError(t *testing.T) {
	rt := NewRuntime()
	err := rt.Apply(WithExtension(&FailingExtension{}))
	if err == nil || !strings.Contains(err.Error(), "extension 'Failing': boom") {
		t.Errorf("unexpected error %v", err)
	}
}
