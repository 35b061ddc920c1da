package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("expected healthy, got %s", report.Status)
	}
	for name, result := range report.Checks {
		if result != CheckOK {
			t.Errorf("expected %s ok, got %s", name, result)
		}
	}
	if len(report.Checks) != 3 {
		t.Errorf("expected 3 checks, got %d", len(report.Checks))
	}
}

func TestCheck_DegradedOnVectorFailure(t *testing.T) {
	svc := New(&mockPinger{}, &mockPinger{err: errors.New("redis down")}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("expected degraded, got %s", report.Status)
	}
	if report.Checks["vector_store"] != CheckError {
		t.Errorf("expected vector_store error, got %s", report.Checks["vector_store"])
	}
	if report.Checks["database"] != CheckOK {
		t.Errorf("expected database ok, got %s", report.Checks["database"])
	}
}

func TestCheck_NilOptionalComponents(t *testing.T) {
	svc := New(&mockPinger{}, nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("expected healthy, got %s", report.Status)
	}
	if len(report.Checks) != 1 {
		t.Errorf("expected only the database check, got %d", len(report.Checks))
	}
}
