package core

import (
	"testing"
	"time"
)

func TestResolveOptions(t *testing.T) {
	if got := resolveOptions(nil); got != (Options{}) {
		t.Fatalf("expected zero options, got %+v", got)
	}

	got := resolveOptions([]Option{
		WithRequestID("req-1"),
		nil,
		WithTimeout(3 * time.Second),
	})
	if got.RequestID != "req-1" || got.Timeout != 3*time.Second {
		t.Fatalf("unexpected options %+v", got)
	}
}

func TestWithTimeoutIgnoresNonPositive(t *testing.T) {
	got := resolveOptions([]Option{WithTimeout(time.Second), WithTimeout(0), WithTimeout(-time.Second)})
	if got.Timeout != time.Second {
		t.Fatalf("expected earlier timeout to survive, got %v", got.Timeout)
	}
}

func TestNewContextValidates(t *testing.T) {
	if _, err := NewContext(" ", "tok"); err == nil {
		t.Fatalf("expected error for blank tenant id")
	}
	if _, err := NewContext("tenant", ""); err == nil {
		t.Fatalf("expected error for empty token")
	}
	c, err := NewContext("tenant", "tok")
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	if c.TenantID() != "tenant" || c.Token() != "tok" {
		t.Fatalf("unexpected context %+v", c)
	}
}
