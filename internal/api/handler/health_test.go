package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
)

func TestHealthHandler_RootAndLiveness(t *testing.T) {
	h := NewHealthHandler()

	c, rec := newTestContext(http.MethodGet, "/", "")
	if err := h.Root(c); err != nil {
		t.Fatalf("root error: %v", err)
	}
	var root map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &root)
	if root["message"] != "Employee Management API is running" || root["status"] != "healthy" {
		t.Fatalf("unexpected root payload: %v", root)
	}

	c, rec = newTestContext(http.MethodGet, "/health", "")
	if err := h.Liveness(c); err != nil {
		t.Fatalf("liveness error: %v", err)
	}
	var live map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &live)
	if live["status"] != "healthy" || live["version"] != "1.0.0" {
		t.Fatalf("unexpected liveness payload: %v", live)
	}
}

func TestHealthHandler_Readiness(t *testing.T) {
	ok := DependencyCheck{Name: "database", Ping: func(context.Context) error { return nil }}
	down := DependencyCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}

	c, rec := newTestContext(http.MethodGet, "/health/ready", "")
	if err := NewHealthHandler(ok).Readiness(c); err != nil {
		t.Fatalf("readiness error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	c, rec = newTestContext(http.MethodGet, "/health/ready", "")
	if err := NewHealthHandler(ok, down).Readiness(c); err != nil {
		t.Fatalf("readiness error: %v", err)
	}
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	var resp readinessResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Status != "degraded" || resp.Dependencies["redis"].Status != "unhealthy" || resp.Dependencies["database"].Status != "ok" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}
