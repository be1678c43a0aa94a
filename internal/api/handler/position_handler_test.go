package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/hrcore/employee-service/internal/core/domain"
	"github.com/hrcore/employee-service/internal/core/ports"
)

type stubPositionService struct {
	createFn func(ctx context.Context, input ports.CreatePositionInput) (*domain.Position, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.Position, error)
	listFn   func(ctx context.Context) ([]domain.Position, error)
	updateFn func(ctx context.Context, id uuid.UUID, name string) (*domain.Position, error)
	deleteFn func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (s *stubPositionService) Create(ctx context.Context, input ports.CreatePositionInput) (*domain.Position, error) {
	return s.createFn(ctx, input)
}

func (s *stubPositionService) Get(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
	return s.getFn(ctx, id)
}

func (s *stubPositionService) List(ctx context.Context) ([]domain.Position, error) {
	return s.listFn(ctx)
}

func (s *stubPositionService) Update(ctx context.Context, id uuid.UUID, name string) (*domain.Position, error) {
	return s.updateFn(ctx, id, name)
}

func (s *stubPositionService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.deleteFn(ctx, id)
}

func TestPositionHandler_Create(t *testing.T) {
	id := uuid.New()
	stub := &stubPositionService{
		createFn: func(ctx context.Context, input ports.CreatePositionInput) (*domain.Position, error) {
			if input.Name != "Engineer" || input.IdempotencyKey != "req-7" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Position{ID: id, Name: input.Name}, nil
		},
	}
	handler := NewPositionHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/positions", `{"position_name":"Engineer"}`)
	c.Request().Header.Set(HeaderIdempotencyKey, " req-7 ")
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	var resp positionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.PositionID != id.String() || resp.PositionName != "Engineer" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestPositionHandler_Create_Validation(t *testing.T) {
	handler := NewPositionHandler(&stubPositionService{})

	for _, body := range []string{`{}`, `{"position_name":""}`} {
		c, _ := newTestContext(http.MethodPost, "/positions", body)
		if code := httpStatus(t, handler.Create(c)); code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, code)
		}
	}
}

func TestPositionHandler_Get_InvalidID(t *testing.T) {
	handler := NewPositionHandler(&stubPositionService{})

	c, _ := newTestContext(http.MethodGet, "/positions/nope", "")
	withParam(c, "id", "nope")
	if err := handler.Get(c); !errors.Is(err, domain.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func TestPositionHandler_Get_NotFound(t *testing.T) {
	stub := &stubPositionService{
		getFn: func(ctx context.Context, id uuid.UUID) (*domain.Position, error) {
			return nil, domain.ErrPositionNotFound
		},
	}
	handler := NewPositionHandler(stub)

	id := uuid.New().String()
	c, _ := newTestContext(http.MethodGet, "/positions/"+id, "")
	withParam(c, "id", id)
	if err := handler.Get(c); !errors.Is(err, domain.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestPositionHandler_List(t *testing.T) {
	stub := &stubPositionService{
		listFn: func(ctx context.Context) ([]domain.Position, error) {
			return []domain.Position{{ID: uuid.New(), Name: "A"}, {ID: uuid.New(), Name: "B"}}, nil
		},
	}
	handler := NewPositionHandler(stub)

	c, rec := newTestContext(http.MethodGet, "/positions", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp []positionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 2 || resp[0].PositionName != "A" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
}

func TestPositionHandler_Update(t *testing.T) {
	id := uuid.New()
	stub := &stubPositionService{
		updateFn: func(ctx context.Context, got uuid.UUID, name string) (*domain.Position, error) {
			if got != id || name != "Lead" {
				t.Fatalf("unexpected args: %s %q", got, name)
			}
			return &domain.Position{ID: id, Name: name}, nil
		},
	}
	handler := NewPositionHandler(stub)

	c, rec := newTestContext(http.MethodPut, "/positions/"+id.String(), `{"position_name":"Lead"}`)
	withParam(c, "id", id.String())
	if err := handler.Update(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPositionHandler_Delete(t *testing.T) {
	removed := true
	stub := &stubPositionService{
		deleteFn: func(ctx context.Context, id uuid.UUID) (bool, error) {
			return removed, nil
		},
	}
	handler := NewPositionHandler(stub)
	id := uuid.New().String()

	c, rec := newTestContext(http.MethodDelete, "/positions/"+id, "")
	withParam(c, "id", id)
	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 204, got %d %q", rec.Code, rec.Body.String())
	}

	removed = false
	c, _ = newTestContext(http.MethodDelete, "/positions/"+id, "")
	withParam(c, "id", id)
	if err := handler.Delete(c); !errors.Is(err, domain.ErrPositionNotFound) {
		t.Fatalf("expected ErrPositionNotFound, got %v", err)
	}
}

func TestPositionHandler_Create_LengthAppliesToTrimmedName(t *testing.T) {
	longest := strings.Repeat("a", 100)
	stub := &stubPositionService{
		createFn: func(ctx context.Context, input ports.CreatePositionInput) (*domain.Position, error) {
			if input.Name != longest {
				t.Fatalf("expected trimmed name, got %q", input.Name)
			}
			return &domain.Position{ID: uuid.New(), Name: input.Name}, nil
		},
	}
	handler := NewPositionHandler(stub)

	c, rec := newTestContext(http.MethodPost, "/positions", `{"position_name":"  `+longest+` "}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	c, _ = newTestContext(http.MethodPost, "/positions", `{"position_name":" `+longest+`a "}`)
	if code := httpStatus(t, handler.Create(c)); code != http.StatusBadRequest {
		t.Fatalf("expected 400 for 101 characters, got %d", code)
	}
}
