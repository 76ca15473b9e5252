package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
)

func TestSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Success(rec, "ok", map[string]string{"k": "v"})

	if rec.Code != 200 {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}

	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !body.Success || body.Message != "ok" || body.Data == nil {
		t.Fatalf("envelope = %+v", body)
	}
}

func TestBadRequest_ErrorsSlot(t *testing.T) {
	rec := httptest.NewRecorder()
	BadRequest(rec, "Validation failed", map[string]string{"email": "Email is required"})

	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}

	var body Response
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Success {
		t.Fatal("success should be false")
	}
	if body.Errors == nil {
		t.Fatal("errors slot should carry field errors")
	}
	if body.Data != nil {
		t.Fatalf("data slot should be empty, got %v", body.Data)
	}
}

func TestPaginated_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	Paginated(rec, "ok", []int{1, 2}, &Pagination{Page: 1, PerPage: 10, TotalItems: 2, TotalPages: 1})

	var body PaginatedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Pagination == nil || body.Pagination.TotalItems != 2 {
		t.Fatalf("pagination = %+v", body.Pagination)
	}
}
