package responses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	pkgerrors "github.com/storely/wishsync/pkg/errors"
)

func TestWriteSuccessEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, "wishlist fetched", map[string]int{"total_items": 2})

	if rec.Code != http.StatusOK {
		t.Fatalf("unexpected status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body struct {
		Message string         `json:"message"`
		Data    map[string]int `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body.Message != "wishlist fetched" || body.Data["total_items"] != 2 {
		t.Fatalf("unexpected body %+v", body)
	}
}

func TestWriteSuccessOmitsNilData(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteSuccess(rec, "item removed from wishlist", nil)

	var body map[string]json.RawMessage
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if _, ok := body["data"]; ok {
		t.Fatal("nil data should be omitted from the envelope")
	}
}

func TestWriteErrorMapsCodesToStatuses(t *testing.T) {
	cases := []struct {
		err     error
		status  int
		message string
	}{
		{pkgerrors.New(pkgerrors.CodeValidation, "product id is required"), http.StatusBadRequest, "product id is required"},
		{pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"), http.StatusUnauthorized, "missing credentials"},
		{pkgerrors.New(pkgerrors.CodeForbidden, "wishlist access is restricted to customers"), http.StatusForbidden, "wishlist access is restricted to customers"},
		{pkgerrors.New(pkgerrors.CodeNotFound, "wishlist item not found"), http.StatusNotFound, "wishlist item not found"},
		{pkgerrors.New(pkgerrors.CodeConflict, "item already in wishlist"), http.StatusConflict, "item already in wishlist"},
		{pkgerrors.New(pkgerrors.CodeInternal, "cursor corrupted"), http.StatusInternalServerError, "internal server error"},
		{errors.New("plain failure"), http.StatusInternalServerError, "internal server error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		WriteError(context.Background(), nil, rec, tc.err)

		if rec.Code != tc.status {
			t.Fatalf("%v: unexpected status %d", tc.err, rec.Code)
		}
		var body struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if body.Message != tc.message {
			t.Fatalf("%v: unexpected message %q", tc.err, body.Message)
		}
	}
}

func TestWriteErrorNil(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(context.Background(), nil, rec, nil)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status %d", rec.Code)
	}
}
