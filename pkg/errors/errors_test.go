package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestMetadataFor(t *testing.T) {
	cases := map[Code]int{
		CodeValidation:   http.StatusBadRequest,
		CodeUnauthorized: http.StatusUnauthorized,
		CodeForbidden:    http.StatusForbidden,
		CodeNotFound:     http.StatusNotFound,
		CodeConflict:     http.StatusConflict,
		CodeInternal:     http.StatusInternalServerError,
		CodeDependency:   http.StatusServiceUnavailable,
	}
	for code, status := range cases {
		if got := MetadataFor(code).HTTPStatus; got != status {
			t.Fatalf("%s: unexpected status %d", code, got)
		}
	}
	if got := MetadataFor(Code("BOGUS")).HTTPStatus; got != http.StatusInternalServerError {
		t.Fatalf("unknown code should fall back to internal, got %d", got)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("dial tcp: connection refused")
	err := Wrap(CodeDependency, cause, "execute request")

	if !stdErrors.Is(err, cause) {
		t.Fatal("wrapped error should match its cause")
	}
	if err.Code() != CodeDependency {
		t.Fatalf("unexpected code %s", err.Code())
	}
	if err.Error() != "DEPENDENCY_ERROR: execute request" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
}

func TestWrapNilCause(t *testing.T) {
	err := Wrap(CodeInternal, nil, "no cause")
	if err.Unwrap() != nil {
		t.Fatal("nil cause should stay nil")
	}
}

func TestAsFindsTypedError(t *testing.T) {
	inner := New(CodeNotFound, "wishlist item not found")
	wrapped := fmt.Errorf("handler: %w", inner)

	typed := As(wrapped)
	if typed == nil {
		t.Fatal("expected typed error through the chain")
	}
	if typed.Code() != CodeNotFound || typed.Message() != "wishlist item not found" {
		t.Fatalf("unexpected typed error %+v", typed)
	}

	if As(stdErrors.New("plain")) != nil {
		t.Fatal("plain errors have no typed form")
	}
	if As(nil) != nil {
		t.Fatal("nil has no typed form")
	}
}

func TestWithDetailAndStatus(t *testing.T) {
	err := New(CodeConflict, "item already in wishlist").
		WithDetail("shop_id", int64(7)).
		WithDetail("product_id", int64(42)).
		WithHTTPStatus(http.StatusConflict)

	details := err.Details()
	if details["shop_id"] != int64(7) || details["product_id"] != int64(42) {
		t.Fatalf("unexpected details %+v", details)
	}
	if err.HTTPStatus() != http.StatusConflict {
		t.Fatalf("unexpected status %d", err.HTTPStatus())
	}
}

func TestNilReceiverSafety(t *testing.T) {
	var err *Error
	if err.Code() != CodeInternal {
		t.Fatal("nil receiver defaults to internal")
	}
	if err.Message() != "" || err.Details() != nil || err.HTTPStatus() != 0 {
		t.Fatal("nil receiver accessors should return zero values")
	}
	if err.WithDetail("k", "v") != nil || err.WithHTTPStatus(500) != nil {
		t.Fatal("nil receiver builders should stay nil")
	}
}
