package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestError_IsMatchesByCode(t *testing.T) {
	if !errors.Is(ErrAccountNotFound, ErrNotFound) {
		t.Fatal("expected account not found to be a NotFound")
	}
	if errors.Is(ErrAccountNotFound, ErrClientNotFound) {
		t.Fatal("specific sentinels must not match each other")
	}
	if errors.Is(ErrSameAccount, ErrNotFound) {
		t.Fatal("validation error must not match NotFound")
	}

	wrapped := fmt.Errorf("posting: %w", NewInsufficientBalance("only %s on hand", "10"))
	if !errors.Is(wrapped, ErrInsufficientBalance) {
		t.Fatal("expected wrapped insufficient balance to match")
	}
}

func TestError_StatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{ErrVendorNotFound, http.StatusNotFound},
		{NewInvalidAmount("bad"), http.StatusBadRequest},
		{NewInsufficientBalance("short"), http.StatusBadRequest},
		{ErrNoExpenseItems, http.StatusBadRequest},
		{StoreFailure(errors.New("conn reset")), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		if got := AsError(tt.err).StatusCode(); got != tt.want {
			t.Errorf("%v: expected status %d, got %d", tt.err, tt.want, got)
		}
	}
}

func TestAsError_UnknownBecomesStoreFailure(t *testing.T) {
	cause := errors.New("driver exploded")
	appErr := AsError(cause)

	if appErr.Code != CodeStoreFailure {
		t.Fatalf("expected store failure, got %s", appErr.Code)
	}
	if !errors.Is(appErr, cause) {
		t.Fatal("expected cause to stay reachable")
	}
}
