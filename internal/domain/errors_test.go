package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestOpErrorWrapUnwrap(t *testing.T) {
	root := errors.New("root")
	err := &OpError{
		Op:   "reference.load_codes",
		Kind: KindInvalidConfig,
		Path: "data/codes.txt",
		Err:  root,
	}

	if !errors.Is(err, root) {
		t.Fatalf("expected errors.Is to match cause")
	}

	var got *OpError
	if !errors.As(err, &got) {
		t.Fatalf("expected errors.As to match OpError")
	}
	if got.Kind != KindInvalidConfig {
		t.Fatalf("expected kind %s", KindInvalidConfig)
	}
	if !strings.Contains(err.Error(), "path=data/codes.txt") {
		t.Fatalf("expected path in message, got %q", err.Error())
	}
}

func TestIsKindForOpError(t *testing.T) {
	err := &OpError{Op: "catalogue.fetch", Kind: KindRemote, Err: &APIError{Message: "boom"}}

	if !IsKind(err, KindRemote) {
		t.Fatalf("expected IsKind to match remote error")
	}
	if IsKind(err, KindParse) {
		t.Fatalf("expected IsKind not to match parse")
	}
	if IsKind(errors.New("plain"), KindRemote) {
		t.Fatalf("plain errors have no kind")
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != KindExecution {
		t.Fatalf("expected execution, got %s", got)
	}
	wrapped := errors.Join(errors.New("ctx"), &OpError{Op: "x", Kind: KindEmpty})
	if got := KindOf(wrapped); got != KindEmpty {
		t.Fatalf("expected empty, got %s", got)
	}
}

func TestAPIErrorKeepsExactMessage(t *testing.T) {
	var err error = &OpError{Op: "catalogue.fetch", Kind: KindRemote, Err: &APIError{Message: "Invalid ID given"}}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError in chain")
	}
	if apiErr.Error() != "Invalid ID given" {
		t.Fatalf("expected exact message, got %q", apiErr.Error())
	}
}
