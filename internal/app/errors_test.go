package app

import (
	"errors"
	"os"
	"testing"
)

func TestOperationError(t *testing.T) {
	err := NewOperationError("save", "text.json", os.ErrPermission)

	if got := err.Error(); got != "save text.json: permission denied" {
		t.Errorf("Error() = %q", got)
	}
	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected errors.Is to match the wrapped error")
	}
	if !errors.Is(err, err) {
		t.Error("expected errors.Is to match itself")
	}

	var nilErr *OperationError
	if nilErr.Error() != "" || nilErr.Unwrap() != nil {
		t.Error("nil OperationError should be inert")
	}
}

func TestComponentError(t *testing.T) {
	tests := []struct {
		err  *ComponentError
		want string
	}{
		{NewComponentError("glyphs", "watch", os.ErrNotExist), "glyphs: watch: file does not exist"},
		{NewComponentError("glyphs", "watch", nil), "glyphs: watch"},
		{NewComponentError("config", "", os.ErrNotExist), "config: file does not exist"},
		{NewComponentError("config", "", nil), "config"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Error() = %q, want %q", got, tt.want)
		}
	}
	if !errors.Is(tests[0].err, os.ErrNotExist) {
		t.Error("expected errors.Is to match the wrapped error")
	}
}

func TestErrorList(t *testing.T) {
	list := NewErrorList()
	list.Add(nil)
	if list.HasErrors() || list.AsError() != nil {
		t.Fatal("nil errors should be ignored")
	}

	list.Add(ErrUnsavedChanges)
	if got := list.Error(); got != "unsaved changes" {
		t.Errorf("Error() = %q", got)
	}
	list.Add(NewOperationError("save", "a.json", os.ErrPermission))

	if list.Len() != 2 || list.Errors()[0] != ErrUnsavedChanges {
		t.Errorf("unexpected list state: %v", list.Errors())
	}
	if got := list.Error(); got != "2 errors: first: unsaved changes" {
		t.Errorf("Error() = %q", got)
	}

	err := list.AsError()
	if !errors.Is(err, os.ErrPermission) {
		t.Error("expected errors.Is to search every collected error")
	}

	errs := list.Errors()
	errs[0] = nil
	if list.Errors()[0] == nil {
		t.Error("Errors() should return a copy")
	}
}
