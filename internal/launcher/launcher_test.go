package launcher

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/joe5h/tally/internal/common"
)

func TestOpen_MissingTarget(t *testing.T) {
	err := Open(filepath.Join(t.TempDir(), "does-not-exist.pdf"))
	if err == nil {
		t.Fatal("Open() on a missing file expected error")
	}

	var userErr *common.UserError
	if !errors.As(err, &userErr) {
		t.Errorf("Open() error = %T, want UserError", err)
	}
}

func TestOpenerCommand(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{goos: "darwin", want: "open"},
		{goos: "windows", want: "cmd"},
		{goos: "linux", want: "xdg-open"},
		{goos: "freebsd", want: "xdg-open"},
	}

	for _, tt := range tests {
		if name, _ := openerCommand(tt.goos); name != tt.want {
			t.Errorf("openerCommand(%q) = %q, want %q", tt.goos, name, tt.want)
		}
	}
}
