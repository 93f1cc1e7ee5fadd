// Package launcher opens local files with the operating system's
// file-association handler.
package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/joe5h/tally/internal/common"
)

// openerCommand returns the platform opener and its leading arguments.
func openerCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", nil
	case "windows":
		return "cmd", []string{"/c", "start", ""}
	default:
		return "xdg-open", nil
	}
}

// Open launches the file at path with the OS handler. The opener is
// expected to detach immediately, so its exit code is ignored; only a
// missing target or a failed spawn is an error.
func Open(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return common.NewUserError(
				fmt.Sprintf("File not found: %s", path),
				fmt.Errorf("launch target missing: %w", err))
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}

	name, args := openerCommand(runtime.GOOS)
	cmd := exec.Command(name, append(args, path)...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to spawn %s: %w", name, err)
	}

	go func() {
		// The opener hands the file to the association handler and exits;
		// a non-zero exit here does not mean the launch failed.
		if err := cmd.Wait(); err != nil {
			slog.Debug("opener exited non-zero", "opener", name, "error", err)
		}
	}()

	slog.Info("launched file", "path", path, "opener", name)
	return nil
}
