//go:build !windows

package fsutil

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
)

// writeAtomic fsyncs the temp file before the rename, so a crash leaves
// either the old or the new content.
func writeAtomic(path string, content []byte, mode os.FileMode) error {
	pending, err := renameio.NewPendingFile(path, renameio.WithStaticPermissions(mode))
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	//nolint:errcheck // Cleanup after a successful replace is a no-op.
	defer pending.Cleanup()

	if _, err := pending.Write(content); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
