package fs

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// TempFilePrefix marks in-flight writes; keys with this prefix are rejected.
const TempFilePrefix = ".noteboard-tmp-"

// writeFileAtomic replaces filename with data. The value is staged in a temp
// file next to the target, fsynced, renamed into place, and the directory is
// fsynced so the rename itself survives a crash.
func writeFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	dir := filepath.Dir(filename)
	f, err := os.CreateTemp(dir, TempFilePrefix+"*")
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filepath.Base(filename), err)
	}
	staged := f.Name()
	defer func() {
		if err != nil {
			_ = os.Remove(staged)
		}
	}()

	_, err = f.Write(data)
	if err == nil {
		err = f.Chmod(perm)
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to stage %s: %w", filepath.Base(filename), err)
	}

	if err = os.Rename(staged, filename); err != nil {
		return fmt.Errorf("failed to replace %s: %w", filename, err)
	}
	if err = syncDir(dir); err != nil {
		return fmt.Errorf("failed to sync %s: %w", dir, err)
	}
	return nil
}

// syncDir flushes directory entries. Windows cannot fsync a directory handle.
func syncDir(dir string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	err = d.Sync()
	if cerr := d.Close(); err == nil {
		err = cerr
	}
	if errors.Is(err, os.ErrInvalid) {
		// Some filesystems do not support fsync on directories.
		return nil
	}
	return err
}

// isTempFile reports whether name is a leftover or in-flight atomic write.
func isTempFile(name string) bool {
	return strings.HasPrefix(filepath.Base(name), TempFilePrefix)
}
