//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd && !windows
// +build !darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd,!windows

package shmap

import "os"

/* No advisory locking available, the lock file only marks the owner. */
func lockFile(f *os.File) error {
	return nil
}

func unlockFile(f *os.File) error {
	return nil
}
