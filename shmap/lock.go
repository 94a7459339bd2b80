package shmap

import (
	"os"
)

// lockMap takes an exclusive lock on <path>.lock. Another holder makes it
// fail with ErrorLocked instead of waiting.
func lockMap(path string) (func() error, error) {
	name := path + ".lock"

	for {
		f, err := os.OpenFile(name, os.O_CREATE|os.O_RDWR, 0644)
		if err != nil {
			return nil, &IOError{Op: "lock", Path: path, Err: err}
		}

		if err := lockFile(f); err != nil {
			f.Close()
			return nil, &IOError{Op: "lock", Path: path, Err: err}
		}

		/* A previous holder may have removed the lock file between our open
		 * and our lock, in which case we hold a lock nobody else can see. */
		held, err1 := f.Stat()
		current, err2 := os.Stat(name)
		if err1 == nil && err2 == nil && os.SameFile(held, current) {
			return func() error {
				/* Remove while still locked where the OS allows it, Windows
				 * refuses to delete a file with open handles. */
				if os.Remove(name) == nil {
					unlockFile(f)
					return f.Close()
				}
				unlockFile(f)
				if err := f.Close(); err != nil {
					return err
				}
				return os.Remove(name)
			}, nil
		}

		unlockFile(f)
		f.Close()
	}
}
