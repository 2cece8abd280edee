//go:build unix

package probe

import "golang.org/x/sys/unix"

func pathWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
