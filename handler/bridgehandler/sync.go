package bridgehandler

import (
	"errors"
	"syscall"
)

// isIgnorableSyncError reports errors from syncing terminals and pipes,
// which do not support fsync.
func isIgnorableSyncError(err error) bool {
	return errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) || errors.Is(err, syscall.EBADF)
}
