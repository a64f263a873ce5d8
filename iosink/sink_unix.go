//go:build !windows

package iosink

import (
	"errors"
	"os"
	"syscall"

	"github.com/mattn/go-isatty"
)

func isBenignTeardownRead(f *os.File, err error) bool {
	if f == nil || !isatty.IsTerminal(f.Fd()) {
		return false
	}
	return errors.Is(err, syscall.EIO)
}
