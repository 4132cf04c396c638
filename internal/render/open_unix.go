//go:build !windows

package render

import (
	"os/exec"
	"runtime"
)

// openInBrowser hands the report path to the platform's default opener.
// The command is detached; we don't wait for the browser to exit.
func openInBrowser(path string) error {
	opener := "xdg-open"
	if runtime.GOOS == "darwin" {
		opener = "open"
	}
	return exec.Command(opener, path).Start()
}
