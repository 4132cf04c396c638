//go:build windows

package render

import "os/exec"

// openInBrowser hands the report path to the Windows shell opener.
func openInBrowser(path string) error {
	return exec.Command("rundll32", "url.dll,FileProtocolHandler", path).Start()
}
