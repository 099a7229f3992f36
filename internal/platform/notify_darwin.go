//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

// appleScript builds the osascript program for one notification. The app
// name goes in the subtitle since osascript always posts as Script Editor.
func appleScript(title, body string, opts Options) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "display notification %q with title %q subtitle %q", body, title, opts.appName())
	if opts.Sound {
		sb.WriteString(` sound name "Pop"`)
	}
	return sb.String()
}

// Notify posts to Notification Center through osascript.
func Notify(title, body string, opts Options) error {
	out, err := exec.Command("osascript", "-e", appleScript(title, body, opts)).CombinedOutput()
	if err != nil {
		return fmt.Errorf("osascript: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
