//go:build darwin

package platform

import (
	"fmt"
	"os/exec"
)

// Notify displays a desktop notification using macOS Notification Center.
// osascript cannot attach an icon, so opts.IconPath is ignored.
func Notify(title, body string, opts Options) error {
	script := fmt.Sprintf("display notification %q with title %q", body, title)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("osascript: %w", err)
	}
	return nil
}
