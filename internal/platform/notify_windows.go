//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "''")
	return "'" + escaped + "'"
}

// Notify displays a toast notification using the Windows notification center.
func Notify(title, body string, opts Options) error {
	cmd := exec.Command("powershell.exe", "-NoProfile", "-Command", toastScript(title, body, opts))
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("powershell toast: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// toastScript renders the PowerShell that shows one toast. An icon switches
// to the image template and fills its image element.
func toastScript(title, body string, opts Options) string {
	const manager = "[Windows.UI.Notifications.ToastNotificationManager]"
	kind := "ToastText02"
	icon := strings.TrimSpace(opts.IconPath)
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	lines := []string{
		"[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null",
		fmt.Sprintf("$template = %s::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s)", manager, kind),
		`$texts = $template.GetElementsByTagName("text")`,
		fmt.Sprintf("$texts.Item(0).AppendChild($template.CreateTextNode(%s)) > $null", psQuote(title)),
		fmt.Sprintf("$texts.Item(1).AppendChild($template.CreateTextNode(%s)) > $null", psQuote(body)),
	}
	if icon != "" {
		lines = append(lines,
			`$image = $template.GetElementsByTagName("image").Item(0)`,
			fmt.Sprintf(`$image.SetAttribute("src", %s)`, psQuote(icon)))
	}
	lines = append(lines,
		"$toast = [Windows.UI.Notifications.ToastNotification]::new($template)",
		fmt.Sprintf("$toast.ExpirationTime = [DateTimeOffset]::Now.AddMilliseconds(%d)", opts.timeout()),
		fmt.Sprintf("%s::CreateToastNotifier(%s).Show($toast)", manager, psQuote(opts.appName())))
	return strings.Join(lines, "; ")
}
