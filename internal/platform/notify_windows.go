//go:build windows

package platform

import (
	"fmt"
	"os/exec"
	"strings"
)

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// toastScript builds a PowerShell program that shows a two-line toast,
// with the picture as its image when IconPath is set.
func toastScript(title, body string, opts Options) string {
	icon := strings.TrimSpace(opts.IconPath)
	kind := "ToastText02"
	if icon != "" {
		kind = "ToastImageAndText02"
	}
	lines := []string{
		`[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType=Windows Runtime] > $null`,
		fmt.Sprintf(`$t = [Windows.UI.Notifications.ToastNotificationManager]::GetTemplateContent([Windows.UI.Notifications.ToastTemplateType]::%s)`, kind),
		`$texts = $t.GetElementsByTagName("text")`,
		fmt.Sprintf(`$texts.Item(0).AppendChild($t.CreateTextNode(%s)) > $null`, psQuote(title)),
		fmt.Sprintf(`$texts.Item(1).AppendChild($t.CreateTextNode(%s)) > $null`, psQuote(body)),
	}
	if icon != "" {
		lines = append(lines, fmt.Sprintf(`$t.GetElementsByTagName("image").Item(0).SetAttribute("src", %s)`, psQuote(icon)))
	}
	if !opts.Sound {
		lines = append(lines,
			`$a = $t.CreateElement("audio")`,
			`$a.SetAttribute("silent", "true")`,
			`$t.SelectSingleNode("/toast").AppendChild($a) > $null`,
		)
	}
	lines = append(lines,
		`$toast = [Windows.UI.Notifications.ToastNotification]::new($t)`,
		fmt.Sprintf(`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier(%s).Show($toast)`, psQuote(opts.appName())),
	)
	return strings.Join(lines, "; ")
}

// Notify shows a toast through PowerShell.
func Notify(title, body string, opts Options) error {
	return exec.Command("powershell.exe", "-NoProfile", "-Command", toastScript(title, body, opts)).Run()
}
