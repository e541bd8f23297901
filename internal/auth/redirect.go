package auth

import (
	"os/exec"
	"runtime"

	"go.uber.org/zap"
)

// BrowserRedirector opens the hosted login page in the user's browser. The
// launch is fire-and-forget: failures are logged and otherwise ignored, the
// way a browser navigation cannot be awaited.
type BrowserRedirector struct {
	URL string
	Log *zap.Logger
}

// RedirectToLogin implements Redirector.
func (b *BrowserRedirector) RedirectToLogin() {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", b.URL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", b.URL)
	default:
		cmd = exec.Command("xdg-open", b.URL)
	}
	if err := cmd.Start(); err != nil && b.Log != nil {
		b.Log.Warn("could not open login page", zap.String("url", b.URL), zap.Error(err))
	}
}
