package browser

import (
	"fmt"
	"os/exec"
	"runtime"
)

// goos is swapped in tests.
var goos = runtime.GOOS

// Open opens the specified URL in the user's default browser.
func Open(url string) error {
	name, args, err := command(goos, url)
	if err != nil {
		return err
	}
	return exec.Command(name, args...).Start()
}

// command returns the launcher invocation for url on the given OS.
func command(os, url string) (string, []string, error) {
	switch os {
	case "darwin":
		return "open", []string{url}, nil
	case "linux", "freebsd", "openbsd":
		return "xdg-open", []string{url}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, nil
	default:
		return "", nil, fmt.Errorf("unsupported OS: %s", os)
	}
}
