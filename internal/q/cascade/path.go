package cascade

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~" to the home directory and makes path absolute. An empty path stays empty.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "~") {
		if home, _ := os.UserHomeDir(); home != "" {
			switch {
			case path == "~" || path == "~/" || path == `~\`:
				path = home
			case strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`):
				path = filepath.Join(home, path[2:])
			}
		}
	}
	if !filepath.IsAbs(path) {
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
	}
	return path
}

// InUserConfigDirectory joins subPath onto the OS user config directory (ex: ~/.config on Linux). If that directory is unknown, it falls back to the home directory.
func InUserConfigDirectory(subPath string) string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, subPath)
	}
	return filepath.Join(ExpandPath("~"), subPath)
}
