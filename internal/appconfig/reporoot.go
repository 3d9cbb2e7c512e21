// File: internal/appconfig/reporoot.go
// Brief: Locating the directory whose .tplan.yaml applies to a path.

package appconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// FindRepoRoot returns the nearest ancestor of start (start included) that
// holds a .tplan.yaml, searching no further than the enclosing .git
// directory. Without any .tplan.yaml it returns the nearest directory holding
// .git or go.mod, or "" when there is none.
func FindRepoRoot(start string) string {
	dir := strings.TrimSpace(start)
	if dir == "" {
		return ""
	}
	if fi, err := os.Stat(dir); err == nil && !fi.IsDir() {
		dir = filepath.Dir(dir)
	}
	fallback := ""
	for {
		if isFile(filepath.Join(dir, ".tplan.yaml")) {
			return dir
		}
		vcs := isDir(filepath.Join(dir, ".git"))
		if fallback == "" && (vcs || isFile(filepath.Join(dir, "go.mod"))) {
			fallback = dir
		}
		parent := filepath.Dir(dir)
		if vcs || parent == dir {
			return fallback
		}
		dir = parent
	}
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func isDir(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
