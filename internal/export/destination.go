package export

import (
	"os"
	"path/filepath"
)

// ResolveOutputDir picks a user-writable base directory and ensures
// <base>/<folderName> exists. The base is the user's Desktop when
// present, else the home directory, else the working directory, so
// resolution itself cannot fail; only creating the final directory can.
func ResolveOutputDir(folderName string) (string, error) {
	dir := filepath.Join(baseDir(), folderName)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &DirectoryResolutionError{Path: dir, Err: err}
	}

	return dir, nil
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		if wd, err := os.Getwd(); err == nil {
			return wd
		}
		return "."
	}

	desktop := filepath.Join(home, "Desktop")
	if info, err := os.Stat(desktop); err == nil && info.IsDir() {
		return desktop
	}

	return home
}
