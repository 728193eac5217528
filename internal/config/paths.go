package config

import (
	"os"
	"path/filepath"
)

// ExecutableDir returns the directory holding the running binary, with
// symlinks resolved. It returns "" when the location cannot be determined.
func ExecutableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return ""
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
}

// ConfigSearchPaths lists the locations FindConfigFile checks, in order:
// the working directory, its configs/ subdirectory, then the same two
// locations next to the executable
func ConfigSearchPaths() []string {
	paths := []string{
		ConfigFileName,
		filepath.Join(ConfigDirName, ConfigFileName),
	}
	if dir := ExecutableDir(); dir != "" {
		paths = append(paths,
			filepath.Join(dir, ConfigFileName),
			filepath.Join(dir, ConfigDirName, ConfigFileName),
		)
	}
	return paths
}

// FindConfigFile returns the first existing config file, or "" when there
// is none and only defaults and environment variables apply
func FindConfigFile() string {
	for _, location := range ConfigSearchPaths() {
		if FileExists(location) {
			return location
		}
	}
	return ""
}

// FileExists checks if a regular file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
