package utils

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/charmbracelet/log"
)

// PathResolver resolves the data and config directories for the fcdict
// binary relative to the running executable, independent of the
// process's working directory.
type PathResolver struct {
	executablePath string
	executableDir  string
	homeDir        string
	configDir      string
}

// NewPathResolver creates a path resolver rooted at the currently
// running executable's real (symlink-resolved) location.
func NewPathResolver() (*PathResolver, error) {
	execPath, err := os.Executable()
	if err != nil {
		return nil, err
	}
	execPath, err = filepath.EvalSymlinks(execPath)
	if err != nil {
		return nil, err
	}
	execDir := filepath.Dir(execPath)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Warnf("Could not determine home directory: %v", err)
		homeDir = os.TempDir()
	}

	pr := &PathResolver{
		executablePath: execPath,
		executableDir:  execDir,
		homeDir:        homeDir,
		configDir:      getConfigDir(homeDir),
	}
	log.Debugf("PathResolver initialized: exec=%s, execDir=%s, configDir=%s",
		execPath, execDir, pr.configDir)
	return pr, nil
}

// getConfigDir returns the platform-appropriate config directory.
func getConfigDir(homeDir string) string {
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, ".config", "fcdict")
	case "linux":
		if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
			return filepath.Join(configHome, "fcdict")
		}
		return filepath.Join(homeDir, ".config", "fcdict")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "fcdict")
		}
		return filepath.Join(homeDir, "AppData", "Roaming", "fcdict")
	default:
		return filepath.Join(homeDir, ".fcdict")
	}
}

// GetDataDir resolves the directory holding a sealed dictionary's blob
// files, trying the user-specified path, the executable's own
// directory, and the working directory, in that order.
func (pr *PathResolver) GetDataDir(userSpecifiedPath string) (string, error) {
	var candidates []string
	if filepath.IsAbs(userSpecifiedPath) {
		candidates = append(candidates, userSpecifiedPath)
	}

	execRelative := filepath.Join(pr.executableDir, userSpecifiedPath)
	candidates = append(candidates, execRelative)

	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, userSpecifiedPath))
	}

	for _, path := range candidates {
		if stat, err := os.Stat(path); err == nil && stat.IsDir() {
			log.Debugf("Using data directory: %s", path)
			return path, nil
		}
		log.Debugf("Data directory candidate not found: %s", path)
	}
	return execRelative, nil
}

// GetConfigPath returns the full path for a config file, creating the
// config directory (and falling back to the home dir or a temp dir)
// if needed.
func (pr *PathResolver) GetConfigPath(filename string) (string, error) {
	if pr.ensureConfigDir(pr.configDir) {
		return filepath.Join(pr.configDir, filename), nil
	}

	fallbackDirs := []string{
		filepath.Join(pr.homeDir, ".fcdict"),
		filepath.Join(os.TempDir(), "fcdict"),
		pr.executableDir,
	}
	for _, dir := range fallbackDirs {
		if pr.ensureConfigDir(dir) {
			path := filepath.Join(dir, filename)
			log.Warnf("Using fallback config location: %s", path)
			return path, nil
		}
	}

	tempPath := filepath.Join(os.TempDir(), filename)
	log.Warnf("Using temporary config file: %s", tempPath)
	return tempPath, nil
}

// ensureConfigDir creates dir if missing and checks it is writable.
func (pr *PathResolver) ensureConfigDir(dir string) bool {
	if err := os.MkdirAll(dir, 0755); err != nil {
		log.Debugf("Cannot create config directory %s: %v", dir, err)
		return false
	}
	testFile := filepath.Join(dir, ".write_test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		log.Debugf("Config directory %s is not writable: %v", dir, err)
		return false
	}
	os.Remove(testFile)
	return true
}

// GetExecutableDir returns the directory containing the executable.
func (pr *PathResolver) GetExecutableDir() string { return pr.executableDir }

// GetConfigDir returns the resolved config directory.
func (pr *PathResolver) GetConfigDir() string { return pr.configDir }

// ResolveRelativePath joins a relative path onto the executable's
// directory, or returns it unchanged if it's already absolute.
func (pr *PathResolver) ResolveRelativePath(relativePath string) string {
	if filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(pr.executableDir, relativePath)
}
