package preflight

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"chaptercut/internal/config"
	"chaptercut/internal/deps"
)

// CheckDirectoryAccess verifies that the directory exists and is readable/writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckYouTubeKey reports whether an API key is configured. Local runs work
// without one, so callers decide whether a failure matters.
func CheckYouTubeKey(cfg *config.Config) Result {
	const name = "YouTube API key"
	if cfg == nil || cfg.YouTube.APIKey == "" {
		return Result{Name: name, Detail: "not set (set youtube.api_key or YT_API_KEY; local files still work)"}
	}
	return Result{Name: name, Passed: true, Detail: "configured"}
}

// CheckSystemDeps evaluates the media tools for the given config. Both the
// deps command and the run command use this list.
func CheckSystemDeps(cfg *config.Config) []deps.Status {
	return deps.CheckBinaries(deps.Requirements(cfg.FFmpegBinary(), cfg.FFprobeBinary()))
}
