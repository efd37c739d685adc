package preflight

import (
	"errors"
	"strings"

	"chaptercut/internal/config"
	"chaptercut/internal/services"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// RunAll executes the filesystem checks for the given config.
func RunAll(cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}
	results := []Result{CheckDirectoryAccess("Output directory", cfg.Paths.OutputDir)}
	if cfg.Paths.LogDir != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}
	return results
}

// Failed joins every failed result into one configuration error, or returns
// nil when all passed.
func Failed(results []Result) error {
	var problems []string
	for _, r := range results {
		if !r.Passed {
			problems = append(problems, r.Name+": "+r.Detail)
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return services.Wrap(services.ErrConfiguration, "preflight", "", strings.Join(problems, "; "), errors.New("preflight failed"))
}
