package deps

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// Requirement defines an external dependency chaptercut relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Version     string
	Detail      string
}

// Requirements lists the media tools the pipeline invokes.
func Requirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegBinary, Description: "Slices, fades, and tags chapter files"},
		{Name: "FFprobe", Command: ffprobeBinary, Description: "Reads source media duration for local runs"},
	}
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		resolved, err := exec.LookPath(cmd)
		if err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		status.Version = probeVersion(resolved)
		results = append(results, status)
	}
	return results
}

// Missing returns an error naming every required dependency that is unavailable.
func Missing(statuses []Status) error {
	var names []string
	for _, s := range statuses {
		if !s.Available && !s.Optional {
			names = append(names, fmt.Sprintf("%s (%s)", s.Name, s.Detail))
		}
	}
	if len(names) == 0 {
		return nil
	}
	return fmt.Errorf("missing dependencies: %s", strings.Join(names, ", "))
}

// probeVersion returns the first line of "<binary> -version", or "" when the
// binary does not answer within a few seconds.
func probeVersion(binary string) string {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out, err := exec.CommandContext(ctx, binary, "-version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}
