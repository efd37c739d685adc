package postprocess

import (
	"fmt"
	"path/filepath"
	"strings"

	"chaptercut/internal/textutil"
	"chaptercut/internal/timestamps"
)

const (
	slicePrefix = "x"
	fadePrefix  = "xx"
)

// Plan assigns every segment a distinct file name inside dir. Names come from
// the sanitized title; duplicates get a " (n)" suffix, and no job's
// intermediate may share a name with another job's output.
func Plan(dir, ext string, segments []timestamps.Segment) []*Job {
	taken := make(map[string]struct{}, len(segments))
	reserved := make(map[string]struct{}, len(segments)*3)

	jobs := make([]*Job, 0, len(segments))
	for _, seg := range segments {
		base := textutil.SanitizeFileName(seg.Title)
		if base == "" {
			base = fmt.Sprintf("track_%d", seg.Index)
		}
		name := textutil.UniqueName(base, taken)
		for clashes(name, reserved) {
			name = textutil.UniqueName(base, taken)
		}
		for _, variant := range variants(name) {
			reserved[variant] = struct{}{}
		}

		jobs = append(jobs, &Job{
			Segment:    seg,
			Name:       name,
			SlicePath:  filepath.Join(dir, slicePrefix+name+ext),
			FadePath:   filepath.Join(dir, fadePrefix+name+ext),
			OutputPath: filepath.Join(dir, name+ext),
			State:      StatePending,
		})
	}
	return jobs
}

func variants(name string) []string {
	lower := strings.ToLower(name)
	return []string{lower, slicePrefix + lower, fadePrefix + lower}
}

func clashes(name string, reserved map[string]struct{}) bool {
	for _, v := range variants(name) {
		if _, ok := reserved[v]; ok {
			return true
		}
	}
	return false
}
