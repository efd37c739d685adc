// Package preflight provides readiness checks for the directories, media
// tools, and credentials chaptercut depends on.
//
// The run command calls RunAll before fetching anything so a run never cuts
// half a video into a folder it cannot write. The deps command prints the
// same results next to the tool table.
package preflight
