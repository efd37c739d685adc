// Package postprocess turns built segments into tagged output files.
//
// Each segment is a Job that moves through slice, optional fade, and tag
// stages by invoking ffmpeg through an injectable Runner. Jobs are
// independent: a failure ends that job only, removes every file it produced,
// and leaves siblings running. Jobs run on a bounded worker pool while
// progress is reported through a single serialized Progress.
//
// Output layout inside the per-video folder:
//
//	x<title>.<ext>   sliced intermediate
//	xx<title>.<ext>  faded intermediate
//	<title>.<ext>    final tagged output
package postprocess
