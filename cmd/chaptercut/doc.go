// Package main hosts the chaptercut CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, builds the structured
// logger with a per-invocation session id, and hands work to the workflow
// package: `run` cuts a downloaded video into tagged chapter files,
// `timestamps` performs the same selection as a dry run, `config` scaffolds
// and prints configuration, and `deps` checks the media tools.
package main
