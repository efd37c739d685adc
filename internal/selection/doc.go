// Package selection picks the chapter listing a run will cut by.
//
// The description is tried first and wins outright when it validates.
// Otherwise comments are fetched lazily, each one parsed and scored on its
// own, and a Strategy chooses among the survivors: AutoStrategy takes the
// highest score, PromptStrategy asks an operator. Parsing and validation never
// block on console I/O; only PromptStrategy does.
package selection
