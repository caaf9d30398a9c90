// Package step contains the built-in pipeline steps.
//
// The steps implement enough graph-walk behaviour to drive the strategies and the
// delegated execution end to end: a start step over the graph, filters and maps,
// mutating steps, side-effect steps and the barriers that read them.
package step
