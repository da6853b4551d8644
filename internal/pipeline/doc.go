// Package pipeline orchestrates the two-phase batch run: an identify
// pass that probes every input file and attaches its target track
// order, then a remux pass that rewrites every file with the
// precomputed order.
//
// Execution is strictly sequential, batch by batch and file by file.
// The external tool is reached through the narrow Prober and Remuxer
// interfaces so the runner can be tested with fakes.
package pipeline
