// Package batch turns the three independently validated argument lists
// (inputs, outputs, presets) into per-batch work items.
//
// Each repeatable CLI option is resolved on its own: input paths expand
// to file lists, output paths classify as file or directory targets, and
// preset paths load into sort specs (a single preset broadcasts to every
// batch). Reconcile then merges the three lists by their shared 1-based
// batch index into one ordered list of WorkItems.
package batch
