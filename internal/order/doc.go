// Package order computes target track orders: a stable multi-key sort of
// probed stream records driven by a preset, and the positional-swap
// permutation that turns a file's natural track order into the sorted one.
package order
