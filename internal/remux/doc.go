// Package remux builds and runs the mkvmerge remux invocation that
// rewrites one container with a new track order. Command construction
// and output naming are pure functions so they can be tested without a
// real mkvmerge binary.
package remux
