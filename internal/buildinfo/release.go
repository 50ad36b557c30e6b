//go:build release

package buildinfo

// Dev reports whether this is a development build. Release builds are made
// with -tags release.
const Dev = false
