// Package buildinfo holds facts fixed at build time.
//
// Prefix is set by the installer with
// -ldflags "-X github.com/starford/proverb/internal/buildinfo.Prefix=/usr/local".
package buildinfo

// Prefix is the installation prefix baked into the binary. Empty when the
// binary was built without the installer.
var Prefix = ""
