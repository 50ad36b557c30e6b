//go:build !unix

package searchpath

var systemDirs []string
