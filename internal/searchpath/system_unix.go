//go:build unix

package searchpath

var systemDirs = []string{
	"/usr/share/" + AppName,
	"/usr/local/share/" + AppName,
}
