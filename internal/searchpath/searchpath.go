// Package searchpath resolves the ordered list of directories that may hold
// proverb files, and the installation prefix shared with the installer.
package searchpath

import (
	"os"
	"path/filepath"
	"runtime"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/starford/proverb/internal/buildinfo"
)

// AppName is the namespace segment joined onto every data directory.
const AppName = "proverb"

// Environment variables with special significance to proverb.
const (
	EnvPrefix      = "PREFIX"
	EnvGOBIN       = "GOBIN"
	EnvGOPATH      = "GOPATH"
	EnvXDGDataHome = "XDG_DATA_HOME"
	EnvAppData     = "APPDATA"

	// EnvConfigFile names an explicit config file. When it is unset the
	// default config path is used if present.
	EnvConfigFile = "PROVERB_CONFIG"
)

// Resolver computes search directories. The zero value is not usable; use
// Default or fill every function field.
type Resolver struct {
	Getenv  func(string) string
	HomeDir func() (string, error)
	GOOS    string

	// Dev adds ./proverb to the end of the list.
	Dev bool
	// BakedPrefix takes precedence over $PREFIX when non-empty.
	BakedPrefix string
}

// Default returns a Resolver for the running process.
func Default() Resolver {
	return Resolver{
		Getenv:      os.Getenv,
		HomeDir:     homedir.Dir,
		GOOS:        runtime.GOOS,
		Dev:         buildinfo.Dev,
		BakedPrefix: buildinfo.Prefix,
	}
}

// Dirs returns the candidate directories in priority order. Nothing is
// checked for existence; directories that cannot be determined are left out.
func (r Resolver) Dirs() []string {
	dirs := make([]string, 0, len(systemDirs)+3)
	dirs = append(dirs, systemDirs...)

	if data, ok := r.userDataDir(); ok {
		dirs = append(dirs, filepath.Join(data, AppName))
	}

	if prefix, ok := r.InstallPrefix(); ok {
		dirs = append(dirs, filepath.Join(prefix, "share", AppName))
	}

	if r.Dev {
		dirs = append(dirs, "./"+AppName)
	}

	return dirs
}

// InstallPrefix returns the baked-in prefix if there is one, otherwise the
// first hit of PrefixFromEnv.
func (r Resolver) InstallPrefix() (string, bool) {
	if r.BakedPrefix != "" {
		return r.BakedPrefix, true
	}
	return PrefixFromEnv(r.Getenv, r.HomeDir)
}

// PrefixFromEnv resolves an installation prefix from, in order, $PREFIX, the
// parent of $GOBIN, the first entry of $GOPATH, and finally <home>/go.
func PrefixFromEnv(getenv func(string) string, home func() (string, error)) (string, bool) {
	if p := getenv(EnvPrefix); p != "" {
		return p, true
	}
	if bin := getenv(EnvGOBIN); bin != "" {
		return filepath.Dir(filepath.Clean(bin)), true
	}
	if gopath := getenv(EnvGOPATH); gopath != "" {
		for _, p := range filepath.SplitList(gopath) {
			if p != "" {
				return p, true
			}
		}
	}
	h, err := home()
	if err != nil || h == "" {
		return "", false
	}
	return filepath.Join(h, "go"), true
}

// userDataDir returns the per-user application data directory:
//
//	windows: %APPDATA% (fallback <home>/AppData/Roaming)
//	darwin:  <home>/Library/Application Support
//	other:   $XDG_DATA_HOME if absolute, else <home>/.local/share
func (r Resolver) userDataDir() (string, bool) {
	switch r.GOOS {
	case "windows":
		if v := r.Getenv(EnvAppData); v != "" {
			return v, true
		}
		return r.underHome("AppData", "Roaming")
	case "darwin", "ios":
		return r.underHome("Library", "Application Support")
	default:
		if v := r.Getenv(EnvXDGDataHome); v != "" && filepath.IsAbs(v) {
			return v, true
		}
		return r.underHome(".local", "share")
	}
}

func (r Resolver) underHome(elem ...string) (string, bool) {
	h, err := r.HomeDir()
	if err != nil || h == "" {
		return "", false
	}
	return filepath.Join(append([]string{h}, elem...)...), true
}
