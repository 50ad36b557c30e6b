// Package xtask builds, installs and documents proverb.
package xtask

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// Command is an external program invocation that can be shown to the user
// and run.
type Command struct {
	Name string
	Args []string
	// Dir is the working directory; empty means the current one.
	Dir string
}

// NewCommand returns a Command running name with args.
func NewCommand(name string, args ...string) Command {
	return Command{Name: name, Args: args}
}

// Arg returns a copy of c with args appended.
func (c Command) Arg(args ...string) Command {
	c.Args = append(append([]string(nil), c.Args...), args...)
	return c
}

// Prepend returns a copy of c that runs name with the old command name as
// its first argument, e.g. to run it under sudo.
func (c Command) Prepend(name string) Command {
	c.Args = append([]string{c.Name}, c.Args...)
	c.Name = name
	return c
}

// String renders c as a shell command line. Arguments containing spaces are
// single-quoted.
func (c Command) String() string {
	var b strings.Builder
	b.WriteString(c.Name)
	for _, a := range c.Args {
		b.WriteByte(' ')
		if strings.Contains(a, " ") {
			b.WriteString("'" + a + "'")
		} else {
			b.WriteString(a)
		}
	}
	return b.String()
}

// Runner runs commands.
type Runner interface {
	Run(ctx context.Context, c Command) error
}

// ExecRunner runs commands as child processes. A non-zero exit status is an
// error.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, c Command) error {
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("xtask: %s: %w", c, err)
	}
	return nil
}
