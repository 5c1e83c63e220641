// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package runner executes external command-line tools (OCR engines,
// converters, container runtimes) behind an interface that tests can replace.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

// ErrToolNotFound reports that a required executable is not on PATH.
var ErrToolNotFound = errors.New("tool not found on PATH")

// Executor abstracts command execution.
type Executor interface {
	LookPath(file string) (string, error)
	RunSilent(ctx context.Context, name string, args ...string) error
	RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error
}

// OS is the production Executor backed by os/exec.
type OS struct{}

func (OS) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (OS) RunSilent(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// RunPiped runs name with stdin and stdout attached. Stderr is captured and
// appended to the returned error so callers see the tool's own diagnostics.
func (OS) RunPiped(ctx context.Context, name string, args []string, stdin io.Reader, stdout io.Writer) error {
	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// Require resolves bin on PATH, returning an error wrapping ErrToolNotFound
// that names the binary when it is missing.
func Require(e Executor, bin string) (string, error) {
	path, err := e.LookPath(bin)
	if err != nil {
		return "", fmt.Errorf("%s: %w", bin, ErrToolNotFound)
	}
	return path, nil
}
