// Package format runs an external code formatter over the buffer.
package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ionut-t/codepad/project"
)

var (
	ErrUnsupported = errors.New("unsupported file type")
	ErrNoBinary    = errors.New("formatter binary not set")
)

var supportedExtensions = map[string]bool{
	"c":   true,
	"cpp": true,
	"h":   true,
	"hpp": true,
}

// Supported reports whether fileName has an extension the formatter handles
func Supported(fileName string) bool {
	ext := strings.TrimPrefix(filepath.Ext(fileName), ".")
	return supportedExtensions[strings.ToLower(ext)]
}

// Formatter runs a clang-format compatible binary, feeding the source on stdin.
type Formatter struct {
	Bin   string
	Style string
}

// FromConfig builds a formatter from project settings
func FromConfig(cfg project.Config) Formatter {
	return Formatter{Bin: cfg.Formatter.Bin, Style: cfg.Formatter.Style}
}

// Format returns the formatted text. fileName picks the language.
func (f Formatter) Format(ctx context.Context, fileName, text string) (string, error) {
	if !Supported(fileName) {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(fileName))
	}
	if f.Bin == "" {
		return "", ErrNoBinary
	}

	args := []string{"--assume-filename=" + filepath.Base(fileName)}
	if f.Style != "" {
		args = append(args, "--style="+f.Style)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, f.Bin, args...)
	cmd.Stdin = strings.NewReader(text)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("running %s: %w: %s", f.Bin, err, msg)
		}
		return "", fmt.Errorf("running %s: %w", f.Bin, err)
	}
	return stdout.String(), nil
}
