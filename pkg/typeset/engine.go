// Package typeset compiles LaTeX sources with an external engine and
// manages the files it leaves in the output directory.
package typeset

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

const (
	// DefaultCommand is the engine binary looked up in PATH.
	DefaultCommand = "pdflatex"
	// DefaultArg keeps the engine from waiting on input after an error.
	DefaultArg = "-interaction=nonstopmode"
)

// DefaultKeepExtensions survive Cleanup.
//
//nolint:gochecknoglobals // default keep set
var DefaultKeepExtensions = []string{".pdf", ".tex", ".json"}

// Engine runs a LaTeX engine as a subprocess.
type Engine struct {
	Command string
	Args    []string
}

// DefaultEngine returns pdflatex in nonstop mode.
func DefaultEngine() (engine Engine) {
	engine = Engine{
		Command: DefaultCommand,
		Args:    []string{DefaultArg},
	}
	return engine
}

// Compile runs the engine on texPath from the file's own directory and
// returns the path of the produced PDF.
func (e Engine) Compile(ctx context.Context, texPath string) (pdfPath string, err error) {
	command := e.Command
	if command == "" {
		command = DefaultCommand
	}

	dir := filepath.Dir(texPath)
	base := filepath.Base(texPath)

	args := make([]string, 0, len(e.Args)+1)
	args = append(args, e.Args...)
	args = append(args, base)

	//nolint:gosec // engine command comes from the user's own config
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Dir = dir

	var output []byte
	output, err = cmd.CombinedOutput()
	if err != nil {
		err = &TypesetFailure{
			Engine: command,
			Source: texPath,
			Output: string(output),
			Cause:  err,
		}
		return pdfPath, err
	}

	pdfPath = strings.TrimSuffix(texPath, filepath.Ext(texPath)) + ".pdf"
	_, err = os.Stat(pdfPath)
	if err != nil {
		err = &TypesetFailure{
			Engine: command,
			Source: texPath,
			Output: string(output),
			Cause:  errors.Wrap(err, "engine reported success but produced no PDF"),
		}
		pdfPath = ""
		return pdfPath, err
	}

	return pdfPath, err
}

// Available reports whether the engine binary can be found in PATH.
func (e Engine) Available() (ok bool) {
	command := e.Command
	if command == "" {
		command = DefaultCommand
	}
	_, err := exec.LookPath(command)
	ok = err == nil
	return ok
}

// WriteFile writes content to path, creating the parent directory.
func WriteFile(path string, content []byte) (err error) {
	dir := filepath.Dir(path)
	err = os.MkdirAll(dir, 0750)
	if err != nil {
		err = errors.Wrapf(err, "failed to create output directory: %s", dir)
		return err
	}

	err = os.WriteFile(path, content, 0600)
	if err != nil {
		err = errors.Wrapf(err, "failed to write file: %s", path)
		return err
	}

	return err
}

// Cleanup removes regular files in dir whose extension is not in keep and
// returns the names it removed. Removal continues past individual failures;
// the first one is returned.
func Cleanup(dir string, keep ...string) (deleted []string, err error) {
	if len(keep) == 0 {
		keep = DefaultKeepExtensions
	}

	keepSet := make(map[string]struct{}, len(keep))
	for _, ext := range keep {
		ext = strings.ToLower(ext)
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		keepSet[ext] = struct{}{}
	}

	var entries []os.DirEntry
	entries, err = os.ReadDir(dir)
	if err != nil {
		err = errors.Wrapf(err, "failed to read output directory: %s", dir)
		return deleted, err
	}

	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}

		name := entry.Name()
		if _, ok := keepSet[strings.ToLower(filepath.Ext(name))]; ok {
			continue
		}

		rmErr := os.Remove(filepath.Join(dir, name))
		if rmErr != nil {
			if err == nil {
				err = errors.Wrapf(rmErr, "failed to remove %s", name)
			}
			continue
		}
		deleted = append(deleted, name)
	}

	return deleted, err
}
