package typeset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
)

const fakeEngine = `#!/bin/sh
for last; do :; done
base="${last%.tex}"
echo "fake engine $* in $(pwd)"
printf '%%PDF-1.4\n' > "$base.pdf"
echo log > "$base.log"
echo aux > "$base.aux"
`

const failingEngine = `#!/bin/sh
echo "! Undefined control sequence."
exit 1
`

const silentEngine = `#!/bin/sh
exit 0
`

func writeScript(t *testing.T, body string) (path string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell script engines need a POSIX shell")
	}

	path = filepath.Join(t.TempDir(), "engine.sh")
	//nolint:gosec // test script must be executable
	err := os.WriteFile(path, []byte(body), 0700)
	if err != nil {
		t.Fatalf("Failed to write engine script: %v", err)
	}
	return path
}

func writeTex(t *testing.T, dir string) (texPath string) {
	t.Helper()
	texPath = filepath.Join(dir, "Test_User_Resume_acme.tex")
	err := WriteFile(texPath, []byte("\\documentclass{article}\\begin{document}x\\end{document}\n"))
	if err != nil {
		t.Fatalf("Failed to write tex: %v", err)
	}
	return texPath
}

func TestCompile(t *testing.T) {
	engine := Engine{Command: writeScript(t, fakeEngine), Args: []string{DefaultArg}}
	outDir := t.TempDir()
	texPath := writeTex(t, outDir)

	pdfPath, err := engine.Compile(context.Background(), texPath)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	expected := filepath.Join(outDir, "Test_User_Resume_acme.pdf")
	if pdfPath != expected {
		t.Errorf("Expected PDF path '%s', got '%s'", expected, pdfPath)
	}

	if _, err = os.Stat(pdfPath); err != nil {
		t.Errorf("PDF was not created: %v", err)
	}
}

func TestCompileFailure(t *testing.T) {
	engine := Engine{Command: writeScript(t, failingEngine)}
	texPath := writeTex(t, t.TempDir())

	pdfPath, err := engine.Compile(context.Background(), texPath)
	if err == nil {
		t.Fatal("Expected error from failing engine, got nil")
	}

	if pdfPath != "" {
		t.Errorf("Expected empty PDF path, got '%s'", pdfPath)
	}

	var failure *TypesetFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Expected *TypesetFailure, got %T", err)
	}

	if !strings.Contains(failure.Output, "Undefined control sequence") {
		t.Errorf("Expected engine output to be captured, got '%s'", failure.Output)
	}

	if failure.Source != texPath {
		t.Errorf("Expected source '%s', got '%s'", texPath, failure.Source)
	}

	if failure.NotFound() {
		t.Error("Failing engine should not be reported as missing")
	}
}

func TestCompileNoPDF(t *testing.T) {
	engine := Engine{Command: writeScript(t, silentEngine)}
	texPath := writeTex(t, t.TempDir())

	_, err := engine.Compile(context.Background(), texPath)

	var failure *TypesetFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Expected *TypesetFailure, got %v", err)
	}
}

func TestCompileMissingEngine(t *testing.T) {
	engine := Engine{Command: "definitely-not-a-latex-engine"}
	texPath := writeTex(t, t.TempDir())

	_, err := engine.Compile(context.Background(), texPath)

	var failure *TypesetFailure
	if !errors.As(err, &failure) {
		t.Fatalf("Expected *TypesetFailure, got %v", err)
	}

	if !failure.NotFound() {
		t.Errorf("Expected missing engine, got %v", failure.Cause)
	}

	hint := failure.Hint()
	if !strings.Contains(hint, "definitely-not-a-latex-engine Test_User_Resume_acme.tex") {
		t.Errorf("Unexpected hint: %s", hint)
	}

	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("Unexpected message: %s", err.Error())
	}
}

func TestCompilePdflatex(t *testing.T) {
	engine := DefaultEngine()
	if !engine.Available() {
		t.Skip("pdflatex not installed, skipping test")
	}

	texPath := writeTex(t, t.TempDir())

	pdfPath, err := engine.Compile(context.Background(), texPath)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	if _, err = os.Stat(pdfPath); err != nil {
		t.Errorf("PDF was not created: %v", err)
	}
}

func TestWriteFileCreatesDir(t *testing.T) {
	tmpDir := t.TempDir()
	nestedPath := filepath.Join(tmpDir, "nested", "dir", "test.tex")

	err := WriteFile(nestedPath, []byte("test"))
	if err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}

	data, err := os.ReadFile(nestedPath)
	if err != nil {
		t.Fatalf("Failed to read written file: %v", err)
	}

	if string(data) != "test" {
		t.Errorf("Expected content 'test', got '%s'", string(data))
	}
}

func TestCleanup(t *testing.T) {
	tmpDir := t.TempDir()
	names := []string{"a.tex", "a.pdf", "optimized_resume.json", "a.aux", "a.log", "a.out", "B.PDF"}
	for _, name := range names {
		err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0600)
		if err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	err := os.Mkdir(filepath.Join(tmpDir, "subdir"), 0750)
	if err != nil {
		t.Fatalf("Failed to create subdir: %v", err)
	}

	deleted, err := Cleanup(tmpDir)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	sort.Strings(deleted)
	expected := []string{"a.aux", "a.log", "a.out"}
	if strings.Join(deleted, ",") != strings.Join(expected, ",") {
		t.Errorf("Expected deleted %v, got %v", expected, deleted)
	}

	entries, err := os.ReadDir(tmpDir)
	if err != nil {
		t.Fatalf("Failed to read dir: %v", err)
	}

	var remaining []string
	for _, entry := range entries {
		remaining = append(remaining, entry.Name())
	}
	sort.Strings(remaining)

	want := "B.PDF,a.pdf,a.tex,optimized_resume.json,subdir"
	if strings.Join(remaining, ",") != want {
		t.Errorf("Expected remaining %s, got %v", want, remaining)
	}
}

func TestCleanupCustomKeep(t *testing.T) {
	tmpDir := t.TempDir()
	for _, name := range []string{"a.tex", "a.pdf", "a.log"} {
		err := os.WriteFile(filepath.Join(tmpDir, name), []byte("x"), 0600)
		if err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}

	deleted, err := Cleanup(tmpDir, "pdf")
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	sort.Strings(deleted)
	if strings.Join(deleted, ",") != "a.log,a.tex" {
		t.Errorf("Unexpected deleted list: %v", deleted)
	}
}

func TestCleanupNonexistent(t *testing.T) {
	_, err := Cleanup("/nonexistent/dir")
	if err == nil {
		t.Error("Expected error cleaning up nonexistent dir, got nil")
	}
}

func TestCompileThenCleanup(t *testing.T) {
	engine := Engine{Command: writeScript(t, fakeEngine)}
	outDir := t.TempDir()
	texPath := writeTex(t, outDir)

	_, err := engine.Compile(context.Background(), texPath)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}

	deleted, err := Cleanup(outDir, DefaultKeepExtensions...)
	if err != nil {
		t.Fatalf("Cleanup failed: %v", err)
	}

	if len(deleted) != 2 {
		t.Errorf("Expected aux and log removed, got %v", deleted)
	}
}
