package preflight_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"filmtag/internal/preflight"
	"filmtag/internal/testsupport"
)

func TestCheckDirectoryAccess(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	result := preflight.CheckDirectoryAccess("State directory", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got %+v", result)
	}

	missing := preflight.CheckDirectoryAccess("State directory", filepath.Join(dir, "absent"))
	if missing.Passed {
		t.Fatalf("expected failure for missing dir, got %+v", missing)
	}

	file := filepath.Join(dir, "plain")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	notDir := preflight.CheckDirectoryAccess("State directory", file)
	if notDir.Passed {
		t.Fatalf("expected failure for non-directory, got %+v", notDir)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()

	if result := preflight.CheckDiskSpace("space", dir, 1); !result.Passed {
		t.Fatalf("expected pass for tiny floor, got %+v", result)
	}
	if result := preflight.CheckDiskSpace("space", dir, ^uint64(0)); result.Passed {
		t.Fatalf("expected failure for impossible floor, got %+v", result)
	}
}

func TestCheckExifTool(t *testing.T) {
	t.Parallel()
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "exiftool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	result := preflight.CheckExifTool(stub)
	if !result.Passed {
		t.Fatalf("expected pass for stub binary, got %+v", result)
	}
	if result.Detail != stub {
		t.Fatalf("expected resolved path %q, got %q", stub, result.Detail)
	}

	if result := preflight.CheckExifTool("clearly-not-present-binary"); result.Passed {
		t.Fatalf("expected failure for missing binary, got %+v", result)
	}
	if result := preflight.CheckExifTool("  "); result.Passed || result.Detail != "binary not configured" {
		t.Fatalf("expected unconfigured failure, got %+v", result)
	}
}

func TestRunAllReportsMissingBinary(t *testing.T) {
	t.Parallel()
	cfg := testsupport.NewConfig(t, testsupport.WithExifToolBinary("clearly-not-present-binary"))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := preflight.RunAll(context.Background(), cfg)
	if len(results) == 0 {
		t.Fatal("expected results")
	}
	if preflight.Passed(results) {
		t.Fatalf("expected failure with missing exiftool: %+v", results)
	}

	var sawTool bool
	for _, result := range results {
		if result.Name == "ExifTool" {
			sawTool = true
			if result.Passed {
				t.Fatalf("expected exiftool check to fail: %+v", result)
			}
		}
	}
	if !sawTool {
		t.Fatal("expected an ExifTool check")
	}
}

func TestRunAllPassesWithStubBinary(t *testing.T) {
	t.Parallel()
	binDir := t.TempDir()
	stub := filepath.Join(binDir, "exiftool")
	if err := os.WriteFile(stub, []byte("#!/bin/sh\nexit 0\n"), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	cfg := testsupport.NewConfig(t, testsupport.WithExifToolBinary(stub))
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}

	results := preflight.RunAll(context.Background(), cfg)
	if !preflight.Passed(results) {
		t.Fatalf("expected all checks to pass: %+v", results)
	}
}
