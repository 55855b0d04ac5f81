// Package format provides file and directory formatting on top of [printer.Formatter]. It is the
// CLI-facing glue: the converters and the layout engine stay pure and silent, logging only happens
// here at the file-walking boundary.
package format

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/quillfmt/quill/printer"
)

// sourceExt is the file extension this formatter recognizes as source to format.
const sourceExt = ".typ"

// Reader formats source read from r with cfg and writes the result to w.
func Reader(r io.Reader, w io.Writer, cfg printer.Config) error {
	f := printer.New(cfg)
	out, err := f.FormatContent(r)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, out)
	return err
}

// Dir formats every source file in a directory tree in-place. Dotfiles and directories are
// skipped, matching the convention that hidden paths are not part of a project's formattable
// tree. Per-file failures are collected and joined rather than aborting the walk early, so one
// malformed file does not prevent the rest of the tree from being formatted.
func Dir(root string, cfg printer.Config, logger *slog.Logger) error {
	var errs []error
	if err := walkSource(root, func(file string) {
		if err := File(file, cfg, logger); err != nil {
			errs = append(errs, err)
		}
	}); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// CheckDir reports whether every source file in a directory tree is already formatted, without
// writing anything. It is the backing implementation of the CLI's "check" mode: exit 0 if nothing
// would change, exit 1 (the caller's responsibility) otherwise.
func CheckDir(root string, cfg printer.Config, logger *slog.Logger) (formatted bool, err error) {
	formatted = true
	var errs []error
	if walkErr := walkSource(root, func(file string) {
		ok, checkErr := CheckFile(file, cfg, logger)
		if checkErr != nil {
			errs = append(errs, checkErr)
			return
		}
		if !ok {
			formatted = false
		}
	}); walkErr != nil {
		return false, walkErr
	}
	return formatted, errors.Join(errs...)
}

func walkSource(root string, visit func(file string)) error {
	return fs.WalkDir(os.DirFS(root), ".", func(path string, d fs.DirEntry, fsErr error) error {
		if fsErr != nil {
			return fsErr
		}
		if d.Name() != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(d.Name()) != sourceExt {
			return nil
		}
		visit(filepath.Join(root, path))
		return nil
	})
}

// File formats a single source file in-place, using an atomic rename so a formatting failure or a
// crash midway never leaves the original truncated or half-written. A file that is already
// formatted is left untouched (no temp file is created, no mtime bump).
func File(path string, cfg printer.Config, logger *slog.Logger) error {
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to open file: %v", err)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error reading file: %v", err)
	}

	f := printer.New(cfg)
	out, err := f.FormatSource(string(src))
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if out == string(src) {
		logger.Debug("already formatted", "file", path)
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for atomic rename: %v", err)
	}

	var success bool
	tmpPath := tmp.Name()
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if perm := fi.Mode().Perm(); perm != 0o600 {
		if err := tmp.Chmod(perm); err != nil {
			_ = tmp.Close()
			return fmt.Errorf("failed to set file mode: %v", err)
		}
	}

	if _, err := io.WriteString(tmp, out); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write formatted output: %v", err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %v", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %v", err)
	}

	success = true
	logger.Info("formatted", "file", path)
	return nil
}

// CheckFile reports whether path is already formatted, without writing anything.
func CheckFile(path string, cfg printer.Config, logger *slog.Logger) (formatted bool, err error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("error reading file: %v", err)
	}
	f := printer.New(cfg)
	out, err := f.FormatSource(string(src))
	if err != nil {
		return false, fmt.Errorf("%s: %w", path, err)
	}
	ok := out == string(src)
	if !ok {
		logger.Info("would reformat", "file", path)
	}
	return ok, nil
}
