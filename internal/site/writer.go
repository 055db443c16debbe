package site

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	berrors "git.home.luguber.info/inful/blogsmith/internal/errors"
	"git.home.luguber.info/inful/blogsmith/internal/logfields"
)

// Writer publishes a complete set of rendered pages plus static assets into
// the output directory. Everything is written into a staging directory first
// and swapped in with a rename, so a build that fails before publish leaves
// the previous output untouched.
type Writer struct {
	outputDir string
}

// NewWriter creates a writer for the given output directory.
func NewWriter(outputDir string) *Writer {
	return &Writer{outputDir: filepath.Clean(outputDir)}
}

// Publish writes all pages and copies the assets directory, then atomically
// replaces the output directory. Returns the number of asset files copied.
func (w *Writer) Publish(pages []RenderedPage, assetsDir string) (int, error) {
	parent := filepath.Dir(w.outputDir)
	if err := os.MkdirAll(parent, 0o750); err != nil {
		return 0, berrors.WriteFailed(parent, err)
	}

	staging, err := os.MkdirTemp(parent, ".blogsmith-staging-*")
	if err != nil {
		return 0, berrors.WriteFailed(parent, err)
	}
	cleanup := func() { _ = os.RemoveAll(staging) }

	for _, page := range pages {
		dst := filepath.Join(staging, filepath.FromSlash(page.Path))
		if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
			cleanup()
			return 0, berrors.WriteFailed(dst, err)
		}
		// #nosec G306 -- generated pages are public site content
		if err := os.WriteFile(dst, page.Content, 0o644); err != nil {
			cleanup()
			return 0, berrors.WriteFailed(dst, err)
		}
	}

	assets := 0
	if assetsDir != "" {
		if _, err := os.Stat(assetsDir); err == nil {
			assets, err = copyDir(assetsDir, filepath.Join(staging, "assets"))
			if err != nil {
				cleanup()
				return 0, err
			}
		} else {
			slog.Warn("Assets directory not found, skipping copy", logfields.Path(assetsDir))
		}
	}

	// Swap staging into place. The previous output is gone first, so a
	// failure inside this window can lose it; every earlier failure leaves
	// it untouched.
	if err := os.RemoveAll(w.outputDir); err != nil {
		cleanup()
		return 0, berrors.WriteFailed(w.outputDir, err)
	}
	if err := os.Rename(staging, w.outputDir); err != nil {
		cleanup()
		return 0, berrors.WriteFailed(w.outputDir, err)
	}

	return assets, nil
}

// copyDir recursively copies a directory tree verbatim, returning the number
// of files copied.
func copyDir(src, dst string) (int, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return 0, berrors.WriteFailed(src, err)
	}
	if err := os.MkdirAll(dst, srcInfo.Mode()); err != nil {
		return 0, berrors.WriteFailed(dst, err)
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return 0, berrors.WriteFailed(src, err)
	}

	count := 0
	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			n, err := copyDir(srcPath, dstPath)
			if err != nil {
				return count, err
			}
			count += n
			continue
		}

		if err := copyFile(srcPath, dstPath); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return berrors.WriteFailed(src, err)
	}
	defer func() {
		_ = srcFile.Close()
	}()

	dstFile, err := os.Create(dst)
	if err != nil {
		return berrors.WriteFailed(dst, err)
	}
	defer func() {
		_ = dstFile.Close()
	}()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return berrors.WriteFailed(dst, err)
	}
	return dstFile.Sync()
}
