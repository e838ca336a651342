// Package archive handles packed resource packs: detecting zip input by
// content, extracting into a staging directory, and re-archiving a converted
// tree.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charlievieth/fastwalk"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/klauspost/compress/flate"
)

// IsZip reports whether path is a zip archive, judged by content rather
// than extension.
func IsZip(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if info.IsDir() {
		return false, nil
	}
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return false, fmt.Errorf("detect %s: %w", path, err)
	}
	return mt.Is("application/zip"), nil
}

// StagingDir creates a fresh directory under the system temp root for an
// extracted pack. The caller removes it when done.
func StagingDir(prefix string) (string, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("%s-%s", prefix, uuid.NewString()))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create staging dir: %w", err)
	}
	return dir, nil
}

// Extract unpacks a zip archive into dest. Entries that would escape dest
// are dropped.
func Extract(zipPath, dest string) (int, error) {
	reader, err := zip.OpenReader(zipPath)
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", zipPath, err)
	}
	defer reader.Close()

	destClean := filepath.Clean(dest) + string(os.PathSeparator)
	count := 0

	for _, file := range reader.File {
		dstPath := filepath.Join(dest, filepath.FromSlash(file.Name))
		if !strings.HasPrefix(dstPath, destClean) {
			continue
		}
		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(dstPath, 0o755); err != nil {
				return count, err
			}
			continue
		}
		if err := extractFile(file, dstPath); err != nil {
			return count, fmt.Errorf("extract %s: %w", file.Name, err)
		}
		count++
	}
	return count, nil
}

func extractFile(file *zip.File, dstPath string) error {
	if err := os.MkdirAll(filepath.Dir(dstPath), 0o755); err != nil {
		return err
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()

	_, err = io.Copy(dst, src)
	return err
}

// Create archives srcDir into a zip at zipPath, compressing with the
// klauspost deflate implementation. Entry names are slash-separated paths
// relative to srcDir.
func Create(srcDir, zipPath string) (int, error) {
	zipFile, err := os.Create(zipPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", zipPath, err)
	}
	defer zipFile.Close()

	zw := zip.NewWriter(zipFile)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	defer zw.Close()

	count := 0
	// Single worker: zip.Writer is not safe for concurrent writes.
	conf := fastwalk.Config{Follow: false, NumWorkers: 1}
	err = fastwalk.Walk(&conf, srcDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || path == srcDir || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		file, err := os.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()

		if _, err := io.Copy(w, file); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("archive %s: %w", srcDir, err)
	}
	if err := zw.Close(); err != nil {
		return count, err
	}
	return count, nil
}
