package engine

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"

	"github.com/me/methseq/internal/cromwell"
)

// Collector materializes workflow output files into a destination directory.
type Collector struct {
	Dest   string
	Move   bool // move files instead of copying
	Logger *slog.Logger
}

// Collect resolves every output file into the destination directory under
// its base name, in the order the server reported the outputs. A file that
// does not exist locally is logged as a warning and skipped; it never stops
// collection of the remaining files. There is no rollback: files already
// collected stay in place whatever happens later.
func (c *Collector) Collect(outputs []cromwell.Output) error {
	for _, output := range outputs {
		for _, path := range output.Value.Flatten() {
			info, err := os.Stat(path)
			if err != nil {
				c.Logger.Warn("output file not found", "output", output.Name, "file", path)
				continue
			}

			dest := filepath.Join(c.Dest, filepath.Base(path))
			c.Logger.Info("collecting file",
				"output", output.Name,
				"file", path,
				"size", humanize.Bytes(uint64(info.Size())),
			)

			if c.Move {
				err = moveFile(path, dest)
			} else {
				err = copyFile(path, dest)
			}
			if err != nil {
				return fmt.Errorf("collect %s: %w", path, err)
			}
		}
	}
	return nil
}

// moveFile renames src to dst, falling back to copy-and-remove when the
// destination is on a different filesystem.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}
	if err := copyFile(src, dst); err != nil {
		return err
	}
	return os.Remove(src)
}

// copyFile copies src to dst, overwriting any existing file.
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	_, err = io.Copy(dstFile, srcFile)
	return err
}
