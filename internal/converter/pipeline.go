package converter

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/yuanying/epub2text/internal/epub"
	"github.com/yuanying/epub2text/internal/library"
)

// StdoutPath as OutputPath writes the text to Options.Stdout.
const StdoutPath = "-"

// ConvertOptions holds options for the conversion pipeline.
type ConvertOptions struct {
	InputPath  string
	OutputPath string
	LibraryDir string
	NoImport   bool
	CoverPath  string
	CoverWidth int
	Stdout     io.Writer
}

// Result summarizes a finished conversion.
type Result struct {
	Title        string
	OutputPath   string
	ImportedPath string
	CoverPath    string
	Documents    int
	Skipped      []string
	FromSpine    bool
	Chars        int
}

// Pipeline orchestrates the EPUB to plain text conversion.
type Pipeline struct {
	Options ConvertOptions
	Logger  *slog.Logger
	Fs      afero.Fs
}

// NewPipeline creates a new conversion pipeline on the OS filesystem.
func NewPipeline(opts ConvertOptions, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	return &Pipeline{Options: opts, Logger: logger, Fs: afero.NewOsFs()}
}

// Convert executes the conversion pipeline. The context is checked between
// stages.
func (p *Pipeline) Convert(ctx context.Context) (*Result, error) {
	data, err := afero.ReadFile(p.Fs, p.Options.InputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read EPUB: %w", err)
	}
	p.Logger.Debug("read input", "path", p.Options.InputPath, "bytes", len(data))

	res := &Result{OutputPath: p.Options.OutputPath}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	book, err := epub.Open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}
	res.Title = book.Package.Metadata.Title
	res.FromSpine = book.FromSpine
	p.Logger.Info("opened book",
		"title", res.Title,
		"package", book.OPFPath,
		"documents", len(book.Documents))
	if !book.FromSpine {
		p.Logger.Warn("spine yielded no documents, using file name order", "documents", len(book.Documents))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections, skipped, err := book.Sections()
	if err != nil {
		return nil, fmt.Errorf("failed to read content: %w", err)
	}
	for _, path := range skipped {
		p.Logger.Warn("content document not in archive, skipping", "path", path)
	}
	res.Skipped = skipped
	res.Documents = len(sections)

	text, err := epub.JoinSections(sections)
	if err != nil {
		return nil, err
	}
	res.Chars = len([]rune(text))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Only books that extracted cleanly are kept in the library.
	if !p.Options.NoImport && p.Options.LibraryDir != "" {
		store := library.NewWithFs(p.Fs, p.Options.LibraryDir)
		imported, err := store.Import(filepath.Base(p.Options.InputPath), data)
		if err != nil {
			return nil, fmt.Errorf("failed to import into library: %w", err)
		}
		res.ImportedPath = imported
		p.Logger.Info("imported into library", "path", imported)
	}

	if err := p.writeText(text); err != nil {
		return nil, err
	}
	p.Logger.Info("wrote text", "output", p.Options.OutputPath, "chars", res.Chars)

	if p.Options.CoverPath != "" {
		written, err := p.writeCover(book)
		if err != nil {
			return nil, err
		}
		if written {
			res.CoverPath = p.Options.CoverPath
		}
	}

	return res, nil
}

func (p *Pipeline) writeText(text string) error {
	if p.Options.OutputPath == StdoutPath {
		if _, err := io.WriteString(p.Options.Stdout, text+"\n"); err != nil {
			return fmt.Errorf("failed to write text: %w", err)
		}
		return nil
	}

	if dir := filepath.Dir(p.Options.OutputPath); dir != "." {
		if err := p.Fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := afero.WriteFile(p.Fs, p.Options.OutputPath, []byte(text), 0o644); err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	return nil
}

// writeCover writes a thumbnail of the book's cover. A book without a
// usable cover is logged and reported as not written.
func (p *Pipeline) writeCover(book *epub.Book) (bool, error) {
	info, data, err := book.CoverImage()
	if info == nil {
		p.Logger.Warn("no cover image found")
		return false, nil
	}
	if err != nil {
		p.Logger.Warn("failed to read cover image", "path", info.Path, "error", err)
		return false, nil
	}

	thumb, err := CoverThumbnail(data, p.Options.CoverWidth)
	if err != nil {
		p.Logger.Warn("failed to build cover thumbnail", "path", info.Path, "error", err)
		return false, nil
	}

	if err := afero.WriteFile(p.Fs, p.Options.CoverPath, thumb, 0o644); err != nil {
		return false, fmt.Errorf("failed to write cover: %w", err)
	}
	p.Logger.Info("wrote cover",
		"source", info.Path,
		"detection", info.DetectionMethod,
		"output", p.Options.CoverPath)
	return true, nil
}
