package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/yuanying/epub2text/internal/epub"
)

type inspectReport struct {
	File      string        `yaml:"file"`
	Package   string        `yaml:"package"`
	Title     string        `yaml:"title,omitempty"`
	Creators  []string      `yaml:"creators,omitempty"`
	Language  string        `yaml:"language,omitempty"`
	FromSpine bool          `yaml:"from_spine"`
	Chapters  []chapterInfo `yaml:"chapters"`
	Cover     *coverInfo    `yaml:"cover,omitempty"`
}

type chapterInfo struct {
	Path    string `yaml:"path"`
	Title   string `yaml:"title,omitempty"`
	Missing bool   `yaml:"missing,omitempty"`
}

type coverInfo struct {
	Path      string `yaml:"path"`
	MediaType string `yaml:"media_type"`
	Detection string `yaml:"detection"`
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect <book.epub>",
		Short: "Show the metadata, reading order and cover of an EPUB",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, nil)
			if err != nil {
				return err
			}
			defer opts.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read EPUB: %w", err)
			}
			report, err := buildInspectReport(args[0], data)
			if err != nil {
				return err
			}
			opts.Logger.Debug("inspected book", "file", args[0], "chapters", len(report.Chapters))

			asYAML, _ := cmd.Flags().GetBool("yaml")
			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return err
				}
				return enc.Close()
			}
			writeInspectReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	cmd.Flags().Bool("yaml", false, "print the report as YAML")
	return cmd
}

func buildInspectReport(file string, data []byte) (*inspectReport, error) {
	book, err := epub.Open(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open EPUB: %w", err)
	}

	meta := book.Package.Metadata
	report := &inspectReport{
		File:      file,
		Package:   book.OPFPath,
		Title:     meta.Title,
		Creators:  meta.Creators,
		Language:  meta.Language,
		FromSpine: book.FromSpine,
	}

	chapters, err := book.Chapters()
	if err != nil {
		return nil, err
	}
	present := make(map[string]bool, len(chapters))
	titles := make(map[string]string, len(chapters))
	for _, ch := range chapters {
		present[ch.Path] = true
		titles[ch.Path] = ch.Title
	}
	for _, p := range book.Documents {
		report.Chapters = append(report.Chapters, chapterInfo{
			Path:    p,
			Title:   titles[p],
			Missing: !present[p],
		})
	}

	if c := book.DetectCover(); c != nil {
		report.Cover = &coverInfo{Path: c.Path, MediaType: c.MediaType, Detection: c.DetectionMethod}
	}
	return report, nil
}

func writeInspectReport(w io.Writer, r *inspectReport) {
	label := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()
	gray := color.New(color.FgHiBlack).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	title := r.Title
	if title == "" {
		title = gray("(untitled)")
	}
	fmt.Fprintf(w, "%s %s\n", label("Title:   "), bold(title))
	if len(r.Creators) > 0 {
		fmt.Fprintf(w, "%s %s\n", label("Authors: "), strings.Join(r.Creators, ", "))
	}
	if r.Language != "" {
		fmt.Fprintf(w, "%s %s\n", label("Language:"), r.Language)
	}
	fmt.Fprintf(w, "%s %s\n", label("Package: "), r.Package)
	if r.Cover != nil {
		fmt.Fprintf(w, "%s %s %s\n", label("Cover:   "), r.Cover.Path, gray("("+r.Cover.Detection+")"))
	}

	order := "spine"
	if !r.FromSpine {
		order = yellow("file names (no usable spine)")
	}
	fmt.Fprintf(w, "\n%s %d, reading order from %s\n", label("Chapters:"), len(r.Chapters), order)
	for i, ch := range r.Chapters {
		line := fmt.Sprintf("%3d. %s", i+1, ch.Path)
		if ch.Title != "" {
			line += "  " + gray(ch.Title)
		}
		if ch.Missing {
			line += "  " + yellow("[missing]")
		}
		fmt.Fprintln(w, line)
	}
}
