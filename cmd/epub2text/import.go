package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/yuanying/epub2text/internal/epub"
	"github.com/yuanying/epub2text/internal/library"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <book.epub>...",
		Short: "Copy EPUB files into the library without converting them",
		Args: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list"); list {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.MinimumNArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := readCLIOptions(cmd, nil)
			if err != nil {
				return err
			}
			defer opts.Close()

			store := library.New(opts.Config.LibraryDir)
			if list, _ := cmd.Flags().GetBool("list"); list {
				names, err := store.List()
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			}

			green := color.New(color.FgGreen).SprintFunc()
			var failed int
			for _, path := range args {
				dest, err := importBook(store, path)
				if err != nil {
					opts.Logger.Error("import failed", "file", path, "error", err)
					failed++
					continue
				}
				opts.Logger.Debug("imported", "file", path, "dest", dest)
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s -> %s\n", green("imported"), path, dest)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d books could not be imported", failed, len(args))
			}
			return nil
		},
	}
	cmd.Flags().Bool("list", false, "list the books already in the library")
	return cmd
}

// importBook copies a book into the store after checking that it opens as
// an EPUB.
func importBook(store *library.Store, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read EPUB: %w", err)
	}
	if _, err := epub.Open(data); err != nil {
		return "", err
	}
	return store.Import(path, data)
}
