// Debug program for the package document scanner and spine resolver
//
// Usage:
//
//	go run ./cmd/test/opf_parser/main.go <epub-file-path>
//
// This program will:
// - Scan the OPF file
// - Display metadata (title, authors, language)
// - List manifest items in document order
// - Show the resolved reading order and whether it came from the spine
// - Show the detected cover image
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/yuanying/epub2text/internal/epub"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <epub-file-path>\n", os.Args[0])
		os.Exit(1)
	}

	epubPath := os.Args[1]

	fmt.Println("=== EPUB OPF Scanner ===")
	fmt.Printf("File: %s\n\n", epubPath)

	data, err := os.ReadFile(epubPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading file: %v\n", err)
		os.Exit(1)
	}

	book, err := epub.Open(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening EPUB: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✓ EPUB opened successfully\n")
	fmt.Printf("OPF Path: %s\n\n", book.OPFPath)

	opf := book.Package

	fmt.Println("--- Metadata ---")
	fmt.Printf("Title:    %s\n", opf.Metadata.Title)
	fmt.Printf("Creators: %s\n", strings.Join(opf.Metadata.Creators, ", "))
	fmt.Printf("Language: %s\n", opf.Metadata.Language)
	if opf.Metadata.CoverID != "" {
		fmt.Printf("Cover ID: %s\n", opf.Metadata.CoverID)
	}

	fmt.Printf("\n--- Manifest (%d items) ---\n", len(opf.ManifestOrder))
	for _, id := range opf.ManifestOrder {
		item := opf.Manifest[id]
		props := ""
		if len(item.Properties) > 0 {
			props = " [" + strings.Join(item.Properties, " ") + "]"
		}
		fmt.Printf("  %-20s %-40s %s%s\n", item.ID, item.Href, item.MediaType, props)
	}

	fmt.Printf("\n--- Spine (%d itemrefs) ---\n", len(opf.Spine))
	for i, idref := range opf.Spine {
		if _, ok := opf.Manifest[idref]; !ok {
			fmt.Printf("  %3d. %s (not in manifest)\n", i+1, idref)
			continue
		}
		fmt.Printf("  %3d. %s\n", i+1, idref)
	}

	source := "spine"
	if !book.FromSpine {
		source = "file name fallback"
	}
	fmt.Printf("\n--- Reading order (%d documents, from %s) ---\n", len(book.Documents), source)
	for i, doc := range book.Documents {
		fmt.Printf("  %3d. %s\n", i+1, doc)
	}

	fmt.Println("\n--- Cover ---")
	if cover := book.DetectCover(); cover != nil {
		fmt.Printf("  %s (%s, via %s)\n", cover.Path, cover.MediaType, cover.DetectionMethod)
	} else {
		fmt.Println("  not found")
	}
}
