// Debug program for content document text reduction
//
// Usage:
//
//	go run ./cmd/test/content_loader/main.go <epub-file-path>
//
// This program:
// 1. Opens the specified EPUB file
// 2. Walks the reading order
// 3. Shows each document's chapter title and the start of its plain text
// 4. Lists documents that are missing from the archive
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/yuanying/epub2text/internal/epub"
)

const previewRunes = 200

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <epub-file-path>\n", filepath.Base(os.Args[0]))
		os.Exit(1)
	}

	epubPath := os.Args[1]

	fmt.Printf("=== Content Text Reducer ===\n")
	fmt.Printf("EPUB file: %s\n\n", epubPath)

	data, err := os.ReadFile(epubPath)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}
	book, err := epub.Open(data)
	if err != nil {
		log.Fatalf("Failed to open EPUB: %v", err)
	}
	fmt.Printf("✓ EPUB opened successfully\n")
	fmt.Printf("OPF path: %s\n\n", book.OPFPath)

	var total int
	for i, p := range book.Documents {
		doc, err := book.ReadDocument(p)
		if err != nil {
			fmt.Printf("[%d] %s\n  ✗ %v\n\n", i+1, p, err)
			continue
		}
		text := []rune(epub.PlainText(doc))
		total += len(text)

		fmt.Printf("[%d] %s\n", i+1, p)
		if title := epub.ChapterTitle(doc); title != "" {
			fmt.Printf("  Title: %s\n", title)
		}
		fmt.Printf("  Text:  %d chars\n", len(text))
		if len(text) > previewRunes {
			text = append(text[:previewRunes], '…')
		}
		fmt.Printf("  %s\n\n", string(text))
	}

	fmt.Printf("✓ %d documents, %d chars of text\n", len(book.Documents), total)
}
