// Debug program for the ZIP directory reader
//
// Usage:
//
//	go run ./cmd/test/epub_reader/main.go <epub-file> (<entry-name> ...)
//
// This program exercises:
// - Locating the end-of-central-directory record
// - Listing every central-directory entry with method and sizes
// - Extracting container.xml and the named entries
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/yuanying/epub2text/internal/epub"
	"github.com/yuanying/epub2text/internal/textenc"
	"github.com/yuanying/epub2text/internal/zipread"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run ./cmd/test/epub_reader/main.go <epub-file> (<entry-name> ...)")
		os.Exit(1)
	}

	epubPath := os.Args[1]
	entryNames := os.Args[2:]

	data, err := os.ReadFile(epubPath)
	if err != nil {
		log.Fatalf("Failed to read file: %v", err)
	}

	fmt.Printf("Opening EPUB file: %s (%d bytes)\n", epubPath, len(data))
	archive, err := zipread.Open(data)
	if err != nil {
		log.Fatalf("Failed to open archive: %v", err)
	}
	fmt.Printf("✓ Archive opened successfully\n")

	fmt.Printf("\nTotal entries: %d\n", len(archive.Entries))
	for _, e := range archive.Entries {
		method := "store"
		if e.Method == zipread.Deflate {
			method = "deflate"
		} else if e.Method != zipread.Store {
			method = fmt.Sprintf("method %d", e.Method)
		}
		fmt.Printf("  - %-50s %-8s %8d -> %8d\n", e.Name, method, e.CompressedSize, e.UncompressedSize)
	}

	fmt.Printf("\nReading %s...\n", epub.ContainerPath)
	containerData, err := archive.ReadFile(epub.ContainerPath)
	if err != nil {
		log.Fatalf("Failed to read container.xml: %v", err)
	}
	opfPath, err := epub.ScanContainer(containerData)
	if err != nil {
		log.Fatalf("Failed to scan container.xml: %v", err)
	}
	fmt.Printf("✓ container.xml read successfully, OPF path: %s\n", opfPath)

	for _, name := range entryNames {
		fmt.Printf("\nReading entry: %s\n", name)
		content, err := archive.ReadFile(name)
		if err != nil {
			log.Fatalf("Failed to read entry %s: %v", name, err)
		}
		fmt.Printf("✓ Entry %s read successfully (%d bytes)\n", name, len(content))
		fmt.Printf("Content:\n%s\n", textenc.Decode(content))
	}

	fmt.Println("\n✓ All checks passed!")
}
