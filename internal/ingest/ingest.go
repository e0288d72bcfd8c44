// Package ingest extracts positioned text fragments from source PDFs.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	pdflib "github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/dmfielding/bestiary/internal/layout"
)

// Request contains the parameters for extracting fragments from a PDF.
type Request struct {
	PDFPath string       // Source PDF path
	First   int          // First page to process (1-based; 0 means page 1)
	Last    int          // Last page to process (0 means the final page)
	Workers int          // Page workers (0 means NumCPU)
	Logger  *slog.Logger // Optional logger for progress updates
}

// Result contains the extracted fragment stream for one document.
type Result struct {
	Source    string
	PageCount int // Total pages in the document
	First     int // Resolved first page
	Last      int // Resolved last page
	Fragments []layout.Fragment
}

// Extract reads the requested page range and returns the raw fragment
// stream in page order. Fragments are unordered within a page; reading
// order is a separate pass.
func Extract(ctx context.Context, req Request) (*Result, error) {
	log := req.Logger
	if log == nil {
		log = slog.Default()
	}

	if req.PDFPath == "" {
		return nil, fmt.Errorf("no PDF path provided")
	}
	if _, err := os.Stat(req.PDFPath); err != nil {
		return nil, fmt.Errorf("PDF not found: %s", req.PDFPath)
	}

	// Validate the document and get an authoritative page count
	f, err := os.Open(req.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	pageCount, err := api.PageCount(f, nil)
	f.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}
	if pageCount == 0 {
		return nil, fmt.Errorf("PDF has no pages: %s", req.PDFPath)
	}

	first, last := clampRange(req.First, req.Last, pageCount)
	if first > last {
		return nil, fmt.Errorf("page range %d-%d is empty", req.First, req.Last)
	}

	src, reader, err := pdflib.Open(req.PDFPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read PDF: %w", err)
	}
	defer src.Close()

	workers := req.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log.Info("extracting fragments", "source", req.PDFPath, "pages", last-first+1, "workers", workers)

	// Process pages concurrently; each worker writes its own slot
	pages := make([][]layout.Fragment, last-first+1)

	type pageResult struct {
		page int
		err  error
	}

	results := make(chan pageResult, last-first+1)
	sem := make(chan struct{}, workers)

	scheduled := 0
	for page := first; page <= last; page++ {
		if err := ctx.Err(); err != nil {
			break
		}
		sem <- struct{}{} // acquire
		scheduled++
		go func(pageNum int) {
			defer func() { <-sem }() // release

			frags, err := pageFragments(reader, pageNum)
			if err == nil {
				pages[pageNum-first] = frags
			}
			results <- pageResult{page: pageNum, err: err}
		}(page)
	}

	// Collect results
	for i := 0; i < scheduled; i++ {
		r := <-results
		if r.err != nil {
			return nil, fmt.Errorf("failed to read page %d: %w", r.page, r.err)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range pages {
		total += len(p)
	}
	fragments := make([]layout.Fragment, 0, total)
	for _, p := range pages {
		fragments = append(fragments, p...)
	}

	log.Info("extraction complete", "pages", last-first+1, "fragments", len(fragments))

	return &Result{
		Source:    req.PDFPath,
		PageCount: pageCount,
		First:     first,
		Last:      last,
		Fragments: fragments,
	}, nil
}

// pageFragments extracts one page's merged fragments. Content decoding can
// panic on malformed streams, so it is fenced here.
func pageFragments(reader *pdflib.Reader, pageNum int) (frags []layout.Fragment, err error) {
	defer func() {
		if r := recover(); r != nil {
			frags = nil
			err = fmt.Errorf("malformed page content: %v", r)
		}
	}()

	page := reader.Page(pageNum)
	if page.V.IsNull() {
		return nil, nil
	}

	texts := page.Content().Text
	if len(texts) == 0 {
		return nil, nil
	}
	return mergeRuns(texts, pageNum, pageHeight(page)), nil
}

// clampRange resolves a requested page range against the document's page
// count. Zero values mean "from the start" and "to the end".
func clampRange(first, last, pageCount int) (int, int) {
	if first < 1 {
		first = 1
	}
	if last < 1 || last > pageCount {
		last = pageCount
	}
	return first, last
}
