// Package wordlist shapes a finalized candidate list for display and export.
package wordlist

import (
	"bufio"
	"io"
	"strings"
)

const (
	DefaultPageSize = 100
	MaxPageSize     = 1000

	// Filename is the suggested download name for an export.
	Filename = "password-list.txt"
)

type Page struct {
	Total int      `json:"total"`
	Page  int      `json:"page"`
	Size  int      `json:"size"`
	Pages int      `json:"pages"`
	Items []string `json:"items"`
}

// Paginate slices items into 1-based pages. Out-of-range sizes fall back to
// DefaultPageSize and the page is clamped to [1, Pages].
func Paginate(items []string, page, size int) Page {
	if size < 1 || size > MaxPageSize {
		size = DefaultPageSize
	}
	pages := (len(items) + size - 1) / size
	if page > pages {
		page = pages
	}
	if page < 1 {
		page = 1
	}
	start := min((page-1)*size, len(items))
	end := min(start+size, len(items))
	return Page{
		Total: len(items),
		Page:  page,
		Size:  size,
		Pages: pages,
		Items: items[start:end:end],
	}
}

// Write emits items as newline-separated UTF-8 without a trailing newline.
func Write(w io.Writer, items []string) (int64, error) {
	bw := bufio.NewWriterSize(w, 64*1024)
	var n int64
	for i, s := range items {
		if i > 0 {
			if err := bw.WriteByte('\n'); err != nil {
				return n, err
			}
			n++
		}
		m, err := bw.WriteString(s)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Join is the clipboard form of a list.
func Join(items []string) string {
	return strings.Join(items, "\n")
}
