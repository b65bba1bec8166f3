package book

import (
	"bufio"
	"io"
	"iter"
	"strconv"
	"strings"
)

const (
	csvDelimiter  = ";"
	csvTimeLayout = "2006-01-02T15:04:05.000Z07:00"
)

// ExportColumns is the fixed column order of CSV and XLSX exports.
var ExportColumns = []string{"id", "title", "price", "available", "author", "genre", "publisher", "imageUrl", "createdAt"}

// exportRecord renders b in ExportColumns order. Missing values are empty strings.
func exportRecord(b *Book) []string {
	var imageURL, createdAt string
	if b.ImageURL != nil {
		imageURL = *b.ImageURL
	}
	if !b.CreatedAt.IsZero() {
		createdAt = b.CreatedAt.UTC().Format(csvTimeLayout)
	}
	return []string{
		strconv.FormatInt(b.ID, 10),
		b.Title,
		b.Price.String(),
		strconv.FormatBool(b.Available),
		refName(b.Author),
		refName(b.Genre),
		refName(b.Publisher),
		imageURL,
		createdAt,
	}
}

func refName(r *Ref) string {
	if r == nil {
		return ""
	}
	return r.Name
}

func quoteField(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `""`) + `"`
}

func csvLine(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = quoteField(f)
	}
	return strings.Join(quoted, csvDelimiter)
}

// Rows yields the unquoted header line followed by one quoted line per book.
// Lines carry no terminator.
func Rows(books []Book) iter.Seq[string] {
	return func(yield func(string) bool) {
		if !yield(strings.Join(ExportColumns, csvDelimiter)) {
			return
		}
		for i := range books {
			if !yield(csvLine(exportRecord(&books[i]))) {
				return
			}
		}
	}
}

// RenderCSV returns the whole document, lines joined by "\n" with no
// trailing newline.
func RenderCSV(books []Book) string {
	var sb strings.Builder
	_ = WriteCSV(&sb, books)
	return sb.String()
}

// WriteCSV streams the document to w.
func WriteCSV(w io.Writer, books []Book) error {
	bw := bufio.NewWriter(w)
	first := true
	for line := range Rows(books) {
		if !first {
			if err := bw.WriteByte('\n'); err != nil {
				return err
			}
		}
		first = false
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
	}
	return bw.Flush()
}
