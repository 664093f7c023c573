package manual

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

const (
	formatText     = "text"
	formatJSON     = "json"
	formatMarkdown = "markdown"
)

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeResults(w io.Writer, format, query string, results []Result) error {
	switch format {
	case formatText:
		for i, r := range results {
			fmt.Fprintf(w, "%3d. page %d (%d chars, %d tables, %d hits)\n", i+1, r.Num, r.Chars, r.Tables, r.Hits)
			for _, ctx := range r.Contexts {
				fmt.Fprintf(w, "\t%s\n", ctx)
			}
		}
		fmt.Fprintf(w, "%d results\n", len(results))
	case formatJSON:
		return writeJSON(w, results)
	case formatMarkdown:
		fmt.Fprintf(w, "# Search results: %s\n\n", query)
		fmt.Fprintf(w, "**Total**: %d\n\n---\n\n", len(results))
		for i, r := range results {
			fmt.Fprintf(w, "## %d. Page %d\n\n", i+1, r.Num)
			fmt.Fprintf(w, "- **Chars**: %d\n- **Tables**: %d\n\n", r.Chars, r.Tables)
			if len(r.Contexts) > 0 {
				fmt.Fprint(w, "### Context\n\n")
				for _, ctx := range r.Contexts {
					fmt.Fprintf(w, "> %s\n\n", ctx)
				}
			}
			fmt.Fprint(w, "---\n\n")
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

func writePage(w io.Writer, format string, p *Page) error {
	switch format {
	case formatText:
		fmt.Fprintf(w, "page %d (%d chars, %d tables)\n\n%s\n", p.Num, p.Chars(), len(p.Tables), p.Text)
		for i, t := range p.Tables {
			fmt.Fprintf(w, "\ntable %d:\n", i+1)
			for _, row := range t {
				fmt.Fprintf(w, "\t%s\n", strings.Join(row, " | "))
			}
		}
	case formatJSON:
		return writeJSON(w, p)
	case formatMarkdown:
		fmt.Fprintf(w, "# Page %d\n\n```\n%s\n```\n", p.Num, strings.TrimRight(p.Text, "\n"))
		for i, t := range p.Tables {
			fmt.Fprintf(w, "\n## Table %d\n\n", i+1)
			writeMarkdownTable(w, t)
		}
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}

func writeMarkdownTable(w io.Writer, t Table) {
	cols := 0
	for _, row := range t {
		cols = max(cols, len(row))
	}
	cell := strings.NewReplacer("|", `\|`, "\n", " ")
	for i, row := range t {
		fmt.Fprint(w, "|")
		for c := range cols {
			v := ""
			if c < len(row) {
				v = cell.Replace(row[c])
			}
			fmt.Fprintf(w, " %s |", v)
		}
		fmt.Fprintln(w)
		if i == 0 {
			fmt.Fprintln(w, "|"+strings.Repeat("---|", cols))
		}
	}
}

func writeStats(w io.Writer, format string, s Stats) error {
	switch format {
	case formatText, formatMarkdown:
		fmt.Fprintf(w, "pages       %d (%d-%d)\n", s.Pages, s.FirstPage, s.LastPage)
		fmt.Fprintf(w, "chars       %d (%d per page, most on page %d)\n", s.Chars, s.AvgChars, s.MaxCharsPage)
		fmt.Fprintf(w, "tables      %d (most on page %d)\n", s.Tables, s.MaxTablesPage)
	case formatJSON:
		return writeJSON(w, s)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
	return nil
}
