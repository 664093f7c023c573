// Package manual builds and searches a page index of a hardware manual, like
// the register chapters of the RH850 user's manual.
//
// Pages are read from text files extracted from the manual, one file per
// page with the page number in its name (page-0042.txt). Tables found on a
// page are read from a tab separated companion file (page-0042.tsv), tables
// separated by blank lines. The index itself is a JSON file.
package manual

import (
	"cmp"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

var ErrNoPageNumber = errors.New("no page number in file name")

// Table holds the rows of a table, header row first.
type Table [][]string

type Page struct {
	Num    int     `json:"page_num"`
	Text   string  `json:"text"`
	Tables []Table `json:"tables,omitempty"`
}

// Chars returns the length of the page text in characters.
func (p *Page) Chars() int { return utf8.RuneCountInString(p.Text) }

// Index holds the pages of one manual, sorted by page number.
type Index struct {
	Pages []Page `json:"pages"`
}

// Build reads the given page files into a new index. Text is NFKC
// normalized, so full-width register names read like their ASCII spelling.
func Build(paths []string) (*Index, error) {
	idx := &Index{}
	seen := make(map[int]string)
	for _, path := range paths {
		num, err := pageNumber(path)
		if err != nil {
			return nil, err
		}
		if prev, ok := seen[num]; ok {
			return nil, fmt.Errorf("%s: page %d already read from %s", path, num, prev)
		}
		seen[num] = path

		text, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		tables, err := readTables(strings.TrimSuffix(path, filepath.Ext(path)) + ".tsv")
		if err != nil {
			return nil, err
		}
		idx.Pages = append(idx.Pages, Page{
			Num:    num,
			Text:   norm.NFKC.String(string(text)),
			Tables: tables,
		})
	}
	slices.SortFunc(idx.Pages, func(a, b Page) int { return cmp.Compare(a.Num, b.Num) })
	return idx, nil
}

func isDigit(r rune) bool { return '0' <= r && r <= '9' }

// pageNumber returns the last number in the base name of path.
func pageNumber(path string) (int, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	end := strings.LastIndexFunc(name, isDigit) + 1
	if end == 0 {
		return 0, fmt.Errorf("%s: %w", path, ErrNoPageNumber)
	}
	start := strings.LastIndexFunc(name[:end], func(r rune) bool { return !isDigit(r) }) + 1
	num, err := strconv.Atoi(name[start:end])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return num, nil
}

// readTables reads the tables of a page. A missing file means no tables.
func readTables(path string) ([]Table, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var tables []Table
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	for _, block := range strings.Split(text, "\n\n") {
		if strings.TrimSpace(block) == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(block))
		r.Comma = '\t'
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		rows, err := r.ReadAll()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		tables = append(tables, rows)
	}
	return tables, nil
}

func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	idx := new(Index)
	if err := json.Unmarshal(data, idx); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	slices.SortFunc(idx.Pages, func(a, b Page) int { return cmp.Compare(a.Num, b.Num) })
	return idx, nil
}

func (idx *Index) Save(path string) error {
	data, err := json.MarshalIndent(idx, "", "\t")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Page returns the page with the given number or nil.
func (idx *Index) Page(num int) *Page {
	i, ok := slices.BinarySearchFunc(idx.Pages, num, func(p Page, num int) int {
		return cmp.Compare(p.Num, num)
	})
	if !ok {
		return nil
	}
	return &idx.Pages[i]
}

// TablePages returns the numbers of all pages holding at least one table.
func (idx *Index) TablePages() []int {
	var nums []int
	for i := range idx.Pages {
		if len(idx.Pages[i].Tables) > 0 {
			nums = append(nums, idx.Pages[i].Num)
		}
	}
	return nums
}

type Stats struct {
	Pages         int `json:"total_pages"`
	Chars         int `json:"total_chars"`
	Tables        int `json:"total_tables"`
	AvgChars      int `json:"avg_chars_per_page"`
	FirstPage     int `json:"first_page"`
	LastPage      int `json:"last_page"`
	MaxCharsPage  int `json:"max_chars_page"`
	MaxTablesPage int `json:"max_tables_page"`
}

// Stats summarizes the index. Ties for the maximums go to the lower page.
func (idx *Index) Stats() Stats {
	var s Stats
	maxChars, maxTables := -1, -1
	for i := range idx.Pages {
		p := &idx.Pages[i]
		chars := p.Chars()
		s.Chars += chars
		s.Tables += len(p.Tables)
		if chars > maxChars {
			maxChars, s.MaxCharsPage = chars, p.Num
		}
		if len(p.Tables) > maxTables {
			maxTables, s.MaxTablesPage = len(p.Tables), p.Num
		}
	}
	s.Pages = len(idx.Pages)
	if s.Pages > 0 {
		s.AvgChars = s.Chars / s.Pages
		s.FirstPage = idx.Pages[0].Num
		s.LastPage = idx.Pages[s.Pages-1].Num
	}
	return s
}
