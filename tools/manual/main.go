package manual

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
)

const usageString = `Hardware manual index.

Usage:

	%s [flags] <command> [arguments]

The commands are:

	build <page files>	build the index from extracted page text
	search <query>		search pages, see -mode
	page <num>		print a page with its tables
	stats			print index statistics
	tables			list pages holding tables

`

var (
	flags = flag.NewFlagSet("manual", flag.ExitOnError)

	db       = flags.String("db", "manual.json", "Index file")
	mode     = flags.String("mode", string(MatchTerms), "Search mode: fts, like or regex")
	limit    = flags.Int("limit", 10, "Maximum number of search results, 0 for all")
	ctxChars = flags.Int("context", 150, "Characters shown around each match, 0 for none")
	format   = flags.String("format", formatText, "Output format: text, json or markdown")
	output   = flags.String("o", "", "Output file instead of stdout")
)

var (
	errUsage  = errors.New("invalid arguments")
	errNoPage = errors.New("no such page")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "manual")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 1 {
		flags.Usage()
		os.Exit(1)
	}

	out := io.Writer(os.Stdout)
	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		out = f
	}

	err := run(flags.Args(), out)
	if errors.Is(err, errUsage) {
		fmt.Fprintln(flags.Output(), err)
		flags.Usage()
		os.Exit(1)
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func run(args []string, out io.Writer) error {
	if args[0] == "build" {
		if len(args) < 2 {
			return fmt.Errorf("build: no page files: %w", errUsage)
		}
		idx, err := Build(args[1:])
		if err != nil {
			return err
		}
		if err := idx.Save(*db); err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %d pages, %d tables\n", *db, len(idx.Pages), idx.Stats().Tables)
		return nil
	}

	idx, err := Load(*db)
	if err != nil {
		return err
	}

	switch args[0] {
	case "search":
		query := strings.Join(args[1:], " ")
		results, err := idx.Search(Query{
			Mode:    Mode(*mode),
			Text:    query,
			Limit:   *limit,
			Context: *ctxChars,
		})
		if errors.Is(err, ErrEmptyQuery) {
			return fmt.Errorf("search: %w: %w", err, errUsage)
		}
		if err != nil {
			return fmt.Errorf("search: %w", err)
		}
		return writeResults(out, *format, query, results)
	case "page":
		if len(args) != 2 {
			return fmt.Errorf("page: expects one page number: %w", errUsage)
		}
		num, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("page: %w", err)
		}
		p := idx.Page(num)
		if p == nil {
			return fmt.Errorf("page %d: %w", num, errNoPage)
		}
		return writePage(out, *format, p)
	case "stats":
		return writeStats(out, *format, idx.Stats())
	case "tables":
		for _, num := range idx.TablePages() {
			fmt.Fprintln(out, num)
		}
		return nil
	}
	return fmt.Errorf("unknown command %s: %w", args[0], errUsage)
}
