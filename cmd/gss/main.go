// gss converts structured data between serialization formats.
//
// Usage:
//
//	gss [flags] [file]
//
// The input format is inferred from the file extension unless --from is
// given. If no file is given, gss reads from stdin.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/spf13/afero"
	jww "github.com/spf13/jwalterweatherman"
	"github.com/spf13/pflag"

	"github.com/gssio/gss"
)

func main() {
	if err := run(afero.NewOsFs(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

type config struct {
	from, to string
	output   string
	formats  bool
	verbose  bool
	encode   encodeFlags
	decode   decodeFlags
}

type encodeFlags struct {
	sorted       bool
	reversed     bool
	pretty       bool
	expandHeader bool
	header       []string
	limit        int
	lineSep      string
	kvSep        string
}

type decodeFlags struct {
	header     []string
	limit      int
	comment    string
	lazyQuotes bool
	skipLines  int
	lineSep    string
	kvSep      string
}

func newFlagSet(cfg *config, stderr io.Writer) *pflag.FlagSet {
	flagSet := pflag.NewFlagSet("gss", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage:\n  gss [flags] [file]\n\nFlags:\n")
		flagSet.PrintDefaults()
	}

	flagSet.StringVarP(&cfg.from, "from", "i", "", "input format (default: inferred from the file extension)")
	flagSet.StringVarP(&cfg.to, "to", "o", "json", "output format")
	flagSet.StringVar(&cfg.output, "output", "", "write to this file instead of stdout")
	flagSet.BoolVar(&cfg.formats, "formats", false, "list the supported formats and exit")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "log diagnostics to stderr")

	flagSet.BoolVarP(&cfg.encode.sorted, "sorted", "s", false, "sort keys")
	flagSet.BoolVarP(&cfg.encode.reversed, "reversed", "r", false, "reverse the sorted key order")
	flagSet.BoolVarP(&cfg.encode.pretty, "pretty", "p", false, "pretty print output")
	flagSet.BoolVar(&cfg.encode.expandHeader, "expand-header", false, "use the keys of every record as the output header")
	flagSet.StringSliceVar(&cfg.encode.header, "output-header", nil, "output header")
	flagSet.IntVar(&cfg.encode.limit, "output-limit", gss.NoLimit, "maximum number of records to write")
	flagSet.StringVar(&cfg.encode.lineSep, "output-line-separator", `\n`, "output line separator")
	flagSet.StringVar(&cfg.encode.kvSep, "output-key-value-separator", gss.DefaultKeyValueSeparator, "output key-value separator")

	flagSet.StringSliceVar(&cfg.decode.header, "input-header", nil, "input header; the first line is read as data")
	flagSet.IntVar(&cfg.decode.limit, "input-limit", gss.NoLimit, "maximum number of records to read")
	flagSet.StringVarP(&cfg.decode.comment, "input-comment", "c", "", "skip input lines starting with this prefix")
	flagSet.BoolVar(&cfg.decode.lazyQuotes, "input-lazy-quotes", false, "allow lazy quotes in csv input")
	flagSet.IntVar(&cfg.decode.skipLines, "input-skip-lines", 0, "number of input lines to skip before reading")
	flagSet.StringVar(&cfg.decode.lineSep, "input-line-separator", `\n`, "input line separator")
	flagSet.StringVar(&cfg.decode.kvSep, "input-key-value-separator", gss.DefaultKeyValueSeparator, "input key-value separator")

	return flagSet
}

func (f encodeFlags) options() []gss.Option {
	return []gss.Option{
		gss.Sorted(f.sorted),
		gss.Reversed(f.reversed),
		gss.Pretty(f.pretty),
		gss.ExpandHeader(f.expandHeader),
		gss.Header(f.header...),
		gss.Limit(f.limit),
		gss.LineSeparator(unescape(f.lineSep)),
		gss.KeyValueSeparator(unescape(f.kvSep)),
	}
}

func (f decodeFlags) options() []gss.Option {
	return []gss.Option{
		gss.Header(f.header...),
		gss.Limit(f.limit),
		gss.Comment(f.comment),
		gss.LazyQuotes(f.lazyQuotes),
		gss.SkipLines(f.skipLines),
		gss.LineSeparator(unescape(f.lineSep)),
		gss.KeyValueSeparator(unescape(f.kvSep)),
	}
}

var unescaper = strings.NewReplacer(`\n`, "\n", `\r`, "\r", `\t`, "\t")

// unescape lets separators be typed on a command line.
func unescape(s string) string {
	return unescaper.Replace(s)
}

func run(fs afero.Fs, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	var cfg config

	flagSet := newFlagSet(&cfg, stderr)
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if cfg.formats {
		for _, format := range gss.Formats() {
			fmt.Fprintln(stdout, format)
		}
		return nil
	}

	if flagSet.NArg() > 1 {
		return fmt.Errorf("unexpected argument: %s", flagSet.Arg(1))
	}
	path := flagSet.Arg(0)

	if cfg.from == "" {
		if path == "" || path == "-" {
			return errors.New("--from is required when reading stdin")
		}

		from, err := formatFromPath(path)
		if err != nil {
			return err
		}
		cfg.from = from
	}

	// failures are reported by the caller
	threshold := jww.LevelCritical
	if cfg.verbose {
		threshold = jww.LevelDebug
	}
	logger := jww.NewNotepad(threshold, jww.LevelError, stderr, io.Discard, "gss", log.LstdFlags)
	logger.DEBUG.Printf("converting %s to %s", cfg.from, cfg.to)

	input, err := readInput(fs, path, stdin)
	if err != nil {
		return err
	}

	decodeOpts := append(cfg.decode.options(), gss.WithLogger(logger))
	encodeOpts := append(cfg.encode.options(), gss.WithLogger(logger))

	output, err := gss.Convert(input, cfg.from, cfg.to, decodeOpts, encodeOpts)
	if err != nil {
		return err
	}

	return writeOutput(fs, cfg.output, output, cfg.to == "bson", stdout)
}
