// quillfmt formats source files in the spirit of [gofumpt].
//
// [gofumpt]: https://github.com/mvdan/gofumpt
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/quillfmt/quill"
	"github.com/quillfmt/quill/internal/format"
	"github.com/quillfmt/quill/internal/layout"
	"github.com/quillfmt/quill/internal/version"
	"github.com/quillfmt/quill/printer"
	"golang.org/x/term"
)

func main() {
	code, err := run(os.Args, os.Stdin, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	os.Exit(code)
}

func run(args []string, r io.Reader, w io.Writer, wErr io.Writer) (int, error) {
	flags := flag.NewFlagSet(args[0], flag.ContinueOnError)
	flags.SetOutput(wErr)
	flags.Usage = func() {
		fmt.Fprintln(wErr, "usage: quillfmt [flags] [path ...]")
		fmt.Fprintln(wErr, "reads from stdin and writes to stdout when no path is given")
		fmt.Fprintln(wErr, "flags:")
		flags.PrintDefaults()
	}

	width := flags.Int("width", printer.DefaultConfig().Width(), "target line width")
	tabSpaces := flags.Int("tab-spaces", printer.DefaultConfig().TabSpaces(), "columns one level of indentation costs")
	wrapText := flags.Bool("wrap-text", printer.DefaultConfig().WrapText(), "reflow markup prose to fit the target width")
	reorderImports := flags.Bool("reorder-imports", printer.DefaultConfig().ReorderImports(), "sort comment-free, duplicate-free import item lists")
	inplace := flags.Bool("i", false, "format file(s) in place instead of writing to stdout")
	check := flags.Bool("check", false, "exit with status 1 if any input is not already formatted, without writing anything")
	dumpDoc := flags.String("dump-doc", "", "dump the layout document instead of rendering it: 'tree' or 'go'")
	dumpTokens := flags.Bool("dump-tokens", false, "stream every token in the parsed input instead of formatting it")
	showVersion := flags.Bool("version", false, "print version information and exit")
	debug := flags.Bool("debug", false, "enable debug logging")
	cpuProfile := flags.String("cpuprofile", "", "write cpu profile to `file`")
	memProfile := flags.String("memprofile", "", "write memory profile to `file`")

	if err := flags.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return 0, nil
		}
		return 2, nil
	}

	if *showVersion {
		fmt.Fprintln(w, version.Version())
		return 0, nil
	}

	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(wErr, &slog.HandlerOptions{Level: level}))

	if *cpuProfile != "" {
		f, err := os.Create(*cpuProfile)
		if err != nil {
			return 1, fmt.Errorf("could not create CPU profile: %v", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return 1, fmt.Errorf("could not start CPU profile: %v", err)
		}
		defer pprof.StopCPUProfile()
	}
	if *memProfile != "" {
		defer func() {
			f, err := os.Create(*memProfile)
			if err != nil {
				fmt.Fprintf(wErr, "could not create memory profile: %v\n", err)
				return
			}
			defer f.Close()
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Fprintf(wErr, "could not write memory profile: %v\n", err)
			}
		}()
	}

	cfg := printer.DefaultConfig().
		WithWidth(*width).
		WithTabSpaces(*tabSpaces).
		WithWrapText(*wrapText).
		WithReorderImports(*reorderImports)

	paths := flags.Args()

	if *dumpTokens {
		return runDumpTokens(r, w, paths)
	}
	if *dumpDoc != "" {
		return runDumpDoc(r, w, paths, cfg, *dumpDoc, term.IsTerminal(int(os.Stdout.Fd())))
	}
	if *check {
		return runCheck(r, w, wErr, paths, cfg, logger)
	}
	if *inplace {
		return runInplace(wErr, paths, cfg, logger)
	}
	return runFormat(r, w, paths, cfg)
}

func runFormat(r io.Reader, w io.Writer, paths []string, cfg printer.Config) (int, error) {
	if len(paths) == 0 {
		if err := format.Reader(r, w, cfg); err != nil {
			return 1, err
		}
		return 0, nil
	}
	f := printer.New(cfg)
	for i, path := range paths {
		src, err := os.ReadFile(path)
		if err != nil {
			return 1, fmt.Errorf("error reading file: %v", err)
		}
		out, err := f.FormatSource(string(src))
		if err != nil {
			return 1, fmt.Errorf("%s: %w", path, err)
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		fmt.Fprint(w, out)
	}
	return 0, nil
}

func runInplace(wErr io.Writer, paths []string, cfg printer.Config, logger *slog.Logger) (int, error) {
	if len(paths) == 0 {
		return 2, fmt.Errorf("cannot perform in-place formatting without at least one file or directory")
	}
	var errs []error
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if fi.IsDir() {
			if err := format.Dir(path, cfg, logger); err != nil {
				errs = append(errs, err)
			}
			continue
		}
		if err := format.File(path, cfg, logger); err != nil {
			errs = append(errs, err)
		}
	}
	for _, err := range errs {
		fmt.Fprintln(wErr, err)
	}
	if len(errs) > 0 {
		return 1, nil
	}
	return 0, nil
}

func runCheck(r io.Reader, w, wErr io.Writer, paths []string, cfg printer.Config, logger *slog.Logger) (int, error) {
	if len(paths) == 0 {
		src, err := io.ReadAll(r)
		if err != nil {
			return 1, fmt.Errorf("error reading input: %v", err)
		}
		f := printer.New(cfg)
		out, err := f.FormatSource(string(src))
		if err != nil {
			return 1, err
		}
		if out != string(src) {
			return 1, nil
		}
		return 0, nil
	}

	allFormatted := true
	for _, path := range paths {
		fi, err := os.Stat(path)
		if err != nil {
			return 1, err
		}
		if fi.IsDir() {
			ok, err := format.CheckDir(path, cfg, logger)
			if err != nil {
				return 1, err
			}
			if !ok {
				allFormatted = false
			}
			continue
		}
		ok, err := format.CheckFile(path, cfg, logger)
		if err != nil {
			return 1, err
		}
		if !ok {
			allFormatted = false
		}
	}
	if !allFormatted {
		return 1, nil
	}
	return 0, nil
}

func runDumpDoc(r io.Reader, w io.Writer, paths []string, cfg printer.Config, format_ string, colorize bool) (int, error) {
	ft, err := layout.NewFormat(format_)
	if err != nil {
		return 2, err
	}
	f := printer.New(cfg)

	dump := func(src io.Reader) error {
		out, err := f.Dump(src, ft)
		if err != nil {
			return err
		}
		if ft == layout.Tree && colorize {
			out = colorizeTreeDump(out)
		}
		fmt.Fprintln(w, out)
		return nil
	}

	if len(paths) == 0 {
		return errExit(dump(r))
	}
	for _, path := range paths {
		src, err := os.Open(path)
		if err != nil {
			return 1, err
		}
		err = dump(src)
		src.Close()
		if err != nil {
			return 1, err
		}
	}
	return 0, nil
}

func errExit(err error) (int, error) {
	if err != nil {
		return 1, err
	}
	return 0, nil
}

// colorizeTreeDump highlights Group/Union node lines, the two constructs whose flat-vs-broken
// decision drives the fitting algorithm, so a developer scanning a [layout.DumpTree] dump can spot
// them at a glance.
func colorizeTreeDump(s string) string {
	const (
		yellow = "\x1b[33m"
		cyan   = "\x1b[36m"
		reset  = "\x1b[0m"
	)
	lines := splitLines(s)
	for i, line := range lines {
		switch {
		case hasWordAfterIndent(line, "Group"):
			lines[i] = yellow + line + reset
		case hasWordAfterIndent(line, "Union"):
			lines[i] = cyan + line + reset
		}
	}
	return joinLines(lines)
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func joinLines(lines []string) string {
	out := ""
	for i, l := range lines {
		if i > 0 {
			out += "\n"
		}
		out += l
	}
	return out
}

func hasWordAfterIndent(line, word string) bool {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return len(line) >= i+len(word) && line[i:i+len(word)] == word
}

func runDumpTokens(r io.Reader, w io.Writer, paths []string) (int, error) {
	dump := func(src io.Reader) error {
		p := quill.NewParser(src)
		root := p.Parse()
		printTokens(w, root)
		return nil
	}

	if len(paths) == 0 {
		return errExit(dump(r))
	}
	for _, path := range paths {
		src, err := os.Open(path)
		if err != nil {
			return 1, err
		}
		err = dump(src)
		src.Close()
		if err != nil {
			return 1, err
		}
	}
	return 0, nil
}

func printTokens(w io.Writer, tree *quill.Tree) {
	fmt.Fprintf(w, "POSITION\tKIND\tLITERAL\n")
	walkTokens(tree, func(tok quill.TokenChild) {
		fmt.Fprintf(w, "%s-%s\t%s\t%q\n", tok.Start, tok.End, tok.Type, tok.Literal)
	})
}

func walkTokens(tree *quill.Tree, visit func(quill.TokenChild)) {
	for _, child := range tree.Children {
		switch ch := child.(type) {
		case quill.TokenChild:
			visit(ch)
		case quill.TreeChild:
			walkTokens(ch.Tree, visit)
		}
	}
}
