// Command statdump loads stat definition YAML files and prints every
// registered stat with its calculated base/current values and modifier
// list. Handy for eyeballing definition files without booting a game.
//
// Usage:
//
//	go run ./cmd/statdump [-v] defs/vitals.yaml defs/attributes.yaml
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/udisondev/statcore/internal/data"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: statdump [-v] <defs.yaml> [more.yaml ...]")
		os.Exit(2)
	}

	if err := run(flag.Args()); err != nil {
		slog.Error("statdump failed", "err", err)
		os.Exit(1)
	}
}

func run(paths []string) error {
	table, err := data.Load(paths...)
	if err != nil {
		return fmt.Errorf("loading definitions: %w", err)
	}
	defer table.Dispose()

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tINITIAL\tBASE\tCURRENT\tMODIFIERS")
	for _, name := range table.Names() {
		id, _ := table.ID(name)
		s, err := table.Lookup(name)
		if err != nil {
			return err
		}
		mods := s.Modifiers()
		fmt.Fprintf(w, "%d\t%s\t%g\t%g\t%g\t%d\n",
			id, name, s.InitialValue(), s.BaseValue(), s.CurrentValue(), len(mods))
		for _, m := range mods {
			fmt.Fprintf(w, "\t  %s\t\t\t\t\n", m)
		}
	}
	return w.Flush()
}
