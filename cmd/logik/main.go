// Command logik inspects and evaluates a stored gate library.
//
// Usage:
//
//	logik [flags] list
//	logik [flags] table GATE
//	logik [flags] eval GATE BITS
//	logik [flags] equiv GATE1 GATE2
//	logik [flags] init
//
// Gates are named by name or key. BITS is one '0' or '1' per gate input,
// input 0 first. The init command writes a library with the standard gates
// to the library file.
//
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/db47h/logik"
	"github.com/db47h/logik/equiv"
	"github.com/db47h/logik/gatelib"
	"github.com/db47h/logik/storage"
	"github.com/pkg/errors"
)

var (
	configFile = flag.String("config", "", "config file (default "+defaultConfig+" if present)")
	libFile    = flag.String("lib", "", "gate library file, .json or .yaml")
	warnings   = flag.Bool("warnings", false, "log incomplete wiring warnings")
	format     = flag.String("format", "", "output format: text or json")
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] list|table GATE|eval GATE BITS|equiv GATE1 GATE2|init\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("logik: ")
	flag.Usage = usage
	flag.Parse()

	cfg, err := loadConfig(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lib":
			cfg.Library = *libFile
		case "warnings":
			cfg.Warnings = *warnings
		case "format":
			cfg.Format = *format
		}
	})
	if err = cfg.check(); err != nil {
		log.Fatal(err)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}
	if err = run(os.Stdout, &cfg, args[0], args[1:]); err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}

type command struct {
	args int
	fn   func(w io.Writer, cfg *config, l *logik.Library, args []string) error
}

var commands = map[string]command{
	"list":  {0, list},
	"table": {1, table},
	"eval":  {2, eval},
	"equiv": {2, equivalent},
}

func run(w io.Writer, cfg *config, name string, args []string) error {
	if name == "init" {
		return initLibrary(w, cfg)
	}
	cmd, ok := commands[name]
	if !ok {
		return errors.Errorf("unknown command")
	}
	if len(args) != cmd.args {
		return errors.Errorf("expected %d arguments, got %d", cmd.args, len(args))
	}
	l, err := openLibrary(cfg)
	if err != nil {
		return err
	}
	return cmd.fn(w, cfg, l, args)
}

// openLibrary loads the configured library. A missing file yields the
// default library.
//
func openLibrary(cfg *config) (*logik.Library, error) {
	l, err := storage.ReadFile(cfg.Library)
	if err != nil {
		if !os.IsNotExist(errors.Cause(err)) {
			return nil, err
		}
		log.Printf("%s not found, using default gates", cfg.Library)
		l = logik.DefaultLibrary()
	}
	if cfg.Warnings {
		l.OnWarning = func(w *logik.IncompleteWiringWarning) {
			log.Print("warning: ", w)
		}
	}
	return l, nil
}

func initLibrary(w io.Writer, cfg *config) error {
	l := logik.DefaultLibrary()
	gs, err := gatelib.Standard(l)
	if err != nil {
		return err
	}
	if err = storage.WriteFile(cfg.Library, l); err != nil {
		return err
	}
	fmt.Fprintf(w, "wrote %d gates to %s\n", len(gs), cfg.Library)
	return nil
}

// gate returns the live gate with the given name, or the gate with the given
// key.
//
func gate(l *logik.Library, name string) (*logik.Gate, error) {
	if g, ok := l.Lookup(name); ok {
		return g, nil
	}
	if g, ok := l.Gate(logik.Key(name)); ok {
		return g, nil
	}
	return nil, errors.Errorf("no gate named %s", name)
}

func kind(g *logik.Gate) string {
	switch g.Operator().(type) {
	case *logik.Primitive:
		return "primitive"
	case *logik.Composite:
		return "composite"
	case *logik.Tombstone:
		return "deleted"
	}
	return "unknown"
}

type gateInfo struct {
	Key     string   `json:"key"`
	Name    string   `json:"name"`
	Kind    string   `json:"kind"`
	Inputs  []string `json:"inputs"`
	Outputs []string `json:"outputs"`
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func list(w io.Writer, cfg *config, l *logik.Library, _ []string) error {
	gs := l.Gates()
	if cfg.Format == "json" {
		infos := make([]gateInfo, len(gs))
		for i, g := range gs {
			infos[i] = gateInfo{string(g.Key()), g.Name, kind(g), g.InputNames(), g.OutputNames()}
		}
		return writeJSON(w, infos)
	}
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tKIND\tINPUTS\tOUTPUTS\tKEY")
	for _, g := range gs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n", g.Name, kind(g), g.Inputs(), g.Outputs(), g.Key())
	}
	return tw.Flush()
}

func table(w io.Writer, cfg *config, l *logik.Library, args []string) error {
	g, err := gate(l, args[0])
	if err != nil {
		return err
	}
	tt := g.TruthTable()
	if tt == nil {
		return errors.Errorf("gate %s has %d inputs and no truth table", g.Name, g.Inputs())
	}
	if cfg.Format == "json" {
		return writeJSON(w, tt.Rows())
	}
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintf(tw, "%s\t|\t%s\n", strings.Join(g.InputNames(), "\t"), strings.Join(g.OutputNames(), "\t"))
	tt.Each(func(in, out []bool) bool {
		fmt.Fprintf(tw, "%s\t|\t%s\n", cells(in), cells(out))
		return true
	})
	return tw.Flush()
}

func cells(v []bool) string {
	s := make([]string, len(v))
	for i, b := range v {
		s[i] = "0"
		if b {
			s[i] = "1"
		}
	}
	return strings.Join(s, "\t")
}

func eval(w io.Writer, cfg *config, l *logik.Library, args []string) error {
	g, err := gate(l, args[0])
	if err != nil {
		return err
	}
	in, err := logik.ParseBits(args[1])
	if err != nil {
		return err
	}
	out, err := l.Evaluate(g, in)
	if err != nil {
		return err
	}
	if cfg.Format == "json" {
		res := make(map[string]bool, len(out))
		for i, n := range g.OutputNames() {
			res[n] = out[i]
		}
		return writeJSON(w, res)
	}
	fmt.Fprintln(w, logik.Bits(out))
	return nil
}

func equivalent(w io.Writer, cfg *config, l *logik.Library, args []string) error {
	a, err := gate(l, args[0])
	if err != nil {
		return err
	}
	b, err := gate(l, args[1])
	if err != nil {
		return err
	}
	r, err := equiv.Check(l, a, b)
	if err != nil {
		return err
	}
	if cfg.Format == "json" {
		return writeJSON(w, r)
	}
	if r.Equivalent {
		fmt.Fprintf(w, "%s and %s are equivalent\n", a.Name, b.Name)
		return nil
	}
	fmt.Fprintf(w, "%s and %s differ on input %s\n", a.Name, b.Name, logik.Bits(r.Counterexample))
	return nil
}
