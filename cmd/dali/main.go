// Command dali is a thin wrapper around the placement core's public entry
// point. It understands the flag surface of spec §6.4 but does not
// implement LEF/DEF/Bookshelf/CELL parsing itself (spec Non-goal) — that
// parsing is an external collaborator this binary expects to be wired to
// in a full build.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/dali-eda/dali/phydb"
)

var errParsingUnavailable = errors.New("dali: file-format parsing is not implemented in this build")

type cliFlags struct {
	lef  string
	def  string
	cell string
	bs   string
	pl   string
	gx   float64
	gy   float64
	out  string
}

func parseFlags(args []string) (cliFlags, error) {
	fs := flag.NewFlagSet("dali", flag.ContinueOnError)
	var f cliFlags
	fs.StringVar(&f.lef, "lef", "", "input LEF technology file")
	fs.StringVar(&f.def, "def", "", "input DEF placement file")
	fs.StringVar(&f.cell, "cell", "", "input Bookshelf .nodes/.nets cell file")
	fs.StringVar(&f.bs, "bs", "", "Bookshelf design name")
	fs.StringVar(&f.pl, "pl", "", "input Bookshelf .pl placement file")
	fs.Float64Var(&f.gx, "gx", 0, "placement grid step, x")
	fs.Float64Var(&f.gy, "gy", 0, "placement grid step, y")
	fs.StringVar(&f.out, "o", "", "output file base name")
	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}
	return f, nil
}

// loadView resolves a phydb.ConsumerView from the given flags. File-based
// loading is the deliberately unimplemented part of this core (spec §1
// Non-goals); this function exists so the wiring between flags and the
// placement pipeline is complete and testable even though no parser backs
// it yet.
func loadView(f cliFlags) (phydb.ConsumerView, error) {
	if f.lef == "" && f.def == "" && f.cell == "" && f.pl == "" {
		return nil, fmt.Errorf("dali: no input files given: %w", errParsingUnavailable)
	}
	return nil, errParsingUnavailable
}

func run(args []string) error {
	f, err := parseFlags(args)
	if err != nil {
		return err
	}
	if f.gx <= 0 || f.gy <= 0 {
		return fmt.Errorf("dali: -gx and -gy must be positive placement-grid steps")
	}

	if _, err := loadView(f); err != nil {
		return err
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Print(err)
		os.Exit(1)
	}
	os.Exit(0)
}
