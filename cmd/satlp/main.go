package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/tliron/commonlog"

	"satlp/internal/clauseset"
	"satlp/internal/errors"
	"satlp/internal/solverapi"
	"satlp/internal/surface"
	"satlp/internal/tseitin"
)

func main() {
	bvFlag := flag.Bool("bv", false, "treat the input as a bit-vector constraint set instead of a propositional formula")
	explain := flag.Bool("explain", false, "print the Tseitin-encoded clause set alongside the result")
	verbose := flag.Bool("verbose", false, "enable debug logging")
	flag.Parse()

	if flag.NArg() < 1 {
		fmt.Println("Usage: satlp [-bv] [-explain] [-verbose] <file.prop|file.bv>")
		os.Exit(1)
	}

	verbosity := 0
	if *verbose {
		verbosity = 1
	}
	commonlog.Configure(verbosity, nil)

	path := flag.Arg(0)
	source, err := os.ReadFile(path)
	if err != nil {
		color.Red("failed to read %s: %s", path, err)
		os.Exit(1)
	}

	bv := *bvFlag || strings.EqualFold(filepath.Ext(path), ".bv")

	start := time.Now()
	if bv {
		err = runBV(path, string(source))
	} else {
		err = runProp(path, string(source), *explain)
	}
	log.Printf("solve finished in %s (bv=%v)", time.Since(start), bv)

	if err != nil {
		os.Exit(1)
	}
}

func runProp(path, source string, explain bool) error {
	formula, err := surface.ParseProp(path, source)
	if err != nil {
		return err
	}
	root := surface.BuildProp(formula)

	if explain {
		encoded := tseitin.Encode(root)
		printClauses(encoded.Formula)
	}

	result := solverapi.SolvePropositional(root)
	if !result.SAT {
		color.Red("UNSAT")
		return errors.ErrUnsat
	}

	color.Green("SAT")
	for name, value := range result.Model {
		fmt.Printf("  %s = %v\n", name, value)
	}
	return nil
}

func runBV(path, source string) error {
	conjunction, err := surface.ParseBV(path, source)
	if err != nil {
		return err
	}
	conjuncts, err := surface.BuildBV(conjunction)
	if err != nil {
		color.Red("%s", err)
		return err
	}

	solver := solverapi.NewBVSolver()
	for _, c := range conjuncts {
		if err := solver.Add(c); err != nil {
			color.Red("%s", err)
			return err
		}
	}

	model, err := solver.Solve()
	if err != nil {
		if errors.IsUnsat(err) {
			color.Red("UNSAT")
		} else {
			color.Red("%s", err)
		}
		return err
	}

	color.Green("SAT")
	for name, value := range model {
		fmt.Printf("  %s = %d\n", name, value)
	}
	return nil
}

func printClauses(f *clauseset.Formula) {
	color.Cyan("clauses: %s", f.String())
}
