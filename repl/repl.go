// Package repl is an interactive solve session: read a line, parse it as
// either a propositional formula or a bit-vector conjunction, solve it,
// and print the result.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"satlp/internal/solverapi"
	"satlp/internal/surface"
)

const PROMPT = ">> "

// Start runs the REPL loop over in until EOF. A line consisting of just
// ":bv" switches to bit-vector mode for the rest of the session; ":prop"
// switches back. The default mode is propositional.
func Start(in io.Reader) {
	scanner := bufio.NewScanner(in)
	bv := false

	for {
		fmt.Print(PROMPT)
		if !scanner.Scan() {
			return
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case ":bv":
			bv = true
			color.Cyan("switched to bit-vector mode")
			continue
		case ":prop":
			bv = false
			color.Cyan("switched to propositional mode")
			continue
		}

		if bv {
			evalBV(line)
		} else {
			evalProp(line)
		}
	}
}

func evalProp(line string) {
	formula, err := surface.ParseProp("<repl>", line)
	if err != nil {
		color.Red("%s", err)
		return
	}

	result := solverapi.SolvePropositional(surface.BuildProp(formula))
	if !result.SAT {
		color.Red("UNSAT")
		return
	}

	color.Green("SAT")
	for name, value := range result.Model {
		fmt.Printf("  %s = %v\n", name, value)
	}
}

func evalBV(line string) {
	conjunction, err := surface.ParseBV("<repl>", line)
	if err != nil {
		color.Red("%s", err)
		return
	}
	conjuncts, err := surface.BuildBV(conjunction)
	if err != nil {
		color.Red("%s", err)
		return
	}

	solver := solverapi.NewBVSolver()
	for _, c := range conjuncts {
		if err := solver.Add(c); err != nil {
			color.Red("%s", err)
			return
		}
	}

	model, err := solver.Solve()
	if err != nil {
		color.Red("%s", err)
		return
	}

	color.Green("SAT")
	for name, value := range model {
		fmt.Printf("  %s = %d\n", name, value)
	}
}
