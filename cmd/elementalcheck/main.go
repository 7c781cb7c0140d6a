// Command elementalcheck scans a Go package directory and reports the
// functions whose signature matches the "elemental" shape required by
// Variable.Elemental1/Elemental2: one or more non-variadic float64
// parameters and a single float64 result.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/quantkit/quantad/internal/elementalcheck"
)

func init() {
	flag.Usage = func() {
		log.Printf("elementalcheck [package-dir]\n")
		flag.PrintDefaults()
	}
	log.SetFlags(0)
}

func main() {
	flag.Parse()

	dir := "."
	if flag.NArg() == 1 {
		dir = flag.Arg(0)
	} else if flag.NArg() > 1 {
		log.Fatalf("unexpected positional arguments: %v", flag.Args()[1:])
	}

	candidates, err := elementalcheck.Check(dir)
	if err != nil {
		log.Fatalf("elementalcheck: %v", err)
	}
	if len(candidates) == 0 {
		log.Printf("no elemental-shaped functions found in %s", dir)
		return
	}
	for _, c := range candidates {
		log.Printf("%s:%d: %s", c.Pos.Filename, c.Pos.Line, c.Name)
	}
	os.Exit(0)
}
