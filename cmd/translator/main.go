package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/vbutenko/csa-toolchain/translator"
)

func main() {
	var verbose bool
	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatalf("usage: %v [-v] <input.asm> <output.json>", os.Args[0])
	}
	inputPath, outputPath := flag.Arg(0), flag.Arg(1)

	source, err := os.ReadFile(inputPath)
	if err != nil {
		log.Fatalf("%v: %v", inputPath, err)
	}

	if verbose {
		log.Printf("translator: compiling %v", inputPath)
	}

	prog, err := translator.Translate(string(source))
	if err != nil {
		log.Fatalf("%v: %v", inputPath, err)
	}

	if verbose {
		log.Printf("translator: resolved %d instructions, %d data cells", len(prog.Code), len(prog.Data))
	}

	out, err := json.MarshalIndent(prog, "", "  ")
	if err != nil {
		log.Fatalf("%v: %v", outputPath, err)
	}

	if err := os.WriteFile(outputPath, out, 0644); err != nil {
		log.Fatalf("%v: %v", outputPath, err)
	}
}
