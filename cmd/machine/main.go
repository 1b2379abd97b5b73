package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vbutenko/csa-toolchain/isa"
	"github.com/vbutenko/csa-toolchain/simulation"
)

func main() {
	var verbose bool
	var outputInt bool
	var budget int

	flag.BoolVar(&verbose, "v", false, "Verbose mode")
	flag.BoolVar(&outputInt, "int", false, "Print output buffer as space-separated decimal integers")
	flag.IntVar(&budget, "budget", simulation.DefaultTickBudget, "Tick budget")
	flag.Parse()

	if flag.NArg() != 2 {
		log.Fatalf("usage: %v [-v] [-int] [-budget N] <program.json> <input_schedule.json>", os.Args[0])
	}
	programPath, schedulePath := flag.Arg(0), flag.Arg(1)

	programData, err := os.ReadFile(programPath)
	if err != nil {
		log.Fatalf("%v: %v", programPath, err)
	}
	var prog isa.Program
	if err := json.Unmarshal(programData, &prog); err != nil {
		log.Fatalf("%v: %v", programPath, err)
	}

	scheduleData, err := os.ReadFile(schedulePath)
	if err != nil {
		log.Fatalf("%v: %v", schedulePath, err)
	}
	schedule, err := simulation.ParseSchedule(scheduleData)
	if err != nil {
		log.Fatalf("%v: %v", schedulePath, err)
	}

	result, err := simulation.Run(&prog, schedule, budget, verbose)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if outputInt {
		parts := make([]string, len(result.Output))
		for i, v := range result.Output {
			parts[i] = fmt.Sprintf("%d", v)
		}
		fmt.Println(strings.Join(parts, " "))
	} else {
		var sb strings.Builder
		for _, v := range result.Output {
			sb.WriteRune(rune(v))
		}
		fmt.Print(sb.String())
	}

	fmt.Printf("instr_counter: %d ticks: %d\n", result.InstrCount, result.Tick)
}
