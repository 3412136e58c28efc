// spvdis - SPIR-V disassembler
// Generates .spvasm text accepted by spvval -text
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/gogpu/spvval"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(stderr, "Usage: spvdis <file.spv>")
		return 2
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	text, err := spvval.Disassemble(data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Fprint(stdout, text)
	return 0
}
