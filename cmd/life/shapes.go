package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var shapesCmd = &cobra.Command{
	Use:   "shapes [name]",
	Short: "List the known shapes",
	Long: `List the built-in shapes and those loaded from --shapes-dir.
With a name, print that shape's pattern.

Examples:
  life shapes
  life shapes pulsar
  life shapes --shapes-dir ~/.life/shapes`,
	Args: cobra.MaximumNArgs(1),
	Run:  runShapes,
}

func runShapes(_ *cobra.Command, args []string) {
	a := setup()

	if len(args) == 1 {
		shape, ok := a.catalog.Lookup(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown shape %q\n", args[0])
			fmt.Fprintln(os.Stderr, "Run 'life shapes' to see available shapes.")
			os.Exit(1)
		}
		fmt.Printf("%s (%dx%d, %d cells)\n", shape.Name, shape.Columns, shape.Rows, len(shape.Cells))
		if shape.Description != "" {
			fmt.Println(shape.Description)
		}
		fmt.Println()
		fmt.Println(shape.Pattern())
		return
	}

	fmt.Println("Available shapes:")
	fmt.Println()
	for _, shape := range a.catalog.List() {
		size := fmt.Sprintf("%dx%d", shape.Columns, shape.Rows)
		fmt.Printf("  %-14s %-7s %s\n", shape.Name, size, shape.Description)
	}
	fmt.Println()
	fmt.Println("Use 'shape <name>' in the shell or 'life watch --shape <name>'.")
}
