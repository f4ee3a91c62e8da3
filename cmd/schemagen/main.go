package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/in-toto/go-vts/protocol"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: schemagen <schema directory>")
		os.Exit(1)
	}

	outputDir := os.Args[1]
	if outputDir == "" {
		outputDir = "schemas"
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}

	schemas := protocol.Schemas()
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}

	sort.Strings(names)
	for _, name := range names {
		bytes, err := schemas[name].MarshalJSON()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		filename := filepath.Join(outputDir, name+".json")
		if err := os.WriteFile(filename, bytes, 0o644); err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		fmt.Println("wrote", filename)
	}
}
