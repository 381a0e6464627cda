package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"scamshield/internal/domain/services"
)

// Command-line analyzer: reads a message from --text or stdin and
// prints the assessment as JSON.
func main() {
	text := flag.String("text", "", "text to analyze (reads stdin when empty)")
	flag.Parse()

	input := *text
	if input == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to read stdin: %v\n", err)
			os.Exit(1)
		}
		input = string(data)
	}

	analyzer := services.NewAnalyzer(zerolog.Nop())
	result := analyzer.Analyze(input, nil)

	enc := json.NewEncoder(os.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		fmt.Fprintf(os.Stderr, "failed to encode result: %v\n", err)
		os.Exit(1)
	}
}
