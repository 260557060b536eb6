package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
)

func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func jsonOutput() (bool, error) {
	switch outputFormat {
	case "", "text":
		return false, nil
	case "json":
		return true, nil
	default:
		return false, fmt.Errorf("unknown output format %q: must be text or json", outputFormat)
	}
}

// formatRate rounds to four places and trims trailing zeros: 2 -> "2", 0.5 -> "0.5"
func formatRate(v float64) string {
	return strconv.FormatFloat(math.Round(v*1e4)/1e4, 'f', -1, 64)
}

func formatMachines(exact, rounded *float64) string {
	switch {
	case rounded != nil && exact != nil && *rounded != *exact:
		return fmt.Sprintf("%s (%.2f)", formatRate(*rounded), *exact)
	case rounded != nil:
		return formatRate(*rounded)
	case exact != nil:
		return fmt.Sprintf("%.2f", *exact)
	default:
		return "-"
	}
}
