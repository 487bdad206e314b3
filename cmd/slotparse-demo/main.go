// Demo program showing slot extraction across languages and kind filters
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/slotparse/internal/dispatch"
)

type sample struct {
	lang  string
	query string
	kinds []string
}

func main() {
	fmt.Println("=== Slot Extraction Demo ===")
	fmt.Println()

	ref := time.Date(2013, 2, 12, 4, 30, 0, 0, time.UTC)
	fmt.Printf("Reference time: %s\n\n", ref.Format(time.RFC3339))

	samples := []sample{
		{lang: "fr", query: "quarante deux"},
		{lang: "en", query: "tomorrow I will work for 3 hours"},
		{lang: "en", query: "tomorrow I will work for 3 hours", kinds: []string{"duration"}},
		{lang: "en", query: "between 9am and 11am it costs $20 at 25°C"},
		{lang: "fr", query: "demain à 17h, 50 pour cent de réduction"},
		{lang: "de", query: "3,5%"},
		{lang: "xx", query: "42"},
	}

	for _, s := range samples {
		fmt.Printf("[%s] %q", s.lang, s.query)
		if len(s.kinds) > 0 {
			fmt.Printf(" kinds=%s", strings.Join(s.kinds, ","))
		}
		fmt.Println()
		fmt.Println(strings.Repeat("-", 60))

		d, err := dispatch.New(s.lang)
		if err != nil {
			fmt.Printf("  ⚠️  %v\n\n", err)
			continue
		}

		values, err := d.ParseAt(s.query, ref, s.kinds)
		if err != nil {
			fmt.Printf("  ⚠️  %v\n\n", err)
			continue
		}
		if len(values) == 0 {
			fmt.Printf("  (no values)\n\n")
			continue
		}

		for _, v := range values {
			data, err := json.Marshal(v)
			if err != nil {
				fmt.Fprintf(os.Stderr, "marshal: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s\n", data)
		}
		fmt.Println()
	}
}
