package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ppiankov/slotparse/internal/ontology"
	"github.com/ppiankov/slotparse/internal/rules"
)

var kindsCmd = &cobra.Command{
	Use:   "kinds",
	Short: "List the kinds accepted by --kinds",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "KIND\tDESCRIPTION")
		for _, k := range ontology.AllKinds() {
			fmt.Fprintf(w, "%s\t%s\n", k, kindDescriptions[k])
		}
		_ = w.Flush()
	},
}

var kindDescriptions = map[ontology.OutputKind]string{
	ontology.KindNumber:           "integers and decimals, digits or words",
	ontology.KindOrdinal:          "ranks such as 3rd or first",
	ontology.KindPercentage:       "50%, 12 percent",
	ontology.KindDatetime:         "points in time",
	ontology.KindDatetimeInterval: "time ranges, open or closed",
	ontology.KindAmountOfMoney:    "$20, 5 euros",
	ontology.KindTemperature:      "20°C, 70 degrees",
	ontology.KindDuration:         "3 hours, 2 months and 5 days",
	ontology.KindDate:             "datetimes of day grain or coarser",
	ontology.KindTime:             "datetimes finer than a day",
	ontology.KindDatePeriod:       "intervals bounded by days or coarser",
	ontology.KindTimePeriod:       "intervals bounded by hours or finer",
}

var langsCmd = &cobra.Command{
	Use:   "langs",
	Short: "List supported languages",
	Run: func(cmd *cobra.Command, args []string) {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "LANG\tRULES")
		for _, l := range ontology.AllLangs() {
			coverage := "digits and symbols"
			if rules.HasWordRules(l) {
				coverage = "words, digits and symbols"
			}
			fmt.Fprintf(w, "%s\t%s\n", l, coverage)
		}
		_ = w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(kindsCmd)
	rootCmd.AddCommand(langsCmd)
}
