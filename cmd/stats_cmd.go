package cmd

import (
	"fmt"
	"os"

	"github.com/dzjyyds666/pdx/parse/pdx"
	"github.com/dzjyyds666/pdx/stats"
	"github.com/spf13/cobra"
)

type StatsParams struct {
	Modules []string `json:"modules"` // module definition files
	Ships   []string `json:"ships"`   // ship hull definition files
	Output  string   `json:"output"`  // CSV output path
}

var statsParams *StatsParams

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate ship stats from hull and module files into a CSV",
	Run:   statsRun,
}

func init() {
	statsParams = &StatsParams{}
	statsCmd.Flags().StringSliceVarP(&statsParams.Modules, "modules", "m", nil, "module definition files")
	statsCmd.Flags().StringSliceVarP(&statsParams.Ships, "ships", "s", nil, "ship hull definition files")
	statsCmd.Flags().StringVarP(&statsParams.Output, "output", "o", "ship_stats.csv", "CSV output path")
}

func statsRun(cmd *cobra.Command, args []string) {
	if len(statsParams.Modules) == 0 || len(statsParams.Ships) == 0 {
		fmt.Println("need at least one module file and one ship file")
		return
	}

	// A malformed file fails that file alone; the batch keeps going.
	modules := make(map[string]stats.ModuleStats)
	for _, path := range statsParams.Modules {
		doc, err := pdx.ParseFile(path)
		if err != nil {
			fmt.Println("skip", path, "->", err)
			continue
		}
		for name, mod := range stats.ExtractModules(doc) {
			modules[name] = mod
		}
	}

	var results []stats.ShipStats
	for _, path := range statsParams.Ships {
		doc, err := pdx.ParseFile(path)
		if err != nil {
			fmt.Println("skip", path, "->", err)
			continue
		}
		for _, ship := range stats.ExtractShips(doc) {
			results = append(results, stats.Calculate(ship, modules))
		}
	}

	f, err := os.Create(statsParams.Output)
	if err != nil {
		fmt.Println("create output error:", err)
		return
	}
	defer f.Close()
	if err := stats.WriteCSV(f, results); err != nil {
		fmt.Println("write csv error:", err)
		return
	}
	fmt.Println("output saved to", statsParams.Output)
}
