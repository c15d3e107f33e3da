package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dzjyyds666/pdx/sim"
	"github.com/spf13/cobra"
)

type SimParams struct {
	Scenario string `json:"scenario"` // TOML scenario file
	Rounds   int    `json:"rounds"`   // round limit override
	Seed     int64  `json:"seed"`     // RNG seed, time-based when 0
}

var simParams *SimParams

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Simulate a naval battle from a TOML scenario",
	Run:   simRun,
}

func init() {
	simParams = &SimParams{}
	simCmd.Flags().StringVarP(&simParams.Scenario, "scenario", "s", "", "TOML scenario file")
	simCmd.Flags().IntVarP(&simParams.Rounds, "rounds", "r", 0, "round limit, scenario default when 0")
	simCmd.Flags().Int64Var(&simParams.Seed, "seed", 0, "RNG seed for reproducible runs")
}

func simRun(cmd *cobra.Command, args []string) {
	if len(simParams.Scenario) == 0 {
		fmt.Println("no scenario file")
		return
	}

	var scenario sim.Scenario
	if _, err := toml.DecodeFile(simParams.Scenario, &scenario); err != nil {
		fmt.Println("read scenario error:", err)
		return
	}
	if simParams.Rounds > 0 {
		scenario.Rounds = simParams.Rounds
	}

	seed := simParams.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	log := sim.New(scenario, seed).Run()

	fmt.Println("===== Battle Simulation Results =====")
	fmt.Println(renderBattleLog(log))
}

func renderBattleLog(log []sim.Round) string {
	maxSmalls := 0
	for _, r := range log {
		if len(r.Smalls) > maxSmalls {
			maxSmalls = len(r.Smalls)
		}
	}

	headers := []string{"Round", "Large HP", "Large ORG", "Eff. Attack", "Dmg to Large"}
	for i := 1; i <= maxSmalls; i++ {
		headers = append(headers, fmt.Sprintf("Small %d HP", i), fmt.Sprintf("Small %d ORG", i))
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...)
	for _, r := range log {
		row := []string{
			strconv.Itoa(r.Number),
			formatStat(r.LargeHP),
			formatStat(r.LargeOrg),
			formatStat(r.EffectiveAttack),
			formatStat(r.DamageToLarge),
		}
		for i := 0; i < maxSmalls; i++ {
			if i < len(r.Smalls) {
				row = append(row, formatStat(r.Smalls[i].HP), formatStat(r.Smalls[i].Org))
			} else {
				row = append(row, "-", "-")
			}
		}
		t.Row(row...)
	}
	return t.String()
}

func formatStat(f float64) string {
	return strconv.FormatFloat(f, 'f', 1, 64)
}
