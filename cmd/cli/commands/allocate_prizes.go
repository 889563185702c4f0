package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/tournament-tools/prize-allocator/pkg/core/services"
)

// AllocatePrizesCmd creates the allocatePrizes command
func AllocatePrizesCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "allocatePrizes",
		Short: "Allocate tournament prizes to the ranked roster",
		Long:  "Run the allocation engine: order prizes by priority, apply manual overrides, then assign the best eligible player to each prize or diagnose why none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			tournamentFile, _ := cmd.Flags().GetString("tournament-file")
			showCoverage, _ := cmd.Flags().GetBool("show-coverage")

			app.Logger.Debug("allocatePrizes command",
				zap.String("tournament_file", tournamentFile),
				zap.Bool("show_coverage", showCoverage))

			result, err := services.AllocatePrizes(
				app.Tournaments,
				app.Cfg,
				app.Logger,
				tournamentFile,
				time.Now(),
			)
			if err != nil {
				return fmt.Errorf("allocation failed: %w", err)
			}

			// Display header
			fmt.Printf("\n🏆 Prize Allocation Results\n\n")
			fmt.Printf("Run ID:         %s\n", result.RunID)
			fmt.Printf("Tournament:     %s\n", result.TournamentName)
			fmt.Printf("Reference Date: %s\n", result.ReferenceDate.Format("2006-01-02"))
			fmt.Printf("Players:        %d\n", result.PlayerCount)
			fmt.Printf("Categories:     %d\n", result.CategoryCount)
			fmt.Printf("Prizes:         %d\n", result.PrizeCount)
			fmt.Println()

			// Display winners
			fmt.Printf("✅ Winners (%d):\n", len(result.Winners))
			for _, winner := range result.Winners {
				manual := ""
				if winner.IsManual {
					manual = " [manual]"
				}
				fmt.Printf("  • %s → %s%s\n", winner.PrizeID, winner.PlayerID, manual)
			}
			fmt.Println()

			// Display unfilled prizes
			if len(result.Unfilled) > 0 {
				fmt.Printf("❌ Unfilled Prizes (%d):\n", len(result.Unfilled))
				for _, entry := range result.Unfilled {
					fmt.Printf("  • %s - %s: %s\n", entry.PrizeID, entry.ReasonCode, entry.Diagnosis)
				}
				fmt.Println()
			}

			// Display conflicts
			if len(result.Conflicts) > 0 {
				fmt.Printf("⚠️  Conflicts (%d):\n", len(result.Conflicts))
				for _, conflict := range result.Conflicts {
					fmt.Printf("  • [%s] prizes %v, players %v\n", conflict.Type, conflict.ImpactedPrizes, conflict.ImpactedPlayers)
					for _, reason := range conflict.Reasons {
						fmt.Printf("      %s\n", reason)
					}
					fmt.Printf("      Suggested: %s\n", conflict.Suggested)
				}
				fmt.Println()
			}

			// Display per-prize coverage
			if showCoverage {
				fmt.Printf("📋 Coverage:\n")
				for _, row := range result.Coverage {
					fmt.Printf("  • %s (%s): eligible %d, after cap %d - %s\n",
						row.PrizeID, row.CategoryName, row.EligibleBeforeCap, row.EligibleAfterCap, row.Priority)
					if row.Diagnosis != "" {
						fmt.Printf("      %s\n", row.Diagnosis)
					}
				}
				fmt.Println()
			}

			return nil
		},
	}

	cmd.Flags().String("tournament-file", "", "Tournament file to allocate (defaults to the configured file)")
	cmd.Flags().Bool("show-coverage", false, "Print the per-prize coverage report")

	return cmd
}
