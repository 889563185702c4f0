package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tournament-tools/prize-allocator/pkg/core/services"
)

// ValidateTournamentCmd creates the validateTournament command
func ValidateTournamentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validateTournament",
		Short: "Load and validate a tournament file without allocating",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tournamentFile, _ := cmd.Flags().GetString("tournament-file")

			result, err := services.ValidateTournament(
				app.Tournaments,
				app.Cfg,
				app.Logger,
				tournamentFile,
				time.Now(),
			)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			fmt.Printf("\n🔍 Tournament Validation\n\n")
			fmt.Printf("Tournament:     %s\n", result.TournamentName)
			fmt.Printf("Reference Date: %s\n", result.ReferenceDate.Format("2006-01-02"))
			fmt.Printf("Players:        %d\n", result.PlayerCount)
			fmt.Printf("Overrides:      %d\n", result.OverrideCount)
			fmt.Println()

			fmt.Printf("Categories (%d):\n", len(result.Categories))
			for _, category := range result.Categories {
				kind := "side"
				if category.IsMain {
					kind = "main"
				}
				fmt.Printf("  • %s (%s, %s, %d prizes): %s\n",
					category.Name, category.ID, kind, category.PrizeCount, category.Criteria)
				if category.AgeBand != nil {
					fmt.Printf("      effective age band: %d-%d\n", category.AgeBand.MinAge, category.AgeBand.MaxAge)
				}
			}
			fmt.Println()

			return nil
		},
	}

	cmd.Flags().String("tournament-file", "", "Tournament file to validate (defaults to the configured file)")

	return cmd
}
