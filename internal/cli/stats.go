package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

func newStatsCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print roster statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := st.services(cmd.Context())
			if err != nil {
				return err
			}
			summary, err := svc.Statistics.GetSummary(cmd.Context())
			if err != nil {
				return err
			}

			out := st.out(cmd)
			if out.isJSON() {
				return out.json(summary)
			}

			counts := [][]string{
				{"players", strconv.Itoa(summary.TotalPlayers)},
				{"active players", strconv.Itoa(summary.ActivePlayers)},
				{"players without team", strconv.Itoa(summary.PlayersWithoutTeam)},
				{"teams", strconv.Itoa(summary.Teams)},
				{"platoons", strconv.Itoa(summary.Platoons)},
				{"upcoming events", strconv.Itoa(summary.UpcomingEvents)},
			}
			if err := out.table([]string{"METRIC", "VALUE"}, counts); err != nil {
				return err
			}
			if len(summary.TeamSizes) == 0 {
				return nil
			}

			sizes := make([][]string, 0, len(summary.TeamSizes))
			for _, ts := range summary.TeamSizes {
				sizes = append(sizes, []string{strconv.FormatInt(ts.TeamID, 10), ts.TeamName, strconv.Itoa(ts.Members)})
			}
			return out.table([]string{"TEAM", "NAME", "MEMBERS"}, sizes)
		},
	}
}
