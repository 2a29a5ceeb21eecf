package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	playerModel "github.com/festy23/as_manager/internal/player/model"
	"github.com/festy23/as_manager/internal/web"
)

func newPlayerCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Player management commands",
	}

	cmd.AddCommand(newPlayerCreateCmd(st))
	cmd.AddCommand(newPlayerListCmd(st))

	return cmd
}

func newPlayerCreateCmd(st *state) *cobra.Command {
	var req playerModel.CreatePlayerRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := st.services(cmd.Context())
			if err != nil {
				return err
			}
			player, err := svc.Players.Create(cmd.Context(), &req)
			if err != nil {
				return err
			}

			out := st.out(cmd)
			if out.isJSON() {
				return out.json(player)
			}
			out.success("created player %s (id %d)", player.TagName, player.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Email, "email", "", "Email address (required)")
	cmd.Flags().StringVar(&req.TagName, "tag", "", "Tag name (required)")
	cmd.Flags().StringVar(&req.Password, "password", "", "Password; without one the player cannot log in")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("tag")

	return cmd
}

func newPlayerListCmd(st *state) *cobra.Command {
	var (
		query string
		limit int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := st.services(cmd.Context())
			if err != nil {
				return err
			}

			players, err := svc.Players.Filter(cmd.Context(), query, limit)
			if err != nil {
				return err
			}

			out := st.out(cmd)
			if out.isJSON() {
				return out.json(playerModel.ListResponse{Players: players, Total: len(players)})
			}
			if len(players) == 0 {
				out.muted("no players")
				return nil
			}
			rows := make([][]string, 0, len(players))
			for _, p := range players {
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					p.TagName,
					p.Email,
					strconv.FormatBool(p.Active),
					web.FormatOptionalID(p.TeamID),
				})
			}
			return out.table([]string{"ID", "TAG", "EMAIL", "ACTIVE", "TEAM"}, rows)
		},
	}

	cmd.Flags().StringVarP(&query, "query", "q", "", "Filter by tag name or email")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of filtered results")

	return cmd
}
