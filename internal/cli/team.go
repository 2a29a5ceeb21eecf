package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/festy23/as_manager/internal/apperror"
	playerModel "github.com/festy23/as_manager/internal/player/model"
	teamModel "github.com/festy23/as_manager/internal/team/model"
	"github.com/festy23/as_manager/internal/web"
)

func newTeamCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Team membership commands",
	}

	cmd.AddCommand(newTeamShowCmd(st))
	cmd.AddCommand(newTeamSaveCmd(st))

	return cmd
}

func parseTeamID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperror.Invalid("invalid team id %q", arg)
	}
	return id, nil
}

func newTeamShowCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "show TEAM_ID",
		Short: "Show a team and its members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTeamID(args[0])
			if err != nil {
				return err
			}
			svc, err := st.services(cmd.Context())
			if err != nil {
				return err
			}
			details, err := svc.Teams.Details(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printTeam(st.out(cmd), details.Team, details.Members)
		},
	}
}

func newTeamSaveCmd(st *state) *cobra.Command {
	var name, contact, platoon, added, removed string

	cmd := &cobra.Command{
		Use:   "save TEAM_ID",
		Short: "Edit a team and reconcile its membership",
		Long: `save applies a team edit. Players listed in --add join the team and
players listed in --remove leave it; everyone else is left alone.
Fields whose flags are not given keep their current values.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTeamID(args[0])
			if err != nil {
				return err
			}
			svc, err := st.services(cmd.Context())
			if err != nil {
				return err
			}
			current, err := svc.Teams.Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			req := &teamModel.SaveTeamRequest{
				Name:            current.Name,
				ContactPersonID: current.ContactPersonID,
				PlatoonID:       current.PlatoonID,
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = name
			}
			if flags.Changed("contact") {
				if req.ContactPersonID, err = web.ParseOptionalID(contact); err != nil {
					return apperror.Invalid("invalid contact person id %q", contact)
				}
			}
			if flags.Changed("platoon") {
				if req.PlatoonID, err = web.ParseOptionalID(platoon); err != nil {
					return apperror.Invalid("invalid platoon id %q", platoon)
				}
			}
			if req.Added, err = teamModel.ParseIDList(added); err != nil {
				return err
			}
			if req.Removed, err = teamModel.ParseIDList(removed); err != nil {
				return err
			}

			result, err := svc.Teams.Save(cmd.Context(), id, req)
			if err != nil {
				return err
			}

			out := st.out(cmd)
			if out.isJSON() {
				return out.json(result)
			}
			out.success("saved team %s: %d added, %d removed", result.Team.Name, len(result.Added), len(result.Removed))
			return printTeam(out, result.Team, result.Members)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "New team name")
	cmd.Flags().StringVar(&contact, "contact", "", "Contact person id (empty clears it)")
	cmd.Flags().StringVar(&platoon, "platoon", "", "Platoon id (empty clears it)")
	cmd.Flags().StringVar(&added, "add", "", "Comma separated player ids to add")
	cmd.Flags().StringVar(&removed, "remove", "", "Comma separated player ids to remove")

	return cmd
}

func printTeam(out *output, team teamModel.Team, members []playerModel.Player) error {
	if out.isJSON() {
		return out.json(teamModel.Details{Team: team, Members: members})
	}

	fmt.Fprintf(out.w, "Team %d: %s\n", team.ID, team.Name)
	fmt.Fprintf(out.w, "Contact: %s\n", orNone(web.FormatOptionalID(team.ContactPersonID)))
	fmt.Fprintf(out.w, "Platoon: %s\n", orNone(web.FormatOptionalID(team.PlatoonID)))
	if len(members) == 0 {
		out.muted("no members")
		return nil
	}

	rows := make([][]string, 0, len(members))
	for _, p := range members {
		role := ""
		if team.HasContact(p.ID) {
			role = "contact"
		}
		rows = append(rows, []string{strconv.FormatInt(p.ID, 10), p.TagName, role})
	}
	return out.table([]string{"ID", "TAG", "ROLE"}, rows)
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}
	return s
}
