package cli

import (
	"github.com/spf13/cobra"

	"github.com/festy23/as_manager/internal/database/migrate"
)

func newMigrateCmd(st *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := st.database(cmd.Context())
			if err != nil {
				return err
			}
			if err := migrate.Migrate(db); err != nil {
				return err
			}
			st.out(cmd).success("migrations applied")
			return nil
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Roll back migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := st.database(cmd.Context())
			if err != nil {
				return err
			}
			if err := migrate.Rollback(db, steps); err != nil {
				return err
			}
			st.out(cmd).success("migrations rolled back")
			return nil
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back (0 rolls back all)")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := st.database(cmd.Context())
			if err != nil {
				return err
			}
			version, dirty, err := migrate.Version(db)
			if err != nil {
				return err
			}
			out := st.out(cmd)
			if out.isJSON() {
				return out.json(map[string]any{"version": version, "dirty": dirty})
			}
			if dirty {
				out.success("version %d (dirty)", version)
				return nil
			}
			out.success("version %d", version)
			return nil
		},
	})

	return cmd
}
