// Package cli implements asctl, the administrative command line for the
// roster database.
package cli

import (
	"context"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/as_manager/internal/app"
	"github.com/festy23/as_manager/internal/auth/session"
	"github.com/festy23/as_manager/internal/config"
)

// Runtime holds what commands run against.
type Runtime struct {
	Config config.Config
	Logger *zap.SugaredLogger
	// OpenDB opens the roster database.
	OpenDB func(ctx context.Context) (*gorm.DB, error)
}

type state struct {
	rt      *Runtime
	format  string
	noColor bool
	db      *gorm.DB
}

// NewRootCmd creates the asctl root command.
func NewRootCmd(rt *Runtime) *cobra.Command {
	st := &state{rt: rt, format: formatText}

	rootCmd := &cobra.Command{
		Use:   "asctl",
		Short: "Administer the clan roster",
		Long: `asctl manages the roster database directly: schema migrations,
players, team membership and roster statistics.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if st.format != formatText && st.format != formatJSON {
				return fmt.Errorf("invalid --output %q (must be: text, json)", st.format)
			}
			if st.noColor {
				color.NoColor = true
			}
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&st.format, "output", "o", st.format, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVar(&st.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(newMigrateCmd(st))
	rootCmd.AddCommand(newPlayerCmd(st))
	rootCmd.AddCommand(newTeamCmd(st))
	rootCmd.AddCommand(newStatsCmd(st))

	return rootCmd
}

// database opens the database once per invocation.
func (s *state) database(ctx context.Context) (*gorm.DB, error) {
	if s.db != nil {
		return s.db, nil
	}
	db, err := s.rt.OpenDB(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db
	return db, nil
}

func (s *state) services(ctx context.Context) (*app.Services, error) {
	db, err := s.database(ctx)
	if err != nil {
		return nil, err
	}
	return app.NewServices(app.Deps{
		Config:   s.rt.Config,
		DB:       db,
		Sessions: session.NewMemoryStore(),
		Logger:   s.rt.Logger,
	})
}

func (s *state) out(cmd *cobra.Command) *output {
	return newOutput(cmd.OutOrStdout(), s.format)
}
