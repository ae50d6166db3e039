// Package cli implements the studyctl command tree on top of the client store
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/studyshelf/backend/internal/client"
	"github.com/studyshelf/backend/internal/config"
)

type app struct {
	cfgFile string
	apiURL  string
	origin  string
	logger  *zap.Logger
	store   *client.Store
}

// NewRootCmd builds the command tree. Output goes to out, errors and the offline banner to errOut.
//
// Settings come from flags, then the --config file (keys "api" and "origin"), then cfg.
func NewRootCmd(cfg config.ClientConfig, logger *zap.Logger, out, errOut io.Writer) *cobra.Command {
	a := &app{logger: logger}

	root := &cobra.Command{
		Use:           "studyctl",
		Short:         "Manage study courses and lessons",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := a.initConfig(cmd); err != nil {
				return err
			}

			a.store = client.NewStore(client.NewAPIClient(a.apiURL), a.origin, a.logger)
			if err := a.store.Refresh(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "OFFLINE: cannot reach the course service at %s\n", a.apiURL)
			}
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "config file (yaml, toml or json)")
	root.PersistentFlags().String("api", cfg.APIURL, "course service base URL")
	root.PersistentFlags().String("origin", cfg.Origin, "origin passed to YouTube embeds")

	root.AddCommand(
		newCoursesCmd(a),
		newLessonsCmd(a),
		newExportCmd(a),
	)
	return root
}

func (a *app) initConfig(cmd *cobra.Command) error {
	v := viper.New()
	if err := v.BindPFlag("api", cmd.Flags().Lookup("api")); err != nil {
		return err
	}
	if err := v.BindPFlag("origin", cmd.Flags().Lookup("origin")); err != nil {
		return err
	}

	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config %s: %w", a.cfgFile, err)
		}
	}

	a.apiURL = v.GetString("api")
	a.origin = v.GetString("origin")
	return nil
}
