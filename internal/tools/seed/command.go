package seed

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/product-catalog-api/internal/config"
	"github.com/sandeepkv93/product-catalog-api/internal/database"
)

type options struct {
	envFile string
	ci      bool
}

func NewRootCommand() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:           "seed",
		Short:         "Database seed tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "path to env file")
	cmd.PersistentFlags().BoolVar(&opts.ci, "ci", false, "machine-readable output")
	cmd.AddCommand(newApplyCommand(opts), newDryRunCommand(opts))
	return cmd
}

func newApplyCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Migrate and insert the demo catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := runApply(opts.envFile)
			return report(cmd, opts, "seed apply", details, err)
		},
	}
}

func newDryRunCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "dry-run",
		Short: "Show what seeding would do",
		RunE: func(cmd *cobra.Command, args []string) error {
			details := []string{"would migrate the products table"}
			for _, p := range database.DemoProducts() {
				details = append(details, fmt.Sprintf("would insert product %q at %s", p.Name, p.Price.StringFixed(2)))
			}
			return report(cmd, opts, "seed dry-run", details, nil)
		},
	}
}

func runApply(envFile string) ([]string, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.IsProduction() {
		return nil, errors.New("refusing to seed a production database")
	}
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	if err := database.Seed(db); err != nil {
		return nil, err
	}
	return []string{"migrated schema", "seeded demo catalog (skipped if table was non-empty)"}, nil
}

// report writes the outcome and hands any error back to cobra so the
// entrypoint decides the exit code.
func report(cmd *cobra.Command, opts *options, title string, details []string, err error) error {
	if opts.ci {
		rep := ciReport{OK: err == nil, Title: title, Details: details}
		if err != nil {
			rep.Error = err.Error()
		}
		rep.write(cmd.OutOrStdout())
		return err
	}
	if err != nil {
		return err
	}
	for _, d := range details {
		fmt.Fprintln(cmd.OutOrStdout(), d)
	}
	return nil
}
