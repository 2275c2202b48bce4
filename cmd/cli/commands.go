package main

import (
	"fmt"
	"os"
	"strings"

	"burnoutlens/domain/filters"
	"burnoutlens/internal/config"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// selectionFlags binds one flag per filter dimension
type selectionFlags struct {
	single    map[string]*string
	education []string
}

func addSelectionFlags(cmd *cobra.Command) *selectionFlags {
	sf := &selectionFlags{single: make(map[string]*string)}
	for _, dim := range filters.DefaultCatalog() {
		if dim.Multi() {
			cmd.Flags().StringSliceVar(&sf.education, dim.Key, nil, fmt.Sprintf("%s (repeatable, OR-combined)", dim.Display))
			continue
		}
		flagName := strings.ReplaceAll(dim.Key, "_", "-")
		sf.single[dim.Key] = cmd.Flags().String(flagName, "", dim.Display)
	}
	return sf
}

func (sf *selectionFlags) selection() filters.Selection {
	sel := filters.NewSelection()
	for key, v := range sf.single {
		sel.Set(key, *v)
	}
	sel.Set(filters.KeyEducation, sf.education...)
	return sel
}

func newOptionsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the filter dimensions and their choices",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(flags)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderOptions(c.Builder.Options()))
			return nil
		},
	}
}

func newReportCmd(flags *globalFlags) *cobra.Command {
	var (
		asJSON bool
		sf     *selectionFlags
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard for a filter selection",
		Long: `Print the dashboard for a filter selection.

Example: burnoutlens-cli report --gender Feminino --education "Ensino Médio" --age "31-40 years"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(flags)
			if err != nil {
				return err
			}
			d := c.Builder.Build(sf.selection())
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), d)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderDashboard(d))
			return nil
		},
	}
	sf = addSelectionFlags(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the dashboard as JSON")
	return cmd
}

func newChartCmd(flags *globalFlags) *cobra.Command {
	var (
		output string
		sf     *selectionFlags
	)
	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Write the burnout level distribution as a PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(flags)
			if err != nil {
				return err
			}
			d := c.Builder.Build(sf.selection())

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := c.Charts.RenderDistribution(d.Distribution, f); err != nil {
				f.Close()
				_ = os.Remove(output)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", output, d.Distribution.Title())
			return nil
		},
	}
	sf = addSelectionFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "burnout_distribution.png", "output PNG path")
	return cmd
}

func newExploreCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explore",
		Short: "Interactively change filters; the dashboard is recomputed after every line",
		Long: `Read commands from stdin and print the dashboard after each one:

  <key>=<value>   set a filter (value All clears it; education takes ';'-separated levels)
  clear           remove every filter
  options         list the filter choices
  quit            leave`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := loadContainer(flags)
			if err != nil {
				return err
			}
			return newExplorer(c.Builder, cmd.OutOrStdout()).Run(cmd.InOrStdin())
		},
	}
}

func newConfigCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or create the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a configuration file with the defaults",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "burnoutlens.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.Save(config.Default(), path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")

	cmd.AddCommand(show, initCmd)
	return cmd
}
