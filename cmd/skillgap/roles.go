package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/kingrea/skillgap/internal/roles"
)

func newRolesCommand() *cobra.Command {
	var key string
	cmd := &cobra.Command{
		Use:   "roles",
		Short: "List the target roles",
		Long: `List every target role with its readiness score and core stack.
With --key, print the full profile (skills, roadmap, projects) as YAML.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if key != "" {
				parsed, err := roles.ParseKey(key)
				if err != nil {
					return err
				}
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(roles.Lookup(parsed)); err != nil {
					return fmt.Errorf("encode profile: %w", err)
				}
				return enc.Close()
			}
			for _, profile := range roles.All() {
				fmt.Fprintf(out, "%-9s %-32s %3d/100  %s\n",
					profile.Key, profile.Label, profile.Readiness, strings.Join(profile.Stack, ", "))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "print one role as YAML: "+roleNames())
	return cmd
}
