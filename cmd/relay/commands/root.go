// Package commands implements the relay CLI: offline checking, listing,
// and reverse URL generation for declarative route tables.
package commands

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yshengliao/relay/config"
	"github.com/yshengliao/relay/router"
)

var rootCmd *cobra.Command

// Execute runs the relay CLI.
func Execute(version string) error {
	rootCmd = &cobra.Command{
		Use:     "relay",
		Short:   "Relay - route table tooling",
		Long:    "Relay inspects declarative route tables: validate them, list the compiled routes, and reverse-generate URLs from route names.",
		Version: version,
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newRoutesCmd())
	rootCmd.AddCommand(newURLCmd())

	return rootCmd.Execute()
}

func newCheckCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate a route table",
		Long:  "Parse a route table, compile every pattern, and report pattern or duplicate-name errors.",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, table, err := buildFromFile(configPath)
			if err != nil {
				return err
			}
			cmd.Printf("OK: %d routes, %d named\n", len(table.Routes), len(r.NamedRoutes()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "route table file")
	return cmd
}

func newRoutesCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Print the compiled route table",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := buildFromFile(configPath)
			if err != nil {
				return err
			}
			for _, rt := range r.Routes() {
				name := rt.GetName()
				if name == "" {
					name = "-"
				}
				cmd.Printf("%-30s %-8s %s\n", rt.Pattern(), strings.Join(rt.Methods(), ","), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "route table file")
	return cmd
}

func newURLCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "url <name> [key=value ...]",
		Short: "Reverse-generate a URL from a route name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, _, err := buildFromFile(configPath)
			if err != nil {
				return err
			}

			params := make(map[string]string, len(args)-1)
			for _, arg := range args[1:] {
				key, value, ok := strings.Cut(arg, "=")
				if !ok || key == "" {
					return fmt.Errorf("parameter %q is not of the form key=value", arg)
				}
				params[key] = value
			}

			url, err := r.URLFor(args[0], params)
			if err != nil {
				return err
			}
			cmd.Println(url)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "routes.yaml", "route table file")
	return cmd
}

// buildFromFile loads a route table and builds it onto a fresh router
// using stub callables, since the CLI only inspects routing structure.
func buildFromFile(path string) (*router.Router, *config.RouteTable, error) {
	table, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}

	reg := config.NewRegistry()
	for _, name := range referencedNames(table) {
		reg.Handler(name, func(params ...string) error { return nil })
	}
	for _, name := range referencedMiddleware(table) {
		reg.Middleware(name, func(*router.Route) error { return nil })
	}

	r := router.New()
	if err := config.Build(table, reg, r); err != nil {
		return nil, nil, err
	}
	return r, table, nil
}

func referencedNames(table *config.RouteTable) []string {
	seen := make(map[string]struct{})
	for _, entry := range table.Routes {
		seen[entry.Handler] = struct{}{}
	}
	return sortedKeys(seen)
}

func referencedMiddleware(table *config.RouteTable) []string {
	seen := make(map[string]struct{})
	for _, entry := range table.Routes {
		for _, name := range entry.Middleware {
			seen[name] = struct{}{}
		}
	}
	return sortedKeys(seen)
}

func sortedKeys(set map[string]struct{}) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
