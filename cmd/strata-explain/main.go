// Copyright 2025 Strata Project
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// strata-explain optimizes the bundled demo plans and prints the result,
// as rendered text, as JSON, or as the rows a narrowed scan produces.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/strataql/strata/pkg/common/serr"
	"github.com/strataql/strata/pkg/config"
	"github.com/strataql/strata/pkg/logutil"
	"github.com/strataql/strata/pkg/planner"
	"github.com/strataql/strata/pkg/sql/plan"
	"github.com/strataql/strata/pkg/sql/plan/explain"
	"github.com/strataql/strata/pkg/vm/engine"
)

func main() {
	if err := rootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCommand() *cobra.Command {
	var configFile string
	cmd := &cobra.Command{
		Use:           "strata-explain",
		Short:         "Inspect optimizer output on the bundled demo plans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a TOML config file")
	cmd.AddCommand(explainCommand(&configFile))
	cmd.AddCommand(scanCommand(&configFile))
	cmd.AddCommand(plansCommand())
	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func explainCommand(configFile *string) *cobra.Command {
	var asJSON bool
	var skipOptimize bool
	cmd := &cobra.Command{
		Use:   "explain <plan>",
		Short: "Print a demo plan after optimization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			logutil.SetupGlobalLogger(cfg.Log)

			root, err := demoPlan(args[0])
			if err != nil {
				return err
			}
			if !skipOptimize {
				root, err = planner.New(cfg.Optimizer).Optimize(cmd.Context(), root)
				if err != nil {
					return err
				}
			}
			if asJSON {
				out, err := explain.MarshalPlan(root)
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}
			fmt.Print(explain.ExplainPlan(root))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "emit the plan as JSON")
	cmd.Flags().BoolVar(&skipOptimize, "no-optimize", false, "print the plan as built")
	return cmd
}

func scanCommand(configFile *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <plan>",
		Short: "Optimize a demo plan and print the rows its narrowed scans read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(*configFile)
			if err != nil {
				return err
			}
			logutil.SetupGlobalLogger(cfg.Log)

			root, err := demoPlan(args[0])
			if err != nil {
				return err
			}
			root, err = planner.New(cfg.Optimizer).Optimize(cmd.Context(), root)
			if err != nil {
				return err
			}
			for _, scan := range plan.CollectTableScans(root) {
				if err := dumpScan(cmd.Context(), scan); err != nil {
					return err
				}
			}
			return nil
		},
	}
	return cmd
}

func plansCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plans",
		Short: "List the bundled demo plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := demoPlanNames()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}
}

func dumpScan(ctx context.Context, scan *plan.Node) error {
	fmt.Printf("table %s, deep projection %s\n", scan.TableDef.Name, scan.DeepProjection.String())
	src, ok := scan.Source.(engine.Source)
	if !ok {
		return serr.NewInternalError(ctx, "table %s has no scan capability", scan.TableDef.Name)
	}
	reader, err := engine.ScanMaybeDeep(ctx, src, scan.Projection, scan.DeepProjection, scan.FilterList, scan.Limit)
	if err != nil {
		return err
	}
	defer reader.Close()
	for {
		batch, err := reader.Next(ctx)
		if err != nil {
			return err
		}
		if batch == nil {
			return nil
		}
		for _, row := range batch.Rows {
			fmt.Printf("  %v\n", row)
		}
	}
}
