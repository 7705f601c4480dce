// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package statuscmd shows the execution log of a plan on a network
package statuscmd

import (
	"encoding/json"
	"errors"

	"github.com/luxfi/deployer/cmd/flags"
	"github.com/luxfi/deployer/pkg/application"
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/records"
	"github.com/luxfi/deployer/pkg/ux"
	"github.com/spf13/cobra"
)

var app *application.Deployer

var (
	network    string
	jsonOutput bool
)

// deployer status
func NewCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:          "status <plan-file>",
		Short:        "Show the execution log of a plan",
		Long:         "Display the recorded outcome of every step of a plan on a network",
		Args:         cobra.ExactArgs(1),
		RunE:         statusCmd,
		SilenceUsage: true,
	}
	flags.AddNetworkFlagToCmd(cmd, app, &network)
	cmd.Flags().BoolVarP(&jsonOutput, "json", "j", false, "Output the execution log as JSON")
	return cmd
}

func statusCmd(cmd *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	n, err := app.GetNetwork(network)
	if err != nil {
		return err
	}
	l, err := app.LoadExecutionLog(n.Name, p.Name)
	if errors.Is(err, records.ErrNotFound) {
		ux.Logger.PrintToUser("Plan %s has not been run on %s", p.Name, n.Name)
		return nil
	}
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(l)
	}

	ux.Logger.PrintToUser("Plan %s on %s, run %s, updated %s", p.Name, n.Name, l.RunID, l.UpdatedAt.Format("2006-01-02 15:04:05 MST"))
	if err := ux.PrintRecordsTable(ux.Logger.Writer(), p.StepIDs(), l.Records); err != nil {
		return err
	}
	complete := l.Records.Count(records.StatusComplete)
	switch {
	case complete == len(p.Steps) && l.Records.Succeeded():
		ux.Logger.GreenCheckmarkToUser("All %d steps complete", complete)
	case len(l.Records.Failed()) > 0:
		ux.Logger.RedXToUser("%d of %d steps complete, %d failed", complete, len(p.Steps), len(l.Records.Failed()))
	default:
		ux.Logger.PrintToUser("%d of %d steps complete", complete, len(p.Steps))
	}
	return nil
}
