// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plancmd

import (
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/ux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// deployer plan validate
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <plan-file>",
		Short: "Validate a plan and print its execution order",
		Long: `The plan validate command checks a plan file: step ids are unique, every
reference names a declared step and the dependency graph has no cycle. On
success it prints the order the steps will be executed in.`,
		Args:         cobra.ExactArgs(1),
		RunE:         validatePlan,
		SilenceUsage: true,
	}
	return cmd
}

func validatePlan(_ *cobra.Command, args []string) error {
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	order, err := p.Order()
	if err != nil {
		return err
	}
	app.Log.Debug("plan validated", zap.String("plan", p.Name), zap.Int("steps", len(order)))
	if err := ux.PrintOrderTable(ux.Logger.Writer(), order); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Plan %s is valid (%d steps)", p.Name, len(order))
	return nil
}
