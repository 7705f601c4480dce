// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plancmd

import (
	"fmt"

	"github.com/luxfi/deployer/pkg/application"
	"github.com/spf13/cobra"
)

var app *application.Deployer

// deployer plan
func NewCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Inspect deployment plans",
		Long: `The plan command suite checks deployment plans without touching any
network.`,
		Run: func(cmd *cobra.Command, _ []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	// deployer plan validate
	cmd.AddCommand(newValidateCmd())

	return cmd
}
