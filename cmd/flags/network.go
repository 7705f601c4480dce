// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package flags

import (
	"github.com/luxfi/deployer/pkg/application"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/prompts"
	"github.com/spf13/cobra"
)

const (
	networkFlag = "network"
)

func AddNetworkFlagToCmd(cmd *cobra.Command, app *application.Deployer, network *string) {
	cmd.Flags().StringVarP(network, networkFlag, "n", constants.LocalNetwork, "network to use, as configured under networks.<name>")

	networkPreRun := func(cmd *cobra.Command, _ []string) error {
		return ValidateNetwork(app, network, cmd)
	}

	existingPreRunE := cmd.PreRunE
	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		if existingPreRunE != nil {
			if err := existingPreRunE(cmd, args); err != nil {
				return err
			}
		}
		return networkPreRun(cmd, args)
	}
}

// ValidateNetwork checks network is configured. When the flag was not
// given and more than one network is configured, an interactive user is
// asked to pick one.
func ValidateNetwork(app *application.Deployer, network *string, cmd *cobra.Command) error {
	var err error
	if !cmd.Flags().Changed(networkFlag) && prompts.IsInteractive() {
		if names := app.Conf.NetworkNames(); len(names) > 1 {
			*network, err = app.Prompt.CaptureList("Which network?", names)
			if err != nil {
				return err
			}
		}
	}
	_, err = app.GetNetwork(*network)
	return err
}
