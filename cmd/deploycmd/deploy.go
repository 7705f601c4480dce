// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package deploycmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/luxfi/deployer/cmd/flags"
	"github.com/luxfi/deployer/pkg/application"
	"github.com/luxfi/deployer/pkg/chain/evm"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/deployer"
	"github.com/luxfi/deployer/pkg/key"
	"github.com/luxfi/deployer/pkg/models"
	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/prompts"
	"github.com/luxfi/deployer/pkg/records"
	"github.com/luxfi/deployer/pkg/ux"
	luxlog "github.com/luxfi/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var app *application.Deployer

var (
	network      string
	artifactsDir string
	resume       bool
	reset        bool
	dryRun       bool
	skipConfirm  bool
)

// deployer deploy
func NewCmd(injectedApp *application.Deployer) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "deploy <plan-file>",
		Short: "Deploy the contracts of a plan",
		Long: `The deploy command executes a deployment plan against a network.

Steps run one at a time in dependency order. Every outcome is written to an
execution log under ~/.deployer/runs/<network>/<plan>.json as soon as it
happens. If the run stops, pass --resume to continue it: contracts that were
already deployed are reused and calls that were already applied are not sent
again. Pass --reset to discard the log and deploy everything from scratch.`,
		Args:         cobra.ExactArgs(1),
		RunE:         deployPlan,
		SilenceUsage: true,
	}
	flags.AddNetworkFlagToCmd(cmd, app, &network)
	cmd.Flags().StringVar(&artifactsDir, "artifacts", "", "directory holding compiled contract artifacts")
	cmd.Flags().BoolVar(&resume, "resume", false, "continue the existing execution log")
	cmd.Flags().BoolVar(&reset, "reset", false, "discard the existing execution log and deploy from scratch")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "validate the plan and show what would be done, without sending transactions")
	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func deployPlan(cmd *cobra.Command, args []string) error {
	if resume && reset {
		return &flags.UsageError{Err: errors.New("--resume and --reset cannot be used together")}
	}
	p, err := plan.Load(args[0])
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}
	n, err := app.GetNetwork(network)
	if err != nil {
		return err
	}
	prior, err := priorRecords(p, n)
	if err != nil {
		return err
	}
	accounts, err := app.LoadAccounts(n)
	if err != nil {
		return err
	}

	steps, err := deployer.Preview(p, len(accounts), prior)
	if err != nil {
		return err
	}
	if dryRun {
		return printPreview(p, n, steps)
	}
	if !shouldDeploy(p, n, steps) {
		ux.Logger.PrintToUser("Aborted")
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return execute(ctx, p, n, accounts, prior)
}

// priorRecords returns the records to resume from, honoring --resume and
// --reset. A dry run previews the existing log unless --reset is given.
func priorRecords(p *plan.Plan, n models.Network) (records.Records, error) {
	if !app.ExecutionLogExists(n.Name, p.Name) {
		if resume {
			ux.Logger.PrintToUser("No execution log found for %s on %s, starting a new run", p.Name, n.Name)
		}
		return nil, nil
	}
	switch {
	case reset:
		if dryRun {
			return nil, nil
		}
		app.Log.Info("discarding execution log",
			zap.String("plan", p.Name),
			zap.String("network", n.Name),
			zap.String("path", app.GetExecutionLogPath(n.Name, p.Name)),
		)
		return nil, app.Runs().Remove(n.Name, p.Name)
	case resume || dryRun:
		l, err := app.LoadExecutionLog(n.Name, p.Name)
		if err != nil {
			return nil, err
		}
		ux.Logger.PrintToUser("Resuming run %s started %s", l.RunID, l.StartedAt.Format("2006-01-02 15:04:05 MST"))
		return l.Records, nil
	}
	return nil, fmt.Errorf("%w (%s)", constants.ErrExistingExecutionLog, app.GetExecutionLogPath(n.Name, p.Name))
}

func printPreview(p *plan.Plan, n models.Network, steps []deployer.PlannedStep) error {
	ux.Logger.PrintToUser("Plan %s on %s (%s)", p.Name, n.Name, n.RPC)
	table := ux.DefaultTable(ux.Logger.Writer(), "#", "Step", "Contract", "Action", "Pending Calls")
	for i, s := range steps {
		if err := table.Append([]string{
			fmt.Sprint(i + 1),
			s.Step.ID,
			s.Step.Contract,
			string(s.Action),
			fmt.Sprint(s.PendingCalls),
		}); err != nil {
			return err
		}
	}
	if err := table.Render(); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Dry run, no transactions sent")
	return nil
}

// shouldDeploy asks for confirmation before sending transactions to a
// network other than the local one.
func shouldDeploy(p *plan.Plan, n models.Network, steps []deployer.PlannedStep) bool {
	if skipConfirm || n.Name == constants.LocalNetwork {
		return true
	}
	pending := 0
	for _, s := range steps {
		if s.Action != deployer.ActionSkip {
			pending++
		}
	}
	if pending == 0 {
		return true
	}
	yes, err := app.Prompt.CaptureYesNo(fmt.Sprintf("Run %d of %d steps of %s on %s?", pending, len(steps), p.Name, n.Name))
	if errors.Is(err, prompts.ErrNonInteractive) {
		ux.Logger.PrintToUser("Pass --yes to deploy to %s without confirmation", n.Name)
		return false
	}
	return err == nil && yes
}

func execute(ctx context.Context, p *plan.Plan, n models.Network, accounts []*key.Account, prior records.Records) error {
	client, err := app.DialNetwork(ctx, n, accounts, application.ResolveArtifactsDir(artifactsDir, p.Artifacts, n.Artifacts))
	if err != nil {
		return err
	}
	defer client.Close()

	l := records.NewLog(p.Name, n.Name)
	progress := ux.NewDeployProgress(ux.Logger, len(p.Steps), constants.StepWarnAfter)
	exec := deployer.New(app.Log,
		deployer.WithJournal(app.Runs().Journal(l)),
		deployer.WithObserver(progress),
	)

	ux.Logger.PrintToUser("Deploying %s to %s (chain %s) from %s", p.Name, n.Name, client.ChainID(), accounts[0].Address.Hex())
	rs, err := exec.Execute(ctx, p, client, key.Addresses(accounts), prior)
	progress.Finish(rs)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			ux.Logger.PrintToUser("%s", luxlog.Yellow.Wrap("Interrupted. Run again with --resume to continue."))
		} else if len(rs.Failed()) > 0 {
			if errors.Is(err, evm.ErrArtifactNotFound) {
				ux.Logger.PrintToUser("Artifacts are loaded from %s, pass --artifacts to use another directory.", client.Artifacts().Dir())
			}
			ux.Logger.PrintToUser("Fix the failure and run again with --resume to continue.")
		}
		ux.Logger.PrintToUser("Execution log: %s", app.GetExecutionLogPath(n.Name, p.Name))
		return err
	}
	if err := ux.PrintRecordsTable(ux.Logger.Writer(), p.StepIDs(), rs); err != nil {
		return err
	}
	ux.Logger.PrintToUser("Execution log: %s", app.GetExecutionLogPath(n.Name, p.Name))
	return nil
}
