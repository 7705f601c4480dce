// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/luxfi/deployer/pkg/plan"
	"github.com/luxfi/deployer/pkg/records"
	luxlog "github.com/luxfi/log"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// DeployProgress reports executor step events to the user. On a terminal
// it also keeps a progress bar of finished steps.
type DeployProgress struct {
	ul       *UserLog
	tracker  *StepTracker
	bar      *progressbar.ProgressBar
	interval time.Duration

	mu   sync.Mutex
	stop chan struct{}
	done sync.WaitGroup
}

// NewDeployProgress creates progress output for a run of total steps.
func NewDeployProgress(ul *UserLog, total int, warnAfter time.Duration) *DeployProgress {
	p := &DeployProgress{
		ul:       ul,
		tracker:  NewStepTracker(ul, warnAfter),
		interval: time.Second,
	}
	if isTerminal(ul.writer) {
		p.bar = createProgressBar(ul.writer, "steps", total)
	}
	return p
}

// isTerminal checks if the writer is a terminal
func isTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return false
}

func createProgressBar(w io.Writer, task string, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(
		total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(15),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", task)),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}

func (p *DeployProgress) StepStarted(step *plan.Step) {
	p.clearBar()
	p.tracker.Start(fmt.Sprintf("Deploying %s (%s)", step.ID, step.Contract))
	p.watch()
}

func (p *DeployProgress) StepSkipped(step *plan.Step, rec *records.ExecutionRecord) {
	p.clearBar()
	p.ul.PrintToUser("%s already deployed at %s, skipping", step.ID, rec.Address)
	p.advance()
}

func (p *DeployProgress) CallApplied(step *plan.Step, call *plan.Call, rec *records.CallRecord) {
	p.clearBar()
	if rec.TxID == "" {
		p.ul.PrintToUser("  %s.%s applied", rec.Target, call.Method)
		return
	}
	p.ul.PrintToUser("  %s.%s applied in tx %s", rec.Target, call.Method, rec.TxID)
}

func (p *DeployProgress) StepCompleted(_ *plan.Step, rec *records.ExecutionRecord) {
	p.unwatch()
	p.clearBar()
	p.tracker.Complete(rec.Address)
	p.advance()
}

func (p *DeployProgress) StepFailed(_ *plan.Step, _ *records.ExecutionRecord, err error) {
	p.unwatch()
	p.clearBar()
	p.tracker.Failed(err.Error())
}

// Finish prints a one line summary of rs.
func (p *DeployProgress) Finish(rs records.Records) {
	p.unwatch()
	if p.bar != nil {
		_ = p.bar.Finish()
		p.ul.PrintToUser("")
	}
	summary := fmt.Sprintf("%d complete, %d failed, %d pending",
		rs.Count(records.StatusComplete),
		rs.Count(records.StatusFailed),
		rs.Count(records.StatusPending)+rs.Count(records.StatusDeployed),
	)
	if rs.Succeeded() {
		p.ul.PrintToUser("%s", luxlog.Green.Wrap(summary))
		return
	}
	p.ul.PrintToUser("%s", luxlog.Yellow.Wrap(summary))
}

// watch warns about a slow step while it is running.
func (p *DeployProgress) watch() {
	p.mu.Lock()
	defer p.mu.Unlock()
	stop := make(chan struct{})
	p.stop = stop
	p.done.Add(1)
	go func() {
		defer p.done.Done()
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				if p.tracker.CheckWarn() {
					return
				}
			}
		}
	}()
}

func (p *DeployProgress) unwatch() {
	p.mu.Lock()
	if p.stop != nil {
		close(p.stop)
		p.stop = nil
	}
	p.mu.Unlock()
	p.done.Wait()
}

func (p *DeployProgress) clearBar() {
	if p.bar != nil {
		_ = p.bar.Clear()
	}
}

func (p *DeployProgress) advance() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}
