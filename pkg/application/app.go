// Copyright (C) 2022, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"path/filepath"

	"github.com/luxfi/deployer/pkg/config"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/prompts"
	"github.com/luxfi/deployer/pkg/records"
	luxlog "github.com/luxfi/log"
)

type Deployer struct {
	Log     luxlog.Logger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter
	runs    *records.Store
}

func New() *Deployer {
	return &Deployer{}
}

func (app *Deployer) Setup(baseDir string, log luxlog.Logger, conf *config.Config, prompt prompts.Prompter) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
	app.runs = records.NewStore(app.GetRunsDir())
}

func (app *Deployer) GetBaseDir() string {
	return app.baseDir
}

func (app *Deployer) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *Deployer) GetRunsDir() string {
	return filepath.Join(app.baseDir, constants.RunsDir)
}

// GetExecutionLogPath returns the execution log of planName on network.
func (app *Deployer) GetExecutionLogPath(network, planName string) string {
	return app.runs.Path(network, planName)
}

// Runs returns the execution log store.
func (app *Deployer) Runs() *records.Store {
	return app.runs
}

// LoadExecutionLog reads the execution log of planName on network.
func (app *Deployer) LoadExecutionLog(network, planName string) (*records.Log, error) {
	return app.runs.Load(network, planName)
}

func (app *Deployer) ExecutionLogExists(network, planName string) bool {
	return app.runs.Exists(network, planName)
}
