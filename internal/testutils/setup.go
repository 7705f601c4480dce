// Copyright (C) 2022, Lux Partners Limited, All rights reserved.
// See the file LICENSE for licensing terms.

package testutils

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/luxfi/deployer/pkg/application"
	"github.com/luxfi/deployer/pkg/config"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/prompts"
	"github.com/luxfi/deployer/pkg/ux"
	luxlog "github.com/luxfi/log"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

// SetupTestInTempDir returns an app rooted in a temporary directory with an
// empty configuration, so only the local network is known. User output is
// captured in the returned buffer.
func SetupTestInTempDir(t *testing.T) (*application.Deployer, *bytes.Buffer) {
	t.Helper()
	// the local network must use the dev mnemonic
	t.Setenv(constants.DefaultMnemonicEnv, "")
	t.Setenv(constants.DefaultKeysEnv, "")
	t.Setenv(prompts.EnvNonInteractive, "1")

	out := &bytes.Buffer{}
	ux.Logger = ux.NewUserLogWithWriter(luxlog.NewNoOpLogger(), out)

	app := application.New()
	app.Setup(t.TempDir(), luxlog.NewNoOpLogger(), config.NewWithViper(viper.New()), prompts.NewNonInteractivePrompter())
	return app, out
}

// WritePlan writes a plan document into a temporary directory and returns
// its path.
func WritePlan(t *testing.T, doc string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plan.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))
	return path
}
