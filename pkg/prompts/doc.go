// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

/*
Package prompts provides user interaction primitives following UNIX conventions.

# Mode Detection

Non-interactive mode is enabled when ANY of these is true:

  - DEPLOYER_NON_INTERACTIVE=1/true/yes/on environment variable
  - CI=1/true environment variable (GitHub Actions, GitLab CI, etc.)
  - stdin is not a TTY (piped/redirected/scripted)

Interactive mode is enabled otherwise.

# Confirmations

Commands that send transactions ask for confirmation before the first
one. In non-interactive mode the prompt fails with ErrNonInteractive, so
scripts must pass --yes:

	ok, err := app.Prompt.CaptureYesNo("Deploy 3 contracts to testnet?")
	if errors.Is(err, prompts.ErrNonInteractive) {
	    return fmt.Errorf("%w: pass --yes to confirm", err)
	}
*/
package prompts
