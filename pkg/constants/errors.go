// Copyright (C) 2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrExistingExecutionLog = errors.New("an execution log already exists for this plan and network; pass --resume to continue it or --reset to discard it")
	ErrUnknownNetwork       = errors.New("unknown network")
	ErrNoAccounts           = errors.New("no accounts configured for network")
)
