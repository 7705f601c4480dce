// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import (
	"time"
)

const (
	BaseDirName = ".deployer"
	LogDir      = "logs"
	RunsDir     = "runs"

	DefaultConfigFileName = "config"
	DefaultConfigFileType = "yaml"
	EnvPrefix             = "DEPLOYER"
	LoggerName            = "deployer"

	ExecutionLogVersion = "v1.0.0"
	ExecutionLogSuffix  = ".json"

	MaxLogFileSize   = 4
	MaxNumOfLogFiles = 5
	RetainOldFiles   = 0 // retain all old log files

	// receipt wait applied per transaction when the network does not set one
	DefaultReceiptTimeout = 2 * time.Minute
	RequestTimeout        = 30 * time.Second

	// slow steps get a warning after this long
	StepWarnAfter = 30 * time.Second

	LocalNetwork       = "local"
	LocalRPCEndpoint   = "http://127.0.0.1:8545"
	DefaultAccounts    = 10
	DefaultMnemonicEnv = "DEPLOYER_MNEMONIC"
	DefaultKeysEnv     = "DEPLOYER_PRIVATE_KEYS"

	// HD derivation path prefix used by Ganache, Hardhat and Truffle dev nodes
	DerivationPathPrefix = "m/44'/60'/0'/0"

	TruffleArtifactsDir = "build/contracts"
	FoundryArtifactsDir = "out"
)
