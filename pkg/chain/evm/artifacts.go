// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package evm

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/luxfi/geth/accounts/abi"
	"github.com/luxfi/geth/common/hexutil"
)

var ErrArtifactNotFound = errors.New("contract artifact not found")

// Artifact is a compiled contract: its ABI and creation bytecode.
type Artifact struct {
	Name     string
	Path     string
	ABI      abi.ABI
	Bytecode []byte
}

// artifactFile covers both the Truffle layout, where bytecode is a hex
// string, and the Foundry layout, where it is an object with the hex string
// under "object".
type artifactFile struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`
}

// ArtifactStore loads artifacts by contract name from a build directory.
type ArtifactStore struct {
	dir   string
	mu    sync.Mutex
	cache map[string]*Artifact
}

func NewArtifactStore(dir string) *ArtifactStore {
	return &ArtifactStore{dir: dir, cache: map[string]*Artifact{}}
}

// Dir returns the directory artifacts are loaded from.
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// Load returns the artifact of contract. It looks for <dir>/<Name>.json
// (Truffle) then <dir>/<Name>.sol/<Name>.json (Foundry).
func (s *ArtifactStore) Load(contract string) (*Artifact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.cache[contract]; ok {
		return a, nil
	}
	if contract == "" || strings.ContainsAny(contract, `/\`) {
		return nil, fmt.Errorf("invalid contract name %q", contract)
	}
	candidates := []string{
		filepath.Join(s.dir, contract+".json"),
		filepath.Join(s.dir, contract+".sol", contract+".json"),
	}
	for _, path := range candidates {
		data, err := os.ReadFile(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}
		a, err := ParseArtifact(contract, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		a.Path = path
		s.cache[contract] = a
		return a, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrArtifactNotFound, contract, s.dir)
}

// ParseArtifact decodes a Truffle or Foundry artifact document.
func ParseArtifact(name string, data []byte) (*Artifact, error) {
	var f artifactFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid artifact: %w", err)
	}
	if len(f.ABI) == 0 {
		return nil, errors.New("artifact has no abi")
	}
	parsed, err := abi.JSON(bytes.NewReader(f.ABI))
	if err != nil {
		return nil, fmt.Errorf("invalid abi: %w", err)
	}

	code, err := bytecodeHex(f.Bytecode)
	if err != nil {
		return nil, err
	}
	if strings.Contains(code, "__") {
		return nil, fmt.Errorf("bytecode of %s has unlinked library references", name)
	}
	if code == "" || code == "0x" {
		return nil, fmt.Errorf("%s has no bytecode, abstract contracts and interfaces cannot be deployed", name)
	}
	if !strings.HasPrefix(code, "0x") {
		code = "0x" + code
	}
	bin, err := hexutil.Decode(code)
	if err != nil {
		return nil, fmt.Errorf("invalid bytecode: %w", err)
	}
	if f.ContractName != "" {
		name = f.ContractName
	}
	return &Artifact{Name: name, ABI: parsed, Bytecode: bin}, nil
}

func bytecodeHex(raw json.RawMessage) (string, error) {
	if len(raw) == 0 {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s, nil
	}
	var obj struct {
		Object string `json:"object"`
	}
	if err := json.Unmarshal(raw, &obj); err != nil {
		return "", fmt.Errorf("invalid bytecode field: %w", err)
	}
	return obj.Object, nil
}
