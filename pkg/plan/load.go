// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load reads a plan file. YAML and JSON are both accepted. Decoding errors
// are returned as *ValidationError; the plan is not validated further.
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ValidationError{Reason: fmt.Sprintf("failed to read plan file %s: %v", path, err), Err: err}
	}
	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if p.Artifacts != "" && !filepath.IsAbs(p.Artifacts) {
		p.Artifacts = filepath.Join(filepath.Dir(path), p.Artifacts)
	}
	return p, nil
}

// Parse decodes a plan document. Unknown keys are rejected.
func Parse(data []byte) (*Plan, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var p Plan
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, invalid("", "plan document is empty")
		}
		return nil, invalid("", "%s", err.Error())
	}
	return &p, nil
}
