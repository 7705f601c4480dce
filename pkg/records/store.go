// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.
package records

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/utils"
	"golang.org/x/mod/semver"
)

// ErrNotFound is returned when no execution log exists yet.
var ErrNotFound = errors.New("execution log not found")

// Log is the persisted form of one plan's records on one network. Fields
// unknown to this version are ignored on read.
type Log struct {
	Version   string    `json:"version"`
	Plan      string    `json:"plan"`
	Network   string    `json:"network"`
	RunID     string    `json:"runId"`
	StartedAt time.Time `json:"startedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Records   Records   `json:"records"`
}

// NewLog returns an empty log for a fresh run.
func NewLog(plan, network string) *Log {
	now := time.Now().UTC()
	return &Log{
		Version:   constants.ExecutionLogVersion,
		Plan:      plan,
		Network:   network,
		RunID:     uuid.NewString(),
		StartedAt: now,
		UpdatedAt: now,
		Records:   Records{},
	}
}

// Store persists execution logs under a directory, one file per network and
// plan.
type Store struct {
	dir string
	mu  sync.Mutex
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Path returns the file holding the log of plan on network.
func (s *Store) Path(network, plan string) string {
	return filepath.Join(s.dir, network, plan+constants.ExecutionLogSuffix)
}

// Exists reports whether a log is stored for plan on network.
func (s *Store) Exists(network, plan string) bool {
	_, err := os.Stat(s.Path(network, plan))
	return err == nil
}

// Load reads the log of plan on network. It returns ErrNotFound when the log
// does not exist.
func (s *Store) Load(network, plan string) (*Log, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.Path(network, plan)
	var l Log
	if err := utils.ReadJSON(path, &l); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if err := checkVersion(l.Version); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if l.Plan != plan {
		return nil, fmt.Errorf("%s: log belongs to plan %q", path, l.Plan)
	}
	if l.Records == nil {
		l.Records = Records{}
	}
	for id, r := range l.Records {
		if r == nil {
			delete(l.Records, id)
			continue
		}
		if r.StepID == "" {
			r.StepID = id
		}
		if !r.Status.Known() {
			return nil, fmt.Errorf("%s: step %q has unknown status %q", path, id, r.Status)
		}
	}
	return &l, nil
}

// Save writes l, replacing any previous log of the same plan and network.
func (s *Store) Save(l *Log) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l.Version = constants.ExecutionLogVersion
	l.UpdatedAt = time.Now().UTC()
	return utils.WriteJSON(s.Path(l.Network, l.Plan), l)
}

// Remove deletes the log of plan on network. Removing a missing log is not
// an error.
func (s *Store) Remove(network, plan string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.Path(network, plan))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// Journal returns a function that saves the records into l after each state
// transition.
func (s *Store) Journal(l *Log) func(Records) error {
	return func(rs Records) error {
		l.Records = rs.Clone()
		return s.Save(l)
	}
}

// logs written by a newer minor or patch release stay readable; a new major
// version signals an incompatible layout.
func checkVersion(v string) error {
	if v == "" {
		return nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fmt.Errorf("invalid execution log version %q", v)
	}
	if semver.Major(v) != semver.Major(constants.ExecutionLogVersion) {
		return fmt.Errorf("execution log version %s is not supported by this release (%s)", v, constants.ExecutionLogVersion)
	}
	return nil
}
