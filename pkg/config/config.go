// Copyright (C) 2022-2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/luxfi/deployer/pkg/constants"
	"github.com/luxfi/deployer/pkg/models"
	"github.com/spf13/viper"
)

const networksKey = "networks"

type Config struct {
	v *viper.Viper
}

// New returns a config backed by the global viper instance.
func New() *Config {
	return &Config{v: viper.GetViper()}
}

// NewWithViper returns a config backed by v.
func NewWithViper(v *viper.Viper) *Config {
	return &Config{v: v}
}

// GetConfigPath returns the path to the configuration file
func (c *Config) GetConfigPath() string {
	return c.v.ConfigFileUsed()
}

// NetworkNames returns the configured network names plus the built-in
// local network, sorted.
func (c *Config) NetworkNames() []string {
	names := []string{constants.LocalNetwork}
	for name := range c.v.GetStringMap(networksKey) {
		if name != constants.LocalNetwork {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Network returns the network configured under networks.<name>. The local
// network is always available; configuring it overrides its defaults.
func (c *Config) Network(name string) (models.Network, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return models.Network{}, fmt.Errorf("%w: no network given", constants.ErrUnknownNetwork)
	}
	configKey := networksKey + "." + name

	var n models.Network
	switch {
	case c.v.IsSet(configKey):
		if name == constants.LocalNetwork {
			n = models.LocalNetwork()
		}
		if err := c.v.UnmarshalKey(configKey, &n); err != nil {
			return models.Network{}, fmt.Errorf("invalid configuration for network %s: %w", name, err)
		}
	case name == constants.LocalNetwork:
		n = models.LocalNetwork()
	default:
		return models.Network{}, fmt.Errorf("%w %q, known networks: %s",
			constants.ErrUnknownNetwork, name, strings.Join(c.NetworkNames(), ", "))
	}
	n.Name = name
	n = n.WithDefaults()
	if err := n.Validate(); err != nil {
		return models.Network{}, err
	}
	return n, nil
}
