/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package x

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// SubCommand bundles a cobra command with its viper configuration. Flags are
// bound to Conf by the root command, so subcommands read settings through
// Conf and pick up environment overrides for free.
type SubCommand struct {
	Cmd  *cobra.Command
	Conf *viper.Viper

	EnvPrefix string
}

func (s SubCommand) GetString(name string) string {
	return s.Conf.GetString(name)
}

func (s SubCommand) GetInt(name string) int {
	return s.Conf.GetInt(name)
}

func (s SubCommand) GetFloat64(name string) float64 {
	return s.Conf.GetFloat64(name)
}

func (s SubCommand) GetBool(name string) bool {
	return s.Conf.GetBool(name)
}
