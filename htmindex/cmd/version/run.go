/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package version

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkondor/HTMIndex/x"
)

// Version is the sub-command invoked when running "htmindex version".
var Version x.SubCommand

func init() {
	Version.Cmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the htmindex version details",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Print(x.BuildDetails())
			os.Exit(0)
		},
	}
}
