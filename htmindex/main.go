/*
 * SPDX-FileCopyrightText: © HTMIndex authors
 * SPDX-License-Identifier: Apache-2.0
 */

package main

import (
	"github.com/golang/glog"

	"github.com/dkondor/HTMIndex/htmindex/cmd"
)

func main() {
	defer glog.Flush()
	cmd.Execute()
}
