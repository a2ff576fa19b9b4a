/*
 *  Copyright (c) 2024. Dell Technologies or its subsidiaries.
 *
 *  Licensed under the Apache License, Version 2.0 (the "License");
 *  you may not use this file except in compliance with the License.
 *  You may obtain a copy of the License at
 *
 *       http://www.apache.org/licenses/LICENSE-2.0
 *
 *  Unless required by applicable law or agreed to in writing, software
 *  distributed under the License is distributed on an "AS IS" BASIS,
 *  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *  See the License for the specific language governing permissions and
 *  limitations under the License.
 */

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"powerstore-ctl/cli/cmd/options"
	"powerstore-ctl/cli/config"
	"powerstore-ctl/cli/helper"
	"powerstore-ctl/utils/log"
)

func registerVersionCmd() {
	options.NewFlagsOptions(versionCmd).
		WithConfig(false).
		WithInsecure().
		WithParent(RootCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of pstorectl and, with a connection config, of the array",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runVersion()
	},
}

func runVersion() error {
	fmt.Printf("pstorectl version: %s\n", config.CliVersion)
	if config.ConfigPath == "" {
		return nil
	}

	ctx := log.EnsureRequestID(context.Background())
	cli, err := newArrayClient(ctx)
	if err != nil {
		return helper.PrintlnError(err)
	}
	defer cli.Logout(ctx)

	version, err := cli.GetSoftwareVersion(ctx)
	if err != nil {
		return helper.PrintlnError(err)
	}

	fmt.Printf("array software version: %s\n", version)
	return nil
}
