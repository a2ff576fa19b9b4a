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

// cmd defines commands of pstorectl.
package cmd

import (
	"github.com/spf13/cobra"

	"powerstore-ctl/cli/cmd/options"
	"powerstore-ctl/cli/config"
	"powerstore-ctl/utils/log"
)

// RootCmd is a root command of pstorectl.
var RootCmd = &cobra.Command{
	SilenceUsage:      true,
	Use:               "pstorectl",
	Short:             "A CLI tool for Dell PowerStore storage management",
	CompletionOptions: cobra.CompletionOptions{HiddenDefaultCmd: true},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return startLogging()
	},
}

// Execute runs the root command
func Execute() error {
	registerRootCmd()
	registerApplyCmd()
	registerGetCmd()
	registerVersionCmd()

	defer log.Flush()
	return RootCmd.Execute()
}

func registerRootCmd() {
	options.NewFlagsOptions(RootCmd).WithLogDir()
}

// startLogging used to start logging.
// Since the cli tool does not need to specify a log configuration, the default values are used here.
func startLogging() error {
	if config.LogDir == "" {
		config.LogDir = config.DefaultLogDir
	}
	logRequest := &log.LoggingRequest{
		LogName:       config.DefaultLogName,
		LogFileSize:   config.DefaultLogSize,
		LoggingModule: config.DefaultLogModule,
		LogLevel:      config.DefaultLogLevel,
		LogFileDir:    config.LogDir,
		MaxBackups:    config.DefaultLogMaxBackups,
	}
	return log.InitLogging(logRequest)
}
