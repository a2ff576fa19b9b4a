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

package options

import (
	"github.com/spf13/cobra"

	"powerstore-ctl/cli/config"
)

type FlagsOptions struct {
	cmd *cobra.Command
}

// NewFlagsOptions Construct a FlagsOptions instance that requires a cmd as a parameter
func NewFlagsOptions(cmd *cobra.Command) *FlagsOptions {
	return &FlagsOptions{cmd: cmd}
}

// WithParent This function will add a parent command
func (b *FlagsOptions) WithParent(parentCmd *cobra.Command) {
	parentCmd.AddCommand(b.cmd)
}

// WithFilename This function will add a filename flag
// If required is true, filename flag must be set
func (b *FlagsOptions) WithFilename(required bool) *FlagsOptions {
	b.cmd.PersistentFlags().StringVarP(&config.FileName, "filename", "f", "", "path to yaml task file")
	if required {
		// Because only 'no such flag' error will be returned, and we have ensured
		// that the incoming parameters are correct, so no err will be handled.
		_ = b.cmd.MarkPersistentFlagRequired("filename")
	}
	return b
}

// WithConfig This function will add a config flag holding the connection settings
func (b *FlagsOptions) WithConfig(required bool) *FlagsOptions {
	b.cmd.PersistentFlags().StringVarP(&config.ConfigPath, "config", "c", "", "path to connection config file")
	if required {
		_ = b.cmd.MarkPersistentFlagRequired("config")
	}
	return b
}

// WithInsecure This function will add an insecure flag
func (b *FlagsOptions) WithInsecure() *FlagsOptions {
	b.cmd.PersistentFlags().BoolVarP(&config.Insecure, "insecure", "k", false,
		"skip array certificate verification")
	return b
}

// WithLogDir This function will add a log-dir flag
func (b *FlagsOptions) WithLogDir() *FlagsOptions {
	b.cmd.PersistentFlags().StringVarP(&config.LogDir, "log-dir", "", config.DefaultLogDir,
		"set log dir of pstorectl")
	return b
}
