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

// Package config defines the global configurations for pstorectl
package config

import (
	"os"

	"github.com/ghodss/yaml"
)

const (
	// CliVersion pstorectl version
	CliVersion = "1.2.0"

	// DefaultLogName default log file name
	DefaultLogName = "pstorectl-log"

	// DefaultLogSize default log file size
	DefaultLogSize = "20M"

	// DefaultLogModule default log module
	DefaultLogModule = "file"

	// DefaultLogLevel default log level
	DefaultLogLevel = "info"

	// DefaultLogMaxBackups default log file max backups
	DefaultLogMaxBackups = 9

	// DefaultLogDir default log dir
	DefaultLogDir = "/var/log/powerstore"
)

var (
	// LogDir the value of log-dir flag, set by options.WithLogDir()
	LogDir string

	// ConfigPath the value of config flag, set by options.WithConfig()
	ConfigPath string

	// FileName the value of filename flag, set by options.WithFilename()
	FileName string

	// Insecure the value of insecure flag, set by options.WithInsecure()
	Insecure bool
)

// Connection holds the settings of one array connection
type Connection struct {
	Endpoints []string `json:"endpoints"`
	Username  string   `json:"username"`
	Password  string   `json:"password,omitempty"`
	Insecure  bool     `json:"insecure,omitempty"`
	Parallel  int      `json:"parallel,omitempty"`
}

// LoadConnection reads the connection settings from a yaml config file
func LoadConnection(path string) (*Connection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var conn Connection
	if err := yaml.Unmarshal(data, &conn); err != nil {
		return nil, err
	}
	return &conn, nil
}
