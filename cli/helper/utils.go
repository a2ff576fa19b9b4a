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

// Package helper provides the file and terminal plumbing of the commands
package helper

import (
	"fmt"
	"strings"

	"powerstore-ctl/utils/log"
)

// Examples formats an indented example block for cobra
func Examples(text string) string {
	var lines []string
	for _, line := range strings.Split(strings.Trim(text, "\n"), "\n") {
		lines = append(lines, strings.TrimSpace(line))
	}
	return "  " + strings.Join(lines, "\n  ")
}

// PrintlnError logs an error and prints it on its own line
func PrintlnError(err error) error {
	log.Errorln(err.Error())
	fmt.Println(err.Error())
	return err
}

// PrintResult prints command output
func PrintResult(out string) {
	fmt.Print(out)
}
