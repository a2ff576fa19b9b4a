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
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"powerstore-ctl/cli/cmd/options"
	"powerstore-ctl/cli/config"
	"powerstore-ctl/cli/helper"
	"powerstore-ctl/modules"
	"powerstore-ctl/utils/log"
)

func registerApplyCmd() {
	options.NewFlagsOptions(applyCmd).
		WithFilename(true).
		WithConfig(true).
		WithInsecure().
		WithParent(RootCmd)
}

var applyExample = helper.Examples(`
	# Apply all tasks of a file to the array of the connection config
	pstorectl apply -f tasks.yaml -c array.yaml

	# Apply tasks without verifying the array certificate
	pstorectl apply -f tasks.yaml -c array.yaml -k`)

var applyCmd = &cobra.Command{
	Use:     "apply",
	Short:   "Apply declarative resource tasks to a PowerStore array",
	Example: applyExample,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApply()
	},
}

// task is one document of the task file
type task struct {
	Name   string          `json:"name,omitempty"`
	Module string          `json:"module"`
	Params json.RawMessage `json:"params,omitempty"`
}

func readTasks(filename string) ([]task, error) {
	documents, err := helper.ReadYamlDocuments(filename)
	if err != nil {
		return nil, err
	}

	tasks := make([]task, 0, len(documents))
	for i, doc := range documents {
		raw, err := doc.JSON()
		if err != nil {
			return nil, err
		}

		var t task
		if err := json.Unmarshal(raw, &t); err != nil {
			return nil, fmt.Errorf("invalid task document %d: %w", i+1, err)
		}
		if t.Module == "" {
			return nil, fmt.Errorf("task document %d names no module", i+1)
		}
		if t.Name == "" {
			t.Name = fmt.Sprintf("%s task %d", t.Module, i+1)
		}
		if len(t.Params) == 0 {
			t.Params = json.RawMessage("{}")
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func runApply() error {
	tasks, err := readTasks(config.FileName)
	if err != nil {
		return helper.PrintlnError(err)
	}
	if len(tasks) == 0 {
		return helper.PrintlnError(fmt.Errorf("no tasks found in %s", config.FileName))
	}

	ctx := log.EnsureRequestID(context.Background())
	cli, err := newArrayClient(ctx)
	if err != nil {
		return helper.PrintlnError(err)
	}
	defer cli.Logout(ctx)

	var applied, changed int
	for _, t := range tasks {
		taskCtx := log.EnsureRequestID(context.Background())
		log.AddContext(taskCtx).Infof("applying task %q with module %s", t.Name, t.Module)

		result, err := modules.Dispatch(taskCtx, cli, t.Module, t.Params)
		if err != nil {
			fmt.Printf("task %q: failed: %v\n", t.Name, err)
			fmt.Printf("applied %d of %d tasks, %d changed, 1 failed\n",
				applied, len(tasks), changed)
			return err
		}

		applied++
		if result.Changed {
			changed++
			fmt.Printf("task %q: changed (id %s)\n", t.Name, result.ID)
		} else {
			fmt.Printf("task %q: ok\n", t.Name)
		}
		if result.Details != nil {
			printDetails(t.Name, result.Details)
		}
	}

	fmt.Printf("applied %d of %d tasks, %d changed, 0 failed\n", applied, len(tasks), changed)
	return nil
}

func printDetails(name string, details interface{}) {
	out, err := json.MarshalIndent(details, "", "  ")
	if err != nil {
		log.Warningf("cannot render details of task %q: %v", name, err)
		return
	}
	helper.PrintResult(string(out) + "\n")
}
