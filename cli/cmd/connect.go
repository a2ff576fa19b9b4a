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
	"errors"
	"strconv"

	"powerstore-ctl/cli/config"
	"powerstore-ctl/cli/helper"
	"powerstore-ctl/client"
)

// newArrayClient builds a logged in client from the connection config file.
// The caller owns the session and must call Logout.
func newArrayClient(ctx context.Context) (*client.Client, error) {
	if config.ConfigPath == "" {
		return nil, errors.New("connection config is required, set it with --config")
	}

	conn, err := config.LoadConnection(config.ConfigPath)
	if err != nil {
		return nil, err
	}
	if len(conn.Endpoints) == 0 || conn.Username == "" {
		return nil, errors.New("the connection config needs endpoints and username")
	}

	if conn.Password == "" {
		conn.Password, err = helper.ReadPassword("Please enter the array password:")
		if err != nil {
			return nil, err
		}
	}

	var parallel string
	if conn.Parallel > 0 {
		parallel = strconv.Itoa(conn.Parallel)
	}

	cli := client.NewClient(&client.NewClientConfig{
		Urls:        conn.Endpoints,
		User:        conn.Username,
		Password:    conn.Password,
		Insecure:    conn.Insecure || config.Insecure,
		ParallelNum: parallel,
	})

	if err := cli.Login(ctx); err != nil {
		return nil, err
	}
	return cli, nil
}
