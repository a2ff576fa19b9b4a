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

package modules

import (
	"context"

	"powerstore-ctl/client"
	"powerstore-ctl/utils"
)

// RemoteSystemParams defines one remote system task
type RemoteSystemParams struct {
	RemoteName         string `json:"remote_name,omitempty"`
	RemoteID           string `json:"remote_id,omitempty"`
	RemoteAddress      string `json:"remote_address,omitempty"`
	NewRemoteAddress   string `json:"new_remote_address,omitempty"`
	Description        string `json:"description,omitempty"`
	DataNetworkLatency string `json:"network_latency,omitempty"`
	RemoteUser         string `json:"remote_user,omitempty"`
	RemotePassword     string `json:"remote_password,omitempty"`
	State              string `json:"state"`
}

func validateRemoteSystemParams(ctx context.Context, params *RemoteSystemParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	count := 0
	if params.RemoteName != "" {
		count++
	}
	if params.RemoteID != "" {
		count++
	}
	if params.RemoteAddress != "" {
		count++
	}
	if count == 0 {
		return utils.Errorln(ctx,
			"one of remote_name, remote_id and remote_address is required")
	}
	if count > 1 {
		return utils.Errorln(ctx,
			"remote_name, remote_id and remote_address are mutually exclusive")
	}
	return nil
}

func getRemoteSystem(ctx context.Context, cli client.RemoteSystemClient,
	params *RemoteSystemParams) (*client.RemoteSystem, error) {
	switch {
	case params.RemoteID != "":
		return cli.GetRemoteSystemByID(ctx, params.RemoteID)
	case params.RemoteName != "":
		return cli.GetRemoteSystemByName(ctx, params.RemoteName)
	default:
		return cli.GetRemoteSystemByAddress(ctx, params.RemoteAddress)
	}
}

// ApplyRemoteSystem converges one replication peer relation to the wanted state
func ApplyRemoteSystem(ctx context.Context, cli client.RemoteSystemClient,
	params *RemoteSystemParams) (*Result, error) {
	if err := validateRemoteSystemParams(ctx, params); err != nil {
		return nil, err
	}

	remote, err := getRemoteSystem(ctx, cli, params)
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if remote == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteRemoteSystem(ctx, remote.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: remote.ID}, nil
	}

	if remote == nil {
		if params.RemoteAddress == "" {
			return nil, utils.Errorf(ctx, "remote system %s not found",
				params.RemoteName+params.RemoteID)
		}

		id, err := cli.CreateRemoteSystem(ctx, &client.CreateRemoteSystemParams{
			ManagementAddress:  params.RemoteAddress,
			Description:        params.Description,
			DataNetworkLatency: params.DataNetworkLatency,
			RemoteUser:         params.RemoteUser,
			RemotePassword:     params.RemotePassword,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyRemoteSystemParams{}
	changed := false

	if address := strUpdate(remote.ManagementAddress, params.NewRemoteAddress); address != nil {
		modify.ManagementAddress = address
		changed = true
	}
	if desc := strUpdate(remote.Description, params.Description); desc != nil {
		modify.Description = desc
		changed = true
	}
	if latency := strUpdate(remote.DataNetworkLatency, params.DataNetworkLatency); latency != nil {
		modify.DataNetworkLatency = latency
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: remote.ID, Details: remote}, nil
	}
	if err := cli.ModifyRemoteSystem(ctx, remote.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: remote.ID}, nil
}
