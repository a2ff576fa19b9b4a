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

// NASServerParams defines one NAS server task
type NASServerParams struct {
	NASServerName               string `json:"nas_server_name,omitempty"`
	NASServerID                 string `json:"nas_server_id,omitempty"`
	NewName                     string `json:"nas_server_new_name,omitempty"`
	Description                 string `json:"description,omitempty"`
	CurrentUnixDirectoryService string `json:"current_unix_directory_service,omitempty"`
	DefaultUnixUser             string `json:"default_unix_user,omitempty"`
	DefaultWindowsUser          string `json:"default_windows_user,omitempty"`
	ProtectionPolicy            string `json:"protection_policy,omitempty"`
	State                       string `json:"state"`
}

func validateNASServerParams(ctx context.Context, params *NASServerParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.NASServerName == "" && params.NASServerID == "" {
		return utils.Errorln(ctx, "one of nas_server_name and nas_server_id is required")
	}
	if params.NASServerName != "" && params.NASServerID != "" {
		return utils.Errorln(ctx, "nas_server_name and nas_server_id are mutually exclusive")
	}
	return nil
}

func getNASServer(ctx context.Context, cli client.NASServerClient,
	name, id string) (*client.NASServer, error) {
	if id != "" {
		return cli.GetNASServerByID(ctx, id)
	}
	return cli.GetNASServerByName(ctx, name)
}

// ApplyNASServer converges one NAS server to the wanted state
func ApplyNASServer(ctx context.Context, cli client.NASServerClient,
	params *NASServerParams) (*Result, error) {
	if err := validateNASServerParams(ctx, params); err != nil {
		return nil, err
	}

	nas, err := getNASServer(ctx, cli, params.NASServerName, params.NASServerID)
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if nas == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteNASServer(ctx, nas.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: nas.ID}, nil
	}

	if nas == nil {
		if params.NASServerID != "" {
			return nil, utils.Errorf(ctx, "nas server %s not found", params.NASServerID)
		}
		if params.NewName != "" {
			return nil, utils.Errorf(ctx, "cannot rename nas server %s, it does not exist",
				params.NASServerName)
		}

		id, err := cli.CreateNASServer(ctx, &client.CreateNASServerParams{
			Name:                        params.NASServerName,
			Description:                 params.Description,
			CurrentUnixDirectoryService: params.CurrentUnixDirectoryService,
			DefaultUnixUser:             params.DefaultUnixUser,
			DefaultWindowsUser:          params.DefaultWindowsUser,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyNASServerParams{}
	changed := false

	if params.NewName != "" && params.NewName != nas.Name {
		modify.Name = &params.NewName
		changed = true
	}
	if desc := strUpdate(nas.Description, params.Description); desc != nil {
		modify.Description = desc
		changed = true
	}
	if uds := strUpdate(nas.CurrentUnixDirectoryService, params.CurrentUnixDirectoryService); uds != nil {
		modify.CurrentUnixDirectoryService = uds
		changed = true
	}
	if user := strUpdate(nas.DefaultUnixUser, params.DefaultUnixUser); user != nil {
		modify.DefaultUnixUser = user
		changed = true
	}
	if user := strUpdate(nas.DefaultWindowsUser, params.DefaultWindowsUser); user != nil {
		modify.DefaultWindowsUser = user
		changed = true
	}
	if policy := strUpdate(nas.ProtectionPolicyID, params.ProtectionPolicy); policy != nil {
		modify.ProtectionPolicyID = policy
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: nas.ID, Details: nas}, nil
	}
	if err := cli.ModifyNASServer(ctx, nas.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: nas.ID}, nil
}
