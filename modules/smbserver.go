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

// smbServerAPI groups the client interfaces the SMB server applier needs
type smbServerAPI interface {
	client.NASServerClient
	client.SMBServerClient
}

// SMBServerParams defines one SMB server task. A standalone server is named
// by netbios_name/workgroup, a domain joined one by computer_name/domain.
type SMBServerParams struct {
	SMBServerID        string `json:"smb_server_id,omitempty"`
	NASServer          string `json:"nas_server,omitempty"`
	IsStandalone       *bool  `json:"is_standalone,omitempty"`
	ComputerName       string `json:"computer_name,omitempty"`
	Domain             string `json:"domain,omitempty"`
	NetbiosName        string `json:"netbios_name,omitempty"`
	Workgroup          string `json:"workgroup,omitempty"`
	Description        string `json:"description,omitempty"`
	LocalAdminPassword string `json:"local_admin_password,omitempty"`
	IsSkipUnjoin       *bool  `json:"is_skip_unjoin,omitempty"`
	State              string `json:"state"`
}

func validateSMBServerParams(ctx context.Context, params *SMBServerParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.SMBServerID == "" && params.NASServer == "" {
		return utils.Errorln(ctx, "one of smb_server_id and nas_server is required")
	}
	if params.SMBServerID != "" && params.NASServer != "" {
		return utils.Errorln(ctx, "smb_server_id and nas_server are mutually exclusive")
	}

	standalone := params.IsStandalone != nil && *params.IsStandalone
	if standalone && (params.ComputerName != "" || params.Domain != "") {
		return utils.Errorln(ctx,
			"computer_name and domain do not apply to a standalone smb server")
	}
	if params.IsStandalone != nil && !standalone &&
		(params.NetbiosName != "" || params.Workgroup != "") {
		return utils.Errorln(ctx,
			"netbios_name and workgroup do not apply to a domain joined smb server")
	}
	return nil
}

// ApplySMBServer converges the SMB server of one NAS server to the wanted state
func ApplySMBServer(ctx context.Context, cli smbServerAPI, params *SMBServerParams) (*Result, error) {
	if err := validateSMBServerParams(ctx, params); err != nil {
		return nil, err
	}

	var server *client.SMBServer
	var nasServerID string
	var err error
	if params.SMBServerID != "" {
		server, err = cli.GetSMBServerByID(ctx, params.SMBServerID)
	} else {
		nasServerID, err = resolveNASServer(ctx, cli, params.NASServer)
		if err != nil {
			return nil, err
		}
		server, err = cli.GetSMBServerByNASServerID(ctx, nasServerID)
	}
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if server == nil {
			return &Result{Changed: false}, nil
		}
		skipUnjoin := params.IsSkipUnjoin != nil && *params.IsSkipUnjoin
		if err := cli.DeleteSMBServer(ctx, server.ID, skipUnjoin); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: server.ID}, nil
	}

	if server == nil {
		if params.SMBServerID != "" {
			return nil, utils.Errorf(ctx, "smb server %s not found", params.SMBServerID)
		}

		id, err := cli.CreateSMBServer(ctx, &client.CreateSMBServerParams{
			NASServerID:    nasServerID,
			IsStandalone:   params.IsStandalone,
			ComputerName:   params.ComputerName,
			Domain:         params.Domain,
			NetbiosName:    params.NetbiosName,
			Workgroup:      params.Workgroup,
			Description:    params.Description,
			LocalAdminPass: params.LocalAdminPassword,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifySMBServerParams{}
	changed := false

	if name := strUpdate(server.ComputerName, params.ComputerName); name != nil {
		modify.ComputerName = name
		changed = true
	}
	if domain := strUpdate(server.Domain, params.Domain); domain != nil {
		modify.Domain = domain
		changed = true
	}
	if name := strUpdate(server.NetbiosName, params.NetbiosName); name != nil {
		modify.NetbiosName = name
		changed = true
	}
	if group := strUpdate(server.Workgroup, params.Workgroup); group != nil {
		modify.Workgroup = group
		changed = true
	}
	if desc := strUpdate(server.Description, params.Description); desc != nil {
		modify.Description = desc
		changed = true
	}
	if standalone := boolUpdate(server.IsStandalone, params.IsStandalone); standalone != nil {
		modify.IsStandalone = standalone
		changed = true
	}
	if changed && params.LocalAdminPassword != "" {
		modify.LocalAdminPass = &params.LocalAdminPassword
	}

	if !changed {
		return &Result{Changed: false, ID: server.ID, Details: server}, nil
	}
	if err := cli.ModifySMBServer(ctx, server.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: server.ID}, nil
}
