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

// nfsServerAPI groups the client interfaces the NFS server applier needs
type nfsServerAPI interface {
	client.NASServerClient
	client.NFSServerClient
}

// NFSServerParams defines one NFS server task
type NFSServerParams struct {
	NFSServerID                  string `json:"nfs_server_id,omitempty"`
	NASServer                    string `json:"nas_server,omitempty"`
	HostName                     string `json:"host_name,omitempty"`
	CredentialsCacheTTL          *int   `json:"credentials_cache_TTL,omitempty"`
	IsExtendedCredentialsEnabled *bool  `json:"is_extended_credentials_enabled,omitempty"`
	IsNFSv3Enabled               *bool  `json:"is_nfsv3_enabled,omitempty"`
	IsNFSv4Enabled               *bool  `json:"is_nfsv4_enabled,omitempty"`
	IsSecureEnabled              *bool  `json:"is_secure_enabled,omitempty"`
	IsSkipUnjoin                 *bool  `json:"is_skip_unjoin,omitempty"`
	State                        string `json:"state"`
}

func validateNFSServerParams(ctx context.Context, params *NFSServerParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.NFSServerID == "" && params.NASServer == "" {
		return utils.Errorln(ctx, "one of nfs_server_id and nas_server is required")
	}
	if params.NFSServerID != "" && params.NASServer != "" {
		return utils.Errorln(ctx, "nfs_server_id and nas_server are mutually exclusive")
	}
	return nil
}

// ApplyNFSServer converges the NFS server of one NAS server to the wanted state
func ApplyNFSServer(ctx context.Context, cli nfsServerAPI, params *NFSServerParams) (*Result, error) {
	if err := validateNFSServerParams(ctx, params); err != nil {
		return nil, err
	}

	var server *client.NFSServer
	var nasServerID string
	var err error
	if params.NFSServerID != "" {
		server, err = cli.GetNFSServerByID(ctx, params.NFSServerID)
	} else {
		nasServerID, err = resolveNASServer(ctx, cli, params.NASServer)
		if err != nil {
			return nil, err
		}
		server, err = cli.GetNFSServerByNASServerID(ctx, nasServerID)
	}
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if server == nil {
			return &Result{Changed: false}, nil
		}
		skipUnjoin := params.IsSkipUnjoin != nil && *params.IsSkipUnjoin
		if err := cli.DeleteNFSServer(ctx, server.ID, skipUnjoin); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: server.ID}, nil
	}

	if server == nil {
		if params.NFSServerID != "" {
			return nil, utils.Errorf(ctx, "nfs server %s not found", params.NFSServerID)
		}

		id, err := cli.CreateNFSServer(ctx, &client.CreateNFSServerParams{
			NASServerID:                  nasServerID,
			HostName:                     params.HostName,
			CredentialsCacheTTL:          params.CredentialsCacheTTL,
			IsExtendedCredentialsEnabled: params.IsExtendedCredentialsEnabled,
			IsNFSv3Enabled:               params.IsNFSv3Enabled,
			IsNFSv4Enabled:               params.IsNFSv4Enabled,
			IsSecureEnabled:              params.IsSecureEnabled,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyNFSServerParams{}
	changed := false

	if host := strUpdate(server.HostName, params.HostName); host != nil {
		modify.HostName = host
		changed = true
	}
	if ttl := intUpdate(server.CredentialsCacheTTL, params.CredentialsCacheTTL); ttl != nil {
		modify.CredentialsCacheTTL = ttl
		changed = true
	}
	if flag := boolUpdate(server.IsExtendedCredentialsEnabled, params.IsExtendedCredentialsEnabled); flag != nil {
		modify.IsExtendedCredentialsEnabled = flag
		changed = true
	}
	if flag := boolUpdate(server.IsNFSv3Enabled, params.IsNFSv3Enabled); flag != nil {
		modify.IsNFSv3Enabled = flag
		changed = true
	}
	if flag := boolUpdate(server.IsNFSv4Enabled, params.IsNFSv4Enabled); flag != nil {
		modify.IsNFSv4Enabled = flag
		changed = true
	}
	if flag := boolUpdate(server.IsSecureEnabled, params.IsSecureEnabled); flag != nil {
		modify.IsSecureEnabled = flag
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: server.ID, Details: server}, nil
	}
	if err := cli.ModifyNFSServer(ctx, server.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: server.ID}, nil
}
