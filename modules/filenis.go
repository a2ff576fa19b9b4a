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

// fileNISAPI groups the client interfaces the file NIS applier needs
type fileNISAPI interface {
	client.NASServerClient
	client.FileNISClient
}

// FileNISParams defines one file NIS task, the addressing rules follow the
// file DNS module
type FileNISParams struct {
	FileNISID      string   `json:"file_nis_id,omitempty"`
	NASServer      string   `json:"nas_server,omitempty"`
	Domain         string   `json:"domain,omitempty"`
	IPAddresses    []string `json:"ip_addresses,omitempty"`
	AddIPAddresses []string `json:"add_ip_addresses,omitempty"`
	RemIPAddresses []string `json:"remove_ip_addresses,omitempty"`
	State          string   `json:"state"`
}

func validateFileNISParams(ctx context.Context, params *FileNISParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.FileNISID == "" && params.NASServer == "" {
		return utils.Errorln(ctx, "one of file_nis_id and nas_server is required")
	}
	if params.FileNISID != "" && params.NASServer != "" {
		return utils.Errorln(ctx, "file_nis_id and nas_server are mutually exclusive")
	}
	if len(params.IPAddresses) != 0 &&
		(len(params.AddIPAddresses) != 0 || len(params.RemIPAddresses) != 0) {
		return utils.Errorln(ctx,
			"ip_addresses is mutually exclusive with add/remove_ip_addresses")
	}
	if len(utils.Intersect(params.AddIPAddresses, params.RemIPAddresses)) != 0 {
		return utils.Errorln(ctx,
			"an address cannot be both added and removed")
	}
	return nil
}

// ApplyFileNIS converges the file NIS of one NAS server to the wanted state
func ApplyFileNIS(ctx context.Context, cli fileNISAPI, params *FileNISParams) (*Result, error) {
	if err := validateFileNISParams(ctx, params); err != nil {
		return nil, err
	}

	var nis *client.FileNIS
	var nasServerID string
	var err error
	if params.FileNISID != "" {
		nis, err = cli.GetFileNISByID(ctx, params.FileNISID)
	} else {
		nasServerID, err = resolveNASServer(ctx, cli, params.NASServer)
		if err != nil {
			return nil, err
		}
		nis, err = cli.GetFileNISByNASServerID(ctx, nasServerID)
	}
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if nis == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteFileNIS(ctx, nis.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: nis.ID}, nil
	}

	if nis == nil {
		if params.FileNISID != "" {
			return nil, utils.Errorf(ctx, "file nis %s not found", params.FileNISID)
		}
		if params.Domain == "" {
			return nil, utils.Errorln(ctx, "domain is required to create a file nis")
		}
		addresses := params.IPAddresses
		if len(addresses) == 0 {
			addresses = params.AddIPAddresses
		}
		if len(addresses) == 0 {
			return nil, utils.Errorln(ctx, "ip_addresses is required to create a file nis")
		}

		id, err := cli.CreateFileNIS(ctx, &client.CreateFileNISParams{
			NASServerID: nasServerID,
			Domain:      params.Domain,
			IPAddresses: addresses,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyFileNISParams{}
	changed := false

	if domain := strUpdate(nis.Domain, params.Domain); domain != nil {
		modify.Domain = domain
		changed = true
	}
	if addresses, dirty := mergeAddresses(nis.IPAddresses, params.IPAddresses,
		params.AddIPAddresses, params.RemIPAddresses); dirty {
		modify.IPAddresses = addresses
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: nis.ID, Details: nis}, nil
	}
	if err := cli.ModifyFileNIS(ctx, nis.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: nis.ID}, nil
}
