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

// fileInterfaceAPI groups the client interfaces the file interface applier needs
type fileInterfaceAPI interface {
	client.NASServerClient
	client.FileInterfaceClient
}

// FileInterfaceParams defines one file interface task, the interface is
// identified by its NAS server and ip address
type FileInterfaceParams struct {
	FileInterfaceID string `json:"file_interface_id,omitempty"`
	NASServer       string `json:"nas_server,omitempty"`
	IPAddress       string `json:"ip_address,omitempty"`
	NewIPAddress    string `json:"new_ip_address,omitempty"`
	PrefixLength    *int   `json:"prefix_length,omitempty"`
	Gateway         string `json:"gateway,omitempty"`
	VlanID          *int   `json:"vlan_id,omitempty"`
	Role            string `json:"role,omitempty"`
	IsDisabled      *bool  `json:"is_disabled,omitempty"`
	State           string `json:"state"`
}

func validateFileInterfaceParams(ctx context.Context, params *FileInterfaceParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.FileInterfaceID == "" {
		if params.NASServer == "" || params.IPAddress == "" {
			return utils.Errorln(ctx,
				"nas_server and ip_address are required without file_interface_id")
		}
	} else if params.NASServer != "" || params.IPAddress != "" {
		return utils.Errorln(ctx,
			"file_interface_id is mutually exclusive with nas_server and ip_address")
	}
	return nil
}

// ApplyFileInterface converges one file interface to the wanted state
func ApplyFileInterface(ctx context.Context, cli fileInterfaceAPI,
	params *FileInterfaceParams) (*Result, error) {
	if err := validateFileInterfaceParams(ctx, params); err != nil {
		return nil, err
	}

	var iface *client.FileInterface
	var nasServerID string
	var err error
	if params.FileInterfaceID != "" {
		iface, err = cli.GetFileInterfaceByID(ctx, params.FileInterfaceID)
	} else {
		nasServerID, err = resolveNASServer(ctx, cli, params.NASServer)
		if err != nil {
			return nil, err
		}
		iface, err = cli.GetFileInterfaceByIP(ctx, nasServerID, params.IPAddress)
	}
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if iface == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteFileInterface(ctx, iface.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: iface.ID}, nil
	}

	if iface == nil {
		if params.FileInterfaceID != "" {
			return nil, utils.Errorf(ctx, "file interface %s not found",
				params.FileInterfaceID)
		}
		if params.PrefixLength == nil {
			return nil, utils.Errorln(ctx,
				"prefix_length is required to create a file interface")
		}

		create := &client.CreateFileInterfaceParams{
			NASServerID:  nasServerID,
			IPAddress:    params.IPAddress,
			PrefixLength: *params.PrefixLength,
			Gateway:      params.Gateway,
			Role:         params.Role,
			IsDisabled:   params.IsDisabled,
		}
		if params.VlanID != nil {
			create.VlanID = *params.VlanID
		}

		id, err := cli.CreateFileInterface(ctx, create)
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyFileInterfaceParams{}
	changed := false

	if ip := strUpdate(iface.IPAddress, params.NewIPAddress); ip != nil {
		modify.IPAddress = ip
		changed = true
	}
	if prefix := intUpdate(iface.PrefixLength, params.PrefixLength); prefix != nil {
		modify.PrefixLength = prefix
		changed = true
	}
	if gateway := strUpdate(iface.Gateway, params.Gateway); gateway != nil {
		modify.Gateway = gateway
		changed = true
	}
	if vlan := intUpdate(iface.VlanID, params.VlanID); vlan != nil {
		modify.VlanID = vlan
		changed = true
	}
	if disabled := boolUpdate(iface.IsDisabled, params.IsDisabled); disabled != nil {
		modify.IsDisabled = disabled
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: iface.ID, Details: iface}, nil
	}
	if err := cli.ModifyFileInterface(ctx, iface.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: iface.ID}, nil
}
