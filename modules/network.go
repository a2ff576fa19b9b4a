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

// NetworkParams defines one network task. Networks exist from the initial
// cluster configuration onwards, the applier only modifies them.
type NetworkParams struct {
	NetworkName     string   `json:"network_name,omitempty"`
	NetworkID       string   `json:"network_id,omitempty"`
	VlanID          *int     `json:"vlan_id,omitempty"`
	PrefixLength    *int     `json:"prefix_length,omitempty"`
	Gateway         string   `json:"gateway,omitempty"`
	MTU             *int     `json:"mtu,omitempty"`
	AddAddresses    []string `json:"addresses,omitempty"`
	RemoveAddresses []string `json:"remove_addresses,omitempty"`
	State           string   `json:"state"`
}

func validateNetworkParams(ctx context.Context, params *NetworkParams) error {
	if params.State != StatePresent {
		return utils.Errorln(ctx,
			"networks cannot be created or deleted, state must be present")
	}
	if params.NetworkName == "" && params.NetworkID == "" {
		return utils.Errorln(ctx, "one of network_name and network_id is required")
	}
	if params.NetworkName != "" && params.NetworkID != "" {
		return utils.Errorln(ctx, "network_name and network_id are mutually exclusive")
	}
	return nil
}

// ApplyNetwork converges one cluster network to the wanted state
func ApplyNetwork(ctx context.Context, cli client.NetworkClient,
	params *NetworkParams) (*Result, error) {
	if err := validateNetworkParams(ctx, params); err != nil {
		return nil, err
	}

	var network *client.Network
	var err error
	if params.NetworkID != "" {
		network, err = cli.GetNetworkByID(ctx, params.NetworkID)
	} else {
		network, err = cli.GetNetworkByName(ctx, params.NetworkName)
	}
	if err != nil {
		return nil, err
	}
	if network == nil {
		return nil, utils.Errorf(ctx, "network %s not found",
			params.NetworkName+params.NetworkID)
	}

	modify := &client.ModifyNetworkParams{}
	changed := false

	if vlan := intUpdate(network.VlanID, params.VlanID); vlan != nil {
		modify.VlanID = vlan
		changed = true
	}
	if prefix := intUpdate(network.PrefixLength, params.PrefixLength); prefix != nil {
		modify.PrefixLength = prefix
		changed = true
	}
	if gateway := strUpdate(network.Gateway, params.Gateway); gateway != nil {
		modify.Gateway = gateway
		changed = true
	}
	if mtu := intUpdate(network.MTU, params.MTU); mtu != nil {
		modify.MTU = mtu
		changed = true
	}
	if len(params.AddAddresses) != 0 || len(params.RemoveAddresses) != 0 {
		pool, err := cli.ListIPPoolAddresses(ctx, network.ID)
		if err != nil {
			return nil, err
		}
		current := make([]string, 0, len(pool))
		for _, address := range pool {
			current = append(current, address.Address)
		}

		add := utils.Subtract(params.AddAddresses, current)
		remove := utils.Intersect(current, params.RemoveAddresses)
		if len(add) != 0 || len(remove) != 0 {
			modify.AddAddresses = add
			modify.RemoveAddresses = remove
			changed = true
		}
	}

	if !changed {
		return &Result{Changed: false, ID: network.ID, Details: network}, nil
	}
	if err := cli.ModifyNetwork(ctx, network.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: network.ID}, nil
}
