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

package client

import (
	"context"
	"fmt"
	"net/url"
)

const networkSelectFields = "id,name,type,ip_version,vlan_id,prefix_length," +
	"gateway,mtu,purposes"

const ipPoolAddressSelectFields = "id,name,network_id,appliance_id,address,purposes"

// Network describes one cluster network of the array. Networks are created
// by the initial configuration wizard, they can only be listed and modified.
type Network struct {
	ID           string   `json:"id"`
	Name         string   `json:"name,omitempty"`
	Type         string   `json:"type"`
	IPVersion    string   `json:"ip_version,omitempty"`
	VlanID       int      `json:"vlan_id,omitempty"`
	PrefixLength int      `json:"prefix_length,omitempty"`
	Gateway      string   `json:"gateway,omitempty"`
	MTU          int      `json:"mtu,omitempty"`
	Purposes     []string `json:"purposes,omitempty"`
}

// IPPoolAddress is one address of a network's IP pool
type IPPoolAddress struct {
	ID          string   `json:"id"`
	Name        string   `json:"name,omitempty"`
	NetworkID   string   `json:"network_id"`
	ApplianceID string   `json:"appliance_id,omitempty"`
	Address     string   `json:"address"`
	Purposes    []string `json:"purposes,omitempty"`
}

// ModifyNetworkParams defines modify network request, nil fields are left unchanged
type ModifyNetworkParams struct {
	VlanID          *int     `json:"vlan_id,omitempty"`
	PrefixLength    *int     `json:"prefix_length,omitempty"`
	Gateway         *string  `json:"gateway,omitempty"`
	MTU             *int     `json:"mtu,omitempty"`
	AddAddresses    []string `json:"add_addresses,omitempty"`
	RemoveAddresses []string `json:"remove_addresses,omitempty"`
}

// NetworkClient defines interfaces for network operations
type NetworkClient interface {
	// GetNetworkByID used to get network details by id
	GetNetworkByID(ctx context.Context, id string) (*Network, error)
	// GetNetworkByName used to get network details by name
	GetNetworkByName(ctx context.Context, name string) (*Network, error)
	// ListNetworks used to get all networks of the array
	ListNetworks(ctx context.Context) ([]Network, error)
	// ListIPPoolAddresses used to get the IP pool addresses of one network
	ListIPPoolAddresses(ctx context.Context, networkID string) ([]IPPoolAddress, error)
	// ModifyNetwork used to modify the address settings of a network
	ModifyNetwork(ctx context.Context, id string, params *ModifyNetworkParams) error
}

// GetNetworkByID used to get network details by id
func (cli *Client) GetNetworkByID(ctx context.Context, id string) (*Network, error) {
	query := url.Values{}
	query.Set("select", networkSelectFields)

	var network Network
	exists, err := cli.getResource(ctx, "/network/"+id, query, &network)
	if err != nil || !exists {
		return nil, err
	}
	return &network, nil
}

// GetNetworkByName used to get network details by name
func (cli *Client) GetNetworkByName(ctx context.Context, name string) (*Network, error) {
	query := queryNameEq(name)
	query.Set("select", networkSelectFields)

	resp, err := cli.Get(ctx, "/network", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get network %s error: %w", name, err)
	}

	var networks []Network
	if err := resp.GetData(&networks); err != nil {
		return nil, err
	}
	if len(networks) == 0 {
		return nil, nil
	}
	return &networks[0], nil
}

// ListNetworks used to get all networks of the array
func (cli *Client) ListNetworks(ctx context.Context) ([]Network, error) {
	query := url.Values{}
	query.Set("select", networkSelectFields)

	var networks []Network
	if err := cli.getBatchObjs(ctx, "/network", query, &networks); err != nil {
		return nil, err
	}
	return networks, nil
}

// ListIPPoolAddresses used to get the IP pool addresses of one network
func (cli *Client) ListIPPoolAddresses(ctx context.Context, networkID string) ([]IPPoolAddress, error) {
	query := url.Values{}
	query.Set("network_id", "eq."+networkID)
	query.Set("select", ipPoolAddressSelectFields)

	var addresses []IPPoolAddress
	if err := cli.getBatchObjs(ctx, "/ip_pool_address", query, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// ModifyNetwork used to modify the address settings of a network
func (cli *Client) ModifyNetwork(ctx context.Context, id string, params *ModifyNetworkParams) error {
	resp, err := cli.Patch(ctx, "/network/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify network %s error: %w", id, err)
	}
	return nil
}
