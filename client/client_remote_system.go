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

const remoteSystemSelectFields = "id,name,description,management_address," +
	"data_connection_state,data_network_latency,serial_number,type,capabilities"

// RemoteSystem describes one replication peer array
type RemoteSystem struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description,omitempty"`
	ManagementAddress   string   `json:"management_address"`
	DataConnectionState string   `json:"data_connection_state,omitempty"`
	DataNetworkLatency  string   `json:"data_network_latency,omitempty"`
	SerialNumber        string   `json:"serial_number,omitempty"`
	Type                string   `json:"type,omitempty"`
	Capabilities        []string `json:"capabilities,omitempty"`
}

// CreateRemoteSystemParams defines create remote system request. The remote
// admin credentials are only used once to pair the arrays, they are not stored.
type CreateRemoteSystemParams struct {
	ManagementAddress  string `json:"management_address"`
	Description        string `json:"description,omitempty"`
	DataNetworkLatency string `json:"data_network_latency,omitempty"`
	RemoteUser         string `json:"remote_user,omitempty"`
	RemotePassword     string `json:"remote_system_password,omitempty"`
}

// ModifyRemoteSystemParams defines modify remote system request, nil fields are left unchanged
type ModifyRemoteSystemParams struct {
	ManagementAddress  *string `json:"management_address,omitempty"`
	Description        *string `json:"description,omitempty"`
	DataNetworkLatency *string `json:"data_network_latency,omitempty"`
}

// RemoteSystemClient defines interfaces for remote system operations
type RemoteSystemClient interface {
	// GetRemoteSystemByID used to get remote system details by id
	GetRemoteSystemByID(ctx context.Context, id string) (*RemoteSystem, error)
	// GetRemoteSystemByName used to get remote system details by name
	GetRemoteSystemByName(ctx context.Context, name string) (*RemoteSystem, error)
	// GetRemoteSystemByAddress used to get remote system details by management address
	GetRemoteSystemByAddress(ctx context.Context, address string) (*RemoteSystem, error)
	// ListRemoteSystems used to get all remote systems of the array
	ListRemoteSystems(ctx context.Context) ([]RemoteSystem, error)
	// CreateRemoteSystem used to pair the array with a peer array
	CreateRemoteSystem(ctx context.Context, params *CreateRemoteSystemParams) (string, error)
	// ModifyRemoteSystem used to modify a remote system relation
	ModifyRemoteSystem(ctx context.Context, id string, params *ModifyRemoteSystemParams) error
	// DeleteRemoteSystem used to delete a remote system relation by id
	DeleteRemoteSystem(ctx context.Context, id string) error
}

// GetRemoteSystemByID used to get remote system details by id
func (cli *Client) GetRemoteSystemByID(ctx context.Context, id string) (*RemoteSystem, error) {
	query := url.Values{}
	query.Set("select", remoteSystemSelectFields)

	var system RemoteSystem
	exists, err := cli.getResource(ctx, "/remote_system/"+id, query, &system)
	if err != nil || !exists {
		return nil, err
	}
	return &system, nil
}

// GetRemoteSystemByName used to get remote system details by name
func (cli *Client) GetRemoteSystemByName(ctx context.Context, name string) (*RemoteSystem, error) {
	query := queryNameEq(name)
	query.Set("select", remoteSystemSelectFields)

	resp, err := cli.Get(ctx, "/remote_system", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get remote system %s error: %w", name, err)
	}

	var systems []RemoteSystem
	if err := resp.GetData(&systems); err != nil {
		return nil, err
	}
	if len(systems) == 0 {
		return nil, nil
	}
	return &systems[0], nil
}

// GetRemoteSystemByAddress used to get remote system details by management address
func (cli *Client) GetRemoteSystemByAddress(ctx context.Context, address string) (*RemoteSystem, error) {
	query := url.Values{}
	query.Set("management_address", "eq."+address)
	query.Set("select", remoteSystemSelectFields)

	resp, err := cli.Get(ctx, "/remote_system", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get remote system by address %s error: %w", address, err)
	}

	var systems []RemoteSystem
	if err := resp.GetData(&systems); err != nil {
		return nil, err
	}
	if len(systems) == 0 {
		return nil, nil
	}
	return &systems[0], nil
}

// ListRemoteSystems used to get all remote systems of the array
func (cli *Client) ListRemoteSystems(ctx context.Context) ([]RemoteSystem, error) {
	query := url.Values{}
	query.Set("select", remoteSystemSelectFields)

	var systems []RemoteSystem
	if err := cli.getBatchObjs(ctx, "/remote_system", query, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}

// CreateRemoteSystem used to pair the array with a peer array
func (cli *Client) CreateRemoteSystem(ctx context.Context, params *CreateRemoteSystemParams) (string, error) {
	resp, err := cli.Post(ctx, "/remote_system", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create remote system %s error: %w", params.ManagementAddress, err)
	}
	return id, nil
}

// ModifyRemoteSystem used to modify a remote system relation
func (cli *Client) ModifyRemoteSystem(ctx context.Context, id string, params *ModifyRemoteSystemParams) error {
	resp, err := cli.Patch(ctx, "/remote_system/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify remote system %s error: %w", id, err)
	}
	return nil
}

// DeleteRemoteSystem used to delete a remote system relation by id
func (cli *Client) DeleteRemoteSystem(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/remote_system/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete remote system %s error: %w", id, err)
	}
	return nil
}
