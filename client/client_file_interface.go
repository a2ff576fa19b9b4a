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

const fileInterfaceSelectFields = "id,nas_server_id,ip_address,prefix_length," +
	"gateway,vlan_id,name,role,is_disabled"

// FileInterface describes one network interface of a NAS server
type FileInterface struct {
	ID           string `json:"id"`
	NASServerID  string `json:"nas_server_id"`
	IPAddress    string `json:"ip_address"`
	PrefixLength int    `json:"prefix_length"`
	Gateway      string `json:"gateway,omitempty"`
	VlanID       int    `json:"vlan_id,omitempty"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role,omitempty"`
	IsDisabled   bool   `json:"is_disabled,omitempty"`
}

// CreateFileInterfaceParams defines create file interface request
type CreateFileInterfaceParams struct {
	NASServerID  string `json:"nas_server_id"`
	IPAddress    string `json:"ip_address"`
	PrefixLength int    `json:"prefix_length"`
	Gateway      string `json:"gateway,omitempty"`
	VlanID       int    `json:"vlan_id,omitempty"`
	Role         string `json:"role,omitempty"`
	IsDisabled   *bool  `json:"is_disabled,omitempty"`
}

// ModifyFileInterfaceParams defines modify file interface request, nil fields are left unchanged
type ModifyFileInterfaceParams struct {
	IPAddress    *string `json:"ip_address,omitempty"`
	PrefixLength *int    `json:"prefix_length,omitempty"`
	Gateway      *string `json:"gateway,omitempty"`
	VlanID       *int    `json:"vlan_id,omitempty"`
	IsDisabled   *bool   `json:"is_disabled,omitempty"`
}

// FileInterfaceClient defines interfaces for file interface operations
type FileInterfaceClient interface {
	// GetFileInterfaceByID used to get file interface details by id
	GetFileInterfaceByID(ctx context.Context, id string) (*FileInterface, error)
	// GetFileInterfaceByIP used to get the file interface of one NAS server by ip
	GetFileInterfaceByIP(ctx context.Context, nasServerID, ipAddress string) (*FileInterface, error)
	// CreateFileInterface used to create a file interface
	CreateFileInterface(ctx context.Context, params *CreateFileInterfaceParams) (string, error)
	// ModifyFileInterface used to modify a file interface
	ModifyFileInterface(ctx context.Context, id string, params *ModifyFileInterfaceParams) error
	// DeleteFileInterface used to delete a file interface by id
	DeleteFileInterface(ctx context.Context, id string) error
}

// GetFileInterfaceByID used to get file interface details by id
func (cli *Client) GetFileInterfaceByID(ctx context.Context, id string) (*FileInterface, error) {
	query := url.Values{}
	query.Set("select", fileInterfaceSelectFields)

	var iface FileInterface
	exists, err := cli.getResource(ctx, "/file_interface/"+id, query, &iface)
	if err != nil || !exists {
		return nil, err
	}
	return &iface, nil
}

// GetFileInterfaceByIP used to get the file interface of one NAS server by ip
func (cli *Client) GetFileInterfaceByIP(ctx context.Context, nasServerID, ipAddress string) (*FileInterface, error) {
	query := url.Values{}
	query.Set("nas_server_id", "eq."+nasServerID)
	query.Set("ip_address", "eq."+ipAddress)
	query.Set("select", fileInterfaceSelectFields)

	resp, err := cli.Get(ctx, "/file_interface", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get file interface %s error: %w", ipAddress, err)
	}

	var ifaces []FileInterface
	if err := resp.GetData(&ifaces); err != nil {
		return nil, err
	}
	if len(ifaces) == 0 {
		return nil, nil
	}
	return &ifaces[0], nil
}

// CreateFileInterface used to create a file interface
func (cli *Client) CreateFileInterface(ctx context.Context, params *CreateFileInterfaceParams) (string, error) {
	resp, err := cli.Post(ctx, "/file_interface", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create file interface %s error: %w", params.IPAddress, err)
	}
	return id, nil
}

// ModifyFileInterface used to modify a file interface
func (cli *Client) ModifyFileInterface(ctx context.Context, id string, params *ModifyFileInterfaceParams) error {
	resp, err := cli.Patch(ctx, "/file_interface/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify file interface %s error: %w", id, err)
	}
	return nil
}

// DeleteFileInterface used to delete a file interface by id
func (cli *Client) DeleteFileInterface(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/file_interface/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete file interface %s error: %w", id, err)
	}
	return nil
}
