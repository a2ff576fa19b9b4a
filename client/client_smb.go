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

const smbServerSelectFields = "id,nas_server_id,computer_name,domain," +
	"netbios_name,workgroup,description,is_standalone,is_joined"

// SMBServer describes the SMB protocol endpoint of one NAS server
type SMBServer struct {
	ID           string `json:"id"`
	NASServerID  string `json:"nas_server_id"`
	ComputerName string `json:"computer_name,omitempty"`
	Domain       string `json:"domain,omitempty"`
	NetbiosName  string `json:"netbios_name,omitempty"`
	Workgroup    string `json:"workgroup,omitempty"`
	Description  string `json:"description,omitempty"`
	IsStandalone bool   `json:"is_standalone"`
	IsJoined     bool   `json:"is_joined,omitempty"`
}

// CreateSMBServerParams defines create SMB server request. A domain joined
// server needs computer_name/domain plus the domain credentials, a standalone
// server needs netbios_name/workgroup.
type CreateSMBServerParams struct {
	NASServerID    string `json:"nas_server_id"`
	IsStandalone   *bool  `json:"is_standalone,omitempty"`
	ComputerName   string `json:"computer_name,omitempty"`
	Domain         string `json:"domain,omitempty"`
	NetbiosName    string `json:"netbios_name,omitempty"`
	Workgroup      string `json:"workgroup,omitempty"`
	Description    string `json:"description,omitempty"`
	LocalAdminPass string `json:"local_admin_password,omitempty"`
}

// ModifySMBServerParams defines modify SMB server request, nil fields are left unchanged
type ModifySMBServerParams struct {
	ComputerName   *string `json:"computer_name,omitempty"`
	Domain         *string `json:"domain,omitempty"`
	NetbiosName    *string `json:"netbios_name,omitempty"`
	Workgroup      *string `json:"workgroup,omitempty"`
	Description    *string `json:"description,omitempty"`
	IsStandalone   *bool   `json:"is_standalone,omitempty"`
	LocalAdminPass *string `json:"local_admin_password,omitempty"`
}

// SMBServerClient defines interfaces for SMB server operations
type SMBServerClient interface {
	// GetSMBServerByID used to get SMB server details by id
	GetSMBServerByID(ctx context.Context, id string) (*SMBServer, error)
	// GetSMBServerByNASServerID used to get the SMB server of one NAS server
	GetSMBServerByNASServerID(ctx context.Context, nasServerID string) (*SMBServer, error)
	// CreateSMBServer used to create an SMB server on a NAS server
	CreateSMBServer(ctx context.Context, params *CreateSMBServerParams) (string, error)
	// ModifySMBServer used to modify an SMB server
	ModifySMBServer(ctx context.Context, id string, params *ModifySMBServerParams) error
	// DeleteSMBServer used to delete an SMB server by id
	DeleteSMBServer(ctx context.Context, id string, skipUnjoin bool) error
}

// GetSMBServerByID used to get SMB server details by id
func (cli *Client) GetSMBServerByID(ctx context.Context, id string) (*SMBServer, error) {
	query := url.Values{}
	query.Set("select", smbServerSelectFields)

	var server SMBServer
	exists, err := cli.getResource(ctx, "/smb_server/"+id, query, &server)
	if err != nil || !exists {
		return nil, err
	}
	return &server, nil
}

// GetSMBServerByNASServerID used to get the SMB server of one NAS server
func (cli *Client) GetSMBServerByNASServerID(ctx context.Context, nasServerID string) (*SMBServer, error) {
	query := url.Values{}
	query.Set("nas_server_id", "eq."+nasServerID)
	query.Set("select", smbServerSelectFields)

	resp, err := cli.Get(ctx, "/smb_server", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get smb server of nas server %s error: %w", nasServerID, err)
	}

	var servers []SMBServer
	if err := resp.GetData(&servers); err != nil {
		return nil, err
	}
	if len(servers) == 0 {
		return nil, nil
	}
	return &servers[0], nil
}

// CreateSMBServer used to create an SMB server on a NAS server
func (cli *Client) CreateSMBServer(ctx context.Context, params *CreateSMBServerParams) (string, error) {
	resp, err := cli.Post(ctx, "/smb_server", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create smb server on nas server %s error: %w", params.NASServerID, err)
	}
	return id, nil
}

// ModifySMBServer used to modify an SMB server
func (cli *Client) ModifySMBServer(ctx context.Context, id string, params *ModifySMBServerParams) error {
	resp, err := cli.Patch(ctx, "/smb_server/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify smb server %s error: %w", id, err)
	}
	return nil
}

// DeleteSMBServer used to delete an SMB server by id. A domain joined server
// can skip the domain unjoin on delete.
func (cli *Client) DeleteSMBServer(ctx context.Context, id string, skipUnjoin bool) error {
	var data interface{}
	if skipUnjoin {
		data = map[string]interface{}{"is_skip_unjoin": true}
	}

	resp, err := cli.Delete(ctx, "/smb_server/"+id, data)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete smb server %s error: %w", id, err)
	}
	return nil
}
