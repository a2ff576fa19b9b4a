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

const nfsServerSelectFields = "id,nas_server_id,host_name,credentials_cache_TTL," +
	"is_extended_credentials_enabled,is_nfsv3_enabled,is_nfsv4_enabled," +
	"is_secure_enabled,is_joined"

// NFSServer describes the NFS protocol endpoint of one NAS server
type NFSServer struct {
	ID                           string `json:"id"`
	NASServerID                  string `json:"nas_server_id"`
	HostName                     string `json:"host_name,omitempty"`
	CredentialsCacheTTL          int    `json:"credentials_cache_TTL,omitempty"`
	IsExtendedCredentialsEnabled bool   `json:"is_extended_credentials_enabled"`
	IsNFSv3Enabled               bool   `json:"is_nfsv3_enabled"`
	IsNFSv4Enabled               bool   `json:"is_nfsv4_enabled"`
	IsSecureEnabled              bool   `json:"is_secure_enabled"`
	IsJoined                     bool   `json:"is_joined,omitempty"`
}

// CreateNFSServerParams defines create NFS server request
type CreateNFSServerParams struct {
	NASServerID                  string `json:"nas_server_id"`
	HostName                     string `json:"host_name,omitempty"`
	CredentialsCacheTTL          *int   `json:"credentials_cache_TTL,omitempty"`
	IsExtendedCredentialsEnabled *bool  `json:"is_extended_credentials_enabled,omitempty"`
	IsNFSv3Enabled               *bool  `json:"is_nfsv3_enabled,omitempty"`
	IsNFSv4Enabled               *bool  `json:"is_nfsv4_enabled,omitempty"`
	IsSecureEnabled              *bool  `json:"is_secure_enabled,omitempty"`
}

// ModifyNFSServerParams defines modify NFS server request, nil fields are left unchanged
type ModifyNFSServerParams struct {
	HostName                     *string `json:"host_name,omitempty"`
	CredentialsCacheTTL          *int    `json:"credentials_cache_TTL,omitempty"`
	IsExtendedCredentialsEnabled *bool   `json:"is_extended_credentials_enabled,omitempty"`
	IsNFSv3Enabled               *bool   `json:"is_nfsv3_enabled,omitempty"`
	IsNFSv4Enabled               *bool   `json:"is_nfsv4_enabled,omitempty"`
	IsSecureEnabled              *bool   `json:"is_secure_enabled,omitempty"`
	IsSkipUnjoin                 *bool   `json:"is_skip_unjoin,omitempty"`
}

// NFSServerClient defines interfaces for NFS server operations
type NFSServerClient interface {
	// GetNFSServerByID used to get NFS server details by id
	GetNFSServerByID(ctx context.Context, id string) (*NFSServer, error)
	// GetNFSServerByNASServerID used to get the NFS server of one NAS server
	GetNFSServerByNASServerID(ctx context.Context, nasServerID string) (*NFSServer, error)
	// CreateNFSServer used to create an NFS server on a NAS server
	CreateNFSServer(ctx context.Context, params *CreateNFSServerParams) (string, error)
	// ModifyNFSServer used to modify an NFS server
	ModifyNFSServer(ctx context.Context, id string, params *ModifyNFSServerParams) error
	// DeleteNFSServer used to delete an NFS server by id
	DeleteNFSServer(ctx context.Context, id string, skipUnjoin bool) error
}

// GetNFSServerByID used to get NFS server details by id
func (cli *Client) GetNFSServerByID(ctx context.Context, id string) (*NFSServer, error) {
	query := url.Values{}
	query.Set("select", nfsServerSelectFields)

	var server NFSServer
	exists, err := cli.getResource(ctx, "/nfs_server/"+id, query, &server)
	if err != nil || !exists {
		return nil, err
	}
	return &server, nil
}

// GetNFSServerByNASServerID used to get the NFS server of one NAS server
func (cli *Client) GetNFSServerByNASServerID(ctx context.Context, nasServerID string) (*NFSServer, error) {
	query := url.Values{}
	query.Set("nas_server_id", "eq."+nasServerID)
	query.Set("select", nfsServerSelectFields)

	resp, err := cli.Get(ctx, "/nfs_server", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get nfs server of nas server %s error: %w", nasServerID, err)
	}

	var servers []NFSServer
	if err := resp.GetData(&servers); err != nil {
		return nil, err
	}
	if len(servers) == 0 {
		return nil, nil
	}
	return &servers[0], nil
}

// CreateNFSServer used to create an NFS server on a NAS server
func (cli *Client) CreateNFSServer(ctx context.Context, params *CreateNFSServerParams) (string, error) {
	resp, err := cli.Post(ctx, "/nfs_server", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create nfs server on nas server %s error: %w", params.NASServerID, err)
	}
	return id, nil
}

// ModifyNFSServer used to modify an NFS server
func (cli *Client) ModifyNFSServer(ctx context.Context, id string, params *ModifyNFSServerParams) error {
	resp, err := cli.Patch(ctx, "/nfs_server/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify nfs server %s error: %w", id, err)
	}
	return nil
}

// DeleteNFSServer used to delete an NFS server by id. A secure NFS server
// joined to a domain can skip the unjoin on delete.
func (cli *Client) DeleteNFSServer(ctx context.Context, id string, skipUnjoin bool) error {
	var data interface{}
	if skipUnjoin {
		data = map[string]interface{}{"is_skip_unjoin": true}
	}

	resp, err := cli.Delete(ctx, "/nfs_server/"+id, data)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete nfs server %s error: %w", id, err)
	}
	return nil
}
