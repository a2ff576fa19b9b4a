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

const nasServerSelectFields = "id,name,description,operational_status," +
	"current_unix_directory_service,default_unix_user,default_windows_user," +
	"current_preferred_IPv4_interface_id,protection_policy_id"

// NASServer describes one NAS server of the array
type NASServer struct {
	ID                          string `json:"id"`
	Name                        string `json:"name"`
	Description                 string `json:"description,omitempty"`
	OperationalStatus           string `json:"operational_status,omitempty"`
	CurrentUnixDirectoryService string `json:"current_unix_directory_service,omitempty"`
	DefaultUnixUser             string `json:"default_unix_user,omitempty"`
	DefaultWindowsUser          string `json:"default_windows_user,omitempty"`
	CurrentPreferredIPv4ID      string `json:"current_preferred_IPv4_interface_id,omitempty"`
	ProtectionPolicyID          string `json:"protection_policy_id,omitempty"`
}

// CreateNASServerParams defines create NAS server request
type CreateNASServerParams struct {
	Name                        string `json:"name"`
	Description                 string `json:"description,omitempty"`
	CurrentUnixDirectoryService string `json:"current_unix_directory_service,omitempty"`
	DefaultUnixUser             string `json:"default_unix_user,omitempty"`
	DefaultWindowsUser          string `json:"default_windows_user,omitempty"`
}

// ModifyNASServerParams defines modify NAS server request, nil fields are left unchanged
type ModifyNASServerParams struct {
	Name                        *string `json:"name,omitempty"`
	Description                 *string `json:"description,omitempty"`
	CurrentUnixDirectoryService *string `json:"current_unix_directory_service,omitempty"`
	DefaultUnixUser             *string `json:"default_unix_user,omitempty"`
	DefaultWindowsUser          *string `json:"default_windows_user,omitempty"`
	ProtectionPolicyID          *string `json:"protection_policy_id,omitempty"`
}

// NASServerClient defines interfaces for NAS server operations
type NASServerClient interface {
	// GetNASServerByID used to get NAS server details by id
	GetNASServerByID(ctx context.Context, id string) (*NASServer, error)
	// GetNASServerByName used to get NAS server details by name
	GetNASServerByName(ctx context.Context, name string) (*NASServer, error)
	// ListNASServers used to get all NAS servers of the array
	ListNASServers(ctx context.Context) ([]NASServer, error)
	// CreateNASServer used to create a NAS server
	CreateNASServer(ctx context.Context, params *CreateNASServerParams) (string, error)
	// ModifyNASServer used to modify a NAS server
	ModifyNASServer(ctx context.Context, id string, params *ModifyNASServerParams) error
	// DeleteNASServer used to delete a NAS server by id
	DeleteNASServer(ctx context.Context, id string) error
}

// GetNASServerByID used to get NAS server details by id
func (cli *Client) GetNASServerByID(ctx context.Context, id string) (*NASServer, error) {
	query := url.Values{}
	query.Set("select", nasServerSelectFields)

	var nas NASServer
	exists, err := cli.getResource(ctx, "/nas_server/"+id, query, &nas)
	if err != nil || !exists {
		return nil, err
	}
	return &nas, nil
}

// GetNASServerByName used to get NAS server details by name
func (cli *Client) GetNASServerByName(ctx context.Context, name string) (*NASServer, error) {
	query := queryNameEq(name)
	query.Set("select", nasServerSelectFields)

	resp, err := cli.Get(ctx, "/nas_server", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get nas server %s error: %w", name, err)
	}

	var servers []NASServer
	if err := resp.GetData(&servers); err != nil {
		return nil, err
	}
	if len(servers) == 0 {
		return nil, nil
	}
	return &servers[0], nil
}

// ListNASServers used to get all NAS servers of the array
func (cli *Client) ListNASServers(ctx context.Context) ([]NASServer, error) {
	query := url.Values{}
	query.Set("select", nasServerSelectFields)

	var servers []NASServer
	if err := cli.getBatchObjs(ctx, "/nas_server", query, &servers); err != nil {
		return nil, err
	}
	return servers, nil
}

// CreateNASServer used to create a NAS server
func (cli *Client) CreateNASServer(ctx context.Context, params *CreateNASServerParams) (string, error) {
	resp, err := cli.Post(ctx, "/nas_server", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create nas server %s error: %w", params.Name, err)
	}
	return id, nil
}

// ModifyNASServer used to modify a NAS server
func (cli *Client) ModifyNASServer(ctx context.Context, id string, params *ModifyNASServerParams) error {
	resp, err := cli.Patch(ctx, "/nas_server/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify nas server %s error: %w", id, err)
	}
	return nil
}

// DeleteNASServer used to delete a NAS server by id
func (cli *Client) DeleteNASServer(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/nas_server/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete nas server %s error: %w", id, err)
	}
	return nil
}
