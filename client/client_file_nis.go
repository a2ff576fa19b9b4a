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

const fileNISSelectFields = "id,nas_server_id,domain,ip_addresses"

// FileNIS describes the NIS settings of one NAS server
type FileNIS struct {
	ID          string   `json:"id"`
	NASServerID string   `json:"nas_server_id"`
	Domain      string   `json:"domain"`
	IPAddresses []string `json:"ip_addresses"`
}

// CreateFileNISParams defines create file NIS request
type CreateFileNISParams struct {
	NASServerID string   `json:"nas_server_id"`
	Domain      string   `json:"domain"`
	IPAddresses []string `json:"ip_addresses"`
}

// ModifyFileNISParams defines modify file NIS request, nil fields are left unchanged
type ModifyFileNISParams struct {
	Domain      *string  `json:"domain,omitempty"`
	IPAddresses []string `json:"ip_addresses,omitempty"`
}

// FileNISClient defines interfaces for file NIS operations
type FileNISClient interface {
	// GetFileNISByID used to get file NIS details by id
	GetFileNISByID(ctx context.Context, id string) (*FileNIS, error)
	// GetFileNISByNASServerID used to get the file NIS of one NAS server
	GetFileNISByNASServerID(ctx context.Context, nasServerID string) (*FileNIS, error)
	// CreateFileNIS used to create the file NIS of a NAS server
	CreateFileNIS(ctx context.Context, params *CreateFileNISParams) (string, error)
	// ModifyFileNIS used to modify the file NIS of a NAS server
	ModifyFileNIS(ctx context.Context, id string, params *ModifyFileNISParams) error
	// DeleteFileNIS used to delete the file NIS by id
	DeleteFileNIS(ctx context.Context, id string) error
}

// GetFileNISByID used to get file NIS details by id
func (cli *Client) GetFileNISByID(ctx context.Context, id string) (*FileNIS, error) {
	query := url.Values{}
	query.Set("select", fileNISSelectFields)

	var nis FileNIS
	exists, err := cli.getResource(ctx, "/file_nis/"+id, query, &nis)
	if err != nil || !exists {
		return nil, err
	}
	return &nis, nil
}

// GetFileNISByNASServerID used to get the file NIS of one NAS server
func (cli *Client) GetFileNISByNASServerID(ctx context.Context, nasServerID string) (*FileNIS, error) {
	query := url.Values{}
	query.Set("nas_server_id", "eq."+nasServerID)
	query.Set("select", fileNISSelectFields)

	resp, err := cli.Get(ctx, "/file_nis", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get file nis of nas server %s error: %w", nasServerID, err)
	}

	var nisList []FileNIS
	if err := resp.GetData(&nisList); err != nil {
		return nil, err
	}
	if len(nisList) == 0 {
		return nil, nil
	}
	return &nisList[0], nil
}

// CreateFileNIS used to create the file NIS of a NAS server
func (cli *Client) CreateFileNIS(ctx context.Context, params *CreateFileNISParams) (string, error) {
	resp, err := cli.Post(ctx, "/file_nis", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create file nis of nas server %s error: %w", params.NASServerID, err)
	}
	return id, nil
}

// ModifyFileNIS used to modify the file NIS of a NAS server
func (cli *Client) ModifyFileNIS(ctx context.Context, id string, params *ModifyFileNISParams) error {
	resp, err := cli.Patch(ctx, "/file_nis/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify file nis %s error: %w", id, err)
	}
	return nil
}

// DeleteFileNIS used to delete the file NIS by id
func (cli *Client) DeleteFileNIS(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/file_nis/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete file nis %s error: %w", id, err)
	}
	return nil
}
