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

const fileSystemSelectFields = "id,name,description,nas_server_id,size_total," +
	"size_used,default_hard_limit,default_soft_limit,grace_period," +
	"is_smb_sync_writes_enabled,is_smb_op_locks_enabled,is_async_MTime_enabled"

// FileSystem describes one file system of a NAS server
type FileSystem struct {
	ID                     string `json:"id"`
	Name                   string `json:"name"`
	Description            string `json:"description,omitempty"`
	NASServerID            string `json:"nas_server_id"`
	SizeTotal              int64  `json:"size_total"`
	SizeUsed               int64  `json:"size_used,omitempty"`
	DefaultHardLimit       int64  `json:"default_hard_limit,omitempty"`
	DefaultSoftLimit       int64  `json:"default_soft_limit,omitempty"`
	GracePeriod            int64  `json:"grace_period,omitempty"`
	IsSmbSyncWritesEnabled bool   `json:"is_smb_sync_writes_enabled,omitempty"`
	IsSmbOpLocksEnabled    bool   `json:"is_smb_op_locks_enabled,omitempty"`
	IsAsyncMTimeEnabled    bool   `json:"is_async_MTime_enabled,omitempty"`
}

// CreateFileSystemParams defines create file system request
type CreateFileSystemParams struct {
	Name             string `json:"name"`
	NASServerID      string `json:"nas_server_id"`
	Size             int64  `json:"size_total"`
	Description      string `json:"description,omitempty"`
	DefaultHardLimit int64  `json:"default_hard_limit,omitempty"`
	DefaultSoftLimit int64  `json:"default_soft_limit,omitempty"`
	GracePeriod      int64  `json:"grace_period,omitempty"`
}

// ModifyFileSystemParams defines modify file system request, nil fields are left unchanged
type ModifyFileSystemParams struct {
	Size                   *int64  `json:"size_total,omitempty"`
	Description            *string `json:"description,omitempty"`
	DefaultHardLimit       *int64  `json:"default_hard_limit,omitempty"`
	DefaultSoftLimit       *int64  `json:"default_soft_limit,omitempty"`
	GracePeriod            *int64  `json:"grace_period,omitempty"`
	IsSmbSyncWritesEnabled *bool   `json:"is_smb_sync_writes_enabled,omitempty"`
	IsSmbOpLocksEnabled    *bool   `json:"is_smb_op_locks_enabled,omitempty"`
	IsAsyncMTimeEnabled    *bool   `json:"is_async_MTime_enabled,omitempty"`
}

// FileSystemClient defines interfaces for file system operations
type FileSystemClient interface {
	// GetFileSystemByID used to get file system details by id
	GetFileSystemByID(ctx context.Context, id string) (*FileSystem, error)
	// GetFileSystemByName used to get file system details by name on one NAS server
	GetFileSystemByName(ctx context.Context, name, nasServerID string) (*FileSystem, error)
	// ListFileSystems used to get all file systems of the array
	ListFileSystems(ctx context.Context) ([]FileSystem, error)
	// CreateFileSystem used to create a file system
	CreateFileSystem(ctx context.Context, params *CreateFileSystemParams) (string, error)
	// ModifyFileSystem used to modify a file system
	ModifyFileSystem(ctx context.Context, id string, params *ModifyFileSystemParams) error
	// DeleteFileSystem used to delete a file system by id
	DeleteFileSystem(ctx context.Context, id string) error
}

// GetFileSystemByID used to get file system details by id
func (cli *Client) GetFileSystemByID(ctx context.Context, id string) (*FileSystem, error) {
	query := url.Values{}
	query.Set("select", fileSystemSelectFields)

	var fs FileSystem
	exists, err := cli.getResource(ctx, "/file_system/"+id, query, &fs)
	if err != nil || !exists {
		return nil, err
	}
	return &fs, nil
}

// GetFileSystemByName used to get file system details by name on one NAS server.
// File system names are unique per NAS server, not per array.
func (cli *Client) GetFileSystemByName(ctx context.Context, name, nasServerID string) (*FileSystem, error) {
	query := queryNameEq(name)
	query.Set("nas_server_id", "eq."+nasServerID)
	query.Set("select", fileSystemSelectFields)

	resp, err := cli.Get(ctx, "/file_system", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get file system %s error: %w", name, err)
	}

	var systems []FileSystem
	if err := resp.GetData(&systems); err != nil {
		return nil, err
	}
	if len(systems) == 0 {
		return nil, nil
	}
	return &systems[0], nil
}

// ListFileSystems used to get all file systems of the array
func (cli *Client) ListFileSystems(ctx context.Context) ([]FileSystem, error) {
	query := url.Values{}
	query.Set("select", fileSystemSelectFields)

	var systems []FileSystem
	if err := cli.getBatchObjs(ctx, "/file_system", query, &systems); err != nil {
		return nil, err
	}
	return systems, nil
}

// CreateFileSystem used to create a file system
func (cli *Client) CreateFileSystem(ctx context.Context, params *CreateFileSystemParams) (string, error) {
	resp, err := cli.Post(ctx, "/file_system", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create file system %s error: %w", params.Name, err)
	}
	return id, nil
}

// ModifyFileSystem used to modify a file system
func (cli *Client) ModifyFileSystem(ctx context.Context, id string, params *ModifyFileSystemParams) error {
	resp, err := cli.Patch(ctx, "/file_system/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify file system %s error: %w", id, err)
	}
	return nil
}

// DeleteFileSystem used to delete a file system by id
func (cli *Client) DeleteFileSystem(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/file_system/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete file system %s error: %w", id, err)
	}
	return nil
}
