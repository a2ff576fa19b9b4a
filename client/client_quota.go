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
	"strconv"
)

const (
	treeQuotaSelectFields = "id,path,description,file_system_id,hard_limit," +
		"soft_limit,remaining_grace_period,state"
	userQuotaSelectFields = "id,uid,unix_name,windows_name,windows_sid," +
		"file_system_id,tree_quota_id,hard_limit,soft_limit,state"
)

// TreeQuota describes a quota limit on one directory tree of a file system
type TreeQuota struct {
	ID                   string `json:"id"`
	Path                 string `json:"path"`
	Description          string `json:"description,omitempty"`
	FileSystemID         string `json:"file_system_id"`
	HardLimit            int64  `json:"hard_limit,omitempty"`
	SoftLimit            int64  `json:"soft_limit,omitempty"`
	RemainingGracePeriod int64  `json:"remaining_grace_period,omitempty"`
	State                string `json:"state,omitempty"`
}

// UserQuota describes a quota limit for one user of a file system
type UserQuota struct {
	ID           string `json:"id"`
	UID          int64  `json:"uid,omitempty"`
	UnixName     string `json:"unix_name,omitempty"`
	WindowsName  string `json:"windows_name,omitempty"`
	WindowsSID   string `json:"windows_sid,omitempty"`
	FileSystemID string `json:"file_system_id"`
	TreeQuotaID  string `json:"tree_quota_id,omitempty"`
	HardLimit    int64  `json:"hard_limit,omitempty"`
	SoftLimit    int64  `json:"soft_limit,omitempty"`
	State        string `json:"state,omitempty"`
}

// CreateTreeQuotaParams defines create tree quota request
type CreateTreeQuotaParams struct {
	FileSystemID string `json:"file_system_id"`
	Path         string `json:"path"`
	Description  string `json:"description,omitempty"`
	HardLimit    int64  `json:"hard_limit,omitempty"`
	SoftLimit    int64  `json:"soft_limit,omitempty"`
}

// ModifyTreeQuotaParams defines modify tree quota request, nil fields are left unchanged
type ModifyTreeQuotaParams struct {
	Description *string `json:"description,omitempty"`
	HardLimit   *int64  `json:"hard_limit,omitempty"`
	SoftLimit   *int64  `json:"soft_limit,omitempty"`
}

// CreateUserQuotaParams defines create user quota request, the user is
// identified by exactly one of uid, unix name, windows name or windows sid
type CreateUserQuotaParams struct {
	FileSystemID string `json:"file_system_id"`
	UID          int64  `json:"uid,omitempty"`
	UnixName     string `json:"unix_name,omitempty"`
	WindowsName  string `json:"windows_name,omitempty"`
	WindowsSID   string `json:"windows_sid,omitempty"`
	TreeQuotaID  string `json:"tree_quota_id,omitempty"`
	HardLimit    int64  `json:"hard_limit,omitempty"`
	SoftLimit    int64  `json:"soft_limit,omitempty"`
}

// ModifyUserQuotaParams defines modify user quota request, nil fields are left unchanged
type ModifyUserQuotaParams struct {
	HardLimit *int64 `json:"hard_limit,omitempty"`
	SoftLimit *int64 `json:"soft_limit,omitempty"`
}

// QuotaClient defines interfaces for tree quota and user quota operations
type QuotaClient interface {
	// GetTreeQuotaByPath used to get tree quota details by file system and path
	GetTreeQuotaByPath(ctx context.Context, fileSystemID, path string) (*TreeQuota, error)
	// CreateTreeQuota used to create a tree quota
	CreateTreeQuota(ctx context.Context, params *CreateTreeQuotaParams) (string, error)
	// ModifyTreeQuota used to modify the limits of a tree quota
	ModifyTreeQuota(ctx context.Context, id string, params *ModifyTreeQuotaParams) error
	// DeleteTreeQuota used to delete a tree quota by id
	DeleteTreeQuota(ctx context.Context, id string) error
	// GetUserQuota used to get user quota details by file system and user identity
	GetUserQuota(ctx context.Context, fileSystemID string, params *CreateUserQuotaParams) (*UserQuota, error)
	// CreateUserQuota used to create a user quota
	CreateUserQuota(ctx context.Context, params *CreateUserQuotaParams) (string, error)
	// ModifyUserQuota used to modify the limits of a user quota
	ModifyUserQuota(ctx context.Context, id string, params *ModifyUserQuotaParams) error
}

// GetTreeQuotaByPath used to get tree quota details by file system and path
func (cli *Client) GetTreeQuotaByPath(ctx context.Context, fileSystemID, path string) (*TreeQuota, error) {
	query := url.Values{}
	query.Set("file_system_id", "eq."+fileSystemID)
	query.Set("path", "eq."+path)
	query.Set("select", treeQuotaSelectFields)

	resp, err := cli.Get(ctx, "/file_tree_quota", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get tree quota of path %s error: %w", path, err)
	}

	var quotas []TreeQuota
	if err := resp.GetData(&quotas); err != nil {
		return nil, err
	}
	if len(quotas) == 0 {
		return nil, nil
	}
	return &quotas[0], nil
}

// CreateTreeQuota used to create a tree quota
func (cli *Client) CreateTreeQuota(ctx context.Context, params *CreateTreeQuotaParams) (string, error) {
	resp, err := cli.Post(ctx, "/file_tree_quota", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create tree quota of path %s error: %w", params.Path, err)
	}
	return id, nil
}

// ModifyTreeQuota used to modify the limits of a tree quota
func (cli *Client) ModifyTreeQuota(ctx context.Context, id string, params *ModifyTreeQuotaParams) error {
	resp, err := cli.Patch(ctx, "/file_tree_quota/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify tree quota %s error: %w", id, err)
	}
	return nil
}

// DeleteTreeQuota used to delete a tree quota by id
func (cli *Client) DeleteTreeQuota(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/file_tree_quota/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete tree quota %s error: %w", id, err)
	}
	return nil
}

// GetUserQuota used to get user quota details by file system and user identity.
// The identity filter mirrors the one the desired state names the user by.
func (cli *Client) GetUserQuota(ctx context.Context,
	fileSystemID string, params *CreateUserQuotaParams) (*UserQuota, error) {
	query := url.Values{}
	query.Set("file_system_id", "eq."+fileSystemID)
	query.Set("select", userQuotaSelectFields)

	switch {
	case params.UID != 0:
		query.Set("uid", "eq."+strconv.FormatInt(params.UID, 10))
	case params.UnixName != "":
		query.Set("unix_name", "eq."+params.UnixName)
	case params.WindowsName != "":
		query.Set("windows_name", "eq."+params.WindowsName)
	case params.WindowsSID != "":
		query.Set("windows_sid", "eq."+params.WindowsSID)
	default:
		return nil, fmt.Errorf("no user identity given for user quota query")
	}

	if params.TreeQuotaID != "" {
		query.Set("tree_quota_id", "eq."+params.TreeQuotaID)
	}

	resp, err := cli.Get(ctx, "/file_user_quota", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get user quota error: %w", err)
	}

	var quotas []UserQuota
	if err := resp.GetData(&quotas); err != nil {
		return nil, err
	}
	if len(quotas) == 0 {
		return nil, nil
	}
	return &quotas[0], nil
}

// CreateUserQuota used to create a user quota
func (cli *Client) CreateUserQuota(ctx context.Context, params *CreateUserQuotaParams) (string, error) {
	resp, err := cli.Post(ctx, "/file_user_quota", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create user quota error: %w", err)
	}
	return id, nil
}

// ModifyUserQuota used to modify the limits of a user quota
func (cli *Client) ModifyUserQuota(ctx context.Context, id string, params *ModifyUserQuotaParams) error {
	resp, err := cli.Patch(ctx, "/file_user_quota/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify user quota %s error: %w", id, err)
	}
	return nil
}
