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

const (
	// QuotaTypeTree quota on a directory tree
	QuotaTypeTree = "tree"
	// QuotaTypeUser quota for one user
	QuotaTypeUser = "user"
)

// quotaAPI groups the client interfaces the quota applier needs
type quotaAPI interface {
	client.NASServerClient
	client.FileSystemClient
	client.QuotaClient
}

// QuotaParams defines one quota task. A tree quota is identified by file
// system and path, a user quota by file system and exactly one user identity.
type QuotaParams struct {
	QuotaType   string `json:"quota_type"`
	FileSystem  string `json:"filesystem,omitempty"`
	NASServer   string `json:"nas_server,omitempty"`
	Path        string `json:"path,omitempty"`
	Description string `json:"description,omitempty"`
	UID         int64  `json:"uid,omitempty"`
	UnixName    string `json:"unix_name,omitempty"`
	WindowsName string `json:"windows_name,omitempty"`
	WindowsSID  string `json:"windows_sid,omitempty"`
	HardLimit   *int64 `json:"hard_limit,omitempty"`
	SoftLimit   *int64 `json:"soft_limit,omitempty"`
	CapUnit     string `json:"cap_unit,omitempty"`
	State       string `json:"state"`
}

func (params *QuotaParams) identityCount() int {
	count := 0
	if params.UID != 0 {
		count++
	}
	if params.UnixName != "" {
		count++
	}
	if params.WindowsName != "" {
		count++
	}
	if params.WindowsSID != "" {
		count++
	}
	return count
}

func validateQuotaParams(ctx context.Context, params *QuotaParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.FileSystem == "" {
		return utils.Errorln(ctx, "filesystem is required")
	}

	switch params.QuotaType {
	case QuotaTypeTree:
		if params.Path == "" {
			return utils.Errorln(ctx, "path is required for a tree quota")
		}
		if params.identityCount() != 0 {
			return utils.Errorln(ctx, "user identities do not apply to a tree quota")
		}
	case QuotaTypeUser:
		if params.identityCount() != 1 {
			return utils.Errorln(ctx,
				"a user quota needs exactly one of uid, unix_name, windows_name and windows_sid")
		}
		if params.State == StateAbsent {
			return utils.Errorln(ctx,
				"a user quota cannot be deleted, set its limits to 0 instead")
		}
	default:
		return utils.Errorf(ctx, "quota_type must be %s or %s, got %q",
			QuotaTypeTree, QuotaTypeUser, params.QuotaType)
	}
	if (params.HardLimit != nil && *params.HardLimit < 0) ||
		(params.SoftLimit != nil && *params.SoftLimit < 0) {
		return utils.Errorln(ctx, "quota limits cannot be negative")
	}
	return nil
}

// limitToBytes converts an optional quota limit to bytes, a nil limit stays
// nil so it is left unchanged, an explicit 0 clears the limit on the array
func limitToBytes(limit *int64, capUnit string) (*int64, error) {
	if limit == nil {
		return nil, nil
	}
	bytes, err := toBytes(*limit, capUnit)
	if err != nil {
		return nil, err
	}
	return &bytes, nil
}

// resolveFileSystem accepts either a file system id or a name scoped by
// nas_server and returns the file system id
func resolveFileSystem(ctx context.Context, cli quotaAPI, params *QuotaParams) (string, error) {
	if params.NASServer == "" {
		fs, err := cli.GetFileSystemByID(ctx, params.FileSystem)
		if err != nil {
			return "", err
		}
		if fs == nil {
			return "", utils.Errorf(ctx, "file system %s not found", params.FileSystem)
		}
		return fs.ID, nil
	}

	nasServerID, err := resolveNASServer(ctx, cli, params.NASServer)
	if err != nil {
		return "", err
	}
	fs, err := cli.GetFileSystemByName(ctx, params.FileSystem, nasServerID)
	if err != nil {
		return "", err
	}
	if fs == nil {
		return "", utils.Errorf(ctx, "file system %s not found on nas server %s",
			params.FileSystem, params.NASServer)
	}
	return fs.ID, nil
}

// ApplyQuota converges one tree or user quota to the wanted state
func ApplyQuota(ctx context.Context, cli quotaAPI, params *QuotaParams) (*Result, error) {
	if err := validateQuotaParams(ctx, params); err != nil {
		return nil, err
	}

	fileSystemID, err := resolveFileSystem(ctx, cli, params)
	if err != nil {
		return nil, err
	}

	hardLimit, err := limitToBytes(params.HardLimit, params.CapUnit)
	if err != nil {
		return nil, err
	}
	softLimit, err := limitToBytes(params.SoftLimit, params.CapUnit)
	if err != nil {
		return nil, err
	}

	if params.QuotaType == QuotaTypeTree {
		return applyTreeQuota(ctx, cli, params, fileSystemID, hardLimit, softLimit)
	}
	return applyUserQuota(ctx, cli, params, fileSystemID, hardLimit, softLimit)
}

func applyTreeQuota(ctx context.Context, cli quotaAPI, params *QuotaParams,
	fileSystemID string, hardLimit, softLimit *int64) (*Result, error) {
	quota, err := cli.GetTreeQuotaByPath(ctx, fileSystemID, params.Path)
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if quota == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteTreeQuota(ctx, quota.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: quota.ID}, nil
	}

	if quota == nil {
		create := &client.CreateTreeQuotaParams{
			FileSystemID: fileSystemID,
			Path:         params.Path,
			Description:  params.Description,
		}
		if hardLimit != nil {
			create.HardLimit = *hardLimit
		}
		if softLimit != nil {
			create.SoftLimit = *softLimit
		}
		id, err := cli.CreateTreeQuota(ctx, create)
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyTreeQuotaParams{}
	changed := false

	if desc := strUpdate(quota.Description, params.Description); desc != nil {
		modify.Description = desc
		changed = true
	}
	if hardLimit != nil && *hardLimit != quota.HardLimit {
		modify.HardLimit = hardLimit
		changed = true
	}
	if softLimit != nil && *softLimit != quota.SoftLimit {
		modify.SoftLimit = softLimit
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: quota.ID, Details: quota}, nil
	}
	if err := cli.ModifyTreeQuota(ctx, quota.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: quota.ID}, nil
}

func applyUserQuota(ctx context.Context, cli quotaAPI, params *QuotaParams,
	fileSystemID string, hardLimit, softLimit *int64) (*Result, error) {
	identity := &client.CreateUserQuotaParams{
		FileSystemID: fileSystemID,
		UID:          params.UID,
		UnixName:     params.UnixName,
		WindowsName:  params.WindowsName,
		WindowsSID:   params.WindowsSID,
	}
	if params.Path != "" {
		tree, err := cli.GetTreeQuotaByPath(ctx, fileSystemID, params.Path)
		if err != nil {
			return nil, err
		}
		if tree == nil {
			return nil, utils.Errorf(ctx, "tree quota of path %s not found", params.Path)
		}
		identity.TreeQuotaID = tree.ID
	}

	quota, err := cli.GetUserQuota(ctx, fileSystemID, identity)
	if err != nil {
		return nil, err
	}

	if quota == nil {
		if hardLimit != nil {
			identity.HardLimit = *hardLimit
		}
		if softLimit != nil {
			identity.SoftLimit = *softLimit
		}
		id, err := cli.CreateUserQuota(ctx, identity)
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyUserQuotaParams{}
	changed := false

	if hardLimit != nil && *hardLimit != quota.HardLimit {
		modify.HardLimit = hardLimit
		changed = true
	}
	if softLimit != nil && *softLimit != quota.SoftLimit {
		modify.SoftLimit = softLimit
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: quota.ID, Details: quota}, nil
	}
	if err := cli.ModifyUserQuota(ctx, quota.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: quota.ID}, nil
}
