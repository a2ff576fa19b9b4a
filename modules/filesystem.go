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

// fileSystemAPI groups the client interfaces the file system applier needs,
// file systems are named per NAS server so the applier resolves the NAS
// server first
type fileSystemAPI interface {
	client.NASServerClient
	client.FileSystemClient
}

// FileSystemParams defines one file system task
type FileSystemParams struct {
	FileSystemName         string `json:"filesystem_name,omitempty"`
	FileSystemID           string `json:"filesystem_id,omitempty"`
	NASServer              string `json:"nas_server,omitempty"`
	Size                   int64  `json:"size,omitempty"`
	CapUnit                string `json:"cap_unit,omitempty"`
	Description            string `json:"description,omitempty"`
	DefaultHardLimit       int64  `json:"default_hard_limit,omitempty"`
	DefaultSoftLimit       int64  `json:"default_soft_limit,omitempty"`
	GracePeriod            int64  `json:"grace_period,omitempty"`
	IsSmbSyncWritesEnabled *bool  `json:"is_smb_sync_writes_enabled,omitempty"`
	IsSmbOpLocksEnabled    *bool  `json:"is_smb_op_locks_enabled,omitempty"`
	IsAsyncMTimeEnabled    *bool  `json:"is_async_mtime_enabled,omitempty"`
	State                  string `json:"state"`
}

func validateFileSystemParams(ctx context.Context, params *FileSystemParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.FileSystemName == "" && params.FileSystemID == "" {
		return utils.Errorln(ctx, "one of filesystem_name and filesystem_id is required")
	}
	if params.FileSystemName != "" && params.FileSystemID != "" {
		return utils.Errorln(ctx, "filesystem_name and filesystem_id are mutually exclusive")
	}
	if params.FileSystemName != "" && params.NASServer == "" {
		return utils.Errorln(ctx, "nas_server is required along with filesystem_name")
	}
	if params.Size < 0 {
		return utils.Errorf(ctx, "invalid file system size %d", params.Size)
	}
	return nil
}

// resolveNASServer accepts either a NAS server name or id and returns the id
func resolveNASServer(ctx context.Context, cli client.NASServerClient,
	nameOrID string) (string, error) {
	nas, err := cli.GetNASServerByName(ctx, nameOrID)
	if err != nil {
		return "", err
	}
	if nas != nil {
		return nas.ID, nil
	}

	nas, err = cli.GetNASServerByID(ctx, nameOrID)
	if err != nil {
		return "", err
	}
	if nas == nil {
		return "", utils.Errorf(ctx, "nas server %s not found", nameOrID)
	}
	return nas.ID, nil
}

// ApplyFileSystem converges one file system to the wanted state
func ApplyFileSystem(ctx context.Context, cli fileSystemAPI,
	params *FileSystemParams) (*Result, error) {
	if err := validateFileSystemParams(ctx, params); err != nil {
		return nil, err
	}

	var fs *client.FileSystem
	var nasServerID string
	var err error
	if params.FileSystemID != "" {
		fs, err = cli.GetFileSystemByID(ctx, params.FileSystemID)
	} else {
		nasServerID, err = resolveNASServer(ctx, cli, params.NASServer)
		if err != nil {
			return nil, err
		}
		fs, err = cli.GetFileSystemByName(ctx, params.FileSystemName, nasServerID)
	}
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if fs == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteFileSystem(ctx, fs.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: fs.ID}, nil
	}

	var size int64
	if params.Size != 0 {
		size, err = toBytes(params.Size, params.CapUnit)
		if err != nil {
			return nil, err
		}
	}

	if fs == nil {
		if params.FileSystemID != "" {
			return nil, utils.Errorf(ctx, "file system %s not found", params.FileSystemID)
		}
		if size == 0 {
			return nil, utils.Errorln(ctx, "size is required to create a file system")
		}

		id, err := cli.CreateFileSystem(ctx, &client.CreateFileSystemParams{
			Name:             params.FileSystemName,
			NASServerID:      nasServerID,
			Size:             size,
			Description:      params.Description,
			DefaultHardLimit: params.DefaultHardLimit,
			DefaultSoftLimit: params.DefaultSoftLimit,
			GracePeriod:      params.GracePeriod,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyFileSystemParams{}
	changed := false

	if size != 0 && size != fs.SizeTotal {
		if size < fs.SizeTotal {
			return nil, utils.Errorf(ctx,
				"file system %s cannot shrink from %d to %d bytes",
				fs.Name, fs.SizeTotal, size)
		}
		modify.Size = &size
		changed = true
	}
	if desc := strUpdate(fs.Description, params.Description); desc != nil {
		modify.Description = desc
		changed = true
	}
	if params.DefaultHardLimit != 0 && params.DefaultHardLimit != fs.DefaultHardLimit {
		modify.DefaultHardLimit = &params.DefaultHardLimit
		changed = true
	}
	if params.DefaultSoftLimit != 0 && params.DefaultSoftLimit != fs.DefaultSoftLimit {
		modify.DefaultSoftLimit = &params.DefaultSoftLimit
		changed = true
	}
	if params.GracePeriod != 0 && params.GracePeriod != fs.GracePeriod {
		modify.GracePeriod = &params.GracePeriod
		changed = true
	}
	if flag := boolUpdate(fs.IsSmbSyncWritesEnabled, params.IsSmbSyncWritesEnabled); flag != nil {
		modify.IsSmbSyncWritesEnabled = flag
		changed = true
	}
	if flag := boolUpdate(fs.IsSmbOpLocksEnabled, params.IsSmbOpLocksEnabled); flag != nil {
		modify.IsSmbOpLocksEnabled = flag
		changed = true
	}
	if flag := boolUpdate(fs.IsAsyncMTimeEnabled, params.IsAsyncMTimeEnabled); flag != nil {
		modify.IsAsyncMTimeEnabled = flag
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: fs.ID, Details: fs}, nil
	}
	if err := cli.ModifyFileSystem(ctx, fs.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: fs.ID}, nil
}
