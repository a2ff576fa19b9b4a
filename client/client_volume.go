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

const volumeSelectFields = "id,name,description,size,state,wwn," +
	"appliance_id,performance_policy_id,creation_timestamp"

// Volume describes one block volume of the array
type Volume struct {
	ID                  string `json:"id"`
	Name                string `json:"name"`
	Description         string `json:"description,omitempty"`
	Size                int64  `json:"size"`
	State               string `json:"state,omitempty"`
	WWN                 string `json:"wwn,omitempty"`
	ApplianceID         string `json:"appliance_id,omitempty"`
	PerformancePolicyID string `json:"performance_policy_id,omitempty"`
	CreationTimestamp   string `json:"creation_timestamp,omitempty"`
}

// CreateVolumeParams defines create volume request
type CreateVolumeParams struct {
	Name                string `json:"name"`
	Size                int64  `json:"size"`
	Description         string `json:"description,omitempty"`
	ApplianceID         string `json:"appliance_id,omitempty"`
	PerformancePolicyID string `json:"performance_policy_id,omitempty"`
}

// ModifyVolumeParams defines modify volume request, nil fields are left unchanged
type ModifyVolumeParams struct {
	Name                *string `json:"name,omitempty"`
	Size                *int64  `json:"size,omitempty"`
	Description         *string `json:"description,omitempty"`
	PerformancePolicyID *string `json:"performance_policy_id,omitempty"`
}

// VolumeClient defines interfaces for volume operations
type VolumeClient interface {
	// GetVolumeByID used to get volume details by id
	GetVolumeByID(ctx context.Context, id string) (*Volume, error)
	// GetVolumeByName used to get volume details by name
	GetVolumeByName(ctx context.Context, name string) (*Volume, error)
	// ListVolumes used to get all volumes of the array
	ListVolumes(ctx context.Context) ([]Volume, error)
	// CreateVolume used to create a volume
	CreateVolume(ctx context.Context, params *CreateVolumeParams) (string, error)
	// ModifyVolume used to rename, resize or re-describe a volume
	ModifyVolume(ctx context.Context, id string, params *ModifyVolumeParams) error
	// DeleteVolume used to delete a volume by id
	DeleteVolume(ctx context.Context, id string) error
}

// GetVolumeByID used to get volume details by id
func (cli *Client) GetVolumeByID(ctx context.Context, id string) (*Volume, error) {
	query := url.Values{}
	query.Set("select", volumeSelectFields)

	var volume Volume
	exists, err := cli.getResource(ctx, "/volume/"+id, query, &volume)
	if err != nil || !exists {
		return nil, err
	}
	return &volume, nil
}

// GetVolumeByName used to get volume details by name
func (cli *Client) GetVolumeByName(ctx context.Context, name string) (*Volume, error) {
	query := queryNameEq(name)
	query.Set("select", volumeSelectFields)

	resp, err := cli.Get(ctx, "/volume", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get volume %s error: %w", name, err)
	}

	var volumes []Volume
	if err := resp.GetData(&volumes); err != nil {
		return nil, err
	}
	if len(volumes) == 0 {
		return nil, nil
	}
	return &volumes[0], nil
}

// ListVolumes used to get all volumes of the array
func (cli *Client) ListVolumes(ctx context.Context) ([]Volume, error) {
	query := url.Values{}
	query.Set("select", volumeSelectFields)

	var volumes []Volume
	if err := cli.getBatchObjs(ctx, "/volume", query, &volumes); err != nil {
		return nil, err
	}
	return volumes, nil
}

// CreateVolume used to create a volume
func (cli *Client) CreateVolume(ctx context.Context, params *CreateVolumeParams) (string, error) {
	resp, err := cli.Post(ctx, "/volume", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create volume %s error: %w", params.Name, err)
	}
	return id, nil
}

// ModifyVolume used to rename, resize or re-describe a volume
func (cli *Client) ModifyVolume(ctx context.Context, id string, params *ModifyVolumeParams) error {
	resp, err := cli.Patch(ctx, "/volume/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify volume %s error: %w", id, err)
	}
	return nil
}

// DeleteVolume used to delete a volume by id
func (cli *Client) DeleteVolume(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/volume/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete volume %s error: %w", id, err)
	}
	return nil
}
