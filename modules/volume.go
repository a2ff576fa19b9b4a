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

// VolumeParams defines one volume task
type VolumeParams struct {
	VolumeName          string `json:"vol_name,omitempty"`
	VolumeID            string `json:"vol_id,omitempty"`
	NewName             string `json:"new_name,omitempty"`
	Size                int64  `json:"size,omitempty"`
	CapUnit             string `json:"cap_unit,omitempty"`
	Description         string `json:"description,omitempty"`
	ApplianceID         string `json:"appliance_id,omitempty"`
	PerformancePolicyID string `json:"performance_policy,omitempty"`
	State               string `json:"state"`
}

func validateVolumeParams(ctx context.Context, params *VolumeParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.VolumeName == "" && params.VolumeID == "" {
		return utils.Errorln(ctx, "one of vol_name and vol_id is required")
	}
	if params.VolumeName != "" && params.VolumeID != "" {
		return utils.Errorln(ctx, "vol_name and vol_id are mutually exclusive")
	}
	if params.Size < 0 {
		return utils.Errorf(ctx, "invalid volume size %d", params.Size)
	}
	return nil
}

func getVolume(ctx context.Context, cli client.VolumeClient,
	params *VolumeParams) (*client.Volume, error) {
	if params.VolumeID != "" {
		return cli.GetVolumeByID(ctx, params.VolumeID)
	}
	return cli.GetVolumeByName(ctx, params.VolumeName)
}

// ApplyVolume converges one volume to the wanted state
func ApplyVolume(ctx context.Context, cli client.VolumeClient, params *VolumeParams) (*Result, error) {
	if err := validateVolumeParams(ctx, params); err != nil {
		return nil, err
	}

	volume, err := getVolume(ctx, cli, params)
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if volume == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteVolume(ctx, volume.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: volume.ID}, nil
	}

	var size int64
	if params.Size != 0 {
		size, err = utils.CapacityToBytes(params.Size, params.CapUnit)
		if err != nil {
			return nil, err
		}
	}

	if volume == nil {
		if params.VolumeID != "" {
			return nil, utils.Errorf(ctx, "volume %s not found", params.VolumeID)
		}
		if params.NewName != "" {
			return nil, utils.Errorf(ctx, "cannot rename volume %s, it does not exist",
				params.VolumeName)
		}
		if size == 0 {
			return nil, utils.Errorln(ctx, "size is required to create a volume")
		}

		id, err := cli.CreateVolume(ctx, &client.CreateVolumeParams{
			Name:                params.VolumeName,
			Size:                size,
			Description:         params.Description,
			ApplianceID:         params.ApplianceID,
			PerformancePolicyID: params.PerformancePolicyID,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyVolumeParams{}
	changed := false

	if size != 0 && size != volume.Size {
		if size < volume.Size {
			return nil, utils.Errorf(ctx,
				"volume %s cannot shrink from %d to %d bytes",
				volume.Name, volume.Size, size)
		}
		modify.Size = &size
		changed = true
	}
	if params.NewName != "" && params.NewName != volume.Name {
		modify.Name = &params.NewName
		changed = true
	}
	if desc := strUpdate(volume.Description, params.Description); desc != nil {
		modify.Description = desc
		changed = true
	}
	if policy := strUpdate(volume.PerformancePolicyID, params.PerformancePolicyID); policy != nil {
		modify.PerformancePolicyID = policy
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: volume.ID, Details: volume}, nil
	}
	if err := cli.ModifyVolume(ctx, volume.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: volume.ID}, nil
}
