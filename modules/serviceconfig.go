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

// serviceConfigAPI groups the client interfaces the service config applier needs
type serviceConfigAPI interface {
	client.SystemClient
	client.ServiceConfigClient
}

// ServiceConfigParams defines one service config task, the appliance is
// given by name or id
type ServiceConfigParams struct {
	ApplianceName string `json:"appliance_name,omitempty"`
	ApplianceID   string `json:"appliance_id,omitempty"`
	IsSSHEnabled  *bool  `json:"is_ssh_enabled,omitempty"`
	State         string `json:"state"`
}

func validateServiceConfigParams(ctx context.Context, params *ServiceConfigParams) error {
	if params.State != StatePresent {
		return utils.Errorln(ctx,
			"service configs cannot be created or deleted, state must be present")
	}
	if params.ApplianceName == "" && params.ApplianceID == "" {
		return utils.Errorln(ctx, "one of appliance_name and appliance_id is required")
	}
	if params.ApplianceName != "" && params.ApplianceID != "" {
		return utils.Errorln(ctx, "appliance_name and appliance_id are mutually exclusive")
	}
	return nil
}

// ApplyServiceConfig converges the service settings of one appliance
func ApplyServiceConfig(ctx context.Context, cli serviceConfigAPI,
	params *ServiceConfigParams) (*Result, error) {
	if err := validateServiceConfigParams(ctx, params); err != nil {
		return nil, err
	}

	applianceID := params.ApplianceID
	if applianceID == "" {
		appliance, err := cli.GetApplianceByName(ctx, params.ApplianceName)
		if err != nil {
			return nil, err
		}
		if appliance == nil {
			return nil, utils.Errorf(ctx, "appliance %s not found", params.ApplianceName)
		}
		applianceID = appliance.ID
	}

	config, err := cli.GetServiceConfigByApplianceID(ctx, applianceID)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, utils.Errorf(ctx, "service config of appliance %s not found",
			applianceID)
	}

	ssh := boolUpdate(config.IsSSHEnabled, params.IsSSHEnabled)
	if ssh == nil {
		return &Result{Changed: false, ID: config.ID, Details: config}, nil
	}

	err = cli.ModifyServiceConfig(ctx, config.ID, &client.ModifyServiceConfigParams{
		IsSSHEnabled: ssh,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: config.ID}, nil
}
