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

const serviceConfigSelectFields = "id,appliance_id,is_ssh_enabled"

// ServiceConfig describes the service settings of one appliance
type ServiceConfig struct {
	ID           string `json:"id"`
	ApplianceID  string `json:"appliance_id"`
	IsSSHEnabled bool   `json:"is_ssh_enabled"`
}

// ModifyServiceConfigParams defines modify service config request, nil fields are left unchanged
type ModifyServiceConfigParams struct {
	IsSSHEnabled *bool `json:"is_ssh_enabled,omitempty"`
}

// ServiceConfigClient defines interfaces for service config operations
type ServiceConfigClient interface {
	// GetServiceConfigByID used to get service config details by id
	GetServiceConfigByID(ctx context.Context, id string) (*ServiceConfig, error)
	// GetServiceConfigByApplianceID used to get the service config of one appliance
	GetServiceConfigByApplianceID(ctx context.Context, applianceID string) (*ServiceConfig, error)
	// ListServiceConfigs used to get the service configs of all appliances
	ListServiceConfigs(ctx context.Context) ([]ServiceConfig, error)
	// ModifyServiceConfig used to modify the service config of an appliance
	ModifyServiceConfig(ctx context.Context, id string, params *ModifyServiceConfigParams) error
}

// GetServiceConfigByID used to get service config details by id
func (cli *Client) GetServiceConfigByID(ctx context.Context, id string) (*ServiceConfig, error) {
	query := url.Values{}
	query.Set("select", serviceConfigSelectFields)

	var config ServiceConfig
	exists, err := cli.getResource(ctx, "/service_config/"+id, query, &config)
	if err != nil || !exists {
		return nil, err
	}
	return &config, nil
}

// GetServiceConfigByApplianceID used to get the service config of one appliance
func (cli *Client) GetServiceConfigByApplianceID(ctx context.Context, applianceID string) (*ServiceConfig, error) {
	query := url.Values{}
	query.Set("appliance_id", "eq."+applianceID)
	query.Set("select", serviceConfigSelectFields)

	resp, err := cli.Get(ctx, "/service_config", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get service config of appliance %s error: %w", applianceID, err)
	}

	var configs []ServiceConfig
	if err := resp.GetData(&configs); err != nil {
		return nil, err
	}
	if len(configs) == 0 {
		return nil, nil
	}
	return &configs[0], nil
}

// ListServiceConfigs used to get the service configs of all appliances
func (cli *Client) ListServiceConfigs(ctx context.Context) ([]ServiceConfig, error) {
	query := url.Values{}
	query.Set("select", serviceConfigSelectFields)

	var configs []ServiceConfig
	if err := cli.getBatchObjs(ctx, "/service_config", query, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// ModifyServiceConfig used to modify the service config of an appliance
func (cli *Client) ModifyServiceConfig(ctx context.Context, id string, params *ModifyServiceConfigParams) error {
	resp, err := cli.Patch(ctx, "/service_config/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify service config %s error: %w", id, err)
	}
	return nil
}
