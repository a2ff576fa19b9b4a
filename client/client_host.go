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
	"errors"
	"fmt"
	"net/url"
)

const (
	// PortTypeISCSI iSCSI initiator port type
	PortTypeISCSI = "iSCSI"
	// PortTypeFC fibre channel initiator port type
	PortTypeFC = "FC"
	// PortTypeNVMe NVMe initiator port type
	PortTypeNVMe = "NVMe"
)

const hostSelectFields = "id,name,description,os_type,host_group_id," +
	"host_connectivity,host_initiators,mapped_hosts,type"

// HostInitiator is one initiator record of an existing host
type HostInitiator struct {
	PortName           string                   `json:"port_name"`
	PortType           string                   `json:"port_type"`
	ChapSingleUsername string                   `json:"chap_single_username,omitempty"`
	ChapMutualUsername string                   `json:"chap_mutual_username,omitempty"`
	ActiveSessions     []map[string]interface{} `json:"active_sessions,omitempty"`
}

// Initiator describes an initiator to add to a host
type Initiator struct {
	PortName           string `json:"port_name"`
	PortType           string `json:"port_type,omitempty"`
	ChapSingleUsername string `json:"chap_single_username,omitempty"`
	ChapSinglePassword string `json:"chap_single_password,omitempty"`
	ChapMutualUsername string `json:"chap_mutual_username,omitempty"`
	ChapMutualPassword string `json:"chap_mutual_password,omitempty"`
}

// MappedHost is the inverse of the host volume mapping association
type MappedHost struct {
	ID                string                 `json:"id"`
	LogicalUnitNumber int                    `json:"logical_unit_number"`
	HostGroup         map[string]interface{} `json:"host_group,omitempty"`
	Volume            map[string]interface{} `json:"volume,omitempty"`
}

// Host describes one initiator group of the array
type Host struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	OsType           string          `json:"os_type"`
	HostGroupID      string          `json:"host_group_id,omitempty"`
	HostConnectivity string          `json:"host_connectivity,omitempty"`
	Initiators       []HostInitiator `json:"host_initiators,omitempty"`
	MappedHosts      []MappedHost    `json:"mapped_hosts,omitempty"`
	Type             string          `json:"type,omitempty"`
}

// CreateHostParams defines create host request
type CreateHostParams struct {
	Name             string      `json:"name"`
	OsType           string      `json:"os_type"`
	Initiators       []Initiator `json:"initiators"`
	Description      string      `json:"description,omitempty"`
	HostConnectivity string      `json:"host_connectivity,omitempty"`
}

// ModifyHostParams defines modify host request, nil fields are left unchanged
type ModifyHostParams struct {
	Name             *string     `json:"name,omitempty"`
	Description      *string     `json:"description,omitempty"`
	HostConnectivity *string     `json:"host_connectivity,omitempty"`
	AddInitiators    []Initiator `json:"add_initiators,omitempty"`
	RemoveInitiators []string    `json:"remove_initiators,omitempty"`
}

// HostClient defines interfaces for host operations
type HostClient interface {
	// GetHostByID used to get host details by id
	GetHostByID(ctx context.Context, id string) (*Host, error)
	// GetHostByName used to get host details by name
	GetHostByName(ctx context.Context, name string) (*Host, error)
	// ListHosts used to get all hosts of the array
	ListHosts(ctx context.Context) ([]Host, error)
	// CreateHost used to create a host with its initial initiators
	CreateHost(ctx context.Context, params *CreateHostParams) (string, error)
	// ModifyHost used to rename a host, change its connectivity or
	// add/remove initiators
	ModifyHost(ctx context.Context, id string, params *ModifyHostParams) error
	// DeleteHost used to delete a host by id
	DeleteHost(ctx context.Context, id string) error
}

// GetHostByID used to get host details by id
func (cli *Client) GetHostByID(ctx context.Context, id string) (*Host, error) {
	query := url.Values{}
	query.Set("select", hostSelectFields)

	var host Host
	exists, err := cli.getResource(ctx, "/host/"+id, query, &host)
	if err != nil || !exists {
		return nil, err
	}
	return &host, nil
}

// GetHostByName used to get host details by name
func (cli *Client) GetHostByName(ctx context.Context, name string) (*Host, error) {
	query := queryNameEq(name)
	query.Set("select", hostSelectFields)

	resp, err := cli.Get(ctx, "/host", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get host %s error: %w", name, err)
	}

	var hosts []Host
	if err := resp.GetData(&hosts); err != nil {
		return nil, err
	}
	if len(hosts) == 0 {
		return nil, nil
	}
	if len(hosts) > 1 {
		return nil, errors.New("multiple hosts by the same name found")
	}
	return &hosts[0], nil
}

// ListHosts used to get all hosts of the array
func (cli *Client) ListHosts(ctx context.Context) ([]Host, error) {
	query := url.Values{}
	query.Set("select", hostSelectFields)

	var hosts []Host
	if err := cli.getBatchObjs(ctx, "/host", query, &hosts); err != nil {
		return nil, err
	}
	return hosts, nil
}

// CreateHost used to create a host with its initial initiators
func (cli *Client) CreateHost(ctx context.Context, params *CreateHostParams) (string, error) {
	resp, err := cli.Post(ctx, "/host", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create host %s error: %w", params.Name, err)
	}
	return id, nil
}

// ModifyHost used to rename a host, change its connectivity or add/remove initiators
func (cli *Client) ModifyHost(ctx context.Context, id string, params *ModifyHostParams) error {
	resp, err := cli.Patch(ctx, "/host/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify host %s error: %w", id, err)
	}
	return nil
}

// DeleteHost used to delete a host by id
func (cli *Client) DeleteHost(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/host/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete host %s error: %w", id, err)
	}
	return nil
}
