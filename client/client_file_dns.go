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

const fileDNSSelectFields = "id,nas_server_id,domain,ip_addresses,transport"

// FileDNS describes the DNS settings of one NAS server
type FileDNS struct {
	ID          string   `json:"id"`
	NASServerID string   `json:"nas_server_id"`
	Domain      string   `json:"domain"`
	IPAddresses []string `json:"ip_addresses"`
	Transport   string   `json:"transport,omitempty"`
}

// CreateFileDNSParams defines create file DNS request
type CreateFileDNSParams struct {
	NASServerID string   `json:"nas_server_id"`
	Domain      string   `json:"domain"`
	IPAddresses []string `json:"ip_addresses"`
	Transport   string   `json:"transport,omitempty"`
}

// ModifyFileDNSParams defines modify file DNS request, nil fields are left unchanged
type ModifyFileDNSParams struct {
	Domain      *string  `json:"domain,omitempty"`
	IPAddresses []string `json:"ip_addresses,omitempty"`
	Transport   *string  `json:"transport,omitempty"`
}

// FileDNSClient defines interfaces for file DNS operations
type FileDNSClient interface {
	// GetFileDNSByID used to get file DNS details by id
	GetFileDNSByID(ctx context.Context, id string) (*FileDNS, error)
	// GetFileDNSByNASServerID used to get the file DNS of one NAS server
	GetFileDNSByNASServerID(ctx context.Context, nasServerID string) (*FileDNS, error)
	// CreateFileDNS used to create the file DNS of a NAS server
	CreateFileDNS(ctx context.Context, params *CreateFileDNSParams) (string, error)
	// ModifyFileDNS used to modify the file DNS of a NAS server
	ModifyFileDNS(ctx context.Context, id string, params *ModifyFileDNSParams) error
	// DeleteFileDNS used to delete the file DNS by id
	DeleteFileDNS(ctx context.Context, id string) error
}

// GetFileDNSByID used to get file DNS details by id
func (cli *Client) GetFileDNSByID(ctx context.Context, id string) (*FileDNS, error) {
	query := url.Values{}
	query.Set("select", fileDNSSelectFields)

	var dns FileDNS
	exists, err := cli.getResource(ctx, "/file_dns/"+id, query, &dns)
	if err != nil || !exists {
		return nil, err
	}
	return &dns, nil
}

// GetFileDNSByNASServerID used to get the file DNS of one NAS server
func (cli *Client) GetFileDNSByNASServerID(ctx context.Context, nasServerID string) (*FileDNS, error) {
	query := url.Values{}
	query.Set("nas_server_id", "eq."+nasServerID)
	query.Set("select", fileDNSSelectFields)

	resp, err := cli.Get(ctx, "/file_dns", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get file dns of nas server %s error: %w", nasServerID, err)
	}

	var dnsList []FileDNS
	if err := resp.GetData(&dnsList); err != nil {
		return nil, err
	}
	if len(dnsList) == 0 {
		return nil, nil
	}
	return &dnsList[0], nil
}

// CreateFileDNS used to create the file DNS of a NAS server
func (cli *Client) CreateFileDNS(ctx context.Context, params *CreateFileDNSParams) (string, error) {
	resp, err := cli.Post(ctx, "/file_dns", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create file dns of nas server %s error: %w", params.NASServerID, err)
	}
	return id, nil
}

// ModifyFileDNS used to modify the file DNS of a NAS server
func (cli *Client) ModifyFileDNS(ctx context.Context, id string, params *ModifyFileDNSParams) error {
	resp, err := cli.Patch(ctx, "/file_dns/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify file dns %s error: %w", id, err)
	}
	return nil
}

// DeleteFileDNS used to delete the file DNS by id
func (cli *Client) DeleteFileDNS(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/file_dns/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete file dns %s error: %w", id, err)
	}
	return nil
}
