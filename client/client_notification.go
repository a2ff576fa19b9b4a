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

const emailDestinationSelectFields = "id,email_address,notify_critical," +
	"notify_major,notify_minor,notify_info"

// EmailDestination describes one email notification destination
type EmailDestination struct {
	ID             string `json:"id"`
	EmailAddress   string `json:"email_address"`
	NotifyCritical bool   `json:"notify_critical,omitempty"`
	NotifyMajor    bool   `json:"notify_major,omitempty"`
	NotifyMinor    bool   `json:"notify_minor,omitempty"`
	NotifyInfo     bool   `json:"notify_info,omitempty"`
}

// CreateEmailDestinationParams defines create email destination request
type CreateEmailDestinationParams struct {
	EmailAddress   string `json:"email_address"`
	NotifyCritical *bool  `json:"notify_critical,omitempty"`
	NotifyMajor    *bool  `json:"notify_major,omitempty"`
	NotifyMinor    *bool  `json:"notify_minor,omitempty"`
	NotifyInfo     *bool  `json:"notify_info,omitempty"`
}

// ModifyEmailDestinationParams defines modify email destination request,
// nil fields are left unchanged
type ModifyEmailDestinationParams struct {
	EmailAddress   *string `json:"email_address,omitempty"`
	NotifyCritical *bool   `json:"notify_critical,omitempty"`
	NotifyMajor    *bool   `json:"notify_major,omitempty"`
	NotifyMinor    *bool   `json:"notify_minor,omitempty"`
	NotifyInfo     *bool   `json:"notify_info,omitempty"`
}

// EmailDestinationClient defines interfaces for email notification operations
type EmailDestinationClient interface {
	// GetEmailDestinationByID used to get email destination details by id
	GetEmailDestinationByID(ctx context.Context, id string) (*EmailDestination, error)
	// GetEmailDestinationByAddress used to get email destination details by address
	GetEmailDestinationByAddress(ctx context.Context, address string) (*EmailDestination, error)
	// ListEmailDestinations used to get all email destinations of the array
	ListEmailDestinations(ctx context.Context) ([]EmailDestination, error)
	// CreateEmailDestination used to create an email notification destination
	CreateEmailDestination(ctx context.Context, params *CreateEmailDestinationParams) (string, error)
	// ModifyEmailDestination used to modify an email notification destination
	ModifyEmailDestination(ctx context.Context, id string, params *ModifyEmailDestinationParams) error
	// DeleteEmailDestination used to delete an email notification destination by id
	DeleteEmailDestination(ctx context.Context, id string) error
	// SendTestEmail used to send a test mail to an email destination
	SendTestEmail(ctx context.Context, id string) error
}

// GetEmailDestinationByID used to get email destination details by id
func (cli *Client) GetEmailDestinationByID(ctx context.Context, id string) (*EmailDestination, error) {
	query := url.Values{}
	query.Set("select", emailDestinationSelectFields)

	var destination EmailDestination
	exists, err := cli.getResource(ctx, "/email_notify_destination/"+id, query, &destination)
	if err != nil || !exists {
		return nil, err
	}
	return &destination, nil
}

// GetEmailDestinationByAddress used to get email destination details by address
func (cli *Client) GetEmailDestinationByAddress(ctx context.Context, address string) (*EmailDestination, error) {
	query := url.Values{}
	query.Set("email_address", "eq."+address)
	query.Set("select", emailDestinationSelectFields)

	resp, err := cli.Get(ctx, "/email_notify_destination", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get email destination %s error: %w", address, err)
	}

	var destinations []EmailDestination
	if err := resp.GetData(&destinations); err != nil {
		return nil, err
	}
	if len(destinations) == 0 {
		return nil, nil
	}
	return &destinations[0], nil
}

// ListEmailDestinations used to get all email destinations of the array
func (cli *Client) ListEmailDestinations(ctx context.Context) ([]EmailDestination, error) {
	query := url.Values{}
	query.Set("select", emailDestinationSelectFields)

	var destinations []EmailDestination
	if err := cli.getBatchObjs(ctx, "/email_notify_destination", query, &destinations); err != nil {
		return nil, err
	}
	return destinations, nil
}

// CreateEmailDestination used to create an email notification destination
func (cli *Client) CreateEmailDestination(ctx context.Context, params *CreateEmailDestinationParams) (string, error) {
	resp, err := cli.Post(ctx, "/email_notify_destination", params)
	if err != nil {
		return "", err
	}

	id, err := cli.resolveMutation(ctx, resp)
	if err != nil {
		return "", fmt.Errorf("create email destination %s error: %w", params.EmailAddress, err)
	}
	return id, nil
}

// ModifyEmailDestination used to modify an email notification destination
func (cli *Client) ModifyEmailDestination(ctx context.Context, id string, params *ModifyEmailDestinationParams) error {
	resp, err := cli.Patch(ctx, "/email_notify_destination/"+id, params)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("modify email destination %s error: %w", id, err)
	}
	return nil
}

// DeleteEmailDestination used to delete an email notification destination by id
func (cli *Client) DeleteEmailDestination(ctx context.Context, id string) error {
	resp, err := cli.Delete(ctx, "/email_notify_destination/"+id, nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("delete email destination %s error: %w", id, err)
	}
	return nil
}

// SendTestEmail used to send a test mail to an email destination. The mail is
// sent on every call, there is no state to compare against.
func (cli *Client) SendTestEmail(ctx context.Context, id string) error {
	resp, err := cli.Post(ctx, "/email_notify_destination/"+id+"/test", nil)
	if err != nil {
		return err
	}

	if _, err := cli.resolveMutation(ctx, resp); err != nil {
		return fmt.Errorf("send test email to destination %s error: %w", id, err)
	}
	return nil
}
