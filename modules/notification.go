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

// NotificationParams defines one email notification destination task.
// send_test mails on every apply, it never converges.
type NotificationParams struct {
	EmailAddress    string `json:"email_address,omitempty"`
	NewEmailAddress string `json:"new_email_address,omitempty"`
	NotifyCritical  *bool  `json:"notify_critical,omitempty"`
	NotifyMajor     *bool  `json:"notify_major,omitempty"`
	NotifyMinor     *bool  `json:"notify_minor,omitempty"`
	NotifyInfo      *bool  `json:"notify_info,omitempty"`
	SendTest        bool   `json:"send_test,omitempty"`
	State           string `json:"state"`
}

func validateNotificationParams(ctx context.Context, params *NotificationParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.EmailAddress == "" {
		return utils.Errorln(ctx, "email_address is required")
	}
	if params.SendTest && params.State == StateAbsent {
		return utils.Errorln(ctx, "cannot send a test mail while deleting the destination")
	}
	return nil
}

// ApplyNotification converges one email notification destination
func ApplyNotification(ctx context.Context, cli client.EmailDestinationClient,
	params *NotificationParams) (*Result, error) {
	if err := validateNotificationParams(ctx, params); err != nil {
		return nil, err
	}

	destination, err := cli.GetEmailDestinationByAddress(ctx, params.EmailAddress)
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if destination == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteEmailDestination(ctx, destination.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: destination.ID}, nil
	}

	var result *Result
	if destination == nil {
		if params.NewEmailAddress != "" {
			return nil, utils.Errorf(ctx,
				"cannot rename email destination %s, it does not exist",
				params.EmailAddress)
		}

		id, err := cli.CreateEmailDestination(ctx, &client.CreateEmailDestinationParams{
			EmailAddress:   params.EmailAddress,
			NotifyCritical: params.NotifyCritical,
			NotifyMajor:    params.NotifyMajor,
			NotifyMinor:    params.NotifyMinor,
			NotifyInfo:     params.NotifyInfo,
		})
		if err != nil {
			return nil, err
		}
		result = &Result{Changed: true, ID: id}
	} else {
		modify := &client.ModifyEmailDestinationParams{}
		changed := false

		if address := strUpdate(destination.EmailAddress, params.NewEmailAddress); address != nil {
			modify.EmailAddress = address
			changed = true
		}
		if flag := boolUpdate(destination.NotifyCritical, params.NotifyCritical); flag != nil {
			modify.NotifyCritical = flag
			changed = true
		}
		if flag := boolUpdate(destination.NotifyMajor, params.NotifyMajor); flag != nil {
			modify.NotifyMajor = flag
			changed = true
		}
		if flag := boolUpdate(destination.NotifyMinor, params.NotifyMinor); flag != nil {
			modify.NotifyMinor = flag
			changed = true
		}
		if flag := boolUpdate(destination.NotifyInfo, params.NotifyInfo); flag != nil {
			modify.NotifyInfo = flag
			changed = true
		}

		if changed {
			if err := cli.ModifyEmailDestination(ctx, destination.ID, modify); err != nil {
				return nil, err
			}
		}
		result = &Result{Changed: changed, ID: destination.ID}
		if !changed {
			result.Details = destination
		}
	}

	if params.SendTest {
		if err := cli.SendTestEmail(ctx, result.ID); err != nil {
			return nil, err
		}
		result.Changed = true
	}
	return result, nil
}
