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
	"strings"

	"powerstore-ctl/client"
	"powerstore-ctl/utils"
)

const (
	// InitiatorStatePresent the listed initiators should belong to the host
	InitiatorStatePresent = "present-in-host"
	// InitiatorStateAbsent the listed initiators should not belong to the host
	InitiatorStateAbsent = "absent-in-host"

	// hostConnectivityMinRelease first array release with host_connectivity
	hostConnectivityMinRelease = "3.0"
)

// hostAPI groups the client interfaces the host applier needs, the system
// client backs the release gate of host_connectivity
type hostAPI interface {
	client.HostClient
	client.SystemClient
}

// DetailedInitiator is one initiator given with its port type and CHAP
// credentials instead of a bare port name
type DetailedInitiator struct {
	PortName           string `json:"port_name"`
	PortType           string `json:"port_type,omitempty"`
	ChapSingleUsername string `json:"chap_single_username,omitempty"`
	ChapSinglePassword string `json:"chap_single_password,omitempty"`
	ChapMutualUsername string `json:"chap_mutual_username,omitempty"`
	ChapMutualPassword string `json:"chap_mutual_password,omitempty"`
}

// HostParams defines one host task
type HostParams struct {
	HostName           string              `json:"host_name,omitempty"`
	HostID             string              `json:"host_id,omitempty"`
	NewName            string              `json:"new_name,omitempty"`
	Description        string              `json:"description,omitempty"`
	OsType             string              `json:"os_type,omitempty"`
	HostConnectivity   string              `json:"host_connectivity,omitempty"`
	Initiators         []string            `json:"initiators,omitempty"`
	DetailedInitiators []DetailedInitiator `json:"detailed_initiators,omitempty"`
	InitiatorState     string              `json:"initiator_state,omitempty"`
	State              string              `json:"state"`
}

// inferPortType maps an initiator port name to its protocol, iqn prefixed
// names are iSCSI, nqn prefixed names are NVMe, everything else is a fibre
// channel WWN
func inferPortType(portName string) string {
	switch {
	case strings.HasPrefix(portName, "iqn"):
		return client.PortTypeISCSI
	case strings.HasPrefix(portName, "nqn"):
		return client.PortTypeNVMe
	default:
		return client.PortTypeFC
	}
}

func validateHostParams(ctx context.Context, params *HostParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.HostName == "" && params.HostID == "" {
		return utils.Errorln(ctx, "one of host_name and host_id is required")
	}
	if params.HostName != "" && params.HostID != "" {
		return utils.Errorln(ctx, "host_name and host_id are mutually exclusive")
	}
	if len(params.Initiators) != 0 && len(params.DetailedInitiators) != 0 {
		return utils.Errorln(ctx, "initiators and detailed_initiators are mutually exclusive")
	}

	hasInitiators := len(params.Initiators) != 0 || len(params.DetailedInitiators) != 0
	if hasInitiators && params.InitiatorState == "" {
		return utils.Errorln(ctx, "initiator_state is required along with initiators")
	}
	if params.InitiatorState != "" {
		if !hasInitiators {
			return utils.Errorln(ctx, "initiators are required along with initiator_state")
		}
		if params.InitiatorState != InitiatorStatePresent &&
			params.InitiatorState != InitiatorStateAbsent {
			return utils.Errorf(ctx, "initiator_state must be %s or %s, got %q",
				InitiatorStatePresent, InitiatorStateAbsent, params.InitiatorState)
		}
	}
	return nil
}

// wantedInitiators normalizes the two initiator parameter forms into one
// list of create/add records and validates the protocol rules, a host speaks
// one protocol and CHAP credentials only apply to iSCSI
func wantedInitiators(ctx context.Context, params *HostParams) ([]client.Initiator, error) {
	var wanted []client.Initiator
	for _, portName := range params.Initiators {
		wanted = append(wanted, client.Initiator{
			PortName: portName,
			PortType: inferPortType(portName),
		})
	}
	for _, detail := range params.DetailedInitiators {
		portType := detail.PortType
		if portType == "" {
			portType = inferPortType(detail.PortName)
		}

		hasChap := detail.ChapSingleUsername != "" || detail.ChapSinglePassword != "" ||
			detail.ChapMutualUsername != "" || detail.ChapMutualPassword != ""
		if hasChap && portType != client.PortTypeISCSI {
			return nil, utils.Errorf(ctx,
				"CHAP credentials are not supported for %s initiator %s",
				portType, detail.PortName)
		}

		wanted = append(wanted, client.Initiator{
			PortName:           detail.PortName,
			PortType:           portType,
			ChapSingleUsername: detail.ChapSingleUsername,
			ChapSinglePassword: detail.ChapSinglePassword,
			ChapMutualUsername: detail.ChapMutualUsername,
			ChapMutualPassword: detail.ChapMutualPassword,
		})
	}

	for _, initiator := range wanted {
		if initiator.PortType != wanted[0].PortType {
			return nil, utils.Errorln(ctx,
				"mixing initiators of different port types is not supported, "+
					"a host connects over one protocol")
		}
	}
	return wanted, nil
}

func getHost(ctx context.Context, cli client.HostClient, params *HostParams) (*client.Host, error) {
	if params.HostID != "" {
		return cli.GetHostByID(ctx, params.HostID)
	}
	return cli.GetHostByName(ctx, params.HostName)
}

// ApplyHost converges one host to the wanted state
func ApplyHost(ctx context.Context, cli hostAPI, params *HostParams) (*Result, error) {
	if err := validateHostParams(ctx, params); err != nil {
		return nil, err
	}

	if params.HostConnectivity != "" {
		supported, err := cli.CheckSoftwareVersion(ctx, hostConnectivityMinRelease)
		if err != nil {
			return nil, err
		}
		if !supported {
			return nil, utils.Errorf(ctx,
				"host_connectivity needs array release %s or later",
				hostConnectivityMinRelease)
		}
	}

	wanted, err := wantedInitiators(ctx, params)
	if err != nil {
		return nil, err
	}

	host, err := getHost(ctx, cli, params)
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if host == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteHost(ctx, host.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: host.ID}, nil
	}

	if host == nil {
		return createHost(ctx, cli, params, wanted)
	}
	return modifyHost(ctx, cli, params, host, wanted)
}

func createHost(ctx context.Context, cli client.HostClient,
	params *HostParams, wanted []client.Initiator) (*Result, error) {
	if params.HostID != "" {
		return nil, utils.Errorf(ctx, "host %s not found", params.HostID)
	}
	if params.NewName != "" {
		return nil, utils.Errorf(ctx, "cannot rename host %s, it does not exist",
			params.HostName)
	}
	if params.OsType == "" {
		return nil, utils.Errorln(ctx, "os_type is required to create a host")
	}
	if len(wanted) == 0 || params.InitiatorState != InitiatorStatePresent {
		return nil, utils.Errorf(ctx,
			"initiators with initiator_state %s are required to create a host",
			InitiatorStatePresent)
	}

	id, err := cli.CreateHost(ctx, &client.CreateHostParams{
		Name:             params.HostName,
		OsType:           params.OsType,
		Initiators:       wanted,
		Description:      params.Description,
		HostConnectivity: params.HostConnectivity,
	})
	if err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: id}, nil
}

func modifyHost(ctx context.Context, cli client.HostClient, params *HostParams,
	host *client.Host, wanted []client.Initiator) (*Result, error) {
	if params.OsType != "" && params.OsType != host.OsType {
		return nil, utils.Errorf(ctx,
			"os_type of host %s cannot be changed from %s to %s",
			host.Name, host.OsType, params.OsType)
	}

	modify := &client.ModifyHostParams{}
	changed := false

	current := make([]string, 0, len(host.Initiators))
	for _, initiator := range host.Initiators {
		current = append(current, initiator.PortName)
	}
	wantedNames := make([]string, 0, len(wanted))
	for _, initiator := range wanted {
		wantedNames = append(wantedNames, initiator.PortName)
	}

	switch params.InitiatorState {
	case InitiatorStatePresent:
		for _, initiator := range wanted {
			if !utils.Contains(current, initiator.PortName) {
				modify.AddInitiators = append(modify.AddInitiators, initiator)
			}
		}
	case InitiatorStateAbsent:
		modify.RemoveInitiators = utils.Intersect(current, wantedNames)
	}
	if len(modify.AddInitiators) != 0 || len(modify.RemoveInitiators) != 0 {
		changed = true
	}

	if params.NewName != "" && params.NewName != host.Name {
		modify.Name = &params.NewName
		changed = true
	}
	if desc := strUpdate(host.Description, params.Description); desc != nil {
		modify.Description = desc
		changed = true
	}
	if conn := strUpdate(host.HostConnectivity, params.HostConnectivity); conn != nil {
		modify.HostConnectivity = conn
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: host.ID, Details: host}, nil
	}
	if err := cli.ModifyHost(ctx, host.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: host.ID}, nil
}
