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

// fileDNSAPI groups the client interfaces the file DNS applier needs
type fileDNSAPI interface {
	client.NASServerClient
	client.FileDNSClient
}

// FileDNSParams defines one file DNS task. Each NAS server carries at most
// one DNS setting, add/remove merge into the existing server list.
type FileDNSParams struct {
	FileDNSID      string   `json:"file_dns_id,omitempty"`
	NASServer      string   `json:"nas_server,omitempty"`
	Domain         string   `json:"domain,omitempty"`
	IPAddresses    []string `json:"ip_addresses,omitempty"`
	AddIPAddresses []string `json:"add_ip_addresses,omitempty"`
	RemIPAddresses []string `json:"remove_ip_addresses,omitempty"`
	Transport      string   `json:"transport,omitempty"`
	State          string   `json:"state"`
}

func validateFileDNSParams(ctx context.Context, params *FileDNSParams) error {
	if err := checkState(ctx, params.State); err != nil {
		return err
	}
	if params.FileDNSID == "" && params.NASServer == "" {
		return utils.Errorln(ctx, "one of file_dns_id and nas_server is required")
	}
	if params.FileDNSID != "" && params.NASServer != "" {
		return utils.Errorln(ctx, "file_dns_id and nas_server are mutually exclusive")
	}
	if len(params.IPAddresses) != 0 &&
		(len(params.AddIPAddresses) != 0 || len(params.RemIPAddresses) != 0) {
		return utils.Errorln(ctx,
			"ip_addresses is mutually exclusive with add/remove_ip_addresses")
	}
	if len(utils.Intersect(params.AddIPAddresses, params.RemIPAddresses)) != 0 {
		return utils.Errorln(ctx,
			"an address cannot be both added and removed")
	}
	return nil
}

// mergeAddresses computes the wanted server list from the current one and
// the three addressing parameters, the second return reports whether the
// list changes
func mergeAddresses(current, wanted, add, remove []string) ([]string, bool) {
	if len(wanted) != 0 {
		if utils.IsSubset(wanted, current) && utils.IsSubset(current, wanted) {
			return nil, false
		}
		return wanted, true
	}
	if len(add) == 0 && len(remove) == 0 {
		return nil, false
	}

	merged := utils.Subtract(current, remove)
	for _, address := range add {
		if !utils.Contains(merged, address) {
			merged = append(merged, address)
		}
	}
	if utils.IsSubset(merged, current) && utils.IsSubset(current, merged) {
		return nil, false
	}
	return merged, true
}

// ApplyFileDNS converges the file DNS of one NAS server to the wanted state
func ApplyFileDNS(ctx context.Context, cli fileDNSAPI, params *FileDNSParams) (*Result, error) {
	if err := validateFileDNSParams(ctx, params); err != nil {
		return nil, err
	}

	var dns *client.FileDNS
	var nasServerID string
	var err error
	if params.FileDNSID != "" {
		dns, err = cli.GetFileDNSByID(ctx, params.FileDNSID)
	} else {
		nasServerID, err = resolveNASServer(ctx, cli, params.NASServer)
		if err != nil {
			return nil, err
		}
		dns, err = cli.GetFileDNSByNASServerID(ctx, nasServerID)
	}
	if err != nil {
		return nil, err
	}

	if params.State == StateAbsent {
		if dns == nil {
			return &Result{Changed: false}, nil
		}
		if err := cli.DeleteFileDNS(ctx, dns.ID); err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: dns.ID}, nil
	}

	if dns == nil {
		if params.FileDNSID != "" {
			return nil, utils.Errorf(ctx, "file dns %s not found", params.FileDNSID)
		}
		if params.Domain == "" {
			return nil, utils.Errorln(ctx, "domain is required to create a file dns")
		}
		addresses := params.IPAddresses
		if len(addresses) == 0 {
			addresses = params.AddIPAddresses
		}
		if len(addresses) == 0 {
			return nil, utils.Errorln(ctx, "ip_addresses is required to create a file dns")
		}

		id, err := cli.CreateFileDNS(ctx, &client.CreateFileDNSParams{
			NASServerID: nasServerID,
			Domain:      params.Domain,
			IPAddresses: addresses,
			Transport:   params.Transport,
		})
		if err != nil {
			return nil, err
		}
		return &Result{Changed: true, ID: id}, nil
	}

	modify := &client.ModifyFileDNSParams{}
	changed := false

	if domain := strUpdate(dns.Domain, params.Domain); domain != nil {
		modify.Domain = domain
		changed = true
	}
	if addresses, dirty := mergeAddresses(dns.IPAddresses, params.IPAddresses,
		params.AddIPAddresses, params.RemIPAddresses); dirty {
		modify.IPAddresses = addresses
		changed = true
	}
	if transport := strUpdate(dns.Transport, params.Transport); transport != nil {
		modify.Transport = transport
		changed = true
	}

	if !changed {
		return &Result{Changed: false, ID: dns.ID, Details: dns}, nil
	}
	if err := cli.ModifyFileDNS(ctx, dns.ID, modify); err != nil {
		return nil, err
	}
	return &Result{Changed: true, ID: dns.ID}, nil
}
