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

// infoAPI groups the client interfaces the info gatherer needs
type infoAPI interface {
	client.SystemClient
	client.VolumeClient
	client.HostClient
	client.NASServerClient
	client.FileSystemClient
	client.NetworkClient
	client.CertificateClient
	client.RemoteSystemClient
	client.ServiceConfigClient
	client.EmailDestinationClient
}

// InfoParams defines one info gathering task, gather_subset selects the
// resource collections to read, an empty subset reads the cluster only
type InfoParams struct {
	GatherSubset []string `json:"gather_subset,omitempty"`
}

type infoGatherer struct {
	name   string
	gather func(ctx context.Context, cli infoAPI) (interface{}, error)
}

var infoGatherers = []infoGatherer{
	{"cluster", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.GetCluster(ctx)
	}},
	{"appliance", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListAppliances(ctx)
	}},
	{"software", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.GetSoftwareVersion(ctx)
	}},
	{"volume", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListVolumes(ctx)
	}},
	{"host", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListHosts(ctx)
	}},
	{"nas_server", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListNASServers(ctx)
	}},
	{"file_system", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListFileSystems(ctx)
	}},
	{"network", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListNetworks(ctx)
	}},
	{"certificate", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListCertificates(ctx)
	}},
	{"remote_system", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListRemoteSystems(ctx)
	}},
	{"service_config", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListServiceConfigs(ctx)
	}},
	{"email_destination", func(ctx context.Context, cli infoAPI) (interface{}, error) {
		return cli.ListEmailDestinations(ctx)
	}},
}

// InfoSubsets lists the supported gather_subset values
func InfoSubsets() []string {
	subsets := make([]string, 0, len(infoGatherers))
	for _, gatherer := range infoGatherers {
		subsets = append(subsets, gatherer.name)
	}
	return subsets
}

// GatherInfo reads the requested resource collections, reading never
// changes the array so the result always reports no change
func GatherInfo(ctx context.Context, cli infoAPI, params *InfoParams) (*Result, error) {
	subset := params.GatherSubset
	if len(subset) == 0 {
		subset = []string{"cluster"}
	}

	if diff := utils.Subtract(subset, InfoSubsets()); len(diff) != 0 {
		return nil, utils.Errorf(ctx, "unsupported gather_subset values %v, pick from %v",
			diff, InfoSubsets())
	}

	facts := make(map[string]interface{}, len(subset))
	for _, gatherer := range infoGatherers {
		if !utils.Contains(subset, gatherer.name) {
			continue
		}
		data, err := gatherer.gather(ctx, cli)
		if err != nil {
			return nil, err
		}
		facts[gatherer.name] = data
	}
	return &Result{Changed: false, Details: facts}, nil
}
