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
	"encoding/json"
	"sort"

	"powerstore-ctl/client"
	"powerstore-ctl/utils"
)

// ApplyFunc runs one applier against raw task parameters
type ApplyFunc func(ctx context.Context, cli *client.Client, params json.RawMessage) (*Result, error)

func register[P any](apply func(context.Context, *client.Client, *P) (*Result, error)) ApplyFunc {
	return func(ctx context.Context, cli *client.Client, raw json.RawMessage) (*Result, error) {
		var params P
		if err := json.Unmarshal(raw, &params); err != nil {
			return nil, utils.Errorf(ctx, "invalid task parameters: %v", err)
		}
		return apply(ctx, cli, &params)
	}
}

var registry = map[string]ApplyFunc{
	"host": register(func(ctx context.Context, cli *client.Client, p *HostParams) (*Result, error) {
		return ApplyHost(ctx, cli, p)
	}),
	"volume": register(func(ctx context.Context, cli *client.Client, p *VolumeParams) (*Result, error) {
		return ApplyVolume(ctx, cli, p)
	}),
	"nasserver": register(func(ctx context.Context, cli *client.Client, p *NASServerParams) (*Result, error) {
		return ApplyNASServer(ctx, cli, p)
	}),
	"filesystem": register(func(ctx context.Context, cli *client.Client, p *FileSystemParams) (*Result, error) {
		return ApplyFileSystem(ctx, cli, p)
	}),
	"quota": register(func(ctx context.Context, cli *client.Client, p *QuotaParams) (*Result, error) {
		return ApplyQuota(ctx, cli, p)
	}),
	"nfsserver": register(func(ctx context.Context, cli *client.Client, p *NFSServerParams) (*Result, error) {
		return ApplyNFSServer(ctx, cli, p)
	}),
	"smbserver": register(func(ctx context.Context, cli *client.Client, p *SMBServerParams) (*Result, error) {
		return ApplySMBServer(ctx, cli, p)
	}),
	"fileinterface": register(func(ctx context.Context, cli *client.Client, p *FileInterfaceParams) (*Result, error) {
		return ApplyFileInterface(ctx, cli, p)
	}),
	"filedns": register(func(ctx context.Context, cli *client.Client, p *FileDNSParams) (*Result, error) {
		return ApplyFileDNS(ctx, cli, p)
	}),
	"filenis": register(func(ctx context.Context, cli *client.Client, p *FileNISParams) (*Result, error) {
		return ApplyFileNIS(ctx, cli, p)
	}),
	"network": register(func(ctx context.Context, cli *client.Client, p *NetworkParams) (*Result, error) {
		return ApplyNetwork(ctx, cli, p)
	}),
	"certificate": register(func(ctx context.Context, cli *client.Client, p *CertificateParams) (*Result, error) {
		return ApplyCertificate(ctx, cli, p)
	}),
	"remotesystem": register(func(ctx context.Context, cli *client.Client, p *RemoteSystemParams) (*Result, error) {
		return ApplyRemoteSystem(ctx, cli, p)
	}),
	"serviceconfig": register(func(ctx context.Context, cli *client.Client, p *ServiceConfigParams) (*Result, error) {
		return ApplyServiceConfig(ctx, cli, p)
	}),
	"notification": register(func(ctx context.Context, cli *client.Client, p *NotificationParams) (*Result, error) {
		return ApplyNotification(ctx, cli, p)
	}),
	"info": register(func(ctx context.Context, cli *client.Client, p *InfoParams) (*Result, error) {
		return GatherInfo(ctx, cli, p)
	}),
}

// Names returns the registered module names in order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Dispatch looks up a module by name and applies its raw parameters
func Dispatch(ctx context.Context, cli *client.Client, module string,
	params json.RawMessage) (*Result, error) {
	apply, exists := registry[module]
	if !exists {
		return nil, utils.Errorf(ctx, "unknown module %q, pick from %v", module, Names())
	}
	return apply(ctx, cli, params)
}
