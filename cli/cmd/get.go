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

package cmd

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"powerstore-ctl/cli/cmd/options"
	"powerstore-ctl/cli/helper"
	"powerstore-ctl/client"
	"powerstore-ctl/utils/log"
)

func registerGetCmd() {
	options.NewFlagsOptions(getCmd).
		WithConfig(true).
		WithInsecure().
		WithParent(RootCmd)
}

var getExample = helper.Examples(`
	# List all volumes of the array
	pstorectl get volume -c array.yaml

	# List all hosts of the array
	pstorectl get host -c array.yaml`)

var getCmd = &cobra.Command{
	Use:     "get <resource>",
	Short:   "Get resource collections from a PowerStore array",
	Example: getExample,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGet(args[0])
	},
}

// lister reads one resource collection and renders it as header and rows
type lister func(ctx context.Context, cli *client.Client) ([]string, [][]string, error)

var listers = map[string]lister{
	"cluster":       listCluster,
	"appliance":     listAppliances,
	"volume":        listVolumes,
	"host":          listHosts,
	"nasserver":     listNASServers,
	"filesystem":    listFileSystems,
	"network":       listNetworks,
	"certificate":   listCertificates,
	"remotesystem":  listRemoteSystems,
	"serviceconfig": listServiceConfigs,
	"notification":  listEmailDestinations,
}

func supportedResources() []string {
	resources := make([]string, 0, len(listers))
	for resource := range listers {
		resources = append(resources, resource)
	}
	sort.Strings(resources)
	return resources
}

func runGet(resource string) error {
	list, exists := listers[strings.ToLower(resource)]
	if !exists {
		return helper.PrintlnError(fmt.Errorf("unknown resource %q, pick from %v",
			resource, supportedResources()))
	}

	ctx := log.EnsureRequestID(context.Background())
	cli, err := newArrayClient(ctx)
	if err != nil {
		return helper.PrintlnError(err)
	}
	defer cli.Logout(ctx)

	header, rows, err := list(ctx, cli)
	if err != nil {
		return helper.PrintlnError(err)
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.AppendBulk(rows)
	table.Render()
	return nil
}

func listCluster(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	cluster, err := cli.GetCluster(ctx)
	if err != nil {
		return nil, nil, err
	}
	version, err := cli.GetSoftwareVersion(ctx)
	if err != nil {
		return nil, nil, err
	}

	header := []string{"ID", "NAME", "GLOBAL ID", "STATE", "APPLIANCES", "VERSION"}
	rows := [][]string{{cluster.ID, cluster.Name, cluster.GlobalID, cluster.State,
		strconv.Itoa(cluster.ApplianceCount), version}}
	return header, rows, nil
}

func listAppliances(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	appliances, err := cli.ListAppliances(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(appliances))
	for _, appliance := range appliances {
		rows = append(rows, []string{appliance.ID, appliance.Name, appliance.Model,
			appliance.ServiceTag, appliance.Mode})
	}
	return []string{"ID", "NAME", "MODEL", "SERVICE TAG", "MODE"}, rows, nil
}

func listVolumes(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	volumes, err := cli.ListVolumes(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(volumes))
	for _, volume := range volumes {
		rows = append(rows, []string{volume.ID, volume.Name,
			strconv.FormatInt(volume.Size, 10), volume.State, volume.WWN})
	}
	return []string{"ID", "NAME", "SIZE", "STATE", "WWN"}, rows, nil
}

func listHosts(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	hosts, err := cli.ListHosts(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(hosts))
	for _, host := range hosts {
		ports := make([]string, 0, len(host.Initiators))
		for _, initiator := range host.Initiators {
			ports = append(ports, initiator.PortName)
		}
		rows = append(rows, []string{host.ID, host.Name, host.OsType,
			strings.Join(ports, ",")})
	}
	return []string{"ID", "NAME", "OS TYPE", "INITIATORS"}, rows, nil
}

func listNASServers(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	servers, err := cli.ListNASServers(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(servers))
	for _, server := range servers {
		rows = append(rows, []string{server.ID, server.Name, server.OperationalStatus,
			server.CurrentUnixDirectoryService})
	}
	return []string{"ID", "NAME", "STATUS", "DIRECTORY SERVICE"}, rows, nil
}

func listFileSystems(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	fileSystems, err := cli.ListFileSystems(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(fileSystems))
	for _, fs := range fileSystems {
		rows = append(rows, []string{fs.ID, fs.Name, fs.NASServerID,
			strconv.FormatInt(fs.SizeTotal, 10), strconv.FormatInt(fs.SizeUsed, 10)})
	}
	return []string{"ID", "NAME", "NAS SERVER", "SIZE", "USED"}, rows, nil
}

func listNetworks(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	networks, err := cli.ListNetworks(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(networks))
	for _, network := range networks {
		rows = append(rows, []string{network.ID, network.Name, network.Type,
			strconv.Itoa(network.VlanID), network.Gateway, strconv.Itoa(network.MTU)})
	}
	return []string{"ID", "NAME", "TYPE", "VLAN", "GATEWAY", "MTU"}, rows, nil
}

func listCertificates(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	certificates, err := cli.ListCertificates(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(certificates))
	for _, cert := range certificates {
		rows = append(rows, []string{cert.ID, cert.Service, cert.Type, cert.Scope,
			strconv.FormatBool(cert.IsCurrent), strconv.FormatBool(cert.IsValid)})
	}
	return []string{"ID", "SERVICE", "TYPE", "SCOPE", "CURRENT", "VALID"}, rows, nil
}

func listRemoteSystems(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	remotes, err := cli.ListRemoteSystems(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(remotes))
	for _, remote := range remotes {
		rows = append(rows, []string{remote.ID, remote.Name, remote.ManagementAddress,
			remote.DataConnectionState, remote.SerialNumber})
	}
	return []string{"ID", "NAME", "ADDRESS", "CONNECTION", "SERIAL"}, rows, nil
}

func listServiceConfigs(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	configs, err := cli.ListServiceConfigs(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(configs))
	for _, config := range configs {
		rows = append(rows, []string{config.ID, config.ApplianceID,
			strconv.FormatBool(config.IsSSHEnabled)})
	}
	return []string{"ID", "APPLIANCE", "SSH ENABLED"}, rows, nil
}

func listEmailDestinations(ctx context.Context, cli *client.Client) ([]string, [][]string, error) {
	destinations, err := cli.ListEmailDestinations(ctx)
	if err != nil {
		return nil, nil, err
	}

	rows := make([][]string, 0, len(destinations))
	for _, destination := range destinations {
		rows = append(rows, []string{destination.ID, destination.EmailAddress,
			strconv.FormatBool(destination.NotifyCritical),
			strconv.FormatBool(destination.NotifyMajor)})
	}
	return []string{"ID", "EMAIL", "CRITICAL", "MAJOR"}, rows, nil
}
