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
	"strconv"
	"strings"
)

const (
	clusterSelectFields = "id,name,global_id,management_address,state," +
		"appliance_count,physical_mtu"
	applianceSelectFields = "id,name,model,service_tag,mode"
)

// Cluster describes the PowerStore cluster the client is logged in to
type Cluster struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	GlobalID          string `json:"global_id,omitempty"`
	ManagementAddress string `json:"management_address,omitempty"`
	State             string `json:"state,omitempty"`
	ApplianceCount    int    `json:"appliance_count,omitempty"`
	PhysicalMTU       int    `json:"physical_mtu,omitempty"`
}

// Appliance describes one appliance of the cluster
type Appliance struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Model      string `json:"model,omitempty"`
	ServiceTag string `json:"service_tag,omitempty"`
	Mode       string `json:"mode,omitempty"`
}

// SoftwareInstalled describes one installed software package of the cluster
type SoftwareInstalled struct {
	ID             string `json:"id"`
	ReleaseVersion string `json:"release_version,omitempty"`
	BuildVersion   string `json:"build_version,omitempty"`
	IsCluster      bool   `json:"is_cluster,omitempty"`
}

// SystemClient defines interfaces for cluster level queries
type SystemClient interface {
	// GetCluster used to get the cluster the client is logged in to
	GetCluster(ctx context.Context) (*Cluster, error)
	// ListAppliances used to get all appliances of the cluster
	ListAppliances(ctx context.Context) ([]Appliance, error)
	// GetApplianceByName used to get appliance details by name
	GetApplianceByName(ctx context.Context, name string) (*Appliance, error)
	// GetSoftwareVersion used to get the release version of the cluster software
	GetSoftwareVersion(ctx context.Context) (string, error)
	// CheckSoftwareVersion used to check whether the cluster runs at least the wanted release
	CheckSoftwareVersion(ctx context.Context, wanted string) (bool, error)
}

// GetCluster used to get the cluster the client is logged in to
func (cli *Client) GetCluster(ctx context.Context) (*Cluster, error) {
	query := url.Values{}
	query.Set("select", clusterSelectFields)

	resp, err := cli.Get(ctx, "/cluster", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get cluster error: %w", err)
	}

	var clusters []Cluster
	if err := resp.GetData(&clusters); err != nil {
		return nil, err
	}
	if len(clusters) == 0 {
		return nil, fmt.Errorf("no cluster found on %s", cli.Url)
	}
	return &clusters[0], nil
}

// ListAppliances used to get all appliances of the cluster
func (cli *Client) ListAppliances(ctx context.Context) ([]Appliance, error) {
	query := url.Values{}
	query.Set("select", applianceSelectFields)

	var appliances []Appliance
	if err := cli.getBatchObjs(ctx, "/appliance", query, &appliances); err != nil {
		return nil, err
	}
	return appliances, nil
}

// GetApplianceByName used to get appliance details by name
func (cli *Client) GetApplianceByName(ctx context.Context, name string) (*Appliance, error) {
	query := queryNameEq(name)
	query.Set("select", applianceSelectFields)

	resp, err := cli.Get(ctx, "/appliance", query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get appliance %s error: %w", name, err)
	}

	var appliances []Appliance
	if err := resp.GetData(&appliances); err != nil {
		return nil, err
	}
	if len(appliances) == 0 {
		return nil, nil
	}
	return &appliances[0], nil
}

// GetSoftwareVersion used to get the release version of the cluster software
func (cli *Client) GetSoftwareVersion(ctx context.Context) (string, error) {
	query := url.Values{}
	query.Set("select", "id,release_version,build_version,is_cluster")

	resp, err := cli.Get(ctx, "/software_installed", query)
	if err != nil {
		return "", err
	}
	if err := resp.AssertError(); err != nil {
		return "", fmt.Errorf("get installed software error: %w", err)
	}

	var packages []SoftwareInstalled
	if err := resp.GetData(&packages); err != nil {
		return "", err
	}

	for _, pkg := range packages {
		if pkg.IsCluster && pkg.ReleaseVersion != "" {
			return pkg.ReleaseVersion, nil
		}
	}
	return "", fmt.Errorf("no cluster software package found on %s", cli.Url)
}

// CheckSoftwareVersion used to check whether the cluster runs at least the
// wanted release, versions compare numerically segment by segment
func (cli *Client) CheckSoftwareVersion(ctx context.Context, wanted string) (bool, error) {
	current, err := cli.GetSoftwareVersion(ctx)
	if err != nil {
		return false, err
	}
	return compareVersion(current, wanted) >= 0, nil
}

func compareVersion(v1, v2 string) int {
	segs1 := strings.Split(v1, ".")
	segs2 := strings.Split(v2, ".")

	for i := 0; i < len(segs1) || i < len(segs2); i++ {
		var n1, n2 int
		if i < len(segs1) {
			n1, _ = strconv.Atoi(segs1[i])
		}
		if i < len(segs2) {
			n2, _ = strconv.Atoi(segs2[i])
		}
		if n1 != n2 {
			if n1 > n2 {
				return 1
			}
			return -1
		}
	}
	return 0
}
