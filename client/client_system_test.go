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
	"net/url"
	"reflect"
	"testing"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCluster(t *testing.T) {
	patches := gomonkey.ApplyMethod(reflect.TypeOf(testClient), "Get",
		func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
			return Response{
				StatusCode: 200,
				Body:       []byte(`[{"id":"0","name":"PS-cluster","appliance_count":2}]`),
			}, nil
		})
	defer patches.Reset()

	cluster, err := testClient.GetCluster(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, "PS-cluster", cluster.Name)
	assert.Equal(t, 2, cluster.ApplianceCount)
}

func TestGetClusterNoneFound(t *testing.T) {
	patches := gomonkey.ApplyMethod(reflect.TypeOf(testClient), "Get",
		func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
			return Response{StatusCode: 200, Body: []byte(`[]`)}, nil
		})
	defer patches.Reset()

	_, err := testClient.GetCluster(context.TODO())
	assert.Error(t, err)
}

func TestGetSoftwareVersion(t *testing.T) {
	patches := gomonkey.ApplyMethod(reflect.TypeOf(testClient), "Get",
		func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
			return Response{
				StatusCode: 200,
				Body: []byte(`[{"id":"s-1","release_version":"2.1.0","is_cluster":false},` +
					`{"id":"s-2","release_version":"3.0.0.0","is_cluster":true}]`),
			}, nil
		})
	defer patches.Reset()

	version, err := testClient.GetSoftwareVersion(context.TODO())
	require.NoError(t, err)
	// Only the cluster wide package counts, not per-node ones.
	assert.Equal(t, "3.0.0.0", version)
}

func TestCheckSoftwareVersion(t *testing.T) {
	patches := gomonkey.ApplyMethod(reflect.TypeOf(testClient), "GetSoftwareVersion",
		func(_ *Client, _ context.Context) (string, error) {
			return "3.0.0.0", nil
		})
	defer patches.Reset()

	ok, err := testClient.CheckSoftwareVersion(context.TODO(), "3.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = testClient.CheckSoftwareVersion(context.TODO(), "3.5")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCompareVersion(t *testing.T) {
	var cases = []struct {
		v1   string
		v2   string
		want int
	}{
		{"3.0.0.0", "3.0", 0},
		{"3.0.0.1", "3.0", 1},
		{"2.1", "3.0", -1},
		{"3.10", "3.9", 1},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, compareVersion(c.v1, c.v2), "%s vs %s", c.v1, c.v2)
	}
}
