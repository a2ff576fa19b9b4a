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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeAddresses(t *testing.T) {
	var cases = []struct {
		name    string
		current []string
		wanted  []string
		add     []string
		remove  []string
		merged  []string
		dirty   bool
	}{
		{
			name:    "Wanted list replaces the current one",
			current: []string{"10.0.0.1"},
			wanted:  []string{"10.0.0.2", "10.0.0.3"},
			merged:  []string{"10.0.0.2", "10.0.0.3"},
			dirty:   true,
		},
		{
			name:    "Wanted list already converged in any order",
			current: []string{"10.0.0.1", "10.0.0.2"},
			wanted:  []string{"10.0.0.2", "10.0.0.1"},
			dirty:   false,
		},
		{
			name:    "Add merges into the current list",
			current: []string{"10.0.0.1"},
			add:     []string{"10.0.0.2"},
			merged:  []string{"10.0.0.1", "10.0.0.2"},
			dirty:   true,
		},
		{
			name:    "Adding an address the server already has",
			current: []string{"10.0.0.1"},
			add:     []string{"10.0.0.1"},
			dirty:   false,
		},
		{
			name:    "Remove drops only what is present",
			current: []string{"10.0.0.1", "10.0.0.2"},
			remove:  []string{"10.0.0.2", "10.0.0.9"},
			merged:  []string{"10.0.0.1"},
			dirty:   true,
		},
		{
			name:    "No addressing parameters",
			current: []string{"10.0.0.1"},
			dirty:   false,
		},
	}

	for _, c := range cases {
		merged, dirty := mergeAddresses(c.current, c.wanted, c.add, c.remove)
		assert.Equal(t, c.dirty, dirty, c.name)
		if c.dirty {
			assert.Equal(t, c.merged, merged, c.name)
		}
	}
}

func TestValidateFileDNSParams(t *testing.T) {
	var cases = []struct {
		name    string
		params  *FileDNSParams
		wantErr bool
	}{
		{
			"Normal",
			&FileDNSParams{NASServer: "nas-1", State: StatePresent},
			false,
		},
		{
			"No identifier",
			&FileDNSParams{State: StatePresent},
			true,
		},
		{
			"Both identifiers",
			&FileDNSParams{FileDNSID: "dns-1", NASServer: "nas-1", State: StatePresent},
			true,
		},
		{
			"ip_addresses with add list",
			&FileDNSParams{
				NASServer:      "nas-1",
				IPAddresses:    []string{"10.0.0.1"},
				AddIPAddresses: []string{"10.0.0.2"},
				State:          StatePresent,
			},
			true,
		},
		{
			"Same address added and removed",
			&FileDNSParams{
				NASServer:      "nas-1",
				AddIPAddresses: []string{"10.0.0.1"},
				RemIPAddresses: []string{"10.0.0.1"},
				State:          StatePresent,
			},
			true,
		},
	}

	for _, c := range cases {
		err := validateFileDNSParams(context.TODO(), c.params)
		assert.Equal(t, c.wantErr, err != nil, "%s, err:%v", c.name, err)
	}
}
