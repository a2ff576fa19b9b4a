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
	"reflect"
	"testing"

	"bou.ke/monkey"
	. "github.com/smartystreets/goconvey/convey"

	"powerstore-ctl/client"
)

func TestApplyNetworkAddresses(t *testing.T) {
	getGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetNetworkByName",
		func(_ *client.Client, _ context.Context, _ string) (*client.Network, error) {
			return &client.Network{ID: "NW1", Name: "Default Management Network",
				Gateway: "10.0.0.254", MTU: 1500}, nil
		})
	defer getGuard.Unpatch()

	pool := []client.IPPoolAddress{
		{ID: "IP1", NetworkID: "NW1", Address: "10.0.0.10"},
	}
	poolGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ListIPPoolAddresses",
		func(_ *client.Client, _ context.Context, _ string) ([]client.IPPoolAddress, error) {
			return pool, nil
		})
	defer poolGuard.Unpatch()

	patches := 0
	var modified *client.ModifyNetworkParams
	modifyGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ModifyNetwork",
		func(_ *client.Client, _ context.Context, _ string, params *client.ModifyNetworkParams) error {
			patches++
			modified = params
			return nil
		})
	defer modifyGuard.Unpatch()

	params := &NetworkParams{
		NetworkName:  "Default Management Network",
		AddAddresses: []string{"10.0.0.11"},
		State:        StatePresent,
	}

	Convey("Missing pool address is added", t, func() {
		result, err := ApplyNetwork(context.TODO(), testClient, params)
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(modified.AddAddresses, ShouldResemble, []string{"10.0.0.11"})
		So(patches, ShouldEqual, 1)
	})

	Convey("Second apply with the same params is a no-op", t, func() {
		pool = append(pool, client.IPPoolAddress{ID: "IP2", NetworkID: "NW1", Address: "10.0.0.11"})

		result, err := ApplyNetwork(context.TODO(), testClient, params)
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
		So(patches, ShouldEqual, 1)
	})

	Convey("Removing an address the pool does not hold is a no-op", t, func() {
		result, err := ApplyNetwork(context.TODO(), testClient, &NetworkParams{
			NetworkName:     "Default Management Network",
			RemoveAddresses: []string{"10.0.0.99"},
			State:           StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
		So(patches, ShouldEqual, 1)
	})
}

func TestApplyNetworkStateRules(t *testing.T) {
	Convey("Networks cannot be deleted", t, func() {
		_, err := ApplyNetwork(context.TODO(), testClient, &NetworkParams{
			NetworkName: "Default Management Network",
			State:       StateAbsent,
		})
		So(err, ShouldBeError)
	})
}
