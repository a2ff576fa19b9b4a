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

func patchGetHostByName(host *client.Host) *monkey.PatchGuard {
	return monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetHostByName",
		func(_ *client.Client, _ context.Context, _ string) (*client.Host, error) {
			return host, nil
		})
}

func TestApplyHostCreate(t *testing.T) {
	Convey("Normal", t, func() {
		getGuard := patchGetHostByName(nil)
		defer getGuard.Unpatch()

		var created *client.CreateHostParams
		createGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "CreateHost",
			func(_ *client.Client, _ context.Context, params *client.CreateHostParams) (string, error) {
				created = params
				return "h-1", nil
			})
		defer createGuard.Unpatch()

		result, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName:       "esx-1",
			OsType:         "ESXi",
			Initiators:     []string{"iqn.1998-01.com.vmware:esx1"},
			InitiatorState: InitiatorStatePresent,
			State:          StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(result.ID, ShouldEqual, "h-1")
		So(created.Initiators, ShouldHaveLength, 1)
		So(created.Initiators[0].PortType, ShouldEqual, client.PortTypeISCSI)
	})

	Convey("os_type is required", t, func() {
		getGuard := patchGetHostByName(nil)
		defer getGuard.Unpatch()

		_, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName:       "esx-1",
			Initiators:     []string{"iqn.1998-01.com.vmware:esx1"},
			InitiatorState: InitiatorStatePresent,
			State:          StatePresent,
		})
		So(err, ShouldBeError)
	})

	Convey("Mixed port types are rejected", t, func() {
		getGuard := patchGetHostByName(nil)
		defer getGuard.Unpatch()

		_, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName:       "esx-1",
			OsType:         "ESXi",
			Initiators:     []string{"iqn.1998-01.com.vmware:esx1", "21:00:00:24:ff:45:ee:01"},
			InitiatorState: InitiatorStatePresent,
			State:          StatePresent,
		})
		So(err, ShouldBeError)
	})

	Convey("Rename of a host that does not exist", t, func() {
		getGuard := patchGetHostByName(nil)
		defer getGuard.Unpatch()

		_, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName: "esx-1",
			NewName:  "esx-renamed",
			State:    StatePresent,
		})
		So(err, ShouldBeError)
	})
}

func TestApplyHostModify(t *testing.T) {
	existing := &client.Host{
		ID:     "h-1",
		Name:   "esx-1",
		OsType: "ESXi",
		Initiators: []client.HostInitiator{
			{PortName: "iqn.1998-01.com.vmware:esx1", PortType: client.PortTypeISCSI},
		},
	}

	Convey("Add a missing initiator", t, func() {
		getGuard := patchGetHostByName(existing)
		defer getGuard.Unpatch()

		var modified *client.ModifyHostParams
		modifyGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ModifyHost",
			func(_ *client.Client, _ context.Context, _ string, params *client.ModifyHostParams) error {
				modified = params
				return nil
			})
		defer modifyGuard.Unpatch()

		result, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName:       "esx-1",
			Initiators:     []string{"iqn.1998-01.com.vmware:esx1", "iqn.1998-01.com.vmware:esx1b"},
			InitiatorState: InitiatorStatePresent,
			State:          StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(modified.AddInitiators, ShouldHaveLength, 1)
		So(modified.AddInitiators[0].PortName, ShouldEqual, "iqn.1998-01.com.vmware:esx1b")
		So(modified.RemoveInitiators, ShouldBeEmpty)
	})

	Convey("Remove only the initiators the host has", t, func() {
		getGuard := patchGetHostByName(existing)
		defer getGuard.Unpatch()

		var modified *client.ModifyHostParams
		modifyGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ModifyHost",
			func(_ *client.Client, _ context.Context, _ string, params *client.ModifyHostParams) error {
				modified = params
				return nil
			})
		defer modifyGuard.Unpatch()

		result, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName:       "esx-1",
			Initiators:     []string{"iqn.1998-01.com.vmware:esx1", "iqn.1998-01.com.vmware:other"},
			InitiatorState: InitiatorStateAbsent,
			State:          StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(modified.RemoveInitiators, ShouldResemble, []string{"iqn.1998-01.com.vmware:esx1"})
	})

	Convey("Nothing to converge", t, func() {
		getGuard := patchGetHostByName(existing)
		defer getGuard.Unpatch()

		modifyCalled := false
		modifyGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ModifyHost",
			func(_ *client.Client, _ context.Context, _ string, _ *client.ModifyHostParams) error {
				modifyCalled = true
				return nil
			})
		defer modifyGuard.Unpatch()

		result, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName:       "esx-1",
			OsType:         "ESXi",
			Initiators:     []string{"iqn.1998-01.com.vmware:esx1"},
			InitiatorState: InitiatorStatePresent,
			State:          StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
		So(modifyCalled, ShouldBeFalse)
	})

	Convey("os_type cannot change", t, func() {
		getGuard := patchGetHostByName(existing)
		defer getGuard.Unpatch()

		_, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName: "esx-1",
			OsType:   "Linux",
			State:    StatePresent,
		})
		So(err, ShouldBeError)
	})
}

func TestApplyHostDelete(t *testing.T) {
	Convey("Existing host is deleted", t, func() {
		getGuard := patchGetHostByName(&client.Host{ID: "h-1", Name: "esx-1"})
		defer getGuard.Unpatch()

		deleteGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "DeleteHost",
			func(_ *client.Client, _ context.Context, _ string) error {
				return nil
			})
		defer deleteGuard.Unpatch()

		result, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName: "esx-1",
			State:    StateAbsent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(result.ID, ShouldEqual, "h-1")
	})

	Convey("Missing host is already converged", t, func() {
		getGuard := patchGetHostByName(nil)
		defer getGuard.Unpatch()

		result, err := ApplyHost(context.TODO(), testClient, &HostParams{
			HostName: "esx-1",
			State:    StateAbsent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
	})
}

func TestApplyHostConnectivityGate(t *testing.T) {
	getGuard := patchGetHostByName(nil)
	defer getGuard.Unpatch()

	supported := false
	versionGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "CheckSoftwareVersion",
		func(_ *client.Client, _ context.Context, _ string) (bool, error) {
			return supported, nil
		})
	defer versionGuard.Unpatch()

	createGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "CreateHost",
		func(_ *client.Client, _ context.Context, _ *client.CreateHostParams) (string, error) {
			return "h-1", nil
		})
	defer createGuard.Unpatch()

	params := &HostParams{
		HostName:         "esx-1",
		OsType:           "ESXi",
		HostConnectivity: "Metro_Optimize_Local",
		Initiators:       []string{"iqn.1998-01.com.vmware:esx1"},
		InitiatorState:   InitiatorStatePresent,
		State:            StatePresent,
	}

	Convey("Old array release rejects host_connectivity", t, func() {
		_, err := ApplyHost(context.TODO(), testClient, params)
		So(err, ShouldBeError)
		So(err.Error(), ShouldContainSubstring, "host_connectivity")
	})

	Convey("Supported release applies normally", t, func() {
		supported = true
		result, err := ApplyHost(context.TODO(), testClient, params)
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
	})
}

func TestValidateHostParams(t *testing.T) {
	var cases = []struct {
		name    string
		params  *HostParams
		wantErr bool
	}{
		{
			"Normal",
			&HostParams{HostName: "esx-1", State: StatePresent},
			false,
		},
		{
			"No identifier",
			&HostParams{State: StatePresent},
			true,
		},
		{
			"Both identifiers",
			&HostParams{HostName: "esx-1", HostID: "h-1", State: StatePresent},
			true,
		},
		{
			"Both initiator forms",
			&HostParams{
				HostName:           "esx-1",
				Initiators:         []string{"iqn.a"},
				DetailedInitiators: []DetailedInitiator{{PortName: "iqn.b"}},
				InitiatorState:     InitiatorStatePresent,
				State:              StatePresent,
			},
			true,
		},
		{
			"Initiators without initiator_state",
			&HostParams{HostName: "esx-1", Initiators: []string{"iqn.a"}, State: StatePresent},
			true,
		},
		{
			"initiator_state without initiators",
			&HostParams{HostName: "esx-1", InitiatorState: InitiatorStatePresent, State: StatePresent},
			true,
		},
		{
			"Bad initiator_state",
			&HostParams{
				HostName:       "esx-1",
				Initiators:     []string{"iqn.a"},
				InitiatorState: "attached",
				State:          StatePresent,
			},
			true,
		},
	}

	Convey("Host parameter validation", t, func() {
		for _, c := range cases {
			err := validateHostParams(context.TODO(), c.params)
			So(err != nil, ShouldEqual, c.wantErr)
		}
	})
}

func TestWantedInitiators(t *testing.T) {
	Convey("Port types are inferred from the name", t, func() {
		wanted, err := wantedInitiators(context.TODO(), &HostParams{
			Initiators: []string{"nqn.2014-08.org.nvmexpress:uuid:1"},
		})
		So(err, ShouldBeNil)
		So(wanted[0].PortType, ShouldEqual, client.PortTypeNVMe)
	})

	Convey("CHAP only applies to iSCSI", t, func() {
		_, err := wantedInitiators(context.TODO(), &HostParams{
			DetailedInitiators: []DetailedInitiator{{
				PortName:           "21:00:00:24:ff:45:ee:01",
				ChapSingleUsername: "chap-user",
				ChapSinglePassword: "chap-secret",
			}},
		})
		So(err, ShouldBeError)
	})
}
