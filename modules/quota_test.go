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
	"github.com/stretchr/testify/assert"

	"powerstore-ctl/client"
)

func limit(v int64) *int64 {
	return &v
}

func TestValidateQuotaParams(t *testing.T) {
	var cases = []struct {
		name    string
		params  *QuotaParams
		wantErr bool
	}{
		{
			"Normal tree quota",
			&QuotaParams{QuotaType: QuotaTypeTree, FileSystem: "fs-1", Path: "/projects", State: StatePresent},
			false,
		},
		{
			"Normal user quota",
			&QuotaParams{QuotaType: QuotaTypeUser, FileSystem: "fs-1", UID: 1001, State: StatePresent},
			false,
		},
		{
			"Missing file system",
			&QuotaParams{QuotaType: QuotaTypeTree, Path: "/projects", State: StatePresent},
			true,
		},
		{
			"Tree quota without a path",
			&QuotaParams{QuotaType: QuotaTypeTree, FileSystem: "fs-1", State: StatePresent},
			true,
		},
		{
			"Tree quota with a user identity",
			&QuotaParams{QuotaType: QuotaTypeTree, FileSystem: "fs-1", Path: "/projects",
				UID: 1001, State: StatePresent},
			true,
		},
		{
			"User quota without an identity",
			&QuotaParams{QuotaType: QuotaTypeUser, FileSystem: "fs-1", State: StatePresent},
			true,
		},
		{
			"User quota with two identities",
			&QuotaParams{QuotaType: QuotaTypeUser, FileSystem: "fs-1",
				UID: 1001, UnixName: "alice", State: StatePresent},
			true,
		},
		{
			"User quota cannot be deleted",
			&QuotaParams{QuotaType: QuotaTypeUser, FileSystem: "fs-1", UID: 1001, State: StateAbsent},
			true,
		},
		{
			"Unknown quota type",
			&QuotaParams{QuotaType: "group", FileSystem: "fs-1", State: StatePresent},
			true,
		},
		{
			"Negative limit",
			&QuotaParams{QuotaType: QuotaTypeTree, FileSystem: "fs-1", Path: "/projects",
				HardLimit: limit(-1), State: StatePresent},
			true,
		},
	}

	for _, c := range cases {
		err := validateQuotaParams(context.TODO(), c.params)
		assert.Equal(t, c.wantErr, err != nil, "%s, err:%v", c.name, err)
	}
}

func TestApplyTreeQuota(t *testing.T) {
	fsGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetFileSystemByID",
		func(_ *client.Client, _ context.Context, id string) (*client.FileSystem, error) {
			return &client.FileSystem{ID: id, Name: "fs-data"}, nil
		})
	defer fsGuard.Unpatch()

	Convey("Create with limits in GB", t, func() {
		getGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetTreeQuotaByPath",
			func(_ *client.Client, _ context.Context, _, _ string) (*client.TreeQuota, error) {
				return nil, nil
			})
		defer getGuard.Unpatch()

		var created *client.CreateTreeQuotaParams
		createGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "CreateTreeQuota",
			func(_ *client.Client, _ context.Context, params *client.CreateTreeQuotaParams) (string, error) {
				created = params
				return "tq-1", nil
			})
		defer createGuard.Unpatch()

		result, err := ApplyQuota(context.TODO(), testClient, &QuotaParams{
			QuotaType:  QuotaTypeTree,
			FileSystem: "fs-1",
			Path:       "/projects",
			HardLimit:  limit(2),
			SoftLimit:  limit(1),
			CapUnit:    "GB",
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(created.HardLimit, ShouldEqual, int64(2)<<30)
		So(created.SoftLimit, ShouldEqual, int64(1)<<30)
	})

	Convey("Converged quota reports no change", t, func() {
		getGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetTreeQuotaByPath",
			func(_ *client.Client, _ context.Context, _, _ string) (*client.TreeQuota, error) {
				return &client.TreeQuota{ID: "tq-1", Path: "/projects",
					HardLimit: 2 << 30, SoftLimit: 1 << 30}, nil
			})
		defer getGuard.Unpatch()

		result, err := ApplyQuota(context.TODO(), testClient, &QuotaParams{
			QuotaType:  QuotaTypeTree,
			FileSystem: "fs-1",
			Path:       "/projects",
			HardLimit:  limit(2),
			SoftLimit:  limit(1),
			CapUnit:    "GB",
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
	})
}

func TestApplyUserQuota(t *testing.T) {
	fsGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetFileSystemByID",
		func(_ *client.Client, _ context.Context, id string) (*client.FileSystem, error) {
			return &client.FileSystem{ID: id, Name: "fs-data"}, nil
		})
	defer fsGuard.Unpatch()

	Convey("Limits converge through modify", t, func() {
		getGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetUserQuota",
			func(_ *client.Client, _ context.Context, _ string,
				_ *client.CreateUserQuotaParams) (*client.UserQuota, error) {
				return &client.UserQuota{ID: "uq-1", UID: 1001, HardLimit: 1 << 30}, nil
			})
		defer getGuard.Unpatch()

		var modified *client.ModifyUserQuotaParams
		modifyGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ModifyUserQuota",
			func(_ *client.Client, _ context.Context, _ string,
				params *client.ModifyUserQuotaParams) error {
				modified = params
				return nil
			})
		defer modifyGuard.Unpatch()

		result, err := ApplyQuota(context.TODO(), testClient, &QuotaParams{
			QuotaType:  QuotaTypeUser,
			FileSystem: "fs-1",
			UID:        1001,
			HardLimit:  limit(4),
			CapUnit:    "GB",
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(*modified.HardLimit, ShouldEqual, int64(4)<<30)
	})

	Convey("Limits clear to zero in place of deletion", t, func() {
		getGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetUserQuota",
			func(_ *client.Client, _ context.Context, _ string,
				_ *client.CreateUserQuotaParams) (*client.UserQuota, error) {
				return &client.UserQuota{ID: "uq-1", UID: 1001,
					HardLimit: 1 << 30, SoftLimit: 1 << 29}, nil
			})
		defer getGuard.Unpatch()

		var modified *client.ModifyUserQuotaParams
		modifyGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ModifyUserQuota",
			func(_ *client.Client, _ context.Context, _ string,
				params *client.ModifyUserQuotaParams) error {
				modified = params
				return nil
			})
		defer modifyGuard.Unpatch()

		result, err := ApplyQuota(context.TODO(), testClient, &QuotaParams{
			QuotaType:  QuotaTypeUser,
			FileSystem: "fs-1",
			UID:        1001,
			HardLimit:  limit(0),
			SoftLimit:  limit(0),
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(*modified.HardLimit, ShouldEqual, 0)
		So(*modified.SoftLimit, ShouldEqual, 0)
	})

	Convey("Omitted limits are left unchanged", t, func() {
		getGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetUserQuota",
			func(_ *client.Client, _ context.Context, _ string,
				_ *client.CreateUserQuotaParams) (*client.UserQuota, error) {
				return &client.UserQuota{ID: "uq-1", UID: 1001, HardLimit: 1 << 30}, nil
			})
		defer getGuard.Unpatch()

		result, err := ApplyQuota(context.TODO(), testClient, &QuotaParams{
			QuotaType:  QuotaTypeUser,
			FileSystem: "fs-1",
			UID:        1001,
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
	})
}
