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

func patchGetVolumeByName(volume *client.Volume) *monkey.PatchGuard {
	return monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "GetVolumeByName",
		func(_ *client.Client, _ context.Context, _ string) (*client.Volume, error) {
			return volume, nil
		})
}

func TestApplyVolumeCreate(t *testing.T) {
	Convey("Normal", t, func() {
		getGuard := patchGetVolumeByName(nil)
		defer getGuard.Unpatch()

		var created *client.CreateVolumeParams
		createGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "CreateVolume",
			func(_ *client.Client, _ context.Context, params *client.CreateVolumeParams) (string, error) {
				created = params
				return "vol-1", nil
			})
		defer createGuard.Unpatch()

		result, err := ApplyVolume(context.TODO(), testClient, &VolumeParams{
			VolumeName: "data-1",
			Size:       5,
			CapUnit:    "GB",
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(result.ID, ShouldEqual, "vol-1")
		So(created.Size, ShouldEqual, int64(5)<<30)
	})

	Convey("Size is required to create", t, func() {
		getGuard := patchGetVolumeByName(nil)
		defer getGuard.Unpatch()

		_, err := ApplyVolume(context.TODO(), testClient, &VolumeParams{
			VolumeName: "data-1",
			State:      StatePresent,
		})
		So(err, ShouldBeError)
	})
}

func TestApplyVolumeModify(t *testing.T) {
	existing := &client.Volume{ID: "vol-1", Name: "data-1", Size: 10 << 30}

	Convey("Volumes cannot shrink", t, func() {
		getGuard := patchGetVolumeByName(existing)
		defer getGuard.Unpatch()

		_, err := ApplyVolume(context.TODO(), testClient, &VolumeParams{
			VolumeName: "data-1",
			Size:       5,
			CapUnit:    "GB",
			State:      StatePresent,
		})
		So(err, ShouldBeError)
		So(err.Error(), ShouldContainSubstring, "shrink")
	})

	Convey("Grow to the wanted size", t, func() {
		getGuard := patchGetVolumeByName(existing)
		defer getGuard.Unpatch()

		var modified *client.ModifyVolumeParams
		modifyGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "ModifyVolume",
			func(_ *client.Client, _ context.Context, _ string, params *client.ModifyVolumeParams) error {
				modified = params
				return nil
			})
		defer modifyGuard.Unpatch()

		result, err := ApplyVolume(context.TODO(), testClient, &VolumeParams{
			VolumeName: "data-1",
			Size:       20,
			CapUnit:    "GB",
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
		So(*modified.Size, ShouldEqual, int64(20)<<30)
	})

	Convey("Same size is already converged", t, func() {
		getGuard := patchGetVolumeByName(existing)
		defer getGuard.Unpatch()

		result, err := ApplyVolume(context.TODO(), testClient, &VolumeParams{
			VolumeName: "data-1",
			Size:       10,
			CapUnit:    "GB",
			State:      StatePresent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
	})
}

func TestApplyVolumeDelete(t *testing.T) {
	Convey("Existing volume is deleted", t, func() {
		getGuard := patchGetVolumeByName(&client.Volume{ID: "vol-1", Name: "data-1"})
		defer getGuard.Unpatch()

		deleteGuard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "DeleteVolume",
			func(_ *client.Client, _ context.Context, _ string) error {
				return nil
			})
		defer deleteGuard.Unpatch()

		result, err := ApplyVolume(context.TODO(), testClient, &VolumeParams{
			VolumeName: "data-1",
			State:      StateAbsent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeTrue)
	})

	Convey("Missing volume is already converged", t, func() {
		getGuard := patchGetVolumeByName(nil)
		defer getGuard.Unpatch()

		result, err := ApplyVolume(context.TODO(), testClient, &VolumeParams{
			VolumeName: "data-1",
			State:      StateAbsent,
		})
		So(err, ShouldBeNil)
		So(result.Changed, ShouldBeFalse)
	})
}
