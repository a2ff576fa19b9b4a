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
	"errors"
	"net/url"
	"reflect"
	"testing"

	"bou.ke/monkey"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGetHostByName(t *testing.T) {
	Convey("Normal", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{
					StatusCode: 200,
					Body: []byte(`[{"id":"h-1","name":"host-1","os_type":"Linux",` +
						`"host_initiators":[{"port_name":"iqn.1998-01.com.vmware:esx1","port_type":"iSCSI"}]}]`),
				}, nil
			})
		defer guard.Unpatch()

		host, err := testClient.GetHostByName(context.TODO(), "host-1")
		So(err, ShouldBeNil)
		So(host, ShouldNotBeNil)
		So(host.ID, ShouldEqual, "h-1")
		So(host.Initiators, ShouldHaveLength, 1)
	})

	Convey("Host does not exist", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{StatusCode: 200, Body: []byte(`[]`)}, nil
			})
		defer guard.Unpatch()

		host, err := testClient.GetHostByName(context.TODO(), "host-1")
		So(err, ShouldBeNil)
		So(host, ShouldBeNil)
	})

	Convey("Duplicated name", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{
					StatusCode: 200,
					Body:       []byte(`[{"id":"h-1","name":"host-1"},{"id":"h-2","name":"host-1"}]`),
				}, nil
			})
		defer guard.Unpatch()

		_, err := testClient.GetHostByName(context.TODO(), "host-1")
		So(err, ShouldBeError)
	})

	Convey("Get request returns error", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{}, errors.New("mock err")
			})
		defer guard.Unpatch()

		_, err := testClient.GetHostByName(context.TODO(), "host-1")
		So(err, ShouldBeError)
	})
}

func TestGetHostByID(t *testing.T) {
	Convey("Host id unknown to the array", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{
					StatusCode: 404,
					Body: []byte(`{"messages":[{"code":"0404","severity":"Error",` +
						`"message_l10n":"Instance not found."}]}`),
				}, nil
			})
		defer guard.Unpatch()

		host, err := testClient.GetHostByID(context.TODO(), "h-404")
		So(err, ShouldBeNil)
		So(host, ShouldBeNil)
	})
}

func TestCreateHost(t *testing.T) {
	Convey("Normal", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Post",
			func(_ *Client, _ context.Context, _ string, _ interface{}) (Response, error) {
				return Response{StatusCode: 201, Body: []byte(`{"id":"h-9"}`)}, nil
			})
		defer guard.Unpatch()

		id, err := testClient.CreateHost(context.TODO(), &CreateHostParams{
			Name:   "host-9",
			OsType: "Linux",
			Initiators: []Initiator{
				{PortName: "iqn.1998-01.com.vmware:esx9", PortType: PortTypeISCSI},
			},
		})
		So(err, ShouldBeNil)
		So(id, ShouldEqual, "h-9")
	})

	Convey("Array rejects the request", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Post",
			func(_ *Client, _ context.Context, _ string, _ interface{}) (Response, error) {
				return Response{
					StatusCode: 422,
					Body: []byte(`{"messages":[{"code":"0422","severity":"Error",` +
						`"message_l10n":"Initiator already belongs to a host."}]}`),
				}, nil
			})
		defer guard.Unpatch()

		_, err := testClient.CreateHost(context.TODO(), &CreateHostParams{Name: "host-9"})
		So(err, ShouldBeError)
	})
}

func TestModifyHost(t *testing.T) {
	Convey("Normal", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Patch",
			func(_ *Client, _ context.Context, _ string, _ interface{}) (Response, error) {
				return Response{StatusCode: 204}, nil
			})
		defer guard.Unpatch()

		name := "host-renamed"
		err := testClient.ModifyHost(context.TODO(), "h-1", &ModifyHostParams{Name: &name})
		So(err, ShouldBeNil)
	})
}

func TestDeleteHost(t *testing.T) {
	Convey("Normal", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Delete",
			func(_ *Client, _ context.Context, _ string, _ interface{}) (Response, error) {
				return Response{StatusCode: 204}, nil
			})
		defer guard.Unpatch()

		err := testClient.DeleteHost(context.TODO(), "h-1")
		So(err, ShouldBeNil)
	})

	Convey("Delete request returns error", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Delete",
			func(_ *Client, _ context.Context, _ string, _ interface{}) (Response, error) {
				return Response{}, errors.New("mock err")
			})
		defer guard.Unpatch()

		err := testClient.DeleteHost(context.TODO(), "h-1")
		So(err, ShouldBeError)
	})
}
