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

	"bou.ke/monkey"
	. "github.com/smartystreets/goconvey/convey"
)

func TestWaitForJob(t *testing.T) {
	Convey("Job already completed", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{
					StatusCode: 200,
					Body:       []byte(`{"id":"job-1","state":"COMPLETED","progress_percentage":100}`),
				}, nil
			})
		defer guard.Unpatch()

		job, err := testClient.WaitForJob(context.TODO(), "job-1")
		So(err, ShouldBeNil)
		So(job.State, ShouldEqual, JobStateCompleted)
	})

	Convey("Job failed with array messages", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{
					StatusCode: 200,
					Body: []byte(`{"id":"job-2","state":"FAILED","response_body":{"messages":` +
						`[{"code":"0xE0101","severity":"Error","message_l10n":"NAS server is busy."}]}}`),
				}, nil
			})
		defer guard.Unpatch()

		job, err := testClient.WaitForJob(context.TODO(), "job-2")
		So(err, ShouldBeError)
		So(err.Error(), ShouldContainSubstring, "NAS server is busy")
		So(job.State, ShouldEqual, JobStateFailed)
	})
}

func TestResolveMutation(t *testing.T) {
	Convey("Synchronous creation returns the new id", t, func() {
		id, err := testClient.resolveMutation(context.TODO(),
			Response{StatusCode: 201, Body: []byte(`{"id":"fs-1"}`)})
		So(err, ShouldBeNil)
		So(id, ShouldEqual, "fs-1")
	})

	Convey("Asynchronous response waits on the job", t, func() {
		guard := monkey.PatchInstanceMethod(reflect.TypeOf(testClient), "Get",
			func(_ *Client, _ context.Context, _ string, _ url.Values) (Response, error) {
				return Response{
					StatusCode: 200,
					Body:       []byte(`{"id":"job-3","state":"COMPLETED","progress_percentage":100}`),
				}, nil
			})
		defer guard.Unpatch()

		id, err := testClient.resolveMutation(context.TODO(),
			Response{StatusCode: 202, Body: []byte(`{"id":"job-3"}`)})
		So(err, ShouldBeNil)
		So(id, ShouldEqual, "")
	})

	Convey("Plain success has nothing to resolve", t, func() {
		id, err := testClient.resolveMutation(context.TODO(), Response{StatusCode: 204})
		So(err, ShouldBeNil)
		So(id, ShouldEqual, "")
	})

	Convey("Error body is decoded", t, func() {
		_, err := testClient.resolveMutation(context.TODO(), Response{
			StatusCode: 422,
			Body: []byte(`{"messages":[{"code":"0422","severity":"Error",` +
				`"message_l10n":"Volume size is smaller than current size."}]}`),
		})
		So(err, ShouldBeError)
		So(err.Error(), ShouldContainSubstring, "smaller than current size")
	})
}
