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
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"powerstore-ctl/utils/log"
)

var testClient *Client

const testLogName = "clientTest.log"

func TestMain(m *testing.M) {
	logRequest := &log.LoggingRequest{
		LogName:       testLogName,
		LogFileSize:   "10M",
		LoggingModule: "console",
		LogLevel:      "info",
		MaxBackups:    2,
	}
	if err := log.InitLogging(logRequest); err != nil {
		os.Exit(1)
	}

	testClient = NewClient(&NewClientConfig{
		Urls:     []string{"https://192.168.125.25"},
		User:     "dev-account",
		Password: "dev-password",
	})
	os.Exit(m.Run())
}

func httpResponse(statusCode int, body string, header http.Header) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{
		StatusCode: statusCode,
		Header:     header,
		Body:       ioutil.NopCloser(bytes.NewReader([]byte(body))),
	}
}

func tokenHeader(token string) http.Header {
	header := http.Header{}
	header.Set(AuthTokenHeader, token)
	return header
}

func TestLogin(t *testing.T) {
	var cases = []struct {
		name       string
		statusCode int
		body       string
		header     http.Header
		wantErr    bool
	}{
		{
			"Normal",
			200,
			`[{"id":"b0f32ae4","role_id":"1"}]`,
			tokenHeader("508C457614FEA5413316AC0945ED0EE0"),
			false,
		},
		{
			"Wrong credentials",
			401,
			`{"messages":[{"code":"0401","severity":"Error",` +
				`"message_l10n":"Authentication failed."}]}`,
			nil,
			true,
		},
		{
			"No token header",
			200,
			`[{"id":"b0f32ae4","role_id":"1"}]`,
			nil,
			true,
		},
	}

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockClient := NewMockHTTPClient(ctrl)

	temp := testClient.Client
	defer func() { testClient.Client = temp }()
	testClient.Client = mockClient

	current := &cases[0]
	mockClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		user, password, ok := req.BasicAuth()
		assert.True(t, ok, "%s: login request carries no basic auth", current.name)
		assert.Equal(t, "dev-account", user)
		assert.Equal(t, "dev-password", password)
		return httpResponse(current.statusCode, current.body, current.header), nil
	}).AnyTimes()

	for i := range cases {
		current = &cases[i]
		err := testClient.Login(context.TODO())
		assert.Equal(t, current.wantErr, err != nil, "%s, err:%v", current.name, err)
	}
}

func TestLoginRotatesFailedUrl(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockClient := NewMockHTTPClient(ctrl)

	cli := NewClient(&NewClientConfig{
		Urls:     []string{"https://10.0.0.1", "https://10.0.0.2"},
		User:     "dev-account",
		Password: "dev-password",
	})
	cli.Client = mockClient

	calls := 0
	mockClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		calls++
		if calls == 1 {
			return nil, errors.New("connection refused")
		}
		return httpResponse(200, `[{"id":"b0f32ae4"}]`, tokenHeader("token-2")), nil
	}).Times(2)

	err := cli.Login(context.TODO())
	require.NoError(t, err)
	assert.Equal(t, "https://10.0.0.2"+restPrefix, cli.Url)
	// The failed url moves to the back so the next login tries the healthy one first.
	assert.Equal(t, []string{"https://10.0.0.2", "https://10.0.0.1"}, cli.Urls)
}

func TestCallReloginOnUnauthorized(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockClient := NewMockHTTPClient(ctrl)

	cli := NewClient(&NewClientConfig{
		Urls:     []string{"https://10.0.0.1"},
		User:     "dev-account",
		Password: "dev-password",
	})
	cli.Client = mockClient
	cli.Url = "https://10.0.0.1" + restPrefix
	cli.token = "expired-token"

	mockClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		switch {
		case req.URL.Path == restPrefix+sessionPath:
			return httpResponse(200, `[{"id":"b0f32ae4"}]`, tokenHeader("fresh-token")), nil
		case req.URL.Path == restPrefix+logoutPath:
			return httpResponse(204, "", nil), nil
		case req.Header.Get(AuthTokenHeader) == "expired-token":
			return httpResponse(401, `{"messages":[{"code":"0401","severity":"Error"}]}`, nil), nil
		default:
			return httpResponse(200, `[{"id":"vol-1","name":"v1"}]`, nil), nil
		}
	}).AnyTimes()

	resp, err := cli.Get(context.TODO(), "/volume", nil)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "fresh-token", cli.token)
}

func TestNeedReLogin(t *testing.T) {
	assert.True(t, NeedReLogin(Response{}, errors.New(Unconnected)))
	assert.True(t, NeedReLogin(Response{StatusCode: 401}, nil))
	assert.False(t, NeedReLogin(Response{StatusCode: 200}, nil))
	assert.False(t, NeedReLogin(Response{StatusCode: 500}, nil))
}

func TestLogoutClearsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockClient := NewMockHTTPClient(ctrl)

	cli := NewClient(&NewClientConfig{
		Urls:     []string{"https://10.0.0.1"},
		User:     "dev-account",
		Password: "dev-password",
	})
	cli.Client = mockClient
	cli.Url = "https://10.0.0.1" + restPrefix
	cli.token = "session-token"

	mockClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		return httpResponse(204, "", nil), nil
	})

	cli.Logout(context.TODO())
	assert.Equal(t, "", cli.token)
}

func TestGetBatchObjsFollowsPartialContent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	mockClient := NewMockHTTPClient(ctrl)

	cli := NewClient(&NewClientConfig{
		Urls:     []string{"https://10.0.0.1"},
		User:     "dev-account",
		Password: "dev-password",
	})
	cli.Client = mockClient
	cli.Url = "https://10.0.0.1" + restPrefix
	cli.token = "session-token"

	fullPage := make([]string, 0, QueryCountPerBatch)
	for i := 0; i < QueryCountPerBatch; i++ {
		fullPage = append(fullPage, fmt.Sprintf(`{"id":"vol-%d"}`, i))
	}

	mockClient.EXPECT().Do(gomock.Any()).DoAndReturn(func(req *http.Request) (*http.Response, error) {
		if req.URL.Query().Get("offset") == "0" {
			return httpResponse(206, "["+strings.Join(fullPage, ",")+"]", nil), nil
		}
		return httpResponse(200, `[{"id":"vol-last"}]`, nil), nil
	}).Times(2)

	volumes, err := cli.ListVolumes(context.TODO())
	require.NoError(t, err)
	require.Len(t, volumes, QueryCountPerBatch+1)
	assert.Equal(t, "vol-0", volumes[0].ID)
	assert.Equal(t, "vol-last", volumes[QueryCountPerBatch].ID)
}

func TestMaskRequestData(t *testing.T) {
	masked := MaskRequestData(map[string]interface{}{
		"name":                 "host-1",
		"password":             "secret",
		"chap_single_password": "secret",
	})

	payload, ok := masked.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "host-1", payload["name"])
	assert.Equal(t, "***", payload["password"])
	assert.Equal(t, "***", payload["chap_single_password"])
}
