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

// Package client provides a client of the PowerStore management REST API
package client

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"sync"
	"time"

	"powerstore-ctl/utils"
	"powerstore-ctl/utils/log"
)

const (
	// DefaultParallelCount default parallel request count per array
	DefaultParallelCount int = 50
	// MaxParallelCount max parallel request count per array
	MaxParallelCount int = 1000
	// MinParallelCount min parallel request count per array
	MinParallelCount int = 20

	// QueryCountPerBatch defines query count for each circle of batch operation
	QueryCountPerBatch int = 100

	// AuthTokenHeader carries the session token returned by login
	AuthTokenHeader = "DELL-EMC-TOKEN"

	restPrefix = "/api/rest"

	sessionPath = "/login_session"
	logoutPath  = "/logout"

	defaultHTTPTimeout = 120 * time.Second
)

// Unconnected defines the error msg of unconnected
const Unconnected = "unconnected"

var (
	filterLog = map[string]map[string]bool{
		"GET": {
			sessionPath: true,
		},
		"POST": {
			logoutPath: true,
		},
	}

	debugLog = map[string]map[string]bool{
		"GET": {
			"/cluster":            true,
			"/appliance":          true,
			"/software_installed": true,
		},
	}
)

func isFilterLog(method, path string) bool {
	filter, exist := filterLog[method]
	return exist && filter[path]
}

func isDebugLog(method, path string) bool {
	filter, exist := debugLog[method]
	return exist && filter[path]
}

// HTTP defines for http request process
type HTTP interface {
	Do(req *http.Request) (*http.Response, error)
}

var newHTTPClient = func(insecure bool) HTTP {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: insecure},
		},
		Jar:     jar,
		Timeout: defaultHTTPTimeout,
	}
}

// Response wraps one REST response of the array
type Response struct {
	StatusCode int
	Body       json.RawMessage
}

// GetData decodes the response body into the given value
func (resp *Response) GetData(val interface{}) error {
	if len(resp.Body) == 0 {
		return nil
	}

	if err := json.Unmarshal(resp.Body, val); err != nil {
		return fmt.Errorf("failed to unmarshal response body as %T, error: %w", val, err)
	}
	return nil
}

// AssertError converts an error status response into an APIError
func (resp *Response) AssertError() error {
	if resp.StatusCode < http.StatusBadRequest {
		return nil
	}
	return decodeAPIError(resp.StatusCode, resp.Body)
}

// RestClientInterface defines interfaces for base restful call
type RestClientInterface interface {
	Call(ctx context.Context, method string, path string, query url.Values, data interface{}) (Response, error)
	BaseCall(ctx context.Context, method string, path string, query url.Values, data interface{}) (Response, error)
	Get(ctx context.Context, path string, query url.Values) (Response, error)
	Post(ctx context.Context, path string, data interface{}) (Response, error)
	Patch(ctx context.Context, path string, data interface{}) (Response, error)
	Delete(ctx context.Context, path string, data interface{}) (Response, error)
	Login(ctx context.Context) error
	Logout(ctx context.Context)
	ReLogin(ctx context.Context) error
}

// Client defines a session client of one PowerStore array
type Client struct {
	Client HTTP
	Url    string
	Urls   []string
	User   string

	password string
	insecure bool
	token    string

	reLoginMutex     sync.Mutex
	requestSemaphore *utils.Semaphore
}

// NewClientConfig defines the configurations of a new client
type NewClientConfig struct {
	Urls        []string
	User        string
	Password    string
	Insecure    bool
	ParallelNum string
}

// NewClient creates a PowerStore array client
func NewClient(config *NewClientConfig) *Client {
	var err error
	var parallelCount int

	if len(config.ParallelNum) > 0 {
		parallelCount, err = strconv.Atoi(config.ParallelNum)
		if err != nil || parallelCount > MaxParallelCount || parallelCount < MinParallelCount {
			log.Warningf("The config parallelNum %s is invalid, set it to the default value %d",
				config.ParallelNum, DefaultParallelCount)
			parallelCount = DefaultParallelCount
		}
	} else {
		parallelCount = DefaultParallelCount
	}

	return &Client{
		Urls:             config.Urls,
		User:             config.User,
		password:         config.Password,
		insecure:         config.Insecure,
		Client:           newHTTPClient(config.Insecure),
		requestSemaphore: utils.NewSemaphore(parallelCount),
	}
}

// Call sends a request to the array and retries once through ReLogin when
// the session is lost.
func (cli *Client) Call(ctx context.Context,
	method string, path string, query url.Values, data interface{}) (Response, error) {
	r, err := cli.BaseCall(ctx, method, path, query, data)
	if NeedReLogin(r, err) {
		// Current connection fails, try to relogin to other urls if exist,
		// if relogin success, resend the request again.
		log.AddContext(ctx).Infof("Try to relogin and resend request method: %s, path: %s", method, path)

		err = cli.ReLogin(ctx)
		if err == nil {
			r, err = cli.BaseCall(ctx, method, path, query, data)
		}
	}

	return r, err
}

// NeedReLogin determine if it is necessary to log in to the storage again
func NeedReLogin(r Response, err error) bool {
	if err != nil && err.Error() == Unconnected {
		return true
	}
	return r.StatusCode == http.StatusUnauthorized
}

// GetRequest constructs an http request with session headers attached
func (cli *Client) GetRequest(ctx context.Context,
	method string, path string, query url.Values, data interface{}) (*http.Request, error) {
	reqUrl := cli.Url + path
	if len(query) > 0 {
		reqUrl += "?" + query.Encode()
	}

	var reqBody *bytes.Reader
	if data != nil {
		reqBytes, err := json.Marshal(data)
		if err != nil {
			log.AddContext(ctx).Errorf("json.Marshal data %v error: %v", data, err)
			return nil, err
		}
		reqBody = bytes.NewReader(reqBytes)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, reqUrl, reqBody)
	if err != nil {
		log.AddContext(ctx).Errorf("Construct http request error: %s", err.Error())
		return nil, err
	}

	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("Content-Type", "application/json")

	if path == sessionPath {
		req.SetBasicAuth(cli.User, cli.password)
	} else if cli.token != "" {
		req.Header.Set(AuthTokenHeader, cli.token)
	}

	return req, nil
}

// BaseCall sends a request to the array without relogin retries
func (cli *Client) BaseCall(ctx context.Context,
	method string, path string, query url.Values, data interface{}) (Response, error) {
	var r Response
	var req *http.Request
	var err error

	if path != sessionPath && path != logoutPath {
		cli.reLoginMutex.Lock()
		req, err = cli.GetRequest(ctx, method, path, query, data)
		cli.reLoginMutex.Unlock()
	} else {
		req, err = cli.GetRequest(ctx, method, path, query, data)
	}

	if err != nil {
		return r, err
	}

	log.FilteredLog(ctx, isFilterLog(method, path), isDebugLog(method, path),
		fmt.Sprintf("Request method: %s, url: %s%s, body: %v", method, cli.Url, path, MaskRequestData(data)))

	if cli.requestSemaphore != nil {
		cli.requestSemaphore.Acquire()
		defer cli.requestSemaphore.Release()
	}

	resp, err := cli.Client.Do(req)
	if err != nil {
		log.AddContext(ctx).Errorf("Send request method: %s, url: %s%s, error: %v", method, cli.Url, path, err)
		return r, errors.New(Unconnected)
	}

	defer resp.Body.Close()

	body, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		log.AddContext(ctx).Errorf("Read response data error: %v", err)
		return r, err
	}

	log.FilteredLog(ctx, isFilterLog(method, path), isDebugLog(method, path),
		fmt.Sprintf("Response method: %s, url: %s%s, status: %d, body: %s",
			method, cli.Url, path, resp.StatusCode, body))

	r.StatusCode = resp.StatusCode
	r.Body = body

	if path == sessionPath && resp.StatusCode < http.StatusBadRequest {
		cli.token = resp.Header.Get(AuthTokenHeader)
	}

	return r, nil
}

// Get sends a GET request to the array
func (cli *Client) Get(ctx context.Context, path string, query url.Values) (Response, error) {
	return cli.Call(ctx, "GET", path, query, nil)
}

// Post sends a POST request to the array
func (cli *Client) Post(ctx context.Context, path string, data interface{}) (Response, error) {
	return cli.Call(ctx, "POST", path, nil, data)
}

// Patch sends a PATCH request to the array
func (cli *Client) Patch(ctx context.Context, path string, data interface{}) (Response, error) {
	return cli.Call(ctx, "PATCH", path, nil, data)
}

// Delete sends a DELETE request to the array
func (cli *Client) Delete(ctx context.Context, path string, data interface{}) (Response, error) {
	return cli.Call(ctx, "DELETE", path, nil, data)
}

// Login establishes a session against the first reachable management url
func (cli *Client) Login(ctx context.Context) error {
	var resp Response
	var err error

	cli.token = ""
	for i, u := range cli.Urls {
		cli.Url = u + restPrefix

		log.AddContext(ctx).Infof("Try to login %s", cli.Url)
		resp, err = cli.BaseCall(ctx, "GET", sessionPath, nil, nil)
		if err == nil {
			/* Sort the login url to the last slot of management addresses, so that
			   if this connection error, next time will try other url first. */
			cli.Urls[i], cli.Urls[len(cli.Urls)-1] = cli.Urls[len(cli.Urls)-1], cli.Urls[i]
			break
		} else if err.Error() != Unconnected {
			log.AddContext(ctx).Errorf("Login %s error", cli.Url)
			break
		}

		log.AddContext(ctx).Warningf("Login %s error due to connection failure, gonna try another url", cli.Url)
	}

	if err != nil {
		return err
	}

	if err := resp.AssertError(); err != nil {
		return fmt.Errorf("login %s error: %w", cli.Url, err)
	}

	if cli.token == "" {
		return fmt.Errorf("login %s error: no %s header in response", cli.Url, AuthTokenHeader)
	}

	log.AddContext(ctx).Infof("Login %s success", cli.Url)
	return nil
}

// Logout releases the session
func (cli *Client) Logout(ctx context.Context) {
	resp, err := cli.BaseCall(ctx, "POST", logoutPath, nil, nil)
	if err != nil {
		log.AddContext(ctx).Warningf("Logout %s error: %v", cli.Url, err)
		return
	}

	if err := resp.AssertError(); err != nil {
		log.AddContext(ctx).Warningf("Logout %s error: %v", cli.Url, err)
		return
	}

	cli.token = ""
	log.AddContext(ctx).Infof("Logout %s success", cli.Url)
}

// ReLogin logs the session in again, if other thread has not done so already
func (cli *Client) ReLogin(ctx context.Context) error {
	oldToken := cli.token

	cli.reLoginMutex.Lock()
	defer cli.reLoginMutex.Unlock()

	if cli.token != "" && oldToken != cli.token {
		// Coming here indicates other thread had already done relogin, so no need to relogin again
		return nil
	} else if cli.token != "" {
		cli.Logout(ctx)
	}

	err := cli.Login(ctx)
	if err != nil {
		log.AddContext(ctx).Errorf("Try to relogin error: %v", err)
		return err
	}

	return nil
}

// MaskRequestData masks the sensitive request fields before logging
func MaskRequestData(data interface{}) interface{} {
	payload, ok := data.(map[string]interface{})
	if !ok {
		return data
	}

	sensitiveKeys := []string{"password", "chap_single_password", "chap_mutual_password",
		"bind_password", "remote_system_password"}

	maskedData := make(map[string]interface{}, len(payload))
	for k, v := range payload {
		if utils.Contains(sensitiveKeys, k) {
			maskedData[k] = "***"
		} else {
			maskedData[k] = v
		}
	}

	return maskedData
}

// getBatchObjs reads a whole collection, following 206 partial responses
// with offset/limit queries until a short page arrives.
func (cli *Client) getBatchObjs(ctx context.Context, path string, query url.Values, out interface{}) error {
	if query == nil {
		query = url.Values{}
	}
	query.Set("limit", strconv.Itoa(QueryCountPerBatch))

	var all []json.RawMessage
	for offset := 0; ; offset += QueryCountPerBatch {
		query.Set("offset", strconv.Itoa(offset))

		resp, err := cli.Get(ctx, path, query)
		if err != nil {
			return err
		}
		if err := resp.AssertError(); err != nil {
			return fmt.Errorf("get batch objs of %s error: %w", path, err)
		}

		var page []json.RawMessage
		if err := resp.GetData(&page); err != nil {
			return err
		}

		all = append(all, page...)
		if len(page) < QueryCountPerBatch || resp.StatusCode != http.StatusPartialContent {
			break
		}
	}

	combined, err := json.Marshal(all)
	if err != nil {
		return err
	}
	return json.Unmarshal(combined, out)
}

// queryNameEq builds the PostgREST style name filter the array expects
func queryNameEq(name string) url.Values {
	query := url.Values{}
	query.Set("name", "eq."+name)
	return query
}

// getResource reads one resource instance, reporting false when the array
// does not know the id.
func (cli *Client) getResource(ctx context.Context, path string, query url.Values, out interface{}) (bool, error) {
	resp, err := cli.Get(ctx, path, query)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err := resp.AssertError(); err != nil {
		return false, fmt.Errorf("get %s error: %w", path, err)
	}
	if err := resp.GetData(out); err != nil {
		return false, err
	}
	return true, nil
}
