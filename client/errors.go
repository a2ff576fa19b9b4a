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
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorMessage is one entry of the messages list the array returns on failure
type ErrorMessage struct {
	Code        string   `json:"code"`
	Severity    string   `json:"severity"`
	MessageL10N string   `json:"message_l10n"`
	Arguments   []string `json:"arguments,omitempty"`
}

// ErrorResponse is the error body shape of the management REST API
type ErrorResponse struct {
	Messages []ErrorMessage `json:"messages"`
}

// APIError carries the http status and the decoded error messages of one
// failed management request.
type APIError struct {
	StatusCode int
	Messages   []ErrorMessage
}

// Error formats the status code with every message the array returned
func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("API returned status %d", e.StatusCode)
	}

	parts := make([]string, 0, len(e.Messages))
	for _, m := range e.Messages {
		if m.Code != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", m.Code, m.MessageL10N))
		} else {
			parts = append(parts, m.MessageL10N)
		}
	}
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, strings.Join(parts, "; "))
}

// NotFound reports whether the failure was a missing resource
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// Unauthorized reports whether the session was rejected
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// BadRequest reports whether the array rejected the request content
func (e *APIError) BadRequest() bool {
	return e.StatusCode == http.StatusBadRequest ||
		e.StatusCode == http.StatusUnprocessableEntity
}

// IsNotFound reports whether err wraps a 404 APIError
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.NotFound()
}

func decodeAPIError(statusCode int, body json.RawMessage) error {
	apiErr := &APIError{StatusCode: statusCode}

	if len(body) > 0 {
		var errResp ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil {
			apiErr.Messages = errResp.Messages
		}
	}

	return apiErr
}
