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
	"fmt"
	"net/http"
	"net/url"
	"time"

	"powerstore-ctl/utils/log"
)

const (
	// JobStateCompleted terminal state of a successful job
	JobStateCompleted = "COMPLETED"
	// JobStateFailed terminal state of a failed job
	JobStateFailed = "FAILED"

	jobPollInterval = 3 * time.Second
	jobPollTimeout  = 10 * time.Minute
)

// Job describes an asynchronous operation of the array
type Job struct {
	ID                 string         `json:"id"`
	State              string         `json:"state"`
	ProgressPercentage int            `json:"progress_percentage"`
	Description        string         `json:"description_l10n,omitempty"`
	ResponseBody       *ErrorResponse `json:"response_body,omitempty"`
}

// createResponse is the body of a 201/202 creation response
type createResponse struct {
	ID string `json:"id"`
}

// JobClient defines interfaces for job operations
type JobClient interface {
	// GetJob used to get job details by id
	GetJob(ctx context.Context, id string) (*Job, error)
	// WaitForJob polls a job until it reaches a terminal state
	WaitForJob(ctx context.Context, id string) (*Job, error)
}

// GetJob used to get job details by id
func (cli *Client) GetJob(ctx context.Context, id string) (*Job, error) {
	query := url.Values{}
	query.Set("select", "id,state,progress_percentage,description_l10n,response_body")

	resp, err := cli.Get(ctx, "/job/"+id, query)
	if err != nil {
		return nil, err
	}
	if err := resp.AssertError(); err != nil {
		return nil, fmt.Errorf("get job %s error: %w", id, err)
	}

	var job Job
	if err := resp.GetData(&job); err != nil {
		return nil, err
	}
	return &job, nil
}

// WaitForJob polls a job until it reaches a terminal state
func (cli *Client) WaitForJob(ctx context.Context, id string) (*Job, error) {
	deadline := time.Now().Add(jobPollTimeout)

	for {
		job, err := cli.GetJob(ctx, id)
		if err != nil {
			return nil, err
		}

		switch job.State {
		case JobStateCompleted:
			return job, nil
		case JobStateFailed:
			return job, fmt.Errorf("job %s failed: %v", id, jobFailure(job))
		}

		if time.Now().After(deadline) {
			return job, fmt.Errorf("job %s did not finish in %v, last state %s",
				id, jobPollTimeout, job.State)
		}

		log.AddContext(ctx).Debugf("Job %s state %s, progress %d%%", id, job.State, job.ProgressPercentage)

		select {
		case <-ctx.Done():
			return job, ctx.Err()
		case <-time.After(jobPollInterval):
		}
	}
}

func jobFailure(job *Job) string {
	if job.ResponseBody != nil && len(job.ResponseBody.Messages) > 0 {
		apiErr := &APIError{Messages: job.ResponseBody.Messages}
		return apiErr.Error()
	}
	return job.Description
}

// resolveMutation finishes a mutation response: asynchronous (202) responses
// are driven through the job poller, synchronous creations return their id.
func (cli *Client) resolveMutation(ctx context.Context, resp Response) (string, error) {
	if err := resp.AssertError(); err != nil {
		return "", err
	}

	switch resp.StatusCode {
	case http.StatusCreated:
		var created createResponse
		if err := resp.GetData(&created); err != nil {
			return "", err
		}
		return created.ID, nil
	case http.StatusAccepted:
		var created createResponse
		if err := resp.GetData(&created); err != nil {
			return "", err
		}
		if _, err := cli.WaitForJob(ctx, created.ID); err != nil {
			return "", err
		}
		return "", nil
	default:
		return "", nil
	}
}
