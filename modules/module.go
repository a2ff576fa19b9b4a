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

// Package modules implements the declarative resource appliers. Each applier
// reads the current state of one array resource, compares it with the wanted
// state and issues the minimum set of REST calls to converge. Applying the
// same parameters twice reports no change the second time.
package modules

import (
	"context"
	"fmt"

	"powerstore-ctl/utils"
)

const (
	// StatePresent the resource should exist after the apply
	StatePresent = "present"
	// StateAbsent the resource should not exist after the apply
	StateAbsent = "absent"
)

// Result reports the outcome of one applied task
type Result struct {
	Changed bool        `json:"changed"`
	ID      string      `json:"id,omitempty"`
	Details interface{} `json:"details,omitempty"`
}

func checkState(ctx context.Context, state string) error {
	if state != StatePresent && state != StateAbsent {
		return utils.Errorf(ctx, "state must be %s or %s, got %q",
			StatePresent, StateAbsent, state)
	}
	return nil
}

var capUnits = map[string]int64{
	"MB": 1 << 20,
	"GB": 1 << 30,
	"TB": 1 << 40,
}

// toBytes converts a size in the given capacity unit to bytes without any
// rounding, quota limits are byte exact on the array
func toBytes(size int64, capUnit string) (int64, error) {
	if capUnit == "" {
		capUnit = "GB"
	}
	factor, exists := capUnits[capUnit]
	if !exists {
		return 0, fmt.Errorf("unsupported capacity unit %q", capUnit)
	}
	return size * factor, nil
}

// strUpdate returns the pointer to send when a non-empty wanted value differs
// from the current one, nil when the field is already converged
func strUpdate(current, wanted string) *string {
	if wanted == "" || wanted == current {
		return nil
	}
	return &wanted
}

// boolUpdate returns the pointer to send when the wanted value is set and
// differs from the current one
func boolUpdate(current bool, wanted *bool) *bool {
	if wanted == nil || *wanted == current {
		return nil
	}
	return wanted
}

// intUpdate returns the pointer to send when the wanted value is set and
// differs from the current one
func intUpdate(current int, wanted *int) *int {
	if wanted == nil || *wanted == current {
		return nil
	}
	return wanted
}
