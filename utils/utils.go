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

// Package utils provides common helpers shared by the client, modules and cli
package utils

import (
	"context"
	"fmt"

	"powerstore-ctl/utils/log"
)

const (
	// CapUnitMB megabytes capacity unit
	CapUnitMB = "MB"
	// CapUnitGB gigabytes capacity unit
	CapUnitGB = "GB"
	// CapUnitTB terabytes capacity unit
	CapUnitTB = "TB"
)

// Errorf logs a formatted error message and returns it as an error
func Errorf(ctx context.Context, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	log.AddContext(ctx).Errorln(msg)
	return fmt.Errorf(format, args...)
}

// Errorln logs an error message and returns it as an error
func Errorln(ctx context.Context, msg string) error {
	log.AddContext(ctx).Errorln(msg)
	return fmt.Errorf("%s", msg)
}

// CapacityToBytes converts a size with a capacity unit to bytes.
// The array only accepts sizes aligned to 8 KiB sectors, so the
// converted value is rounded up to the next 8192 boundary.
func CapacityToBytes(size int64, capUnit string) (int64, error) {
	var bytes int64
	switch capUnit {
	case CapUnitMB:
		bytes = size * 1024 * 1024
	case CapUnitGB:
		bytes = size * 1024 * 1024 * 1024
	case CapUnitTB:
		bytes = size * 1024 * 1024 * 1024 * 1024
	case "":
		bytes = size
	default:
		return 0, fmt.Errorf("invalid capacity unit %q, supported units are MB, GB and TB", capUnit)
	}

	const sector = 8192
	if remainder := bytes % sector; remainder != 0 {
		bytes += sector - remainder
	}
	return bytes, nil
}

// Contains checks whether a string slice contains the given element
func Contains(list []string, item string) bool {
	for _, v := range list {
		if v == item {
			return true
		}
	}
	return false
}

// Subtract returns elements of minuend that are not in subtrahend
func Subtract(minuend, subtrahend []string) []string {
	var diff []string
	for _, v := range minuend {
		if !Contains(subtrahend, v) {
			diff = append(diff, v)
		}
	}
	return diff
}

// Intersect returns elements present in both slices
func Intersect(left, right []string) []string {
	var common []string
	for _, v := range left {
		if Contains(right, v) {
			common = append(common, v)
		}
	}
	return common
}

// IsSubset checks whether every element of sub is present in super
func IsSubset(sub, super []string) bool {
	for _, v := range sub {
		if !Contains(super, v) {
			return false
		}
	}
	return true
}
