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

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSemaphore(t *testing.T) {
	semaphore := NewSemaphore(2)
	assert.Equal(t, 2, semaphore.AvailablePermits())

	semaphore.Acquire()
	semaphore.Acquire()
	assert.Equal(t, 0, semaphore.AvailablePermits())

	semaphore.Release()
	assert.Equal(t, 1, semaphore.AvailablePermits())
}
