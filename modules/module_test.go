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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"powerstore-ctl/client"
	"powerstore-ctl/utils/log"
)

var testClient *client.Client

func TestMain(m *testing.M) {
	logRequest := &log.LoggingRequest{
		LogName:       "modulesTest.log",
		LogFileSize:   "10M",
		LoggingModule: "console",
		LogLevel:      "info",
		MaxBackups:    2,
	}
	if err := log.InitLogging(logRequest); err != nil {
		os.Exit(1)
	}

	testClient = client.NewClient(&client.NewClientConfig{
		Urls:     []string{"https://192.168.125.25"},
		User:     "dev-account",
		Password: "dev-password",
	})
	os.Exit(m.Run())
}

func TestCheckState(t *testing.T) {
	ctx := context.TODO()
	assert.NoError(t, checkState(ctx, StatePresent))
	assert.NoError(t, checkState(ctx, StateAbsent))
	assert.Error(t, checkState(ctx, ""))
	assert.Error(t, checkState(ctx, "gone"))
}

func TestToBytes(t *testing.T) {
	var cases = []struct {
		name    string
		size    int64
		capUnit string
		want    int64
		wantErr bool
	}{
		{"Default unit is GB", 5, "", 5 << 30, false},
		{"MB", 200, "MB", 200 << 20, false},
		{"TB", 2, "TB", 2 << 40, false},
		{"Unknown unit", 1, "PB", 0, true},
	}

	for _, c := range cases {
		got, err := toBytes(c.size, c.capUnit)
		assert.Equal(t, c.wantErr, err != nil, "%s, err:%v", c.name, err)
		assert.Equal(t, c.want, got, c.name)
	}
}

func TestStrUpdate(t *testing.T) {
	assert.Nil(t, strUpdate("same", "same"))
	assert.Nil(t, strUpdate("current", ""))

	update := strUpdate("current", "wanted")
	assert.NotNil(t, update)
	assert.Equal(t, "wanted", *update)
}

func TestBoolUpdate(t *testing.T) {
	wanted := true
	assert.Nil(t, boolUpdate(true, nil))
	assert.Nil(t, boolUpdate(true, &wanted))

	update := boolUpdate(false, &wanted)
	assert.NotNil(t, update)
	assert.True(t, *update)
}

func TestIntUpdate(t *testing.T) {
	wanted := 90000
	assert.Nil(t, intUpdate(90000, nil))
	assert.Nil(t, intUpdate(90000, &wanted))

	update := intUpdate(86400, &wanted)
	assert.NotNil(t, update)
	assert.Equal(t, 90000, *update)
}
