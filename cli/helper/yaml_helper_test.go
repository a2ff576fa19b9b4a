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

package helper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadYamlValues(t *testing.T) {
	val, err := ReadYamlValues([]byte("name: demo task\nmodule: volume\n"))
	require.NoError(t, err)
	assert.Equal(t, "demo task", val["name"])
	assert.Equal(t, "volume", val["module"])

	val, err = ReadYamlValues(nil)
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestYamlValuesJSON(t *testing.T) {
	val, err := ReadYamlValues([]byte("params:\n  size: 5\n  cap_unit: GB\n"))
	require.NoError(t, err)

	raw, err := val.JSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"params":{"size":5,"cap_unit":"GB"}}`, string(raw))
}

func TestSplitYamlDocuments(t *testing.T) {
	data := []byte("module: volume\n---\nmodule: host\n---\n\n---\nmodule: quota\n")
	documents := SplitYamlDocuments(data)
	assert.Len(t, documents, 3)

	assert.Len(t, SplitYamlDocuments([]byte("\n---\n  \n")), 0)
	assert.Len(t, SplitYamlDocuments([]byte("module: host")), 1)
}

func TestReadYamlDocuments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.yaml")
	content := "name: create volume\nmodule: volume\n---\nname: create host\nmodule: host\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	values, err := ReadYamlDocuments(path)
	require.NoError(t, err)
	require.Len(t, values, 2)
	assert.Equal(t, "volume", values[0]["module"])
	assert.Equal(t, "host", values[1]["module"])

	_, err = ReadYamlDocuments(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
