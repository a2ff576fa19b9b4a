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
	"encoding/json"
	"os"
	"strings"

	"github.com/ghodss/yaml"
)

// YamlValues represents a collection of yaml values.
type YamlValues map[string]interface{}

// YAML encodes the Values into a YAML string.
func (v YamlValues) YAML() (string, error) {
	b, err := yaml.Marshal(v)
	return string(b), err
}

// JSON encodes the Values into raw JSON.
func (v YamlValues) JSON() (json.RawMessage, error) {
	return json.Marshal(v)
}

// ReadYamlValues will parse YAML byte data into a YamlValues.
func ReadYamlValues(data []byte) (val YamlValues, err error) {
	err = yaml.Unmarshal(data, &val)
	if len(val) == 0 {
		val = YamlValues{}
	}
	return val, err
}

// SplitYamlDocuments splits multi document YAML data on the --- separator,
// empty documents are dropped
func SplitYamlDocuments(data []byte) [][]byte {
	var documents [][]byte
	for _, doc := range strings.Split(string(data), "\n---") {
		if strings.TrimSpace(doc) == "" {
			continue
		}
		documents = append(documents, []byte(doc))
	}
	return documents
}

// ReadYamlDocuments will parse a YAML file into one YamlValues per document.
func ReadYamlDocuments(filename string) ([]YamlValues, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	var values []YamlValues
	for _, doc := range SplitYamlDocuments(data) {
		val, err := ReadYamlValues(doc)
		if err != nil {
			return nil, err
		}
		values = append(values, val)
	}
	return values, nil
}
