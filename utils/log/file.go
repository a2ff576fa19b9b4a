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

package log

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

const (
	logFilePermission = 0640
	logDirPermission  = 0750

	defaultLogFileSize = 20 * 1024 * 1024
)

// FileHook appends log entries to a file, rotating it when it exceeds
// the configured size.
type FileHook struct {
	formatter   logrus.Formatter
	logFilePath string
	maxSize     int64
	maxBackups  uint

	mutex sync.Mutex
	file  *os.File
}

// newFileHook creates a new log hook for writing to a file.
func newFileHook(logFilePath, maxSizeStr string, maxBackups uint, formatter logrus.Formatter) (*FileHook, error) {
	maxSize, err := parseLogFileSize(maxSizeStr)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(filepath.Dir(logFilePath), logDirPermission); err != nil {
		return nil, fmt.Errorf("could not create log directory %s: %v", filepath.Dir(logFilePath), err)
	}

	hook := &FileHook{
		formatter:   formatter,
		logFilePath: logFilePath,
		maxSize:     maxSize,
		maxBackups:  maxBackups,
	}

	if err := hook.openLogFile(); err != nil {
		return nil, err
	}
	return hook, nil
}

// parseLogFileSize converts a size string like "20M" or "1024K" to bytes.
func parseLogFileSize(sizeStr string) (int64, error) {
	if sizeStr == "" {
		return defaultLogFileSize, nil
	}

	sizeStr = strings.ToUpper(strings.TrimSpace(sizeStr))
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(sizeStr, "M"):
		multiplier = 1024 * 1024
		sizeStr = strings.TrimSuffix(sizeStr, "M")
	case strings.HasSuffix(sizeStr, "K"):
		multiplier = 1024
		sizeStr = strings.TrimSuffix(sizeStr, "K")
	case strings.HasSuffix(sizeStr, "B"):
		sizeStr = strings.TrimSuffix(sizeStr, "B")
	}

	size, err := strconv.ParseInt(sizeStr, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid log file size %q", sizeStr)
	}
	return size * multiplier, nil
}

// Levels returns all supported levels
func (hook *FileHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// Fire writes the entry to the log file, rotating it first if needed
func (hook *FileHook) Fire(entry *logrus.Entry) error {
	lineBytes, err := hook.formatter.Format(entry)
	if err != nil {
		return err
	}

	hook.mutex.Lock()
	defer hook.mutex.Unlock()

	if err := hook.rotateIfNeeded(int64(len(lineBytes))); err != nil {
		return err
	}

	_, err = hook.file.Write(lineBytes)
	return err
}

func (hook *FileHook) openLogFile() error {
	file, err := os.OpenFile(hook.logFilePath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, logFilePermission)
	if err != nil {
		return fmt.Errorf("could not open log file %s: %v", hook.logFilePath, err)
	}
	hook.file = file
	return nil
}

// rotateIfNeeded shifts log backups by one slot and truncates the current
// file once writing pending bytes would exceed the size limit.
func (hook *FileHook) rotateIfNeeded(pending int64) error {
	fileInfo, err := hook.file.Stat()
	if err != nil {
		return err
	}

	if fileInfo.Size()+pending <= hook.maxSize {
		return nil
	}

	if err := hook.file.Close(); err != nil {
		return err
	}

	for i := int(hook.maxBackups); i > 0; i-- {
		src := hook.backupName(i - 1)
		dst := hook.backupName(i)
		if _, err := os.Stat(src); err != nil {
			continue
		}
		if err := os.Rename(src, dst); err != nil {
			return err
		}
	}

	return hook.openLogFile()
}

func (hook *FileHook) backupName(index int) string {
	if index == 0 {
		return hook.logFilePath
	}
	return fmt.Sprintf("%s.%d", hook.logFilePath, index)
}

func (hook *FileHook) flush() {
	hook.mutex.Lock()
	defer hook.mutex.Unlock()
	if hook.file != nil {
		_ = hook.file.Sync()
	}
}

func (hook *FileHook) close() {
	hook.mutex.Lock()
	defer hook.mutex.Unlock()
	if hook.file != nil {
		_ = hook.file.Close()
		hook.file = nil
	}
}
