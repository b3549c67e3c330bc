package knownanswertest

// Copyright (c) 2025 Colin McRae

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// KATLog appends one JSON line per LatticeContext to a file
type KATLog struct {
	Path       string
	file       *os.File
	writer     *bufio.Writer
	numReports int
}

// NewKATLog creates a new log file in dir for contexts of dimension dim
func NewKATLog(dir string, dim int) (*KATLog, error) {
	file, err := os.CreateTemp(dir, fmt.Sprintf("lll-kat-dim%d-*.jsonl", dim))
	if err != nil {
		return nil, fmt.Errorf("NewKATLog: could not create a log file in %q: %q", dir, err.Error())
	}
	return &KATLog{
		Path:   file.Name(),
		file:   file,
		writer: bufio.NewWriter(file),
	}, nil
}

// Report writes lc to the log as one line of JSON
func (kl *KATLog) Report(lc *LatticeContext) error {
	lcAsJSON, err := json.Marshal(lc)
	if err != nil {
		return fmt.Errorf("KATLog.Report: could not marshal context %d: %q", kl.numReports, err.Error())
	}
	if _, err = kl.writer.Write(append(lcAsJSON, '\n')); err != nil {
		return fmt.Errorf("KATLog.Report: could not write context %d: %q", kl.numReports, err.Error())
	}
	kl.numReports++
	return nil
}

// NumReports returns the number of contexts written so far
func (kl *KATLog) NumReports() int {
	return kl.numReports
}

// Close flushes and closes the log file
func (kl *KATLog) Close() error {
	if err := kl.writer.Flush(); err != nil {
		_ = kl.file.Close()
		return fmt.Errorf("KATLog.Close: could not flush %q: %q", kl.Path, err.Error())
	}
	return kl.file.Close()
}

// ReadKATLog returns the contexts in a log written by KATLog
func ReadKATLog(path string) ([]*LatticeContext, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("ReadKATLog: could not open %q: %q", path, err.Error())
	}
	defer file.Close()
	var retVal []*LatticeContext
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for lineNbr := 0; scanner.Scan(); lineNbr++ {
		var lc LatticeContext
		if err = json.Unmarshal(scanner.Bytes(), &lc); err != nil {
			return nil, fmt.Errorf("ReadKATLog: line %d of %q: %q", lineNbr, path, err.Error())
		}
		retVal = append(retVal, &lc)
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("ReadKATLog: could not read %q: %q", path, err.Error())
	}
	return retVal, nil
}
