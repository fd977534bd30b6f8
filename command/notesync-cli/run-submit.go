// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"os"

	"github.com/urfave/cli"

	"github.com/bitmark-inc/notesync/note"
)

func runSubmit(c *cli.Context) error {

	file := c.String("file")
	if "" == file {
		return ErrMissingFile
	}

	records, err := readRecords(file, os.Stdin)
	if nil != err {
		return err
	}

	m, client, err := connect(c)
	if nil != err {
		return err
	}
	defer client.Close()

	if m.verbose {
		fmt.Fprintf(m.e, "records: %d\n", len(records))
	}

	response, err := client.Submit(records)
	if nil != err {
		return err
	}

	printJson(m.w, response)

	return nil
}

// a JSON array of note records from a file or "-" for stdin
func readRecords(file string, stdin io.Reader) ([]note.Record, error) {
	var data []byte
	var err error
	if "-" == file {
		data, err = ioutil.ReadAll(stdin)
	} else {
		data, err = ioutil.ReadFile(file)
	}
	if nil != err {
		return nil, err
	}

	records := []note.Record{}
	if err := json.Unmarshal(data, &records); nil != err {
		return nil, err
	}
	return records, nil
}
