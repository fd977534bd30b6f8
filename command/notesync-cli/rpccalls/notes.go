// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package rpccalls

import (
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/rpc/notes"
)

// PickData - the parameters for a pick request
type PickData struct {
	Owner     string
	Asset     string
	MinSum    uint64
	Count     int
	AllowLess bool
}

// ValueData - the parameters for adding or removing a note value
type ValueData struct {
	Owner string
	Asset string
	Value uint64
	Key   string
}

// GetBalance - retrieve the balance of one asset
func (client *Client) GetBalance(owner string, asset string) (*notes.BalanceReply, error) {
	balanceArgs := notes.BalanceArguments{
		Owner: note.Address(owner),
		Asset: note.AssetId(asset),
	}

	return client.balanceCall("Notes.Balance", balanceArgs)
}

// Sync - rebuild one asset and return its balance
func (client *Client) Sync(owner string, asset string) (*notes.BalanceReply, error) {
	syncArgs := notes.BalanceArguments{
		Owner: note.Address(owner),
		Asset: note.AssetId(asset),
	}

	return client.balanceCall("Notes.Sync", syncArgs)
}

// Pick - select notes covering a minimum sum
func (client *Client) Pick(pickConfig *PickData) (*notes.PickReply, error) {
	pickArgs := notes.PickArguments{
		Owner:     note.Address(pickConfig.Owner),
		Asset:     note.AssetId(pickConfig.Asset),
		MinSum:    pickConfig.MinSum,
		Count:     pickConfig.Count,
		AllowLess: pickConfig.AllowLess,
	}

	client.printJson("Pick Request", pickArgs)

	reply := &notes.PickReply{}
	err := client.client.Call("Notes.Pick", pickArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Pick Reply", reply)

	return reply, nil
}

// AddValue - record a note not yet on chain
func (client *Client) AddValue(valueConfig *ValueData) (*notes.BalanceReply, error) {
	return client.balanceCall("Notes.AddValue", valueArguments(valueConfig))
}

// RemoveValue - drop a spent note ahead of the chain
func (client *Client) RemoveValue(valueConfig *ValueData) (*notes.BalanceReply, error) {
	return client.balanceCall("Notes.RemoveValue", valueArguments(valueConfig))
}

// Prioritise - replace the explicit sync priority
func (client *Client) Prioritise(assets []string) (*notes.PrioritiseReply, error) {
	prioritiseArgs := notes.PrioritiseArguments{
		Assets: make([]note.AssetId, len(assets)),
	}
	for i, a := range assets {
		prioritiseArgs.Assets[i] = note.AssetId(a)
	}

	client.printJson("Prioritise Request", prioritiseArgs)

	reply := &notes.PrioritiseReply{}
	err := client.client.Call("Notes.Prioritise", prioritiseArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Prioritise Reply", reply)

	return reply, nil
}

// Submit - hand live note records to notesyncd
func (client *Client) Submit(records []note.Record) (*notes.SubmitReply, error) {
	submitArgs := notes.SubmitArguments{
		Records: records,
	}

	client.printJson("Submit Request", submitArgs)

	reply := &notes.SubmitReply{}
	err := client.client.Call("Notes.Submit", submitArgs, reply)
	if nil != err {
		return nil, err
	}

	client.printJson("Submit Reply", reply)

	return reply, nil
}

func (client *Client) balanceCall(method string, arguments interface{}) (*notes.BalanceReply, error) {
	client.printJson(method+" Request", arguments)

	reply := &notes.BalanceReply{}
	err := client.client.Call(method, arguments, reply)
	if nil != err {
		return nil, err
	}

	client.printJson(method+" Reply", reply)

	return reply, nil
}

func valueArguments(valueConfig *ValueData) notes.ValueArguments {
	return notes.ValueArguments{
		Owner: note.Address(valueConfig.Owner),
		Asset: note.AssetId(valueConfig.Asset),
		Value: valueConfig.Value,
		Key:   note.Key(valueConfig.Key),
	}
}
