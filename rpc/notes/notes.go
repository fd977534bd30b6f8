// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package notes

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"github.com/bitmark-inc/logger"

	"github.com/bitmark-inc/notesync/fault"
	"github.com/bitmark-inc/notesync/note"
	"github.com/bitmark-inc/notesync/rpc/ratelimit"
	"github.com/bitmark-inc/notesync/session"
)

// Session - the note pipeline as seen by the RPC
type Session interface {
	Owner() note.Address
	Balance(owner note.Address, assetId note.AssetId) uint64
	Pick(ctx context.Context, owner note.Address, assetId note.AssetId, minSum uint64, options session.PickOptions) ([]note.Key, error)
	AddNoteValue(owner note.Address, assetId note.AssetId, value uint64, key note.Key)
	RemoveNoteValue(owner note.Address, assetId note.AssetId, value uint64, key note.Key)
	SyncAsset(ctx context.Context, owner note.Address, assetId note.AssetId) error
	SetPriority(ids []note.AssetId)
	Submit(records []note.Record) (int, error)
	Status() session.Status
}

// Notes
// -----

// Notes - type for the RPC
type Notes struct {
	Log     *logger.L
	Limiter *rate.Limiter
	Session Session
	Timeout time.Duration
}

const (
	MaximumPickCount     = 100
	MaximumPriorityCount = 100
	MaximumSubmitCount   = 1000

	rateLimitNotes = 200
	rateBurstNotes = 1000

	defaultTimeout = 30 * time.Second
)

// New - create the notes RPC, a zero timeout uses the default
func New(log *logger.L, s Session, timeout time.Duration) *Notes {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Notes{
		Log:     log,
		Limiter: rate.NewLimiter(rateLimitNotes, rateBurstNotes),
		Session: s,
		Timeout: timeout,
	}
}

// Notes balance
// -------------

// BalanceArguments - arguments for RPC
type BalanceArguments struct {
	Owner note.Address `json:"owner"`
	Asset note.AssetId `json:"asset"`
}

// BalanceReply - result of balance RPC
type BalanceReply struct {
	Asset   note.AssetId `json:"asset"`
	Balance uint64       `json:"balance,string"`
}

// Balance - best effort balance of an asset
func (n *Notes) Balance(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}
	if err := validate(arguments.Owner, arguments.Asset); nil != err {
		return err
	}

	n.Log.Infof("Notes.Balance: %+v", arguments)

	reply.Asset = arguments.Asset
	reply.Balance = n.Session.Balance(arguments.Owner, arguments.Asset)
	return nil
}

// Notes pick
// ----------

// PickArguments - arguments for RPC
type PickArguments struct {
	Owner     note.Address `json:"owner"`
	Asset     note.AssetId `json:"asset"`
	MinSum    uint64       `json:"minSum,string"`
	Count     int          `json:"count"`
	AllowLess bool         `json:"allowLess"`
}

// PickReply - result of pick RPC
type PickReply struct {
	Keys []note.Key `json:"keys"`
}

// Pick - select notes for a spend once the asset is synced
func (n *Notes) Pick(arguments *PickArguments, reply *PickReply) error {
	if err := ratelimit.LimitN(n.Limiter, arguments.Count, MaximumPickCount); nil != err {
		return err
	}
	if err := validate(arguments.Owner, arguments.Asset); nil != err {
		return err
	}

	n.Log.Infof("Notes.Pick: %+v", arguments)

	ctx, cancel := context.WithTimeout(context.Background(), n.Timeout)
	defer cancel()

	options := session.PickOptions{
		NumberOfNotes: arguments.Count,
		AllowLess:     arguments.AllowLess,
	}
	keys, err := n.Session.Pick(ctx, arguments.Owner, arguments.Asset, arguments.MinSum, options)
	if nil != err {
		n.Log.Debugf("pick error: %s", err)
		return err
	}

	reply.Keys = keys
	return nil
}

// Notes add and remove
// --------------------

// ValueArguments - arguments for RPC
type ValueArguments struct {
	Owner note.Address `json:"owner"`
	Asset note.AssetId `json:"asset"`
	Value uint64       `json:"value,string"`
	Key   note.Key     `json:"key"`
}

// AddValue - record a note not yet seen on chain
func (n *Notes) AddValue(arguments *ValueArguments, reply *BalanceReply) error {
	if err := n.checkValue(arguments); nil != err {
		return err
	}

	n.Log.Infof("Notes.AddValue: %+v", arguments)

	n.Session.AddNoteValue(arguments.Owner, arguments.Asset, arguments.Value, arguments.Key)

	reply.Asset = arguments.Asset
	reply.Balance = n.Session.Balance(arguments.Owner, arguments.Asset)
	return nil
}

// RemoveValue - drop a note ahead of the chain
func (n *Notes) RemoveValue(arguments *ValueArguments, reply *BalanceReply) error {
	if err := n.checkValue(arguments); nil != err {
		return err
	}

	n.Log.Infof("Notes.RemoveValue: %+v", arguments)

	n.Session.RemoveNoteValue(arguments.Owner, arguments.Asset, arguments.Value, arguments.Key)

	reply.Asset = arguments.Asset
	reply.Balance = n.Session.Balance(arguments.Owner, arguments.Asset)
	return nil
}

func (n *Notes) checkValue(arguments *ValueArguments) error {
	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}
	if err := validate(arguments.Owner, arguments.Asset); nil != err {
		return err
	}
	if 0 == arguments.Value {
		return fault.ErrInvalidValue
	}
	if "" == arguments.Key {
		return fault.ErrInvalidNoteKey
	}
	return nil
}

// Notes sync
// ----------

// Sync - rebuild one asset from the note store
func (n *Notes) Sync(arguments *BalanceArguments, reply *BalanceReply) error {
	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}
	if err := validate(arguments.Owner, arguments.Asset); nil != err {
		return err
	}

	n.Log.Infof("Notes.Sync: %+v", arguments)

	ctx, cancel := context.WithTimeout(context.Background(), n.Timeout)
	defer cancel()

	if err := n.Session.SyncAsset(ctx, arguments.Owner, arguments.Asset); nil != err {
		return err
	}

	reply.Asset = arguments.Asset
	reply.Balance = n.Session.Balance(arguments.Owner, arguments.Asset)
	return nil
}

// Notes prioritise
// ----------------

// PrioritiseArguments - arguments for RPC
type PrioritiseArguments struct {
	Assets []note.AssetId `json:"assets"`
}

// PrioritiseReply - result of prioritise RPC
type PrioritiseReply struct {
	Count int `json:"count"`
}

// Prioritise - replace the explicit asset priority
func (n *Notes) Prioritise(arguments *PrioritiseArguments, reply *PrioritiseReply) error {
	count := len(arguments.Assets)
	if 0 == count {
		// an empty list clears the priority
		count = 1
	}
	if err := ratelimit.LimitN(n.Limiter, count, MaximumPriorityCount); nil != err {
		return err
	}
	for _, id := range arguments.Assets {
		if "" == id {
			return fault.ErrInvalidAssetId
		}
	}

	n.Log.Infof("Notes.Prioritise: %v", arguments.Assets)

	n.Session.SetPriority(arguments.Assets)
	reply.Count = len(arguments.Assets)
	return nil
}

// Notes submit
// ------------

// SubmitArguments - arguments for RPC
type SubmitArguments struct {
	Records []note.Record `json:"records"`
}

// SubmitReply - result of submit RPC
type SubmitReply struct {
	Added int `json:"added"`
}

// Submit - store live notes delivered by a client
func (n *Notes) Submit(arguments *SubmitArguments, reply *SubmitReply) error {
	if err := ratelimit.LimitN(n.Limiter, len(arguments.Records), MaximumSubmitCount); nil != err {
		return err
	}

	owner := n.Session.Owner()
	for i := range arguments.Records {
		r := &arguments.Records[i]
		if owner != r.Owner {
			return fault.ErrOwnerMismatch
		}
		if "" == r.Asset {
			return fault.ErrInvalidAssetId
		}
	}

	n.Log.Infof("Notes.Submit: %d records", len(arguments.Records))

	added, err := n.Session.Submit(arguments.Records)
	if nil != err {
		return err
	}
	reply.Added = added
	return nil
}

// Notes status
// ------------

// StatusArguments - arguments for RPC
type StatusArguments struct{}

// Status - counters of the pipeline
func (n *Notes) Status(arguments *StatusArguments, reply *session.Status) error {
	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}
	*reply = n.Session.Status()
	return nil
}

func validate(owner note.Address, assetId note.AssetId) error {
	if "" == owner {
		return fault.ErrInvalidOwner
	}
	if "" == assetId {
		return fault.ErrInvalidAssetId
	}
	return nil
}
