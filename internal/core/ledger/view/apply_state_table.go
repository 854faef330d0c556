package view

import (
	"bytes"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
)

var (
	ErrEntryExists   = errors.New("entry already exists")
	ErrEntryNotFound = errors.New("entry not found")
	ErrEntryErased   = errors.New("entry already deleted")
)

// Action represents the type of modification to an entry
type Action int

const (
	// ActionCache means the entry was read but not modified
	ActionCache Action = iota
	// ActionInsert means a new entry was created
	ActionInsert
	// ActionModify means an existing entry was modified
	ActionModify
	// ActionErase means an entry was deleted
	ActionErase
)

func (a Action) String() string {
	switch a {
	case ActionCache:
		return "cache"
	case ActionInsert:
		return "insert"
	case ActionModify:
		return "modify"
	case ActionErase:
		return "erase"
	default:
		return "unknown"
	}
}

// TrackedEntry represents an entry being tracked for changes
type TrackedEntry struct {
	Type     entry.Type
	Action   Action
	Original []byte // Original state (nil for inserts)
	Current  []byte // Current state
}

// ApplyStateTable wraps a LedgerView and tracks all modifications made by
// one operation. Nothing reaches the base until Apply.
type ApplyStateTable struct {
	base  LedgerView
	items map[[32]byte]*TrackedEntry
}

// NewApplyStateTable creates a new ApplyStateTable wrapping the given base view
func NewApplyStateTable(base LedgerView) *ApplyStateTable {
	return &ApplyStateTable{
		base:  base,
		items: make(map[[32]byte]*TrackedEntry),
	}
}

// Base returns the wrapped view.
func (t *ApplyStateTable) Base() LedgerView {
	return t.base
}

// Read reads an entry, tracking it as cached
func (t *ApplyStateTable) Read(k keylet.Keylet) ([]byte, error) {
	if e, exists := t.items[k.Key]; exists {
		if e.Action == ActionErase {
			return nil, nil
		}
		return e.Current, nil
	}

	data, err := t.base.Read(k)
	if err != nil {
		return nil, err
	}

	// Only track entries that exist in the base
	if data != nil {
		t.items[k.Key] = &TrackedEntry{
			Type:     k.Type,
			Action:   ActionCache,
			Original: data,
			Current:  data,
		}
	}

	return data, nil
}

// Exists checks if an entry exists
func (t *ApplyStateTable) Exists(k keylet.Keylet) (bool, error) {
	if e, exists := t.items[k.Key]; exists {
		return e.Action != ActionErase, nil
	}
	return t.base.Exists(k)
}

// Insert adds a new entry
func (t *ApplyStateTable) Insert(k keylet.Keylet, data []byte) error {
	if e, exists := t.items[k.Key]; exists {
		if e.Action != ActionErase {
			return ErrEntryExists
		}
		// Re-inserting a deleted entry becomes a modify
		e.Action = ActionModify
		e.Current = data
		return nil
	}

	exists, err := t.base.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return ErrEntryExists
	}

	t.items[k.Key] = &TrackedEntry{
		Type:    k.Type,
		Action:  ActionInsert,
		Current: data,
	}
	return nil
}

// Update modifies an existing entry
func (t *ApplyStateTable) Update(k keylet.Keylet, data []byte) error {
	if e, exists := t.items[k.Key]; exists {
		if e.Action == ActionErase {
			return ErrEntryErased
		}
		if e.Action == ActionCache {
			e.Action = ActionModify
		}
		// For insert, keep it as insert with new data
		e.Current = data
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}

	t.items[k.Key] = &TrackedEntry{
		Type:     k.Type,
		Action:   ActionModify,
		Original: original,
		Current:  data,
	}
	return nil
}

// Put inserts the entry or updates it if present.
func (t *ApplyStateTable) Put(k keylet.Keylet, data []byte) error {
	exists, err := t.Exists(k)
	if err != nil {
		return err
	}
	if exists {
		return t.Update(k, data)
	}
	return t.Insert(k, data)
}

// Erase removes an entry
func (t *ApplyStateTable) Erase(k keylet.Keylet) error {
	if e, exists := t.items[k.Key]; exists {
		if e.Action == ActionErase {
			return ErrEntryErased
		}
		if e.Action == ActionInsert {
			// Inserting then deleting = no change
			delete(t.items, k.Key)
			return nil
		}
		e.Action = ActionErase
		return nil
	}

	original, err := t.base.Read(k)
	if err != nil {
		return err
	}
	if original == nil {
		return ErrEntryNotFound
	}

	t.items[k.Key] = &TrackedEntry{
		Type:     k.Type,
		Action:   ActionErase,
		Original: original,
		Current:  original,
	}
	return nil
}

// Changes returns the staged modifications in key order. Cached reads and
// updates that restored the original bytes are omitted.
func (t *ApplyStateTable) Changes() []Change {
	changes := make([]Change, 0, len(t.items))
	for key, e := range t.items {
		switch e.Action {
		case ActionInsert:
			changes = append(changes, Change{Action: ActionInsert, Key: key, Data: e.Current})
		case ActionModify:
			if bytes.Equal(e.Original, e.Current) {
				continue
			}
			changes = append(changes, Change{Action: ActionModify, Key: key, Data: e.Current})
		case ActionErase:
			changes = append(changes, Change{Action: ActionErase, Key: key})
		}
	}
	sort.Slice(changes, func(i, j int) bool {
		return bytes.Compare(changes[i].Key[:], changes[j].Key[:]) < 0
	})
	return changes
}

// Apply commits all changes to the base view and returns the metadata
// describing them. A base implementing Committer receives every change in a
// single call; any other base is written entry by entry.
func (t *ApplyStateTable) Apply() (*Metadata, error) {
	metadata := t.Metadata()
	changes := t.Changes()

	if c, ok := t.base.(Committer); ok {
		if err := c.CommitChanges(changes); err != nil {
			return nil, err
		}
		t.reset()
		return metadata, nil
	}

	for _, ch := range changes {
		k := keylet.Keylet{Type: t.items[ch.Key].Type, Key: ch.Key}
		var err error
		switch ch.Action {
		case ActionInsert:
			err = t.base.Insert(k, ch.Data)
		case ActionModify:
			err = t.base.Update(k, ch.Data)
		case ActionErase:
			err = t.base.Erase(k)
		}
		if err != nil {
			return nil, err
		}
	}
	t.reset()
	return metadata, nil
}

// Discard drops every staged change.
func (t *ApplyStateTable) Discard() {
	t.reset()
}

func (t *ApplyStateTable) reset() {
	t.items = make(map[[32]byte]*TrackedEntry)
}

// Metadata describes the staged changes without applying them.
func (t *ApplyStateTable) Metadata() *Metadata {
	md := &Metadata{AffectedNodes: make([]AffectedNode, 0)}
	for _, ch := range t.Changes() {
		e := t.items[ch.Key]
		node := AffectedNode{
			EntryType: e.Type.String(),
			Index:     strings.ToUpper(hex.EncodeToString(ch.Key[:])),
		}
		switch ch.Action {
		case ActionInsert:
			node.NodeType = "CreatedNode"
		case ActionModify:
			node.NodeType = "ModifiedNode"
		case ActionErase:
			node.NodeType = "DeletedNode"
		}
		md.AffectedNodes = append(md.AffectedNodes, node)
	}
	return md
}

// Metadata lists the entries an operation created, modified or deleted.
type Metadata struct {
	AffectedNodes []AffectedNode `json:"affected_nodes"`
}

// AffectedNode is one entry touched by an operation.
type AffectedNode struct {
	NodeType  string `json:"node_type"`
	EntryType string `json:"entry_type"`
	Index     string `json:"index"`
}
