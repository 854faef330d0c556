package rental

import (
	"fmt"

	"github.com/LeJamon/goRentald/internal/core/ledger/entry"
	"github.com/LeJamon/goRentald/internal/core/ledger/keylet"
	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// readEntry decodes the entry at k into e. It reports false when absent.
func readEntry(v view.LedgerView, k keylet.Keylet, e entry.Entry) (bool, error) {
	data, err := v.Read(k)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", k.Type, err)
	}
	if data == nil {
		return false, nil
	}
	if err := entry.Decode(data, e); err != nil {
		return false, err
	}
	return true, nil
}

// putEntry stages e at k, inserting or updating as needed.
func putEntry(t *view.ApplyStateTable, k keylet.Keylet, e entry.Entry) error {
	data, err := entry.Encode(e)
	if err != nil {
		return err
	}
	if err := t.Put(k, data); err != nil {
		return fmt.Errorf("write %s: %w", k.Type, err)
	}
	return nil
}

func loadOfferRecord(v view.LedgerView, hash types.Hash) (*entry.OfferRecord, error) {
	var rec entry.OfferRecord
	found, err := readEntry(v, keylet.RentalOffer(hash), &rec)
	if err != nil || !found {
		return nil, err
	}
	return &rec, nil
}

func loadNonceDeadline(v view.LedgerView, lender types.AccountID, nonce uint64) (uint64, error) {
	var nd entry.NonceDeadline
	if _, err := readEntry(v, keylet.NonceDeadline(lender, nonce), &nd); err != nil {
		return 0, err
	}
	return nd.Deadline, nil
}

func storeNonceDeadline(t *view.ApplyStateTable, lender types.AccountID, nonce, deadline uint64) error {
	return putEntry(t, keylet.NonceDeadline(lender, nonce), &entry.NonceDeadline{Deadline: deadline})
}

func loadRoleDeadline(v view.LedgerView, role types.RoleID, tokenAddress types.AccountID, assetID uint64) (uint64, error) {
	var rd entry.RoleDeadline
	if _, err := readEntry(v, keylet.RoleDeadline(role, tokenAddress, assetID), &rd); err != nil {
		return 0, err
	}
	return rd.Deadline, nil
}

func storeRoleDeadline(t *view.ApplyStateTable, role types.RoleID, tokenAddress types.AccountID, assetID, deadline uint64) error {
	return putEntry(t, keylet.RoleDeadline(role, tokenAddress, assetID), &entry.RoleDeadline{Deadline: deadline})
}

func loadRental(v view.LedgerView, hash types.Hash) (*entry.Rental, error) {
	var r entry.Rental
	found, err := readEntry(v, keylet.Rental(hash), &r)
	if err != nil || !found {
		return nil, err
	}
	return &r, nil
}

func loadCommitmentLink(v view.LedgerView, tokenAddress types.AccountID, commitmentID uint64) (*entry.CommitmentLink, error) {
	var l entry.CommitmentLink
	found, err := readEntry(v, keylet.CommitmentLink(tokenAddress, commitmentID), &l)
	if err != nil || !found {
		return nil, err
	}
	return &l, nil
}
