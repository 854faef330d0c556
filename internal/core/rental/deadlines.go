package rental

import (
	"github.com/LeJamon/goRentald/internal/core/ledger/view"
	"github.com/LeJamon/goRentald/internal/core/types"
)

// creationRoleDeadline is the reservation an offer places on its roles when
// created. NFT offers hold the role until the offer deadline; SFT offers
// release it minDuration earlier, since no rental can start after that.
func creationRoleDeadline(o *Offer) uint64 {
	if o.Variant == types.VariantSFT {
		if o.MinDuration >= o.Deadline {
			return 0
		}
		return o.Deadline - o.MinDuration
	}
	return o.Deadline
}

// checkRolesFree requires every role of the offer to be past its deadline.
func checkRolesFree(v view.LedgerView, o *Offer, now uint64) error {
	for _, role := range o.Roles {
		deadline, err := loadRoleDeadline(v, role, o.TokenAddress, o.assetID())
		if err != nil {
			return err
		}
		if now <= deadline {
			return TecROLE_DEADLINE_ACTIVE
		}
	}
	return nil
}

// setRoleDeadlines stores deadline for every role of the offer.
func setRoleDeadlines(t *view.ApplyStateTable, o *Offer, deadline uint64) error {
	for _, role := range o.Roles {
		if err := storeRoleDeadline(t, role, o.TokenAddress, o.assetID(), deadline); err != nil {
			return err
		}
	}
	return nil
}

// extendRoleDeadlines moves each role deadline forward to expiration. A
// deadline already past expiration is left alone.
func extendRoleDeadlines(t *view.ApplyStateTable, o *Offer, expiration uint64) error {
	for _, role := range o.Roles {
		current, err := loadRoleDeadline(t, role, o.TokenAddress, o.assetID())
		if err != nil {
			return err
		}
		if expiration > current {
			if err := storeRoleDeadline(t, role, o.TokenAddress, o.assetID(), expiration); err != nil {
				return err
			}
		}
	}
	return nil
}
