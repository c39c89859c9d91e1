package calculator

import "github.com/poolup/backend/internal/models"

// Totals are the dashboard headline numbers for one viewer.
type Totals struct {
	// TotalOwed is the sum the viewer is waiting to collect: amounts on
	// active records where the viewer is the creator.
	TotalOwed models.Cents `json:"totalOwed"`

	// TotalDue is the sum the viewer still has to pay: amounts on active
	// records where the viewer is the borrower.
	TotalDue models.Cents `json:"totalDue"`
}

// NetBalance computes the signed balance between viewer and other across the
// given records. Positive means other owes viewer, negative means viewer owes
// other, zero means settled up.
//
// Only active records (pending, verification_pending) contribute; settled and
// cancelled records are history. Records not between the pair are skipped, so
// callers may pass an unfiltered slice. Always recomputed from current record
// state; there is no cached running balance to go stale.
func NetBalance(viewerID, otherID string, records []*models.DebtRecord) models.Cents {
	var net models.Cents
	for _, r := range records {
		if !r.Status.Active() {
			continue
		}
		switch {
		case r.CreatorID == viewerID && r.BorrowerID == otherID:
			net += r.AmountOwed
		case r.CreatorID == otherID && r.BorrowerID == viewerID:
			net -= r.AmountOwed
		}
	}
	return net
}

// DashboardTotals sums the viewer's active records into owed/due totals.
// Records not touching the viewer are skipped.
func DashboardTotals(viewerID string, records []*models.DebtRecord) Totals {
	var t Totals
	for _, r := range records {
		if !r.Status.Active() {
			continue
		}
		switch viewerID {
		case r.CreatorID:
			t.TotalOwed += r.AmountOwed
		case r.BorrowerID:
			t.TotalDue += r.AmountOwed
		}
	}
	return t
}
