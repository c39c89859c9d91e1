// Package calculator holds the pure money math of the pool engine: equal-split
// share computation and balance aggregation. No state, no I/O.
package calculator

import (
	"errors"

	"github.com/poolup/backend/internal/models"
)

var (
	// ErrInvalidAmount is returned when the bill total is not positive.
	ErrInvalidAmount = errors.New("total amount must be positive")

	// ErrEmptyParticipantSet is returned when a request has no non-creator
	// participants.
	ErrEmptyParticipantSet = errors.New("at least one participant is required")
)

// Split is the result of dividing a bill among a group.
type Split struct {
	// GroupSize is the number of people sharing the bill, including the
	// creator when they take a share.
	GroupSize int

	// PerShare is each participant's share of the total. Every non-creator
	// participant owes exactly this amount.
	PerShare models.Cents

	// CreatorShare is the creator's implicit share: PerShare when the
	// creator is included, zero otherwise. It is never stored as a record.
	CreatorShare models.Cents

	// Receivable is what the creator collects once everyone pays:
	// PerShare for each non-creator participant.
	Receivable models.Cents
}

// ComputeShares divides total among participantCount non-creator participants,
// plus the creator when creatorIncluded.
//
// Each share is rounded to the cent independently, half away from zero, with
// no remainder-correction pass: for totals that do not divide evenly the sum
// of shares can differ from the total by up to a cent per participant. That
// matches how the app has always split bills, so it stays.
func ComputeShares(total models.Cents, participantCount int, creatorIncluded bool) (Split, error) {
	if total <= 0 {
		return Split{}, ErrInvalidAmount
	}
	if participantCount < 1 {
		return Split{}, ErrEmptyParticipantSet
	}

	groupSize := participantCount
	if creatorIncluded {
		groupSize++
	}

	perShare := roundDiv(int64(total), int64(groupSize))
	s := Split{
		GroupSize:  groupSize,
		PerShare:   models.Cents(perShare),
		Receivable: models.Cents(perShare * int64(participantCount)),
	}
	if creatorIncluded {
		s.CreatorShare = s.PerShare
	}
	return s, nil
}

// roundDiv divides a by b in integer cents, rounding half away from zero.
// Amounts are validated positive before this is called.
func roundDiv(a, b int64) int64 {
	return (2*a + b) / (2 * b)
}
