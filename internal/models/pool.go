package models

// Status is the settlement state of a DebtRecord.
//
// Lifecycle: pending → verification_pending → settled, with
// verification_pending able to fall back to pending on rejection, and
// pending able to be cancelled by the creator. Settled and cancelled are
// terminal resting states kept for history and balance auditing.
type Status string

const (
	// StatusPending means the borrower has not yet claimed payment.
	StatusPending Status = "pending"

	// StatusVerificationPending means the borrower marked the debt as paid
	// and the creator has not yet confirmed or rejected the claim.
	StatusVerificationPending Status = "verification_pending"

	// StatusSettled means the creator confirmed payment. Terminal.
	StatusSettled Status = "settled"

	// StatusCancelled means the creator withdrew the request. Terminal.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further action is legal from this status.
func (s Status) Terminal() bool {
	return s == StatusSettled || s == StatusCancelled
}

// Active reports whether the record still counts toward live balances.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusVerificationPending
}

// ExpenseRequest records a bill one user raised in a chat: who created it,
// for how much, and whether the creator owes a share too. A request owns one
// DebtRecord per non-creator participant and never mutates after creation.
type ExpenseRequest struct {
	// ID is the unique identifier for the request (UUID format).
	ID string `json:"id"`

	// Title is the cause of the expense (e.g. "Dinner", "Cab", "Trip").
	Title string `json:"title"`

	// TotalAmount is the full bill amount. Always positive.
	TotalAmount Cents `json:"totalAmount"`

	// CreatorID is the user who paid the bill and is owed money.
	CreatorID string `json:"creator"`

	// CreatorIncluded records whether the creator owes a share too
	// ("Split Equally" vs "Full Amount").
	CreatorIncluded bool `json:"creatorIncluded"`

	// ChatID is the conversation the request was raised in. May be a 1:1
	// chat or a group chat.
	ChatID string `json:"chatId"`

	// CreatedAt is the Unix millisecond timestamp of creation.
	CreatedAt int64 `json:"createdAt"`
}

// DebtRecord is a single creditor-to-borrower obligation derived from an
// ExpenseRequest, and the unit the settlement state machine operates on.
// Records are created in StatusPending and are never deleted.
type DebtRecord struct {
	// ID is the unique identifier for the record (UUID format).
	ID string `json:"id"`

	// RequestID points back to the owning ExpenseRequest. Informational
	// only; the request never mutates after creation.
	RequestID string `json:"requestId"`

	// CreatorID is the payee: the user owed money.
	CreatorID string `json:"creator"`

	// BorrowerID is the payer: the user who owes AmountOwed.
	BorrowerID string `json:"borrower"`

	// AmountOwed is the borrower's share of the request total.
	AmountOwed Cents `json:"amountOwed"`

	// CreatorIncluded is copied from the parent request; used only to
	// display the split type alongside the record.
	CreatorIncluded bool `json:"creatorIncluded"`

	// Status is the current settlement state.
	Status Status `json:"status"`

	// ChatID is the conversation this record is visible in.
	ChatID string `json:"chatId"`

	// CreatedAt and UpdatedAt are Unix millisecond timestamps.
	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
}
