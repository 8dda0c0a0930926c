package promotion

import "errors"

var (
	ErrInvalidType       = errors.New("invalid promotion type")
	ErrInvalidStatus     = errors.New("invalid promotion status")
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Type determines which scoping dimension applies and which capacity
// configuration governs the promotion.
type Type string

const (
	TypeBanner  Type = "banner"
	TypeProduct Type = "product"
	TypeShop    Type = "shop"
)

func NewType(s string) (Type, error) {
	t := Type(s)
	if !t.IsValid() {
		return "", ErrInvalidType
	}
	return t, nil
}

func (t Type) String() string {
	return string(t)
}

func (t Type) IsValid() bool {
	switch t {
	case TypeBanner, TypeProduct, TypeShop:
		return true
	default:
		return false
	}
}

// HasScope reports whether the type competes for capacity within a scope
// (product category or shop type) rather than globally.
func (t Type) HasScope() bool {
	return t == TypeProduct || t == TypeShop
}

type Status string

const (
	StatusDraft     Status = "draft"
	StatusConfirm   Status = "confirm"
	StatusPublished Status = "published"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusConfirm, StatusPublished:
		return true
	default:
		return false
	}
}

// ConsumesCapacity reports whether a promotion in this status counts against
// the daily capacity of its type and scope. Drafts never consume capacity.
func (s Status) ConsumesCapacity() bool {
	return s == StatusConfirm || s == StatusPublished
}

// TransitionKind names the action a (current, requested) status pair demands
// from the lifecycle controller.
type TransitionKind int

const (
	TransitionInvalid TransitionKind = iota
	// TransitionDraft: validate the requested range and persist as draft.
	TransitionDraft
	// TransitionConfirmIntent: validate, persist as draft, ensure a single
	// invoice/transaction pair exists and request a payment URL. The status
	// only advances to Confirm via the payment-success callback.
	TransitionConfirmIntent
	// TransitionPublish: persist the status change with no availability
	// re-check; capacity was reserved at confirmation time.
	TransitionPublish
)

// ClassifyTransition makes the lifecycle matrix total: every pair not listed
// below is invalid rather than a silent no-op. current is empty for a
// promotion being created.
func ClassifyTransition(current, requested Status) TransitionKind {
	switch {
	case current == "" && requested == StatusDraft:
		return TransitionDraft
	case current == "" && requested == StatusConfirm:
		return TransitionConfirmIntent
	case current == StatusDraft && requested == StatusDraft:
		return TransitionDraft
	case current == StatusDraft && requested == StatusConfirm:
		return TransitionConfirmIntent
	case current == StatusConfirm && requested == StatusPublished:
		return TransitionPublish
	case current == StatusPublished && requested == StatusPublished:
		return TransitionPublish
	default:
		return TransitionInvalid
	}
}
