package booking

// PayloadKind discriminates what a checkout session's metadata decodes into.
// It routes the webhook reconciler to the appointment or listing path.
type PayloadKind string

const (
	KindAppointment PayloadKind = "appointment"
	KindListing     PayloadKind = "rental_listing"
)

func (k PayloadKind) IsValid() bool {
	return k == KindAppointment || k == KindListing
}

type Status string

const (
	StatusConfirmed     Status = "confirmed"
	StatusPendingReview Status = "pending_review"
	StatusCancelled     Status = "cancelled"
)

func (s Status) String() string { return string(s) }

func (s Status) IsValid() bool {
	switch s {
	case StatusConfirmed, StatusPendingReview, StatusCancelled:
		return true
	default:
		return false
	}
}

// PaymentStatusPaid is the only payment status a committed record can carry:
// the reconciler writes records exclusively after a completed checkout.
const PaymentStatusPaid = "paid"
