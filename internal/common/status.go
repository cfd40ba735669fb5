package common

// Tender workflow statuses. A tender starts as Draft, walks through the
// review statuses while the wizard is worked, and ends Published or Awarded.
const (
	Draft          = "draft"
	InternalReview = "internal_review"
	Drafting       = "drafting"
	ControlReview  = "control_review"
	LegalReview    = "legal_review"
	ReadyToPublish = "ready_to_publish"
	Published      = "published"
	Awarded        = "awarded"
)

var statusRank = map[string]int{
	Draft:          0,
	InternalReview: 1,
	Drafting:       1,
	ControlReview:  1,
	LegalReview:    1,
	ReadyToPublish: 2,
	Published:      3,
	Awarded:        4,
}

func IsValidStatus(status string) bool {
	_, ok := statusRank[status]
	return ok
}

// IsValidStatusTransition reports whether the workflow allows moving from one
// status to another. The workflow only moves forward; the review statuses
// share a rank and may be switched between freely while the dossier is worked.
func IsValidStatusTransition(from string, to string) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}

	toRank, ok := statusRank[to]
	if !ok {
		return false
	}

	if fromRank == toRank {
		return from != to
	}

	return toRank > fromRank
}
