package models

type GuideStatus string

const (
	GuideStatusPending  GuideStatus = "pending"
	GuideStatusApproved GuideStatus = "approved"
)

const GuideStatusField = "status"

// ListingFields drops status; it only moves through approval.
func ListingFields(d Document) Document {
	out := Fields(d)
	delete(out, GuideStatusField)
	return out
}

// NewListing is the document stored for a new guide listing.
func NewListing(d Document) Document {
	out := ListingFields(d)
	out[GuideStatusField] = string(GuideStatusPending)
	return out
}
