package dataset

import (
	"errors"
	"fmt"
	"time"

	"github.com/threadnet-protocol/threadnet-go/pkg/meshcop"
)

// ErrDeletePreferred is returned when deleting the preferred dataset while
// other datasets remain.
var ErrDeletePreferred = errors.New("attempt to remove preferred dataset")

// NotFoundError is returned when a dataset ID is not in the store.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown dataset %s", e.ID)
}

// Dataset is a stored Thread operational dataset. The TLV blob is the
// canonical form and is immutable once stored; display fields are decoded
// from it on demand.
type Dataset struct {
	// ID is the stable external reference key, generated at creation.
	ID string

	// Source identifies the submitter. Free text, not unique.
	Source string

	// TLV is the hex-encoded dataset blob exactly as submitted.
	TLV string

	// Created is when the dataset was added to the store.
	Created time.Time
}

// Decode parses the dataset's TLV blob. Stored blobs were validated at add
// time, so this only fails for state files edited by hand.
func (d *Dataset) Decode() (meshcop.Dataset, error) {
	return meshcop.ParseHex(d.TLV)
}
