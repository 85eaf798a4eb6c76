package services

import (
	"errors"
	"fmt"

	"bindery/internal/aip"
)

// Divert is the terminal per-AIP failure signal. A stage returns it when the
// AIP must be relocated to errors/<kind> and excluded from the rest of the
// pipeline. The batch driver acts on the returned value directly; folder
// presence is never used as a control signal.
type Divert struct {
	Kind aip.ErrorKind
	// Sidecar, when set, names a diagnostic file written next to the
	// diverted folder inside the error partition.
	Sidecar string
	// Diagnostics holds one message per entry, written to the sidecar as
	// blank-line-separated paragraphs.
	Diagnostics []string
	Err         error
}

func (d *Divert) Error() string {
	if d.Err != nil {
		return fmt.Sprintf("diverted to %s: %v", d.Kind, d.Err)
	}
	return fmt.Sprintf("diverted to %s", d.Kind)
}

func (d *Divert) Unwrap() error {
	return d.Err
}

// NewDivert constructs a diversion with no sidecar diagnostics.
func NewDivert(kind aip.ErrorKind) *Divert {
	return &Divert{Kind: kind}
}

// AsDivert extracts a Divert from an error chain.
func AsDivert(err error) (*Divert, bool) {
	var d *Divert
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
