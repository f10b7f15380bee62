package goconjure

import eng "github.com/reoring/goconjure/internal/engine"

// UnknownPolicy controls how unknown object keys are handled.
type UnknownPolicy int

const (
	UnknownStrict UnknownPolicy = iota // Reject unknown keys with an error.
	UnknownStrip                       // Drop unknown keys.
)

// DuplicatePolicy controls how equal elements of a set are handled.
type DuplicatePolicy int

const (
	DuplicateReject   DuplicatePolicy = iota // Fail with duplicate_element.
	DuplicateCoalesce                        // Keep one copy silently.
)

// MissingPolicy controls how an absent list, set or map field is decoded.
type MissingPolicy int

const (
	MissingCollectionEmpty    MissingPolicy = iota // Decode as an empty collection.
	MissingCollectionRequired                      // Report the field as missing.
)

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// DecodeOpt bundles decoding options. The zero value rejects unknown fields
// and duplicate set elements, and treats absent collections as empty.
type DecodeOpt struct {
	Unknown            UnknownPolicy
	Duplicates         DuplicatePolicy
	MissingCollections MissingPolicy
	// DuplicateKeys applies to raw JSON object keys anywhere in the document,
	// including inside any values. Declared object fields and map keys are
	// always checked regardless of this setting.
	DuplicateKeys Severity
	MaxDepth      int
	MaxBytes      int64
	// OnWarning receives issues raised with Warn severity.
	OnWarning func(Issue)
}

// ServerOpt is the policy for decoding requests sent by a client: unknown
// fields are rejected, duplicate set elements coalesce and absent
// collections are errors.
func ServerOpt() DecodeOpt {
	return DecodeOpt{Unknown: UnknownStrict, Duplicates: DuplicateCoalesce, MissingCollections: MissingCollectionRequired}
}

// ClientOpt is the policy for decoding responses returned by a server:
// unknown fields are ignored, duplicate set elements are rejected and
// absent collections decode as empty.
func ClientOpt() DecodeOpt {
	return DecodeOpt{Unknown: UnknownStrip, Duplicates: DuplicateReject, MissingCollections: MissingCollectionEmpty}
}

func pickOpt(opts []DecodeOpt) DecodeOpt {
	if len(opts) > 0 {
		return opts[0]
	}
	return DecodeOpt{}
}

func (o DecodeOpt) enforceOptions() eng.EnforceOptions {
	eo := eng.EnforceOptions{MaxDepth: o.MaxDepth, MaxBytes: o.MaxBytes}
	switch o.DuplicateKeys {
	case Error:
		eo.OnDuplicate = eng.DupError
	case Warn:
		eo.OnDuplicate = eng.DupWarn
		if o.OnWarning != nil {
			warn := o.OnWarning
			eo.IssueSink = func(si eng.SimpleIssue) {
				warn(Issue{Path: si.Path, Code: si.Code, Message: si.Message, Offset: -1})
			}
		}
	}
	return eo
}
