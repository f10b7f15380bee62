package verify

import (
	"errors"
	"strconv"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"

	goconjure "github.com/reoring/goconjure"
	"github.com/reoring/goconjure/internal/casing"
)

// Namespace prefixes the names of verification errors.
const Namespace = "ConjureVerification"

// SerializableError is the Conjure wire form of an error.
type SerializableError struct {
	ErrorCode       string            `json:"errorCode"`
	ErrorName       string            `json:"errorName"`
	ErrorInstanceID string            `json:"errorInstanceId"`
	Parameters      map[string]string `json:"parameters"`
}

// Marshal encodes the error as JSON.
func (e SerializableError) Marshal() ([]byte, error) { return json.Marshal(e) }

// Serializable shapes err for a JSON error response. Verification failures
// and decode issues are INVALID_ARGUMENT; anything else is INTERNAL and
// carries no parameters.
func Serializable(err error) SerializableError {
	out := SerializableError{
		ErrorCode:       "INTERNAL",
		ErrorName:       "Default:Internal",
		ErrorInstanceID: uuid.NewString(),
		Parameters:      map[string]string{},
	}
	invalid := func(name string, params map[string]string) SerializableError {
		out.ErrorCode = "INVALID_ARGUMENT"
		out.ErrorName = Namespace + ":" + name
		out.Parameters = params
		return out
	}

	var (
		bad  *BadTestCaseError
		conf *ConfirmationError
		ce   *CaseError
	)
	switch {
	case errors.As(err, &bad):
		return invalid("BadTestCase", map[string]string{
			"endpoint": bad.Endpoint,
			"index":    strconv.Itoa(bad.Index),
			"value":    bad.Value,
		})
	case errors.As(err, &conf):
		return invalid("ConfirmationFailure", map[string]string{
			"endpoint": conf.Endpoint,
			"index":    strconv.Itoa(conf.Index),
			"expected": conf.Expected,
			"received": conf.Received,
		})
	case errors.Is(err, ErrIndexOutOfBounds):
		return invalid("IndexOutOfBounds", map[string]string{"message": err.Error()})
	case errors.Is(err, ErrUnknownEndpoint):
		return invalid("InvalidEndpointParameter", map[string]string{"message": err.Error()})
	case errors.As(err, &ce):
		params := issueParams(ce.Err)
		params["endpoint"] = ce.Endpoint
		params["index"] = strconv.Itoa(ce.Index)
		return invalid("InvalidTestCase", params)
	}
	if iss, ok := goconjure.AsIssues(err); ok && len(iss) > 0 {
		return invalid(casing.Pascal(iss[0].Code), issueParams(err))
	}
	return out
}

func issueParams(err error) map[string]string {
	iss, ok := goconjure.AsIssues(err)
	if !ok || len(iss) == 0 {
		return map[string]string{"message": err.Error()}
	}
	it := iss[0]
	p := map[string]string{"code": it.Code, "path": it.Path, "message": it.Message}
	if it.Offset >= 0 {
		p["offset"] = strconv.FormatInt(it.Offset, 10)
	}
	return p
}
