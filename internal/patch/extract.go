package patch

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// ExtractErrorKind classifies extraction failures so callers can tell a
// conversational answer apart from a malformed patch.
type ExtractErrorKind int

const (
	// ErrNoPatchTags: the response carries no patch tags at all; treat
	// it as plain conversational text.
	ErrNoPatchTags ExtractErrorKind = iota
	// ErrBadJSON: a tag body was found but is not valid JSON.
	ErrBadJSON
	// ErrNotArray: a <patches> body parsed but is not a JSON array.
	ErrNotArray
)

// ExtractError reports why no patches could be extracted.
type ExtractError struct {
	Kind ExtractErrorKind
	Msg  string
	Err  error
}

func (e *ExtractError) Error() string { return e.Msg }

func (e *ExtractError) Unwrap() error { return e.Err }

// IsConversational reports whether err means the response simply
// contained no patch instructions.
func IsConversational(err error) bool {
	ee, ok := err.(*ExtractError)
	return ok && ee.Kind == ErrNoPatchTags
}

var (
	singlePatchRegex = regexp.MustCompile(`(?is)<patch>\s*(.*?)\s*</patch>`)
	multiPatchRegex  = regexp.MustCompile(`(?is)<patches>\s*(.*?)\s*</patches>`)
)

// DefaultMaxProseLen is the length of prose outside the patch tags above
// which a warning is recorded: the model broke the patch-only output
// contract, but the patch itself can still be attempted.
const DefaultMaxProseLen = 200

// ExtractOptions tunes extraction. The zero value uses defaults.
type ExtractOptions struct {
	MaxProseLen int
}

// ExtractResult is the outcome of a successful extraction.
type ExtractResult struct {
	Patches  []Patch
	Warnings []string
}

// Extract finds and parses the patch payload embedded in raw model
// output. A single-patch tag pair is tried first, then a multi-patch
// pair. Extraction is a pure function of its input.
func Extract(response string) (*ExtractResult, error) {
	return ExtractWith(response, ExtractOptions{})
}

// ExtractWith is Extract with explicit options.
func ExtractWith(response string, opts ExtractOptions) (*ExtractResult, error) {
	maxProse := opts.MaxProseLen
	if maxProse <= 0 {
		maxProse = DefaultMaxProseLen
	}

	if m := singlePatchRegex.FindStringSubmatchIndex(response); m != nil {
		body := response[m[2]:m[3]]
		var p Patch
		if err := json.Unmarshal([]byte(body), &p); err != nil {
			return nil, &ExtractError{
				Kind: ErrBadJSON,
				Msg:  fmt.Sprintf("patch body is not valid JSON: %v", err),
				Err:  err,
			}
		}
		return &ExtractResult{
			Patches:  []Patch{Normalize(p)},
			Warnings: proseWarnings(response, m[0], m[1], maxProse),
		}, nil
	}

	if m := multiPatchRegex.FindStringSubmatchIndex(response); m != nil {
		body := response[m[2]:m[3]]
		var raw json.RawMessage
		if err := json.Unmarshal([]byte(body), &raw); err != nil {
			return nil, &ExtractError{
				Kind: ErrBadJSON,
				Msg:  fmt.Sprintf("patches body is not valid JSON: %v", err),
				Err:  err,
			}
		}
		if !isJSONArray(raw) {
			return nil, &ExtractError{
				Kind: ErrNotArray,
				Msg:  "patches body must be a JSON array",
			}
		}
		var ps []Patch
		if err := json.Unmarshal(raw, &ps); err != nil {
			return nil, &ExtractError{
				Kind: ErrBadJSON,
				Msg:  fmt.Sprintf("patches array is malformed: %v", err),
				Err:  err,
			}
		}
		for i := range ps {
			ps[i] = Normalize(ps[i])
		}
		return &ExtractResult{
			Patches:  ps,
			Warnings: proseWarnings(response, m[0], m[1], maxProse),
		}, nil
	}

	return nil, &ExtractError{
		Kind: ErrNoPatchTags,
		Msg:  "no patch tags found in response",
	}
}

func isJSONArray(raw json.RawMessage) bool {
	s := strings.TrimSpace(string(raw))
	return strings.HasPrefix(s, "[")
}

// proseWarnings flags text outside the matched tag region when it
// exceeds the prose threshold.
func proseWarnings(response string, tagStart, tagEnd, maxProse int) []string {
	outside := len(strings.TrimSpace(response[:tagStart])) +
		len(strings.TrimSpace(response[tagEnd:]))
	if outside <= maxProse {
		return nil
	}
	return []string{fmt.Sprintf(
		"response contains %d characters of prose outside the patch tags; the model broke the patch-only contract", outside)}
}
