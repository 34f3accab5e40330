package patch

import "fmt"

// Normalize maps a raw parsed payload onto the canonical shape for its
// kind, dropping fields other kinds use. It does not validate; an
// unknown kind passes through untouched for Validate to reject.
func Normalize(p Patch) Patch {
	switch p.Kind {
	case KindInsert:
		p.Target = nil
		p.Replacement = nil
	case KindReplace:
		p.Line = 0
		p.Content = nil
	case KindDelete:
		p.Line = 0
		p.Content = nil
		p.Replacement = nil
	}
	return p
}

// Validate checks a patch's structure and returns every applicable
// error, never stopping at the first. An empty result means the patch
// is structurally sound; range-vs-content checks happen at enrichment.
func Validate(p Patch) []string {
	var errs []string

	if p.File == "" {
		errs = append(errs, "file is required")
	}

	switch p.Kind {
	case KindInsert:
		if p.Line < 1 {
			errs = append(errs, fmt.Sprintf("insert line must be at least 1, got %d", p.Line))
		}
		if p.Content == nil {
			errs = append(errs, "insert content is required")
		}
	case KindReplace:
		errs = append(errs, validateTarget(p.Target)...)
		if p.Replacement == nil {
			errs = append(errs, "replacement text is required")
		}
	case KindDelete:
		errs = append(errs, validateTarget(p.Target)...)
	default:
		errs = append(errs, fmt.Sprintf("unknown patch type %q", string(p.Kind)))
	}

	return errs
}

func validateTarget(t *LineRange) []string {
	if t == nil {
		return []string{"target line range is required"}
	}
	var errs []string
	if t.StartLine < 1 {
		errs = append(errs, fmt.Sprintf("target startLine must be at least 1, got %d", t.StartLine))
	}
	if t.EndLine < t.StartLine {
		errs = append(errs, fmt.Sprintf("target endLine %d is before startLine %d", t.EndLine, t.StartLine))
	}
	return errs
}
