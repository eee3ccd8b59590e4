package serialization

import "life-engine/pkg/format"

// DeserializeFlexible decodes lines with the serializer of f. For
// format.Unknown every fixed format is tried; the first successful result
// with the fewest warnings wins, and if none succeeds the errors of all
// attempts are returned together.
func DeserializeFlexible(lines []string, f format.Format) DeserializationResult {
	if s, ok := ForFormat(f); ok {
		return s.Deserialize(lines)
	}

	var best *Successful
	var failed Unsuccessful
	for _, candidate := range format.FixedFormats() {
		s, _ := ForFormat(candidate)
		switch r := s.Deserialize(lines).(type) {
		case Successful:
			if best == nil || len(r.Warnings) < len(best.Warnings) {
				best = &r
			}
		case Unsuccessful:
			failed.Warnings = append(failed.Warnings, r.Warnings...)
			failed.Errors = append(failed.Errors, r.Errors...)
		}
	}
	if best != nil {
		return *best
	}
	return failed
}
