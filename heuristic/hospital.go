package heuristic

// hospitalAndLocation returns the first line that names an institution and
// the first address-like line shortly after it. Scanning stops at the first
// institution, so a location is never taken from a later one.
func (e *Extractor) hospitalAndLocation(lines []string) (hospital, location string) {
	for i, line := range lines {
		if !e.isHospital(line) {
			continue
		}

		end := min(i+1+locationWindow, len(lines))
		for _, next := range lines[i+1 : end] {
			if e.isLocation(next) {
				location = next
				break
			}
		}
		return line, location
	}
	return "", ""
}

func (e *Extractor) isHospital(line string) bool {
	if !containsAny(line, e.vocab.HospitalMarkers) {
		return false
	}
	n := runeLen(line)
	if n >= maxHospitalLen || n <= minHospitalLen {
		return false
	}
	if containsAny(line, e.vocab.NavigationExclusions) {
		return false
	}
	return !hasAnyPrefix(line, e.vocab.ActionVerbs)
}

func (e *Extractor) isLocation(line string) bool {
	if runeLen(line) <= minLocationLen {
		return false
	}
	if containsAny(line, e.vocab.LocationExclusions) {
		return false
	}
	return containsAny(line, e.vocab.LocaleSignals)
}
