package heuristic

func (e *Extractor) experience(lines []string) string {
	for _, line := range head(lines, experienceWindow) {
		if containsAny(line, e.vocab.ExperiencePhrases) {
			return line
		}
	}
	return ""
}
