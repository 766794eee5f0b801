package document

// BuildStream zips each token with its display duration at the given
// speed and its ORP index, producing the document's authoritative
// ordered sequence. The result is never mutated after this call.
func BuildStream(tokens []Token, wpm int) []TimedToken {
	stream := make([]TimedToken, len(tokens))
	for i := range tokens {
		stream[i] = TimedToken{
			Token:      tokens[i],
			DurationMS: DurationMS(&tokens[i], wpm),
			ORP:        ORPPosition(tokens[i].Word),
		}
	}
	return stream
}
