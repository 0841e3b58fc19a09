package nlp

// stopWords is the English stop-word list applied to tagger output.
var stopWords = map[string]bool{}

func init() {
	for _, w := range []string{
		"a", "about", "above", "after", "again", "against", "all", "also", "am", "an", "and",
		"any", "are", "as", "at", "be", "because", "been", "before", "being", "below",
		"between", "both", "but", "by", "can", "could", "did", "do", "does", "doing", "done",
		"down", "during", "each", "either", "else", "etc", "ever", "every", "few", "for",
		"from", "further", "get", "had", "has", "have", "having", "he", "her", "here", "hers",
		"herself", "him", "himself", "his", "how", "however", "i", "if", "in", "into", "is",
		"it", "its", "itself", "just", "least", "less", "made", "make", "many", "may", "me",
		"might", "more", "most", "much", "must", "my", "myself", "neither", "no", "nor",
		"not", "now", "of", "off", "often", "on", "once", "only", "or", "other", "our",
		"ours", "ourselves", "out", "over", "own", "part", "per", "please", "put", "quite",
		"rather", "really", "same", "see", "seem", "several", "she", "should", "show", "so",
		"some", "such", "take", "than", "that", "the", "their", "theirs", "them",
		"themselves", "then", "there", "these", "they", "thing", "this", "those", "through",
		"to", "too", "under", "until", "up", "upon", "us", "used", "using", "very", "via",
		"was", "we", "well", "were", "what", "whatever", "when", "where", "whether", "which",
		"while", "who", "whole", "whom", "whose", "why", "will", "with", "within", "without",
		"would", "yet", "you", "your", "yours", "yourself", "yourselves",
	} {
		stopWords[w] = true
	}
}

// IsStopWord reports whether the lowercased word is a stop word.
func IsStopWord(word string) bool {
	return stopWords[word]
}
