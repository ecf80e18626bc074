package transcribe

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopwords covers the function words of the languages the tool is normally
// pointed at (English and Portuguese); they never make good clip titles.
var stopwords = map[string]struct{}{}

func init() {
	list := []string{
		// english
		"the", "a", "an", "and", "or", "but", "of", "to", "in", "on", "for",
		"is", "are", "was", "were", "be", "been", "it", "its", "this", "that",
		"with", "as", "at", "by", "from", "not", "no", "so", "we", "you",
		"they", "he", "she", "i", "my", "your", "our", "their", "what", "have",
		"has", "had", "do", "does", "did", "will", "would", "can", "could",
		// portuguese
		"e", "de", "o", "que", "do", "da", "em", "um", "para", "com", "uma",
		"os", "se", "na", "por", "mais", "das", "dos", "como", "mas", "foi",
		"ao", "ele", "ela", "tem", "seu", "sua", "ou", "ser", "quando",
		"muito", "nos", "isso", "entre", "depois", "sem", "mesmo", "aos",
		"ter", "quem", "esse", "essa", "eles", "elas", "num", "numa", "nem",
		"meu", "minha", "teu", "tua", "nosso", "nossa", "este", "esta",
		"aquele", "aquela", "isto", "aquilo", "eu", "tu", "nós", "vocês",
		"você", "lhe", "me", "te", "já", "só", "até", "pelo", "pela", "não",
		"há", "era", "são", "está", "estão",
	}
	for _, w := range list {
		stopwords[w] = struct{}{}
	}
}

// Keywords suggests a short title from transcript text: the most frequent
// non-stopword tokens, most common first, title-cased. Ties break
// alphabetically so the suggestion is deterministic.
func Keywords(text string, n int) string {
	counts := make(map[string]int)
	for _, w := range wordPattern.FindAllString(strings.ToLower(text), -1) {
		if _, skip := stopwords[w]; skip {
			continue
		}
		counts[w]++
	}
	if len(counts) == 0 || n <= 0 {
		return ""
	}

	words := make([]string, 0, len(counts))
	for w := range counts {
		words = append(words, w)
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})

	if len(words) > n {
		words = words[:n]
	}

	return cases.Title(language.Und).String(strings.Join(words, " "))
}
