package generator

import (
	"fmt"
	"math/rand"
	"strings"
)

var firstNames = []string{"John", "Jane", "Alice", "Bob", "Charlie", "Diana", "Eve", "Frank", "Grace", "Henry"}

var lastNames = []string{"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis", "Rodriguez", "Martinez"}

var words = []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta", "iota", "kappa"}

var sentences = []string{
	"This is a sample text generated for testing purposes.",
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit.",
	"The quick brown fox jumps over the lazy dog.",
	"Software development requires careful planning and execution.",
	"Database design is crucial for application performance.",
}

var emailDomains = []string{"example.com", "test.com", "demo.com", "mail.com"}

var cities = []string{"Springfield", "Riverside", "Franklin", "Greenville", "Bristol", "Clinton", "Fairview", "Salem", "Madison", "Georgetown"}

var countries = []string{"United States", "Canada", "Germany", "France", "Japan", "Brazil", "Australia", "India", "Spain", "Netherlands"}

var streets = []string{"Main Street", "Oak Avenue", "Maple Drive", "Cedar Lane", "Park Road", "Elm Street"}

func randomFirstName(r *rand.Rand) string {
	return firstNames[r.Intn(len(firstNames))]
}

func randomLastName(r *rand.Rand) string {
	return lastNames[r.Intn(len(lastNames))]
}

func randomFullName(r *rand.Rand) string {
	return randomFirstName(r) + " " + randomLastName(r)
}

func randomEmail(r *rand.Rand) string {
	return fmt.Sprintf("user%d@%s", r.Intn(1000000), emailDomains[r.Intn(len(emailDomains))])
}

func randomPhone(r *rand.Rand) string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", r.Intn(1000), r.Intn(1000), r.Intn(10000))
}

func randomURL(r *rand.Rand) string {
	return fmt.Sprintf("https://example.com/page/%d", r.Intn(1000))
}

func randomAddress(r *rand.Rand) string {
	return fmt.Sprintf("%d %s, %s %05d", r.Intn(9999)+1, streets[r.Intn(len(streets))], cities[r.Intn(len(cities))], r.Intn(100000))
}

func randomCity(r *rand.Rand) string {
	return cities[r.Intn(len(cities))]
}

func randomCountry(r *rand.Rand) string {
	return countries[r.Intn(len(countries))]
}

func randomPostalCode(r *rand.Rand) string {
	return fmt.Sprintf("%05d", r.Intn(100000))
}

func randomSentence(r *rand.Rand) string {
	return sentences[r.Intn(len(sentences))]
}

func randomWord(r *rand.Rand) string {
	return words[r.Intn(len(words))]
}

// randomCode builds an uppercase code of exactly n characters, used for
// very short string columns where dictionary words would not fit.
func randomCode(r *rand.Rand, n int) string {
	const letters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	var b strings.Builder
	b.Grow(n)
	for i := 0; i < n; i++ {
		b.WriteByte(letters[r.Intn(len(letters))])
	}
	return b.String()
}
