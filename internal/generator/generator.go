package generator

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Generator produces one random value conforming to the given constraints.
// Implementations hold no state; all randomness comes from the passed
// source, so a seeded *rand.Rand makes every generator deterministic.
type Generator interface {
	Generate(r *rand.Rand, c Constraints) (any, error)
}

// Func adapts a plain function to the Generator interface. Column
// overrides are usually supplied this way.
type Func func(r *rand.Rand, c Constraints) (any, error)

func (f Func) Generate(r *rand.Rand, c Constraints) (any, error) {
	return f(r, c)
}

// ForKind returns the default generator for a kind. The dispatch is
// closed: unknown kinds are an error, not a fallback.
func ForKind(kind Kind) (Generator, error) {
	if g, ok := defaults[kind]; ok {
		return g, nil
	}
	return nil, fmt.Errorf("no default generator for kind %q", kind)
}

var defaults = map[Kind]Generator{
	KindInteger:    Func(generateInteger),
	KindFloat:      Func(generateFloat),
	KindBoolean:    Func(generateBoolean),
	KindString:     Func(generateString),
	KindText:       Func(generateText),
	KindName:       stringFaker(randomFullName),
	KindFirstName:  stringFaker(randomFirstName),
	KindLastName:   stringFaker(randomLastName),
	KindEmail:      stringFaker(randomEmail),
	KindPhone:      stringFaker(randomPhone),
	KindURL:        stringFaker(randomURL),
	KindAddress:    stringFaker(randomAddress),
	KindCity:       stringFaker(randomCity),
	KindCountry:    stringFaker(randomCountry),
	KindPostalCode: stringFaker(randomPostalCode),
	KindDateTime:   Func(generateDateTime),
	KindDate:       Func(generateDate),
	KindUUID:       Func(generateUUID),
	KindChoice:     Func(generateChoice),
	KindJSON:       Func(generateJSON),
}

func generateInteger(r *rand.Rand, c Constraints) (any, error) {
	if err := c.Validate(KindInteger); err != nil {
		return nil, err
	}
	return c.MinInt + r.Int63n(c.MaxInt-c.MinInt+1), nil
}

func generateFloat(r *rand.Rand, c Constraints) (any, error) {
	if err := c.Validate(KindFloat); err != nil {
		return nil, err
	}
	return c.MinFloat + r.Float64()*(c.MaxFloat-c.MinFloat), nil
}

func generateBoolean(r *rand.Rand, _ Constraints) (any, error) {
	return r.Intn(2) == 1, nil
}

// generateString produces a word-based value within MaxLength. Columns
// four characters or shorter get an uppercase code instead, since no
// dictionary word fits.
func generateString(r *rand.Rand, c Constraints) (any, error) {
	if err := c.Validate(KindString); err != nil {
		return nil, err
	}
	if c.MaxLength > 0 && c.MaxLength <= 4 {
		return randomCode(r, c.MaxLength), nil
	}
	return fitLength(randomWord(r), c.MaxLength), nil
}

func generateText(r *rand.Rand, c Constraints) (any, error) {
	if err := c.Validate(KindText); err != nil {
		return nil, err
	}
	if c.MaxLength > 0 && c.MaxLength <= 4 {
		return randomCode(r, c.MaxLength), nil
	}
	return fitLength(randomSentence(r), c.MaxLength), nil
}

func generateDateTime(r *rand.Rand, c Constraints) (any, error) {
	if err := c.Validate(KindDateTime); err != nil {
		return nil, err
	}
	min, max := c.MinTime, c.MaxTime
	if min.IsZero() && max.IsZero() {
		// Default span: the last decade, matching what the mapper would set.
		max = time.Now()
		min = max.AddDate(-10, 0, 0)
	}
	span := max.Unix() - min.Unix()
	if span <= 0 {
		return min, nil
	}
	return time.Unix(min.Unix()+r.Int63n(span+1), 0).UTC(), nil
}

func generateDate(r *rand.Rand, c Constraints) (any, error) {
	v, err := generateDateTime(r, c)
	if err != nil {
		return nil, err
	}
	return v.(time.Time).Format("2006-01-02"), nil
}

func generateUUID(r *rand.Rand, _ Constraints) (any, error) {
	var b [16]byte
	if _, err := r.Read(b[:]); err != nil {
		return nil, err
	}
	b[6] = (b[6] & 0x0f) | 0x40 // version 4
	b[8] = (b[8] & 0x3f) | 0x80 // RFC 4122 variant
	id, err := uuid.FromBytes(b[:])
	if err != nil {
		return nil, err
	}
	return id.String(), nil
}

func generateChoice(r *rand.Rand, c Constraints) (any, error) {
	if err := c.Validate(KindChoice); err != nil {
		return nil, err
	}
	return c.Choices[r.Intn(len(c.Choices))], nil
}

func generateJSON(_ *rand.Rand, _ Constraints) (any, error) {
	return `{"generated": true}`, nil
}

// stringFaker wraps a word-list generator with MaxLength enforcement.
func stringFaker(fn func(*rand.Rand) string) Generator {
	return Func(func(r *rand.Rand, c Constraints) (any, error) {
		if err := c.Validate(KindString); err != nil {
			return nil, err
		}
		return fitLength(fn(r), c.MaxLength), nil
	})
}

func fitLength(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	trimmed := s[:max]
	// Prefer cutting at a word boundary when one exists.
	if idx := strings.LastIndex(trimmed, " "); idx > 0 {
		trimmed = trimmed[:idx]
	}
	return strings.TrimSpace(trimmed)
}
