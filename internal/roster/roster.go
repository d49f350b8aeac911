package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var ErrDuplicate = errors.New("duplicate name in roster")
var ErrEmpty = errors.New("roster is empty")
var ErrUnknownHero = errors.New("hero is not in roster")

// DefaultPoolSize is the number of contestants in a standard run.
const DefaultPoolSize = 100

var prefixes = []string{
	"Ash", "Bram", "Cinder", "Dusk", "Ember", "Flint", "Gale", "Hollow", "Iron", "Jade",
}

var suffixes = []string{
	"fang", "ward", "mere", "crest", "vale", "thorn", "wick", "brook", "helm", "shade",
}

// Default returns n distinct generated names, cycling through the prefix and
// suffix tables and numbering names once the tables are exhausted.
func Default(n int) []string {
	out := make([]string, 0, n)
	combos := len(prefixes) * len(suffixes)
	for i := 0; i < n; i++ {
		name := prefixes[i%len(prefixes)] + suffixes[(i/len(prefixes))%len(suffixes)]
		if cycle := i / combos; cycle > 0 {
			name = fmt.Sprintf("%s %d", name, cycle+1)
		}
		out = append(out, name)
	}
	return out
}

// Load reads one name per line. Blank lines and lines starting with '#' are skipped.
func Load(r io.Reader) ([]string, error) {
	caser := cases.Title(language.English)
	seen := map[string]bool{}
	out := []string{}

	sc := bufio.NewScanner(r)
	for line := 1; sc.Scan(); line++ {
		name := strings.Join(strings.Fields(sc.Text()), " ")
		if name == "" || strings.HasPrefix(name, "#") {
			continue
		}
		name = caser.String(name)
		if seen[name] {
			return nil, fmt.Errorf("line %d: %w: %q", line, ErrDuplicate, name)
		}
		seen[name] = true
		out = append(out, name)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrEmpty
	}
	return out, nil
}

// Seed shuffles names and pins hero to the first slot, where the bracket
// seeds the followed participant. An empty hero pins the first name.
func Seed(names []string, hero string, rng *rand.Rand) ([]string, error) {
	if len(names) == 0 {
		return nil, ErrEmpty
	}
	if hero == "" {
		hero = names[0]
	}

	rest := make([]string, 0, len(names)-1)
	found := false
	for _, n := range names {
		if n == hero && !found {
			found = true
			continue
		}
		rest = append(rest, n)
	}
	if !found {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHero, hero)
	}

	shuffle := rand.Shuffle
	if rng != nil {
		shuffle = rng.Shuffle
	}
	shuffle(len(rest), func(i, j int) { rest[i], rest[j] = rest[j], rest[i] })

	return append([]string{hero}, rest...), nil
}
