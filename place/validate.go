package place

import (
	"fmt"
	"regexp"
	"strings"
)

// Only ASCII letters, whitespace and hyphens. This rejects real names with
// accents, apostrophes or digits ("Saint-Étienne", "L'Aquila"); that is a
// known limitation of the allow-list.
// RE2's \s is only [\t\n\f\r ], so the rest of Unicode whitespace
// (\v, the \x1c-\x1f separators, NEL and the Z categories) is listed too.
var cityNamePattern = regexp.MustCompile(`^[A-Za-z\s\v\x{1c}-\x{1f}\x{85}\p{Z}\-]+$`)

// ValidateCityName trims raw and checks it against the allow-list. The
// returned name is the trimmed input.
func ValidateCityName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", fmt.Errorf("%w: please type a city name", ErrValidation)
	}
	if !cityNamePattern.MatchString(name) {
		return "", fmt.Errorf("%w: city name cannot contain numbers or symbols", ErrValidation)
	}
	return name, nil
}

// cacheKey folds case and inner whitespace so "new  york" and "New York"
// share an entry.
func cacheKey(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}
