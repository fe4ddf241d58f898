package translate

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/fivetwenty-io/flexvm/internal/constants"
)

var (
	parameterIDList = regexp.MustCompile(`(?i)(parameter\s+ids?\W*)(\d+(?:(?:\s*,\s*|\s+and\s+)\d+)*)`)
	digits          = regexp.MustCompile(`\d+`)
)

// RewriteParameterIDs replaces the numeric ids that follow "parameter id" in
// an API error message with "name(id)". Ids unknown to the catalog are left
// as they are, and messages without the marker are returned unchanged.
func (t *Translator) RewriteParameterIDs(message string) string {
	if !strings.Contains(strings.ToLower(message), constants.ParameterIDMarker) {
		return message
	}

	return parameterIDList.ReplaceAllStringFunc(message, func(match string) string {
		groups := parameterIDList.FindStringSubmatch(match)
		if len(groups) != 3 {
			return match
		}

		ids := digits.ReplaceAllStringFunc(groups[2], func(number string) string {
			id, err := strconv.Atoi(number)
			if err != nil {
				return number
			}

			name := t.catalog.ParameterNameByID(id)
			if name == number {
				return number
			}

			return name + "(" + number + ")"
		})

		return groups[1] + ids
	})
}
