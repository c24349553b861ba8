package reviews

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/Ian-Lusule/Fraud-App-Analyser/pkg/models/domain"
)

var appIDPattern = regexp.MustCompile(`^[a-zA-Z0-9._]+$`)

// ResolveAppID accepts a bare package name or a store listing URL carrying an
// id query parameter and returns the package name.
func ResolveAppID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", &domain.InvalidConfigurationError{Field: "app", Value: input, Reason: "app id is required"}
	}

	if strings.Contains(input, "://") || strings.Contains(input, "?") {
		u, err := url.Parse(input)
		if err != nil {
			return "", &domain.InvalidConfigurationError{Field: "app", Value: input, Reason: fmt.Sprintf("invalid url: %v", err)}
		}
		input = u.Query().Get("id")
	}

	if !appIDPattern.MatchString(input) {
		return "", &domain.InvalidConfigurationError{Field: "app", Value: input, Reason: "not a valid app id"}
	}
	return input, nil
}
