package compare

import (
	"bytes"
	"errors"
	"fmt"

	json "github.com/goccy/go-json"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
}

// Format encodes the comparison set followed by a newline. Scenario labels
// such as "raise_salary:amount=5000" are written without HTML escaping.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil {
		return "", errors.New("no comparison to format")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", fmt.Errorf("failed to encode comparison: %w", err)
	}
	return buf.String(), nil
}
