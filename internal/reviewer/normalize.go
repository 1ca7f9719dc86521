package reviewer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/content"
)

// genericFeedback stands in when a reviewer fails content without saying why.
const genericFeedback = "The reviewer rejected the content without specific feedback; improve clarity, grade-appropriateness and question quality."

// reviewOutput is the raw service response before normalization.
type reviewOutput struct {
	Status   string          `json:"status"`
	Feedback json.RawMessage `json:"feedback"`
}

// normalize turns a raw review into a Verdict. Remarks attached to a pass
// are returned separately since a passing verdict carries no feedback.
func normalize(out reviewOutput) (v content.Verdict, remarks []string, err error) {
	items, err := feedbackItems(out.Feedback)
	if err != nil {
		return content.Verdict{}, nil, err
	}

	switch status := strings.ToLower(strings.TrimSpace(out.Status)); content.Status(status) {
	case content.StatusPass:
		return content.Pass(), items, nil
	case content.StatusFail:
		if len(items) == 0 {
			items = []string{genericFeedback}
		}
		return content.Fail(items...), nil, nil
	default:
		unknown := fmt.Sprintf("The reviewer returned an unrecognized status %q.", out.Status)
		return content.Fail(append([]string{unknown}, items...)...), nil, nil
	}
}

// feedbackItems accepts a missing value, a string or a list. Blank items
// are dropped; non-string list items keep their JSON text.
func feedbackItems(raw json.RawMessage) ([]string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return nonBlank([]string{single}), nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("parse feedback: %w", err)
	}
	items := make([]string, 0, len(list))
	for _, el := range list {
		var s string
		if err := json.Unmarshal(el, &s); err == nil {
			items = append(items, s)
			continue
		}
		items = append(items, string(el))
	}
	return nonBlank(items), nil
}

func nonBlank(items []string) []string {
	out := items[:0]
	for _, s := range items {
		if s = strings.TrimSpace(s); s != "" && s != "null" {
			out = append(out, s)
		}
	}
	return out
}
