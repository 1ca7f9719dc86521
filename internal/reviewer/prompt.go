package reviewer

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/content"
)

const systemPrompt = "You are an expert educational content reviewer. Always respond with valid JSON only."

// buildReviewMessage embeds the draft as indented JSON together with the
// evaluation criteria.
func buildReviewMessage(d content.Draft, req content.Request) (string, error) {
	draftJSON, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode draft: %w", err)
	}

	var b strings.Builder
	grade := req.Grade()

	fmt.Fprintf(&b, "You are an educational content reviewer. Review this content for grade %d students on the topic %q.\n\n", grade, req.Topic())

	b.WriteString("Content to Review:\n")
	b.Write(draftJSON)
	b.WriteString("\n\n")

	b.WriteString("Evaluation Criteria:\n")
	fmt.Fprintf(&b, "1. Is the explanation clear and age-appropriate for grade %d?\n", grade)
	b.WriteString("2. Are the vocabulary and concepts suitable for this grade level?\n")
	b.WriteString("3. Is the explanation factually and conceptually correct, and is every answer key right?\n")
	b.WriteString("4. Are the MCQs well-formed with one clear correct answer?\n")
	b.WriteString("5. Do the questions test understanding of the topic?\n")
	b.WriteString("6. Are all options plausible but only one correct?\n")

	b.WriteString(`
Return ONLY a valid JSON object with this exact structure:
{
    "status": "pass" or "fail",
    "feedback": ["feedback point 1", "feedback point 2", ...]
}

If content is excellent, return status "pass" with empty or positive feedback.
If improvements needed, return status "fail" with specific feedback points.`)

	return b.String(), nil
}
