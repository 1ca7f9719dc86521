package generator

import (
	"fmt"
	"strings"

	"github.com/abhisek/edugen/internal/content"
)

const systemPrompt = "You are an expert educational content creator. Always respond with valid JSON only."

// buildGenerateMessage constructs the user message for a first draft.
func buildGenerateMessage(req content.Request, questions int) string {
	var b strings.Builder

	b.WriteString("You are an educational content generator. Create grade-appropriate content for:\n\n")
	writeRequest(&b, req)

	b.WriteString("\nGenerate:\n")
	writeTasks(&b, questions)
	writeFormat(&b, "your explanation here")

	fmt.Fprintf(&b, "\nMake sure the content is appropriate for grade %d students.", req.Grade())
	return b.String()
}

// buildRefineMessage constructs the user message for a revised draft. Only
// the reviewer's feedback is carried over, not the previous draft.
func buildRefineMessage(req content.Request, feedback []string, questions int) string {
	var b strings.Builder

	b.WriteString("You are an educational content generator. Refine the content based on feedback:\n\n")
	writeRequest(&b, req)

	b.WriteString("\nReviewer Feedback:\n")
	b.WriteString(buildFeedback(feedback))

	b.WriteString("\n\nGenerate improved content addressing all feedback points:\n")
	writeTasks(&b, questions)
	writeFormat(&b, "your improved explanation here")

	fmt.Fprintf(&b, "\nMake sure the content is appropriate for grade %d students and addresses all feedback.", req.Grade())
	return b.String()
}

// buildFeedback renders feedback items as a bullet list.
func buildFeedback(feedback []string) string {
	var b strings.Builder
	for _, f := range feedback {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		fmt.Fprintf(&b, "- %s\n", f)
	}
	if b.Len() == 0 {
		return "None"
	}
	return strings.TrimRight(b.String(), "\n")
}

func writeRequest(b *strings.Builder, req content.Request) {
	fmt.Fprintf(b, "Grade Level: %d\n", req.Grade())
	fmt.Fprintf(b, "Topic: %s\n", req.Topic())
}

func writeTasks(b *strings.Builder, questions int) {
	b.WriteString("1. A clear, age-appropriate explanation of the topic (2-3 paragraphs)\n")
	fmt.Fprintf(b, "2. %d multiple choice questions with %d options each\n", questions, content.OptionCount)
}

func writeFormat(b *strings.Builder, placeholder string) {
	b.WriteString("\nReturn ONLY a valid JSON object with this exact structure:\n")
	fmt.Fprintf(b, `{
    "explanation": "%s",
    "mcqs": [
        {
            "question": "question text",
            "options": ["A) option1", "B) option2", "C) option3", "D) option4"],
            "answer": "A) correct option"
        }
    ]
}
`, placeholder)
}
