package generator

import (
	"strings"
	"testing"

	"github.com/abhisek/edugen/internal/content"
)

func TestBuildGenerateMessage(t *testing.T) {
	req, _ := content.NewRequest(4, "Types of angles")
	msg := buildGenerateMessage(req, 3)

	for _, want := range []string{
		"Grade Level: 4\n",
		"Topic: Types of angles\n",
		"(2-3 paragraphs)",
		"3 multiple choice questions with 4 options each",
		`"options": ["A) option1", "B) option2", "C) option3", "D) option4"]`,
		"appropriate for grade 4 students.",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("generate message missing %q", want)
		}
	}
	if strings.Contains(msg, "Reviewer Feedback") {
		t.Error("generate message must not mention feedback")
	}
}

func TestBuildRefineMessage(t *testing.T) {
	req, _ := content.NewRequest(9, "Photosynthesis")
	msg := buildRefineMessage(req, []string{"Too advanced", "  ", "Fix question 2 answer key"}, 3)

	if !strings.Contains(msg, "Reviewer Feedback:\n- Too advanced\n- Fix question 2 answer key\n") {
		t.Errorf("feedback not rendered as bullets:\n%s", msg)
	}
	if !strings.Contains(msg, "addresses all feedback") {
		t.Error("missing closing instruction")
	}
	if !strings.Contains(msg, "Grade Level: 9") {
		t.Error("missing grade")
	}
}

func TestBuildFeedback_Empty(t *testing.T) {
	if got := buildFeedback(nil); got != "None" {
		t.Errorf("buildFeedback(nil) = %q, want None", got)
	}
}

func TestBuildMessages_Deterministic(t *testing.T) {
	req, _ := content.NewRequest(4, "Types of angles")
	if buildGenerateMessage(req, 3) != buildGenerateMessage(req, 3) {
		t.Error("generate message is not deterministic")
	}
	fb := []string{"a", "b"}
	if buildRefineMessage(req, fb, 3) != buildRefineMessage(req, fb, 3) {
		t.Error("refine message is not deterministic")
	}
}
