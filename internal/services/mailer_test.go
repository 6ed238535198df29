package services

import (
	"strings"
	"testing"
)

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	msg := BuildMessage("no-reply@hire.example.com", "jane@example.com", "Interview invitation", "<p>Hello</p>")

	for _, want := range []string{
		"From: no-reply@hire.example.com\r\n",
		"To: jane@example.com\r\n",
		"Subject: Interview invitation\r\n",
		"Content-Type: text/html; charset=utf-8\r\n",
	} {
		if !strings.Contains(msg, want) {
			t.Errorf("message missing %q", want)
		}
	}
	if !strings.HasSuffix(msg, "\r\n\r\n<p>Hello</p>") {
		t.Errorf("body not separated from headers: %q", msg)
	}
}
