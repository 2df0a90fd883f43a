package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/mindease/mindease-backend/internal/types"
)

func turn(i int) []types.ConversationMessage {
	return []types.ConversationMessage{
		{Type: types.MessageTypeUser, Content: fmt.Sprintf("user says %d", i)},
		{Type: types.MessageTypeAI, Content: fmt.Sprintf("solari says %d", i)},
	}
}

func TestBuildPromptTrimsToLastEight(t *testing.T) {
	var history []types.ConversationMessage
	for i := 0; i < 10; i++ {
		history = append(history, turn(i)...)
	}
	// 20 messages in, only the last 8 may appear.
	prompt := BuildPrompt(PromptInput{Message: "how about now", History: history})

	if strings.Contains(prompt, "user says 5") {
		t.Fatalf("message outside the window leaked into the prompt")
	}
	if !strings.Contains(prompt, "User: user says 6") {
		t.Fatalf("oldest in-window message missing")
	}
	if !strings.Contains(prompt, "Solari: solari says 9") {
		t.Fatalf("newest message missing")
	}

	// Oldest to newest within the transcript section.
	if strings.Index(prompt, "user says 6") > strings.Index(prompt, "solari says 9") {
		t.Fatalf("transcript not in chronological order")
	}
}

func TestBuildPromptEmptyHistoryOmitsTranscript(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Message: "hello"})
	if strings.Contains(prompt, "Conversation so far") {
		t.Fatalf("empty history must omit the transcript section")
	}
	if !strings.Contains(prompt, "User message: hello") {
		t.Fatalf("user message missing from prompt")
	}
	if !strings.Contains(prompt, "Solari") {
		t.Fatalf("system persona missing from prompt")
	}
}

func TestBuildPromptVerifiedMoodDirective(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Message: "hi", VerifiedMood: "anxious"})
	if !strings.Contains(prompt, "verified mood for this conversation is: anxious") {
		t.Fatalf("verified directive missing")
	}
	if strings.Contains(prompt, "ask for confirmation") {
		t.Fatalf("verified directive must not request confirmation")
	}
}

func TestBuildPromptLatestMoodDirectiveAsksOnce(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Message: "hi", LatestMood: "sad"})
	if !strings.Contains(prompt, "latest (unverified) mood log is: sad") {
		t.Fatalf("latest-mood directive missing")
	}
	if got := strings.Count(prompt, "ask for confirmation"); got != 1 {
		t.Fatalf("confirmation requests: want=1 got=%d", got)
	}
}

func TestBuildPromptVerifiedWinsOverLatest(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Message: "hi", VerifiedMood: "calm", LatestMood: "sad"})
	if !strings.Contains(prompt, "verified mood for this conversation is: calm") {
		t.Fatalf("verified directive missing")
	}
	if strings.Contains(prompt, "unverified") {
		t.Fatalf("latest-mood directive must be suppressed when verified is set")
	}
}

func TestBuildPromptNoMoodNoDirective(t *testing.T) {
	prompt := BuildPrompt(PromptInput{Message: "hi"})
	if strings.Contains(prompt, "Important conversation rules (runtime)") {
		t.Fatalf("no mood on record must produce no mood directive")
	}
}
