package services

import (
	"strings"

	"github.com/mindease/mindease-backend/internal/types"
)

// MoodVerifier decides whether the user has already confirmed their logged
// mood somewhere in the conversation so far. It is a strategy interface so
// the heuristic can be swapped (for a model-backed classifier, say) without
// touching the chat flow.
type MoodVerifier interface {
	InferVerificationState(history []types.ConversationMessage) bool
}

// phraseVerifier treats a short affirmative user reply anywhere in the
// transcript as confirmation. Deliberately loose: a false positive just means
// the assistant skips re-asking, which is the cheaper mistake.
type phraseVerifier struct {
	phrases []string
}

func NewPhraseVerifier() MoodVerifier {
	return &phraseVerifier{
		phrases: []string{
			"yes", "yess", "yeah", "yep", "yup", "correct",
			"that's right", "thats right", "still feeling", "that is right",
			"i confirm", "confirmed", "exactly", "right", "true", "indeed",
		},
	}
}

func (v *phraseVerifier) InferVerificationState(history []types.ConversationMessage) bool {
	for _, m := range history {
		if m.Type != types.MessageTypeUser {
			continue
		}
		text := strings.ToLower(strings.TrimSpace(m.Content))
		if text == "" {
			continue
		}
		for _, p := range v.phrases {
			if text == p || strings.HasPrefix(text, p+" ") || strings.HasPrefix(text, p+",") || strings.HasPrefix(text, p+".") || strings.HasPrefix(text, p+"!") {
				return true
			}
		}
	}
	return false
}
