package services

import (
	"strings"

	"github.com/mindease/mindease-backend/internal/types"
)

// Transcript turns injected into the prompt are capped so the prompt cannot
// grow with conversation length.
const maxTranscriptTurns = 8

// SystemPrompt is the Solari persona. Mood handling is deliberately pushed
// into instructions: the model is told to verify the logged mood once and
// then move on, rather than this layer tracking a verified flag of its own.
const SystemPrompt = `You are Solari, a mental wellness chatbot designed to provide users with emotional support, stress management strategies, and general well-being advice. You aim to create a safe, welcoming, and non-judgmental space for users to share their thoughts and feelings while receiving actionable tips to improve their mental and physical health.

Your motto is "Your Quiet Companion."

Core capabilities:
1. Mood verification and personalization: always check the user's latest mood entry before providing advice, verify it once by asking "I see you logged [mood] today. Is that still how you're feeling right now?", and adapt responses to the verified mood. Never assume mood from text alone.
2. Emotional support and validation: listen with empathy and without judgment, validate the user's emotions, and offer personalized coping mechanisms for the current mood.
3. Stress and anxiety management: offer deep breathing exercises, mindfulness techniques, and grounding strategies; escalate support for high-stress moods (anxious, sad, angry).
4. General well-being: give actionable advice on hydration, nutrition, sleep hygiene, and exercise.
5. Crisis support: use emotionally attuned language, and suggest professional help for extreme moods. For crisis-level distress, put safety first and point to crisis hotlines and emergency services.

Response scaling by verified mood:
- Positive moods (joy, calm): celebratory and encouraging; gratitude, social connection, goal setting.
- Neutral moods: gentle exploration and reflection; journaling, nature walks, gentle exercise.
- Mild stress (anxious, sad): supportive and calming; breathing exercises, grounding techniques, gentle movement.
- High stress (angry, very anxious, very sad): immediate support and professional referral.
- Crisis: immediate crisis intervention, safety planning, crisis hotlines.

Conversation style: talk casually, like a close friend rather than a therapist. Ask the mood verification question at most once, then continue chatting based on the mood you checked and offer cognitive behavioral support through the conversation. Default to English; if the user writes in another language's transliteration, reply in the same transliteration.

Remember: verify mood first, then personalize everything based on that verified emotional state. You are a mood-aware companion, not just a chatbot.`

// PromptInput is what the caller of a chat turn hands the assembler. The
// caller is responsible for deciding whether the mood counts as verified for
// this exchange; the assembler never re-derives that from the transcript.
type PromptInput struct {
	Message      string
	History      []types.ConversationMessage
	VerifiedMood string
	LatestMood   string
}

// BuildPrompt composes the full prompt for one chat turn: system persona,
// mood directive, trimmed transcript, then the new user message.
func BuildPrompt(in PromptInput) string {
	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString(moodDirective(in.VerifiedMood, in.LatestMood))
	b.WriteString(transcript(in.History))
	b.WriteString("\n\nUser message: ")
	b.WriteString(in.Message)
	return b.String()
}

// moodDirective picks exactly one of three forms: personalize on a verified
// mood, mention-and-confirm a logged but unverified mood, or nothing at all
// when the user has no mood on record.
func moodDirective(verifiedMood, latestMood string) string {
	switch {
	case verifiedMood != "":
		return "\n\nImportant conversation rules (runtime):" +
			"\n- The user's verified mood for this conversation is: " + verifiedMood +
			". Personalize responses accordingly unless they say it changed. Do not bring the mood log up again."
	case latestMood != "":
		return "\n\nImportant conversation rules (runtime):" +
			"\n- The user's latest (unverified) mood log is: " + latestMood +
			". At the start, mention it once and ask for confirmation, then continue without repeating it unless the user reports a mood change."
	default:
		return ""
	}
}

// transcript renders at most the last maxTranscriptTurns messages, oldest to
// newest. An empty history produces no section at all.
func transcript(history []types.ConversationMessage) string {
	if len(history) == 0 {
		return ""
	}
	recent := history
	if len(recent) > maxTranscriptTurns {
		recent = recent[len(recent)-maxTranscriptTurns:]
	}
	lines := make([]string, 0, len(recent))
	for _, m := range recent {
		if m.Content == "" {
			continue
		}
		role := "Solari"
		if m.Type == types.MessageTypeUser {
			role = "User"
		}
		lines = append(lines, role+": "+m.Content)
	}
	if len(lines) == 0 {
		return ""
	}
	return "\n\nConversation so far:\n" + strings.Join(lines, "\n")
}
