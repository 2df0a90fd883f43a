package types

// Firestore collection names. Kept in one place so the repos and any backfill
// tooling agree on them.
const (
	CollectionUsers              = "users"
	CollectionConversations      = "conversations"
	CollectionChatSessions       = "chat_sessions"
	CollectionMoodLogs           = "mood_logs"
	CollectionWellnessActivities = "wellness_activities"
	CollectionJournals           = "journals"
)
