package types

// MoodAnalysis is the structured result of running a piece of user text
// through the model. It is returned to the client as-is; persisting it as a
// mood entry (source chat_analysis) is the caller's choice.
type MoodAnalysis struct {
	Mood        string   `json:"mood"`
	Intensity   string   `json:"intensity"`
	Sentiment   float64  `json:"sentiment"`
	Confidence  float64  `json:"confidence"`
	Keywords    []string `json:"keywords"`
	Suggestions []string `json:"suggestions"`
}
