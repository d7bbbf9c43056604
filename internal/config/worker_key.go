package config

type WorkerKeyStruct struct {
	// SubmissionEventsChannel is the Redis PubSub channel the scoring
	// pipeline publishes to after each persisted submission. The
	// leaderboard refresh worker and live WebSocket streams subscribe.
	SubmissionEventsChannel string
}

var WorkerKey = &WorkerKeyStruct{
	SubmissionEventsChannel: "submission_events",
}
