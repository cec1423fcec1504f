package play

// exerciseReadyMsg is sent when an exercise has been loaded into the live
// slot (initial load or LoadNext).
type exerciseReadyMsg struct {
	Err error
}

// answerGradedMsg is sent when SelectAnswer has completed its round trip.
type answerGradedMsg struct {
	Err error
}

// prefetchDoneMsg is sent when the background prefetch finished, whatever
// the outcome.
type prefetchDoneMsg struct{}

// verdictDoneMsg is sent when a good/bad verdict was recorded.
type verdictDoneMsg struct {
	Err error
}
