package delivery

import "github.com/stretchr/testify/mock"

// MatchJob creates a custom matcher for job arguments in mocks
func MatchJob(matcher func(Job) bool) interface{} {
	return mock.MatchedBy(matcher)
}

// MatchAttempt creates a custom matcher for attempt arguments in mocks
func MatchAttempt(matcher func(Attempt) bool) interface{} {
	return mock.MatchedBy(matcher)
}
