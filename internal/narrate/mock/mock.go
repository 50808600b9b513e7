// Package mock provides a test double for the narrate.Synthesizer interface.
//
// Speak never produces events on its own. Tests drive an utterance through
// its recorded Listener:
//
//	s := &mock.Synthesizer{VoicesResult: []string{"en", "de"}}
//	ctrl := narrate.New(s, narrate.Options{})
//	_ = ctrl.Start("hello world")
//	s.Last().Listener.Progress(6)
package mock

import (
	"sync"

	"github.com/Zuo-Peng/chatcast/internal/narrate"
)

// SpeakCall records a single invocation of Speak.
type SpeakCall struct {
	Utterance narrate.Utterance
	Listener  narrate.Listener
}

// Synthesizer is a mock implementation of narrate.Synthesizer.
type Synthesizer struct {
	mu sync.Mutex

	// VoicesResult is returned by Voices.
	VoicesResult []string

	// SpeakErr, if non-nil, is returned from Speak instead of recording a
	// playable utterance.
	SpeakErr error

	// SpeakCalls records every call to Speak in order.
	SpeakCalls []SpeakCall

	CancelCount int
	PauseCount  int
	ResumeCount int
}

var _ narrate.Synthesizer = (*Synthesizer)(nil)

func (s *Synthesizer) Voices() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.VoicesResult...)
}

func (s *Synthesizer) Speak(u narrate.Utterance, l narrate.Listener) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SpeakCalls = append(s.SpeakCalls, SpeakCall{Utterance: u, Listener: l})
	return s.SpeakErr
}

func (s *Synthesizer) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.CancelCount++
}

func (s *Synthesizer) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.PauseCount++
}

func (s *Synthesizer) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ResumeCount++
}

// Calls returns a copy of the recorded Speak calls.
func (s *Synthesizer) Calls() []SpeakCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]SpeakCall(nil), s.SpeakCalls...)
}

// Last returns the most recent Speak call. It panics when Speak was never
// called.
func (s *Synthesizer) Last() SpeakCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.SpeakCalls[len(s.SpeakCalls)-1]
}

// Reset clears all call records.
func (s *Synthesizer) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.SpeakCalls = nil
	s.CancelCount = 0
	s.PauseCount = 0
	s.ResumeCount = 0
}
