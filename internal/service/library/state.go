package library

import (
	"context"
	"sync"

	"github.com/lyra-player/lyra/internal/store"
	"github.com/lyra-player/lyra/internal/utils"
)

// StateChange is one observable transition of a track's download state.
type StateChange struct {
	TrackID string
	State   DownloadState
}

const subscriberBufferSize = 64

// StateTracker holds the current download state of every known track and
// fans out transitions to subscribers. Safe for concurrent use.
type StateTracker struct {
	mu          sync.RWMutex
	states      map[string]DownloadState
	subscribers map[int]chan StateChange
	nextSubID   int
}

// NewStateTracker creates an empty tracker.
func NewStateTracker() *StateTracker {
	return &StateTracker{
		states:      make(map[string]DownloadState),
		subscribers: make(map[int]chan StateChange),
	}
}

// InitFromStore derives initial states from the persisted library:
// a track whose audio file exists locally is downloaded, everything else
// has no state. Previous contents of the tracker are replaced.
func (t *StateTracker) InitFromStore(ctx context.Context, s *store.Store) error {
	tracks, err := s.ListTracks(ctx)
	if err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.states = make(map[string]DownloadState, len(tracks))

	for _, track := range tracks {
		state := NoneState()

		if track.AudioLocator != "" && !utils.IsRemoteURL(track.AudioLocator) {
			if exists, existsErr := utils.IsFileExist(track.AudioLocator); existsErr == nil && exists {
				state = DownloadedState()
			}
		}

		t.states[track.ID] = state
	}

	return nil
}

// Get returns the current state of a track.
// Unknown tracks report no state.
func (t *StateTracker) Get(trackID string) DownloadState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.states[trackID]
}

// Set records a state transition and notifies subscribers.
// A subscriber whose channel is full misses the transition instead of
// blocking the download pipeline.
func (t *StateTracker) Set(trackID string, state DownloadState) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.states[trackID] = state

	for _, subscriber := range t.subscribers {
		select {
		case subscriber <- StateChange{TrackID: trackID, State: state}:
		default:
		}
	}
}

// Remove forgets a track, usually because it was deleted from the library.
func (t *StateTracker) Remove(trackID string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	delete(t.states, trackID)
}

// Snapshot returns a copy of all known states.
func (t *StateTracker) Snapshot() map[string]DownloadState {
	t.mu.RLock()
	defer t.mu.RUnlock()

	snapshot := make(map[string]DownloadState, len(t.states))
	for trackID, state := range t.states {
		snapshot[trackID] = state
	}

	return snapshot
}

// Subscribe returns a channel of state transitions and a function that
// unsubscribes and closes the channel.
func (t *StateTracker) Subscribe() (<-chan StateChange, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextSubID
	t.nextSubID++

	ch := make(chan StateChange, subscriberBufferSize)
	t.subscribers[id] = ch

	unsubscribe := func() {
		t.mu.Lock()
		defer t.mu.Unlock()

		if subscriber, ok := t.subscribers[id]; ok {
			delete(t.subscribers, id)
			close(subscriber)
		}
	}

	return ch, unsubscribe
}
