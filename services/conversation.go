package services

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/models"
	"MoodDiaryGo/store"
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// Channel carries outbound events back to the user. The transport
// behind it (Telegram gateway, test buffer) is not the core's concern.
type Channel interface {
	Send(ctx context.Context, userID string, event models.OutboundEvent) error
}

// SessionState is the position of an open flow.
type SessionState string

const (
	StateSelectingMood SessionState = "selecting_mood"
	StateAddingNote    SessionState = "adding_note"
)

// SessionMode distinguishes the create and update flows.
type SessionMode string

const (
	ModeCreate SessionMode = "create"
	ModeUpdate SessionMode = "update"
)

// Session is the transient in-memory record of one in-progress flow.
// Never persisted; exclusively owned by the Conversation that holds it.
type Session struct {
	UserID       string
	State        SessionState
	Mode         SessionMode
	Mood         models.Mood // set once selected
	TargetID     string      // entry being mutated, update mode only
	LastActivity time.Time
}

// Conversation drives the multi-step mood dialog. Sessions are keyed
// by user id; events for the same user are handled one at a time,
// events for different users run independently.
type Conversation struct {
	store   store.MoodStore
	checker *DailyChecker
	channel Channel
	ttl     time.Duration

	mu        sync.Mutex
	sessions  map[string]*Session
	userLocks map[string]*sync.Mutex

	done chan struct{}
	wg   sync.WaitGroup
}

func NewConversation(s store.MoodStore, checker *DailyChecker, channel Channel, ttl time.Duration) *Conversation {
	return &Conversation{
		store:     s,
		checker:   checker,
		channel:   channel,
		ttl:       ttl,
		sessions:  make(map[string]*Session),
		userLocks: make(map[string]*sync.Mutex),
		done:      make(chan struct{}),
	}
}

// HandleEvent processes one inbound event for one user. Replies go out
// through the channel; the returned error classifies what happened and
// is always one of the sentinel errors (or wraps ErrPersistence) when
// the event could not do what it asked.
func (c *Conversation) HandleEvent(ctx context.Context, userID string, ev models.InboundEvent) error {
	unlock := c.lockUser(userID)
	defer unlock()

	switch ev.Type {
	case models.EventStartCreate:
		return c.startCreate(ctx, userID)
	case models.EventStartUpdate:
		return c.startUpdate(ctx, userID)
	case models.EventMoodSelected:
		return c.moodSelected(ctx, userID, ev.Mood)
	case models.EventNoteText:
		return c.noteText(ctx, userID, ev.Text)
	case models.EventSkipNote:
		return c.commit(ctx, userID, nil)
	case models.EventCancel:
		return c.cancel(ctx, userID)
	default:
		return fmt.Errorf("unknown event type %q", ev.Type)
	}
}

func (c *Conversation) startCreate(ctx context.Context, userID string) error {
	c.replaceOpenSession(userID)

	has, err := c.checker.HasEntryToday(userID)
	if err != nil {
		c.send(ctx, userID, models.Rejection("Sorry, something went wrong. Try again later."))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if has {
		c.send(ctx, userID, models.Rejection("You already recorded a mood today. Use the update flow to change it."))
		return ErrDuplicateEntry
	}

	c.putSession(&Session{
		UserID:       userID,
		State:        StateSelectingMood,
		Mode:         ModeCreate,
		LastActivity: time.Now(),
	})
	c.send(ctx, userID, models.Prompt("Select your mood:", moodOptions()...))
	return nil
}

func (c *Conversation) startUpdate(ctx context.Context, userID string) error {
	c.replaceOpenSession(userID)

	entry, err := c.checker.TodayEntry(userID)
	if err != nil {
		c.send(ctx, userID, models.Rejection("Sorry, something went wrong. Try again later."))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	if entry == nil {
		c.send(ctx, userID, models.Rejection("You haven't recorded a mood today yet. Record one first, then update it."))
		return ErrNoEntryToUpdate
	}

	c.putSession(&Session{
		UserID:       userID,
		State:        StateSelectingMood,
		Mode:         ModeUpdate,
		TargetID:     entry.ID,
		LastActivity: time.Now(),
	})

	note := entry.NoteOrEmpty()
	if note == "" {
		note = "No note"
	}
	text := fmt.Sprintf("Previously saved mood:\nMood: %s\nNote: %s\n\nSelect your updated mood:",
		entry.Mood.Display(), note)
	c.send(ctx, userID, models.Prompt(text, append(moodOptions(), "cancel")...))
	return nil
}

func (c *Conversation) moodSelected(ctx context.Context, userID, raw string) error {
	sess := c.getSession(userID)
	if sess == nil || sess.State != StateSelectingMood {
		c.send(ctx, userID, models.Rejection("No mood recording is in progress."))
		return ErrNoActiveSession
	}

	mood, err := models.ParseMood(raw)
	if err != nil {
		// Unknown token: no transition, just ask again.
		config.Logger.Debugw("ignoring invalid mood selection", "userID", userID, "token", raw)
		c.send(ctx, userID, models.Prompt("Select your mood:", moodOptions()...))
		return ErrInvalidSelection
	}

	c.mu.Lock()
	sess.Mood = mood
	sess.State = StateAddingNote
	sess.LastActivity = time.Now()
	c.mu.Unlock()

	if sess.Mode == ModeUpdate {
		c.send(ctx, userID, models.Prompt(fmt.Sprintf(
			"Updating to %s\nSend an updated note, or skip to keep the current note.", mood.Display())))
	} else {
		c.send(ctx, userID, models.Prompt(fmt.Sprintf(
			"Selected mood: %s\nWould you like to add a note? Send one, or skip.", mood.Display())))
	}
	return nil
}

func (c *Conversation) noteText(ctx context.Context, userID, text string) error {
	sess := c.getSession(userID)
	if sess == nil || sess.State != StateAddingNote {
		c.send(ctx, userID, models.Rejection("No mood recording is in progress."))
		return ErrNoActiveSession
	}

	// Command-shaped messages are not note text; the gateway normally
	// translates them into skip/cancel events before they get here.
	if strings.HasPrefix(strings.TrimSpace(text), "/") {
		c.send(ctx, userID, models.Prompt("Send a note as plain text, or skip."))
		return nil
	}

	return c.commit(ctx, userID, &text)
}

// commit finishes the flow: nil note means "skipped". Create inserts a
// fresh entry, update mutates the bound one. The session is destroyed
// on every outcome, success or failure.
func (c *Conversation) commit(ctx context.Context, userID string, note *string) error {
	sess := c.getSession(userID)
	if sess == nil || sess.State != StateAddingNote {
		c.send(ctx, userID, models.Rejection("No mood recording is in progress."))
		return ErrNoActiveSession
	}

	c.dropSession(userID)

	var err error
	if sess.Mode == ModeUpdate {
		err = c.store.UpdateMoodAndNote(sess.TargetID, sess.Mood, note)
	} else {
		_, err = c.store.Insert(userID, sess.Mood, note, store.Today())
	}
	if err != nil {
		config.Logger.Errorw("mood commit failed",
			"userID", userID,
			"mode", sess.Mode,
			"error", err,
		)
		c.send(ctx, userID, models.Rejection("Sorry, something went wrong. Your entry was not saved. Try again later."))
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	InvalidateWeeklyCache(ctx, userID)

	c.send(ctx, userID, models.Confirmation(confirmationText(sess.Mode, sess.Mood, note)))
	return nil
}

func (c *Conversation) cancel(ctx context.Context, userID string) error {
	if c.getSession(userID) == nil {
		c.send(ctx, userID, models.Rejection("Nothing to cancel."))
		return ErrNoActiveSession
	}
	c.dropSession(userID)
	c.send(ctx, userID, models.Confirmation("Operation cancelled. You can start again any time."))
	return nil
}

func confirmationText(mode SessionMode, mood models.Mood, note *string) string {
	switch {
	case mode == ModeUpdate && note != nil:
		return fmt.Sprintf("Your entry has been updated to %s with note: %s", mood.Display(), *note)
	case mode == ModeUpdate:
		return fmt.Sprintf("Your mood has been updated to %s (note unchanged)", mood.Display())
	case note != nil:
		return fmt.Sprintf("Your %s mood has been saved with note: %s", mood.Display(), *note)
	default:
		return fmt.Sprintf("Your %s mood has been saved without a note", mood.Display())
	}
}

func moodOptions() []string {
	moods := models.AllMoods()
	options := make([]string, len(moods))
	for i, m := range moods {
		options[i] = string(m)
	}
	return options
}

// ActiveSession returns a copy of the user's open session, if any.
func (c *Conversation) ActiveSession(userID string) (Session, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	sess, ok := c.sessions[userID]
	if !ok {
		return Session{}, false
	}
	return *sess, true
}

// StartSweeper launches the background loop that auto-cancels sessions
// idle longer than the configured TTL.
func (c *Conversation) StartSweeper(interval time.Duration) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				c.sweep()
			case <-c.done:
				return
			}
		}
	}()
}

// Stop halts the sweeper and waits for it to finish.
func (c *Conversation) Stop() {
	close(c.done)
	c.wg.Wait()
}

func (c *Conversation) sweep() {
	cutoff := time.Now().Add(-c.ttl)

	c.mu.Lock()
	var expired []string
	for userID, sess := range c.sessions {
		if sess.LastActivity.Before(cutoff) {
			expired = append(expired, userID)
		}
	}
	for _, userID := range expired {
		delete(c.sessions, userID)
	}
	c.mu.Unlock()

	for _, userID := range expired {
		config.Logger.Infow("abandoned conversation auto-cancelled",
			"userID", userID,
			"idleLongerThan", c.ttl.String(),
		)
	}
}

func (c *Conversation) send(ctx context.Context, userID string, event models.OutboundEvent) {
	if err := c.channel.Send(ctx, userID, event); err != nil {
		config.Logger.Warnw("channel send failed",
			"userID", userID,
			"kind", event.Kind,
			"error", err,
		)
	}
}

// replaceOpenSession drops any session left over from a previous flow.
// A fresh Start always wins over a stale one.
func (c *Conversation) replaceOpenSession(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.sessions[userID]; ok {
		config.Logger.Infow("replacing open conversation session", "userID", userID)
		delete(c.sessions, userID)
	}
}

func (c *Conversation) getSession(userID string) *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessions[userID]
}

func (c *Conversation) putSession(sess *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sessions[sess.UserID] = sess
}

func (c *Conversation) dropSession(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sessions, userID)
}

// lockUser serializes event handling per user id.
func (c *Conversation) lockUser(userID string) func() {
	c.mu.Lock()
	lock, ok := c.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		c.userLocks[userID] = lock
	}
	c.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
