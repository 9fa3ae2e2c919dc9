package controllers_test

import (
	"MoodDiaryGo/config"
	"MoodDiaryGo/controllers"
	"MoodDiaryGo/models"
	"MoodDiaryGo/routes"
	"MoodDiaryGo/services"
	"MoodDiaryGo/store"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testToken = "gateway-secret"

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	config.Logger = zap.NewNop().Sugar()
	os.Exit(m.Run())
}

// memStore is just enough of a MoodStore to drive the HTTP surface.
type memStore struct {
	mu      sync.Mutex
	nextID  int
	entries []*models.MoodEntry
}

var _ store.MoodStore = (*memStore)(nil)

func (m *memStore) Insert(userID string, mood models.Mood, note *string, day string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	id := fmt.Sprintf("e%d", m.nextID)
	m.entries = append(m.entries, &models.MoodEntry{
		ID: id, UserID: userID, Mood: mood, Note: note, Day: day, Timestamp: time.Now(),
	})
	return id, nil
}

func (m *memStore) UpdateMoodAndNote(entryID string, mood models.Mood, note *string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.ID == entryID {
			e.Mood = mood
			if note != nil {
				e.Note = note
			}
			e.Timestamp = time.Now()
			return nil
		}
	}
	return fmt.Errorf("no such entry %s", entryID)
}

func (m *memStore) FindEntryByDay(userID, day string) (*models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.entries {
		if e.UserID == userID && e.Day == day {
			copied := *e
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListEntries(userID string) ([]models.MoodEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.MoodEntry
	for _, e := range m.entries {
		if e.UserID == userID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (m *memStore) CountByMood(userID string) ([]store.MoodCount, error) {
	return m.CountByMoodSince(userID, "")
}

func (m *memStore) CountByMoodSince(userID, day string) ([]store.MoodCount, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byMood := make(map[models.Mood]int64)
	for _, e := range m.entries {
		if e.UserID == userID && e.Day >= day {
			byMood[e.Mood]++
		}
	}
	var counts []store.MoodCount
	for mood, n := range byMood {
		counts = append(counts, store.MoodCount{Mood: mood, Count: n})
	}
	return counts, nil
}

func (m *memStore) DeleteAll(userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*models.MoodEntry
	for _, e := range m.entries {
		if e.UserID != userID {
			kept = append(kept, e)
		}
	}
	m.entries = kept
	return nil
}

func newTestRouter(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	ms := &memStore{}
	checker := services.NewDailyChecker(ms)
	conversation := services.NewConversation(ms, checker, controllers.GatewayChannel{}, 30*time.Minute)
	stats := services.NewStats(ms)

	r := gin.New()
	routes.RegisterRoutes(r, conversation, stats, nil, ms, testToken)
	return r, ms
}

type eventsResponse struct {
	Code   string                 `json:"code"`
	Events []models.OutboundEvent `json:"events"`
}

func postEvent(t *testing.T, r *gin.Engine, userID string, ev models.InboundEvent) (*httptest.ResponseRecorder, eventsResponse) {
	t.Helper()
	body, err := json.Marshal(ev)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bot/events", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-Auth", testToken)
	req.Header.Set("X-User-ID", userID)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed eventsResponse
	if w.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestEventEndpointFullCreateFlow(t *testing.T) {
	r, ms := newTestRouter(t)

	w, resp := postEvent(t, r, "u1", models.InboundEvent{Type: models.EventStartCreate})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, models.ReplyPrompt, resp.Events[0].Kind)
	assert.Equal(t, []string{"happy", "sad", "angry", "neutral"}, resp.Events[0].Options)

	w, _ = postEvent(t, r, "u1", models.InboundEvent{Type: models.EventMoodSelected, Mood: "happy"})
	require.Equal(t, http.StatusOK, w.Code)

	w, resp = postEvent(t, r, "u1", models.InboundEvent{Type: models.EventNoteText, Text: "all good"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, models.ReplyConfirmation, resp.Events[0].Kind)

	entries, err := ms.ListEntries("u1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, models.MoodHappy, entries[0].Mood)
}

func TestEventEndpointDuplicateCreate(t *testing.T) {
	r, ms := newTestRouter(t)
	_, err := ms.Insert("u1", models.MoodSad, nil, store.Today())
	require.NoError(t, err)

	w, resp := postEvent(t, r, "u1", models.InboundEvent{Type: models.EventStartCreate})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "duplicate_entry", resp.Code)
	require.Len(t, resp.Events, 1)
	assert.Equal(t, models.ReplyRejection, resp.Events[0].Kind)
}

func TestEventEndpointRejectsBadToken(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bot/events", bytes.NewReader([]byte(`{"type":"cancel"}`)))
	req.Header.Set("X-Internal-Auth", "wrong")
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestEventEndpointRequiresUserID(t *testing.T) {
	r, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/bot/events", bytes.NewReader([]byte(`{"type":"cancel"}`)))
	req.Header.Set("X-Internal-Auth", testToken)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestClearHistoryRequiresConfirmation(t *testing.T) {
	r, ms := newTestRouter(t)
	_, err := ms.Insert("u1", models.MoodSad, nil, store.Today())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/history", nil)
	req.Header.Set("X-Internal-Auth", testToken)
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/history?confirm=true", nil)
	req.Header.Set("X-Internal-Auth", testToken)
	req.Header.Set("X-User-ID", "u1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	entries, err := ms.ListEntries("u1")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestWeeklyStatsEndpoint(t *testing.T) {
	r, ms := newTestRouter(t)
	_, err := ms.Insert("u1", models.MoodHappy, nil, store.Today())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats/weekly", nil)
	req.Header.Set("X-Internal-Auth", testToken)
	req.Header.Set("X-User-ID", "u1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var report services.WeeklyReport
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
	assert.Equal(t, int64(1), report.Total)
}
