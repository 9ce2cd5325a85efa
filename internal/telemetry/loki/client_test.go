package loki

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureLoki(t *testing.T, status int) (*httptest.Server, <-chan pushRequest) {
	t.Helper()
	got := make(chan pushRequest, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, pushPath, r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var req pushRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		got <- req
		if status != http.StatusNoContent {
			http.Error(w, "entry out of order", status)
			return
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func TestEntryFromEvent(t *testing.T) {
	received := time.Date(2021, 1, 2, 0, 0, 0, 0, time.UTC)
	raw := []byte(`{"sessionId":"s1","room":"c1:api.alice.vaspbot.net","vaspId":"api.alice.vaspbot.net","eventType":"routed","source":"router","createdAt":"2021-01-01T00:00:00Z"}`)

	e := EntryFromEvent(raw, received)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), e.Time)
	assert.Equal(t, string(raw), e.Line)
	assert.Equal(t, map[string]string{
		"vasp_id":    "api.alice.vaspbot.net",
		"event_type": "routed",
		"source":     "router",
	}, e.Labels, "session and room ids are not labels")

	e = EntryFromEvent([]byte("not json"), received)
	assert.Equal(t, received, e.Time)
	assert.Equal(t, "not json", e.Line)
	assert.Equal(t, "unparsed", e.Labels["event_type"])
}

func TestPush_GroupsStreamsByLabels(t *testing.T) {
	srv, got := captureLoki(t, http.StatusNoContent)
	c, err := New(srv.URL+"/", WithJob("relay-test"))
	require.NoError(t, err)

	t0 := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	alice := map[string]string{"vasp_id": "api.alice.vaspbot.net", "event_type": "routed"}
	require.NoError(t, c.Push(context.Background(),
		Entry{Time: t0.Add(2 * time.Second), Line: "second", Labels: alice},
		Entry{Time: t0, Line: "bob", Labels: map[string]string{"vasp_id": "api.bob.vaspbot.net", "event_type": "routed"}},
		Entry{Time: t0.Add(time.Second), Line: "first", Labels: alice},
	))

	req := <-got
	require.Len(t, req.Streams, 2)
	first := req.Streams[0]
	assert.Equal(t, "relay-test", first.Labels["job"])
	assert.Equal(t, "api.alice.vaspbot.net", first.Labels["vasp_id"])
	assert.Equal(t, [][2]string{
		{"1609459201000000000", "first"},
		{"1609459202000000000", "second"},
	}, first.Values, "values are ordered by time within a stream")
	assert.Equal(t, "api.bob.vaspbot.net", req.Streams[1].Labels["vasp_id"])
}

func TestPush_SanitizesLabelValues(t *testing.T) {
	srv, got := captureLoki(t, http.StatusNoContent)
	c, err := New(srv.URL)
	require.NoError(t, err)

	require.NoError(t, c.Push(context.Background(), Entry{
		Time:   time.Now(),
		Line:   "x",
		Labels: map[string]string{"source": " relay {prod} ", "empty": "  "},
	}))
	labels := (<-got).Streams[0].Labels
	assert.Equal(t, "relay__prod_", labels["source"])
	assert.Equal(t, defaultJob, labels["job"])
	assert.NotContains(t, labels, "empty")
}

func TestPush_Errors(t *testing.T) {
	_, err := New("")
	assert.Error(t, err)
	_, err = New("localhost:3100")
	assert.Error(t, err)

	srv, _ := captureLoki(t, http.StatusBadRequest)
	c, err := New(srv.URL)
	require.NoError(t, err)
	require.NoError(t, c.Push(context.Background()), "an empty batch is not sent")

	err = c.Push(context.Background(), Entry{Time: time.Now(), Line: "x"})
	var pe *PushError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusBadRequest, pe.Status)
	assert.Contains(t, err.Error(), "entry out of order")
	assert.False(t, Retryable(err))

	assert.True(t, Retryable(&PushError{Status: http.StatusServiceUnavailable}))
	assert.True(t, Retryable(&PushError{Status: http.StatusTooManyRequests}))
	assert.False(t, Retryable(nil))
}
