// Package loki ships relay telemetry events to the Grafana Loki push API.
package loki

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	telemetrydomain "trisa-demo/relay/internal/telemetry/domain"
)

const (
	pushPath   = "/loki/api/v1/push"
	defaultJob = "trisa-relay"
)

// Loki label values are free-form, but the relay keeps them to ids and event names.
var unsafeLabelChars = regexp.MustCompile(`[^a-zA-Z0-9_\-:.]`)

type pushRequest struct {
	Streams []pushStream `json:"streams"`
}

type pushStream struct {
	Labels map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

// Entry is one log line and the labels of the stream it belongs to.
type Entry struct {
	Time   time.Time
	Line   string
	Labels map[string]string
}

// EntryFromEvent turns a relay event, as published to Kafka, into an entry labelled by
// vasp_id, event_type and source. Session and room ids stay in the line: as labels they
// would explode stream cardinality. Values that are not relay events are shipped
// verbatim, stamped with received.
func EntryFromEvent(raw []byte, received time.Time) Entry {
	e := Entry{Time: received, Line: string(raw), Labels: map[string]string{}}
	var ev telemetrydomain.Event
	if err := json.Unmarshal(raw, &ev); err != nil || ev.EventType == "" {
		e.Labels["event_type"] = "unparsed"
		return e
	}
	e.Labels["event_type"] = ev.EventType
	if ev.VaspID != "" {
		e.Labels["vasp_id"] = ev.VaspID
	}
	if ev.Source != "" {
		e.Labels["source"] = ev.Source
	}
	if !ev.CreatedAt.IsZero() {
		e.Time = ev.CreatedAt
	}
	return e
}

// Client pushes entries to one Loki instance.
type Client struct {
	endpoint string
	job      string
	http     *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithJob sets the job label added to every stream.
func WithJob(job string) Option {
	return func(c *Client) { c.job = job }
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// New returns a client for the Loki instance at baseURL (e.g. http://localhost:3100).
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("loki: parse url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("loki: url %q must be an absolute http(s) url", baseURL)
	}
	c := &Client{
		endpoint: strings.TrimSuffix(u.String(), "/") + pushPath,
		job:      defaultJob,
		http:     &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Push sends entries in a single request with one stream per distinct label set.
// Values within a stream are ordered by time.
func (c *Client) Push(ctx context.Context, entries ...Entry) error {
	if len(entries) == 0 {
		return nil
	}
	body, err := json.Marshal(c.request(entries))
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("loki: push: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &PushError{Status: resp.StatusCode, Detail: strings.TrimSpace(string(detail))}
	}
	return nil
}

func (c *Client) request(entries []Entry) pushRequest {
	var (
		order   []string
		labels  = map[string]map[string]string{}
		grouped = map[string][]Entry{}
	)
	for _, e := range entries {
		l := c.labels(e.Labels)
		key := labelKey(l)
		if _, ok := labels[key]; !ok {
			labels[key] = l
			order = append(order, key)
		}
		grouped[key] = append(grouped[key], e)
	}

	out := pushRequest{Streams: make([]pushStream, 0, len(order))}
	for _, key := range order {
		group := grouped[key]
		slices.SortStableFunc(group, func(a, b Entry) int { return a.Time.Compare(b.Time) })
		s := pushStream{Labels: labels[key], Values: make([][2]string, len(group))}
		for i, e := range group {
			s.Values[i] = [2]string{strconv.FormatInt(e.Time.UnixNano(), 10), e.Line}
		}
		out.Streams = append(out.Streams, s)
	}
	return out
}

func (c *Client) labels(in map[string]string) map[string]string {
	out := make(map[string]string, len(in)+1)
	for k, v := range in {
		if v = unsafeLabelChars.ReplaceAllString(strings.TrimSpace(v), "_"); v != "" {
			out[k] = v
		}
	}
	out["job"] = c.job
	return out
}

func labelKey(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(labels[k])
		b.WriteByte(',')
	}
	return b.String()
}

// PushError is a non-2xx reply from Loki.
type PushError struct {
	Status int
	Detail string
}

func (e *PushError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("loki: push returned %d", e.Status)
	}
	return fmt.Sprintf("loki: push returned %d: %s", e.Status, e.Detail)
}

// Retryable reports whether err is worth retrying: transport failures, 429 and 5xx.
func Retryable(err error) bool {
	var pe *PushError
	if errors.As(err, &pe) {
		return pe.Status == http.StatusTooManyRequests || pe.Status >= 500
	}
	return err != nil
}
