package services

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/cybertech-18/lakshpath-backend/internal/platform/apierr"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/gemini"
	"github.com/cybertech-18/lakshpath-backend/internal/platform/logger"
)

type scriptedReply struct {
	text string
	err  error
}

// fakeGemini replays scripted replies in order; the last one repeats.
type fakeGemini struct {
	mu      sync.Mutex
	replies []scriptedReply
	prompts []string
	calls   int
}

func (f *fakeGemini) GenerateContent(_ context.Context, prompt string, _ gemini.GenerateOptions) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	idx := f.calls
	if idx >= len(f.replies) {
		idx = len(f.replies) - 1
	}
	f.calls++
	r := f.replies[idx]
	return r.text, r.err
}

type recordingSleeper struct {
	waits []time.Duration
}

func (s *recordingSleeper) Sleep(_ context.Context, d time.Duration) error {
	s.waits = append(s.waits, d)
	return nil
}

func newTestGateway(client gemini.Client, sleeper *recordingSleeper) AIGateway {
	return NewAIGateway(logger.Nop(), client, AIGatewayConfig{
		Model:       "test-model",
		MaxRetries:  2,
		BaseBackoff: time.Second,
		Sleep:       sleeper.Sleep,
	}, nil)
}

func TestAIGateway_RetriesThrottlingThreeAttempts(t *testing.T) {
	client := &fakeGemini{replies: []scriptedReply{{err: &gemini.HTTPError{StatusCode: http.StatusTooManyRequests, Body: "slow down"}}}}
	sleeper := &recordingSleeper{}
	_, err := newTestGateway(client, sleeper).Call(context.Background(), "hello", CallOptions{Stage: "test"})

	if !apierr.IsKind(err, apierr.KindUpstream) {
		t.Fatalf("want upstream error got=%v", err)
	}
	if client.calls != 3 {
		t.Fatalf("want=3 attempts got=%d", client.calls)
	}
	want := []time.Duration{time.Second, 2 * time.Second}
	if len(sleeper.waits) != len(want) {
		t.Fatalf("want waits=%v got=%v", want, sleeper.waits)
	}
	for i := range want {
		if sleeper.waits[i] != want[i] {
			t.Fatalf("wait %d: want=%v got=%v", i, want[i], sleeper.waits[i])
		}
	}
	var httpErr *gemini.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("upstream error should carry the provider cause")
	}
}

func TestAIGateway_RecoversAfterTransientQuota(t *testing.T) {
	client := &fakeGemini{replies: []scriptedReply{
		{err: errors.New("googleapi: Error 429: Quota exceeded")},
		{text: `{"ok":true}`},
	}}
	sleeper := &recordingSleeper{}
	out, err := newTestGateway(client, sleeper).Call(context.Background(), "hello", CallOptions{JSONMode: true})
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if out != `{"ok":true}` {
		t.Fatalf("unexpected output %q", out)
	}
	if client.calls != 2 || len(sleeper.waits) != 1 {
		t.Fatalf("want calls=2 waits=1 got calls=%d waits=%d", client.calls, len(sleeper.waits))
	}
}

func TestAIGateway_NonRetryableFailsImmediately(t *testing.T) {
	client := &fakeGemini{replies: []scriptedReply{{err: &gemini.HTTPError{StatusCode: http.StatusBadRequest, Body: "bad prompt"}}}}
	sleeper := &recordingSleeper{}
	_, err := newTestGateway(client, sleeper).Call(context.Background(), "hello", CallOptions{})
	if !apierr.IsKind(err, apierr.KindUpstream) {
		t.Fatalf("want upstream error got=%v", err)
	}
	if client.calls != 1 || len(sleeper.waits) != 0 {
		t.Fatalf("want calls=1 waits=0 got calls=%d waits=%d", client.calls, len(sleeper.waits))
	}
}

func TestAIGateway_EmptyResponse(t *testing.T) {
	client := &fakeGemini{replies: []scriptedReply{{text: "   \n"}}}
	_, err := newTestGateway(client, &recordingSleeper{}).Call(context.Background(), "hello", CallOptions{})
	if !apierr.IsKind(err, apierr.KindEmptyResponse) {
		t.Fatalf("want empty response got=%v", err)
	}
	if client.calls != 1 {
		t.Fatalf("empty response must not be retried, calls=%d", client.calls)
	}
}

func TestAIGateway_AppliesPromptStyle(t *testing.T) {
	client := &fakeGemini{replies: []scriptedReply{{text: "ok"}}}
	if _, err := newTestGateway(client, &recordingSleeper{}).Call(context.Background(), "explain", CallOptions{JSONMode: true}); err != nil {
		t.Fatalf("Call: %v", err)
	}
	if len(client.prompts) != 1 || client.prompts[0] == "explain" {
		t.Fatalf("prompt should carry the style preamble: %q", client.prompts)
	}
}

func TestIsRetryable(t *testing.T) {
	cases := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{&gemini.HTTPError{StatusCode: 429}, true},
		{&gemini.HTTPError{StatusCode: 500}, false},
		{errors.New("RESOURCE_EXHAUSTED: quota"), true},
		{errors.New("rate limit reached"), true},
		{errors.New("connection reset"), false},
		{context.Canceled, false},
		{context.DeadlineExceeded, false},
	}
	for _, tc := range cases {
		if got := IsRetryable(tc.err); got != tc.want {
			t.Fatalf("IsRetryable(%v): want=%v got=%v", tc.err, tc.want, got)
		}
	}
}

func TestBackoffFor(t *testing.T) {
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for i, w := range want {
		if got := BackoffFor(time.Second, i); got != w {
			t.Fatalf("attempt %d: want=%v got=%v", i, w, got)
		}
	}
}

type parsedThing struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

func (p *parsedThing) Validate() error {
	if p.Name == "" {
		return errors.New("name required")
	}
	return nil
}

func TestParseJSON(t *testing.T) {
	cases := map[string]string{
		"plain":      `{"name":"a","items":["x"]}`,
		"json fence": "```json\n{\"name\":\"a\",\"items\":[\"x\"]}\n```",
		"bare fence": "```\n{\"name\":\"a\",\"items\":[\"x\"]}```",
		"prose":      "Here you go: {\"name\":\"a\",\"items\":[\"x\"]} hope it helps",
	}
	for name, raw := range cases {
		got, err := ParseJSON[parsedThing](raw)
		if err != nil {
			t.Fatalf("%s: unexpected err: %v", name, err)
		}
		if got.Name != "a" || len(got.Items) != 1 {
			t.Fatalf("%s: unexpected value %+v", name, got)
		}
	}
}

func TestParseJSON_Malformed(t *testing.T) {
	for _, raw := range []string{"", "```json\n```", "not json", `{"name":""}`, `{"name": 3}`} {
		_, err := ParseJSON[parsedThing](raw)
		if !apierr.IsKind(err, apierr.KindMalformed) {
			t.Fatalf("%q: want malformed got=%v", raw, err)
		}
		if apierr.IsKind(err, apierr.KindUpstream) {
			t.Fatalf("malformed must be distinguishable from upstream")
		}
	}
}
