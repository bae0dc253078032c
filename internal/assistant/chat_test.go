package assistant

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
)

// fakeCompleter records the prompts it receives and answers from a
// function.
type fakeCompleter struct {
	mu      sync.Mutex
	prompts [][]Message
	answer  func(msgs []Message) (string, error)
}

func (f *fakeCompleter) Complete(_ context.Context, msgs []Message) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, msgs)
	f.mu.Unlock()
	if f.answer != nil {
		return f.answer(msgs)
	}
	return "respuesta", nil
}

func (f *fakeCompleter) lastPrompt() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.prompts) == 0 {
		return nil
	}
	return f.prompts[len(f.prompts)-1]
}

func TestSubmitAppendsAndResolvesTurn(t *testing.T) {
	fc := &fakeCompleter{}
	c := NewConversation(fc)

	before := len(c.History())
	got := c.Submit(context.Background(), "¿cuánto gasté?", "")
	if got != "respuesta" {
		t.Fatalf("got %q", got)
	}

	h := c.History()
	if len(h) != before+1 {
		t.Fatalf("history should grow by exactly one turn: %d -> %d", before, len(h))
	}
	last := h[len(h)-1]
	if last.Pending || last.Answer == placeholder {
		t.Fatalf("placeholder must not remain after resolution: %+v", last)
	}
	if last.Question != "¿cuánto gasté?" || last.Answer != "respuesta" {
		t.Fatalf("unexpected turn: %+v", last)
	}
}

func TestSubmitFallsBackOnError(t *testing.T) {
	fc := &fakeCompleter{answer: func([]Message) (string, error) {
		return "", errors.New("timeout")
	}}
	c := NewConversation(fc)

	if got := c.Submit(context.Background(), "hola", ""); got != Fallback {
		t.Fatalf("got %q, want fallback", got)
	}
	h := c.History()
	if h[len(h)-1].Answer != Fallback {
		t.Fatalf("turn should carry the fallback: %+v", h[len(h)-1])
	}
}

func TestSubmitFallsBackOnBlankContent(t *testing.T) {
	fc := &fakeCompleter{answer: func([]Message) (string, error) {
		return "   ", nil
	}}
	c := NewConversation(fc)
	if got := c.Submit(context.Background(), "hola", ""); got != Fallback {
		t.Fatalf("got %q, want fallback", got)
	}
}

func TestPromptShape(t *testing.T) {
	fc := &fakeCompleter{}
	c := NewConversation(fc)
	c.Submit(context.Background(), "primera", "Dinero disponible: 10.00 €")

	p := fc.lastPrompt()
	if len(p) != 3 {
		t.Fatalf("expected [system, context, question], got %d messages: %+v", len(p), p)
	}
	if p[0].Role != "system" || p[0].Content != Persona {
		t.Fatalf("first message must be the persona: %+v", p[0])
	}
	if p[1].Role != "user" || !strings.HasPrefix(p[1].Content, contextPrefix) {
		t.Fatalf("second message must carry the context: %+v", p[1])
	}
	if p[2].Role != "user" || p[2].Content != "primera" {
		t.Fatalf("question must be the final message: %+v", p[2])
	}
}

func TestPromptOmitsBlankContext(t *testing.T) {
	fc := &fakeCompleter{}
	c := NewConversation(fc)
	c.Submit(context.Background(), "hola", "   ")

	for _, m := range fc.lastPrompt() {
		if strings.HasPrefix(m.Content, contextPrefix) {
			t.Fatal("blank context must not produce a context message")
		}
	}
}

func TestPromptWindowKeepsLastSixResolvedTurns(t *testing.T) {
	fc := &fakeCompleter{}
	c := NewConversation(fc)
	questions := []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7", "q8"}
	for _, q := range questions {
		c.Submit(context.Background(), q, "")
	}

	p := fc.lastPrompt()
	// system + 6 resolved pairs + the new question.
	if len(p) != 1+promptWindow*2+1 {
		t.Fatalf("expected %d messages, got %d", 1+promptWindow*2+1, len(p))
	}
	var users []string
	for _, m := range p[1 : len(p)-1] {
		if m.Role == "user" {
			users = append(users, m.Content)
		}
	}
	if users[0] != "q2" || users[len(users)-1] != "q7" {
		t.Fatalf("window should cover q2..q7, got %v", users)
	}
	for _, m := range p {
		if m.Content == Greeting {
			t.Fatal("greeting must never travel upstream")
		}
	}
}

func TestConcurrentSubmitsResolveOwnTurns(t *testing.T) {
	release := make(chan struct{})
	fc := &fakeCompleter{answer: func(msgs []Message) (string, error) {
		<-release
		// Echo the question so each answer is attributable.
		return "eco: " + msgs[len(msgs)-1].Content, nil
	}}
	c := NewConversation(fc)

	var wg sync.WaitGroup
	for _, q := range []string{"uno", "dos", "tres"} {
		wg.Add(1)
		go func(q string) {
			defer wg.Done()
			c.Submit(context.Background(), q, "")
		}(q)
	}
	close(release)
	wg.Wait()

	h := c.History()
	if len(h) != 4 { // greeting + 3 turns
		t.Fatalf("expected 4 turns, got %d", len(h))
	}
	for _, turn := range h[1:] {
		if turn.Pending {
			t.Fatalf("no turn may stay pending: %+v", turn)
		}
		if turn.Answer != "eco: "+turn.Question {
			t.Fatalf("answer misattributed: %+v", turn)
		}
	}
}
