package assistant

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// placeholder is the transient assistant text shown while a request is
// in flight.
const placeholder = "..."

// promptWindow is how many resolved turns travel upstream with each
// request.
const promptWindow = 6

// Turn is one question/answer pair of a conversation. While the
// completion request is in flight the turn is pending and its Answer is
// the placeholder.
type Turn struct {
	ID       string
	Question string
	Answer   string
	Pending  bool
}

// Conversation is an append-only turn log for one user. All methods are
// safe for concurrent use; overlapping Submit calls each resolve their
// own turn by id, so answers cannot be misattributed.
type Conversation struct {
	mu     sync.Mutex
	turns  []Turn
	client Completer
}

func NewConversation(client Completer) *Conversation {
	return &Conversation{
		client: client,
		// The greeting is visible history but never part of a prompt.
		turns: []Turn{{ID: uuid.NewString(), Answer: Greeting}},
	}
}

// Submit appends the question with a placeholder answer, sends the
// bounded prompt upstream and resolves the turn with the response or,
// on any failure or blank reply, with the fallback text. It blocks
// until the turn is resolved and returns the final answer; errors are
// never propagated.
func (c *Conversation) Submit(ctx context.Context, question, financialContext string) string {
	turnID := uuid.NewString()

	c.mu.Lock()
	prompt := c.buildPromptLocked(question, financialContext)
	c.turns = append(c.turns, Turn{ID: turnID, Question: question, Answer: placeholder, Pending: true})
	c.mu.Unlock()

	answer, err := c.client.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(answer) == "" {
		if err != nil {
			slog.WarnContext(ctx, "Chat completion failed, using fallback", "error", err)
		}
		answer = Fallback
	}

	c.resolve(turnID, answer)
	return answer
}

// buildPromptLocked assembles persona + optional context + the last
// promptWindow resolved turns + the new question. The greeting turn and
// pending turns never travel upstream.
func (c *Conversation) buildPromptLocked(question, financialContext string) []Message {
	msgs := []Message{{Role: "system", Content: Persona}}
	if strings.TrimSpace(financialContext) != "" {
		msgs = append(msgs, Message{Role: "user", Content: contextPrefix + financialContext})
	}

	var resolved []Turn
	for _, t := range c.turns {
		if t.Pending || t.Question == "" {
			continue
		}
		resolved = append(resolved, t)
	}
	if len(resolved) > promptWindow {
		resolved = resolved[len(resolved)-promptWindow:]
	}
	for _, t := range resolved {
		msgs = append(msgs,
			Message{Role: "user", Content: t.Question},
			Message{Role: "assistant", Content: t.Answer},
		)
	}

	return append(msgs, Message{Role: "user", Content: question})
}

func (c *Conversation) resolve(turnID, answer string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.turns {
		if c.turns[i].ID == turnID {
			c.turns[i].Answer = answer
			c.turns[i].Pending = false
			return
		}
	}
}

// History returns a snapshot copy of the conversation, greeting
// included, so observers never see torn state.
func (c *Conversation) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Turn(nil), c.turns...)
}
