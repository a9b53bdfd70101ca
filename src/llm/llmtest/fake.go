// Package llmtest provides a scripted chat model for tests.
package llmtest

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"llm_data_assistant/src/llm"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
)

// Reply is one scripted answer: either Content or Err.
type Reply struct {
	Content string
	Err     error
}

// ChatModel answers Generate calls from a per-task script. Each task keeps
// replying with its last scripted reply once the script runs out.
type ChatModel struct {
	mu      sync.Mutex
	replies map[llm.Task][]Reply
	calls   []Call
}

// Call records one Generate invocation.
type Call struct {
	Task     llm.Task
	Messages []*schema.Message
}

var _ model.BaseChatModel = (*ChatModel)(nil)

func NewChatModel() *ChatModel {
	return &ChatModel{replies: make(map[llm.Task][]Reply)}
}

// On appends content replies for task.
func (m *ChatModel) On(task llm.Task, contents ...string) *ChatModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range contents {
		m.replies[task] = append(m.replies[task], Reply{Content: c})
	}
	return m
}

// Fail makes the next reply for task an error.
func (m *ChatModel) Fail(task llm.Task, err error) *ChatModel {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies[task] = append(m.replies[task], Reply{Err: err})
	return m
}

func (m *ChatModel) Generate(ctx context.Context, input []*schema.Message, _ ...model.Option) (*schema.Message, error) {
	task := llm.TaskFromContext(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, Call{Task: task, Messages: input})

	script := m.replies[task]
	if len(script) == 0 {
		return nil, fmt.Errorf("llmtest: no reply scripted for task %q", task)
	}
	reply := script[0]
	if len(script) > 1 {
		m.replies[task] = script[1:]
	}
	if reply.Err != nil {
		return nil, reply.Err
	}
	return schema.AssistantMessage(reply.Content, nil), nil
}

func (m *ChatModel) Stream(context.Context, []*schema.Message, ...model.Option) (*schema.StreamReader[*schema.Message], error) {
	return nil, errors.New("llmtest: streaming not supported")
}

// Calls returns the recorded calls for task, or all calls when task is "".
func (m *ChatModel) Calls(task llm.Task) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.calls {
		if task == "" || c.Task == task {
			out = append(out, c)
		}
	}
	return out
}
