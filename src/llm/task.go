package llm

import "context"

// Task names the kind of model call in flight. It travels on the context so
// log lines and test doubles can tell calls apart.
type Task string

const (
	TaskIntent   Task = "intent"
	TaskInsights Task = "insights"
	TaskChart    Task = "chart"
	TaskQuery    Task = "query"
)

type taskKey struct{}

func WithTask(ctx context.Context, task Task) context.Context {
	return context.WithValue(ctx, taskKey{}, task)
}

// TaskFromContext returns the task set by WithTask, or "" when none was set.
func TaskFromContext(ctx context.Context) Task {
	task, _ := ctx.Value(taskKey{}).(Task)
	return task
}
