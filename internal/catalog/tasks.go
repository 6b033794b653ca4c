package catalog

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTaskNotFound = errors.New("task not found")
	ErrUnknownTool  = errors.New("unknown tool")
)

type TaskState string

const (
	StateProcessing TaskState = "processing"
	StateCompleted  TaskState = "completed"
)

// Task is one simulated processing run.
type Task struct {
	ID               string    `json:"taskId"`
	Tool             string    `json:"tool"`
	ToolName         string    `json:"toolName"`
	EstimatedSeconds int       `json:"estimatedSeconds"`
	StartedAt        time.Time `json:"startedAt"`
}

// TaskStatus is the externally visible snapshot of a task.
type TaskStatus struct {
	Task
	State          TaskState `json:"status"`
	Progress       int       `json:"progress"` // 0..100
	ElapsedSeconds float64   `json:"elapsedSeconds"`
}

// Tracker creates tasks for catalog tools and reports linearly interpolated
// progress over each tool's declared duration. Tasks live in memory only and
// are pruned once they have been complete for a while.
type Tracker struct {
	mu         sync.RWMutex
	catalog    *Catalog
	tasks      map[string]*Task
	now        func() time.Time
	retainTime time.Duration
}

func NewTracker(c *Catalog) *Tracker {
	return &Tracker{
		catalog:    c,
		tasks:      make(map[string]*Task),
		now:        time.Now,
		retainTime: 10 * time.Minute,
	}
}

// Create starts a simulated run of the named tool.
func (tr *Tracker) Create(toolSlug string) (*Task, error) {
	tool, ok := tr.catalog.Get(toolSlug)
	if !ok {
		return nil, ErrUnknownTool
	}
	t := &Task{
		ID:               uuid.NewString(),
		Tool:             tool.Slug,
		ToolName:         tool.Name,
		EstimatedSeconds: tool.EstimatedSeconds,
		StartedAt:        tr.now().UTC(),
	}
	tr.mu.Lock()
	tr.tasks[t.ID] = t
	tr.prune()
	tr.mu.Unlock()
	return t, nil
}

// Status reports the current simulated progress of a task.
func (tr *Tracker) Status(id string) (TaskStatus, error) {
	tr.mu.RLock()
	t, ok := tr.tasks[id]
	tr.mu.RUnlock()
	if !ok {
		return TaskStatus{}, ErrTaskNotFound
	}
	return tr.snapshot(t), nil
}

func (tr *Tracker) snapshot(t *Task) TaskStatus {
	elapsed := tr.now().Sub(t.StartedAt).Seconds()
	if elapsed < 0 {
		elapsed = 0
	}
	progress := int(elapsed / float64(t.EstimatedSeconds) * 100)
	state := StateProcessing
	if progress >= 100 {
		progress = 100
		state = StateCompleted
	}
	return TaskStatus{Task: *t, State: state, Progress: progress, ElapsedSeconds: elapsed}
}

// prune drops tasks that finished long ago. Caller holds the write lock.
func (tr *Tracker) prune() {
	cutoff := tr.now().Add(-tr.retainTime)
	for id, t := range tr.tasks {
		done := t.StartedAt.Add(time.Duration(t.EstimatedSeconds) * time.Second)
		if done.Before(cutoff) {
			delete(tr.tasks, id)
		}
	}
}
