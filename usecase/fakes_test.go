package usecase

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"main/config"
	"main/model"
)

// memoryStore is an in-memory ProgressStore with the same version
// compare-and-swap contract as the Mongo-backed repository.
type memoryStore struct {
	mu        sync.Mutex
	docs      map[string]*model.UserProgress
	failSaves int // fail this many Saves with ErrConflict before succeeding
	saveCalls int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{docs: make(map[string]*model.UserProgress)}
}

func (s *memoryStore) Get(ctx context.Context, userID string) (*model.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[userID]
	if !ok {
		return nil, fmt.Errorf("progress for user %s: %w", userID, model.ErrNotFound)
	}
	return cloneProgress(doc), nil
}

func (s *memoryStore) Create(ctx context.Context, progress *model.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.docs[progress.UserID]; exists {
		return fmt.Errorf("progress for user %s already exists: %w", progress.UserID, model.ErrConflict)
	}
	progress.Version = 1
	s.docs[progress.UserID] = cloneProgress(progress)
	return nil
}

func (s *memoryStore) Save(ctx context.Context, progress *model.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveCalls++
	if s.failSaves > 0 {
		s.failSaves--
		return fmt.Errorf("progress for user %s was modified concurrently: %w", progress.UserID, model.ErrConflict)
	}
	current, ok := s.docs[progress.UserID]
	if !ok || current.Version != progress.Version {
		return fmt.Errorf("progress for user %s was modified concurrently: %w", progress.UserID, model.ErrConflict)
	}
	progress.Version++
	s.docs[progress.UserID] = cloneProgress(progress)
	return nil
}

// cloneProgress deep-copies the aggregate so callers never share slices or
// maps with the stored document.
func cloneProgress(p *model.UserProgress) *model.UserProgress {
	c := *p
	c.Categories = maps.Clone(p.Categories)
	c.CompletedTasks = slices.Clone(p.CompletedTasks)
	c.ActiveTasks = slices.Clone(p.ActiveTasks)
	c.Stats.ChallengesCompleted = slices.Clone(p.Stats.ChallengesCompleted)

	c.Habits = make(map[string]model.Habit, len(p.Habits))
	for id, habit := range p.Habits {
		habit.CompletedDays = slices.Clone(habit.CompletedDays)
		c.Habits[id] = habit
	}

	c.Challenges = make([]model.ChallengeInstance, len(p.Challenges))
	for i, instance := range p.Challenges {
		instance.Tasks = slices.Clone(instance.Tasks)
		taskProgress := make([]model.TaskProgress, len(instance.TaskProgress))
		for j, tp := range instance.TaskProgress {
			tp.CompletedDates = slices.Clone(tp.CompletedDates)
			taskProgress[j] = tp
		}
		instance.TaskProgress = taskProgress
		c.Challenges[i] = instance
	}

	c.Goals = make(map[string]model.Goal, len(p.Goals))
	for id, goal := range p.Goals {
		goal.Steps = slices.Clone(goal.Steps)
		c.Goals[id] = goal
	}
	return &c
}

// memoryCatalog is an in-memory Catalog.
type memoryCatalog struct {
	tasks     map[string]*model.Task
	templates map[string]*model.ChallengeTemplate
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		tasks:     make(map[string]*model.Task),
		templates: make(map[string]*model.ChallengeTemplate),
	}
}

func (c *memoryCatalog) GetTask(ctx context.Context, taskID string) (*model.Task, error) {
	task, ok := c.tasks[taskID]
	if !ok {
		return nil, fmt.Errorf("task %s: %w", taskID, model.ErrNotFound)
	}
	copied := *task
	return &copied, nil
}

func (c *memoryCatalog) CreateTask(ctx context.Context, task *model.Task) error {
	if _, exists := c.tasks[task.TaskID]; exists {
		return fmt.Errorf("task %s already exists: %w", task.TaskID, model.ErrDuplicate)
	}
	copied := *task
	c.tasks[task.TaskID] = &copied
	return nil
}

func (c *memoryCatalog) DeleteUserTask(ctx context.Context, taskID, userID string) error {
	task, ok := c.tasks[taskID]
	if !ok || task.CreatedBy != userID || task.Type != model.TaskUserGenerated {
		return fmt.Errorf("user task %s: %w", taskID, model.ErrNotFound)
	}
	delete(c.tasks, taskID)
	return nil
}

func (c *memoryCatalog) ListTaskTitles(ctx context.Context) ([]string, error) {
	titles := make([]string, 0, len(c.tasks))
	for _, task := range c.tasks {
		titles = append(titles, task.Title)
	}
	return titles, nil
}

func (c *memoryCatalog) ListUserTaskTitles(ctx context.Context, userID string) ([]string, error) {
	var titles []string
	for _, task := range c.tasks {
		if task.CreatedBy == userID {
			titles = append(titles, task.Title)
		}
	}
	return titles, nil
}

func (c *memoryCatalog) GetChallengeTemplate(ctx context.Context, challengeID string) (*model.ChallengeTemplate, error) {
	template, ok := c.templates[challengeID]
	if !ok {
		return nil, fmt.Errorf("challenge %s: %w", challengeID, model.ErrNotFound)
	}
	copied := *template
	return &copied, nil
}

func (c *memoryCatalog) ListChallengeTemplates(ctx context.Context) ([]*model.ChallengeTemplate, error) {
	templates := make([]*model.ChallengeTemplate, 0, len(c.templates))
	for _, template := range c.templates {
		copied := *template
		templates = append(templates, &copied)
	}
	return templates, nil
}

// stubEvaluator returns a canned evaluation.
type stubEvaluator struct {
	eval *model.TaskEvaluation
	err  error
}

func (e *stubEvaluator) Evaluate(ctx context.Context, title, description string) (*model.TaskEvaluation, error) {
	return e.eval, e.err
}

// fakeClock is a settable time source for the services under test.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func testLeveling(store ProgressStore) *LevelingService {
	leveling := NewLevelingService(store, testThresholds())
	return leveling
}

func testThresholds() *config.LevelThresholds {
	return &config.LevelThresholds{Thresholds: []int{100, 250, 450, 700, 1000}}
}
