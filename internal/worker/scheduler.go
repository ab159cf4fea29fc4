package worker

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task - одна именованная фоновая задача со своей кадентностью.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func(ctx context.Context) error
}

// Scheduler гоняет каждую задачу в собственной горутине, независимо от
// остальных. Пауза отсчитывается от завершения итерации, а не по
// фиксированному расписанию: просроченные итерации не наверстываются.
type Scheduler struct {
	tasks      []Task
	runTimeout time.Duration
	stopChan   chan struct{}
	wg         sync.WaitGroup
	mu         sync.Mutex
	started    bool
	stopped    bool
}

func NewScheduler() *Scheduler {
	return &Scheduler{
		runTimeout: 60 * time.Second,
		stopChan:   make(chan struct{}),
	}
}

func (s *Scheduler) AddTask(task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tasks = append(s.tasks, task)
}

func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started || s.stopped {
		return
	}
	s.started = true

	log.Printf("scheduler: starting %d tasks", len(s.tasks))

	for _, task := range s.tasks {
		s.wg.Add(1)
		go func(t Task) {
			defer s.wg.Done()
			s.runLoop(t)
		}(task)
	}
}

func (s *Scheduler) runLoop(task Task) {
	log.Printf("scheduler: task %s started (interval %v)", task.Name, task.Interval)

	// Первая итерация сразу, дальше по интервалу.
	for {
		s.RunOnce(task)

		select {
		case <-time.After(task.Interval):
		case <-s.stopChan:
			log.Printf("scheduler: task %s stopped", task.Name)
			return
		}
	}
}

// RunOnce выполняет одну итерацию задачи. Ошибка логируется и не
// останавливает цикл - сбой адаптера не фатален для процесса.
func (s *Scheduler) RunOnce(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
	defer cancel()

	if err := task.Run(ctx); err != nil {
		log.Printf("scheduler: task %s failed: %v", task.Name, err)
	}
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.mu.Unlock()

	close(s.stopChan)
	if !started {
		return
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		log.Println("scheduler: stopped gracefully")
	case <-time.After(10 * time.Second):
		log.Println("scheduler: stop timeout")
	}
}
