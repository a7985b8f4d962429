package animation

import (
	"fmt"
	"sync"

	"github.com/go-drift/motion/pkg/shape"
)

var (
	registryMu sync.Mutex
	schedulers = make(map[shape.Host]*Scheduler)
)

// SchedulerFor returns the running scheduler of host, creating and starting
// one with the default Config on first use.
func SchedulerFor(host shape.Host) *Scheduler {
	registryMu.Lock()
	defer registryMu.Unlock()
	if s, ok := schedulers[host]; ok {
		return s
	}
	s := NewScheduler(host, Config{})
	schedulers[host] = s
	s.Start()
	return s
}

// Install registers s as the scheduler of its host and starts it. It fails
// if the host already has one.
func Install(s *Scheduler) error {
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, ok := schedulers[s.host]; ok {
		return fmt.Errorf("host %T already has a scheduler", s.host)
	}
	schedulers[s.host] = s
	s.Start()
	return nil
}

// Shutdown stops and forgets the scheduler of host. The host gets a fresh
// scheduler on the next SchedulerFor call.
func Shutdown(host shape.Host) {
	registryMu.Lock()
	s, ok := schedulers[host]
	delete(schedulers, host)
	registryMu.Unlock()
	if ok {
		s.Stop()
	}
}
