package mdpaginate

import (
	"errors"
	"runtime"
	"sync"
)

// Pool sizing constants.
const (
	// MinPoolSize ensures at least one worker is available.
	MinPoolSize = 1

	// MaxPoolSize caps concurrent render pipelines.
	MaxPoolSize = 8

	// cpuDivisor leaves headroom for the preview browser's own processes.
	cpuDivisor = 2
)

// ServicePool manages a pool of Service instances for parallel batch
// rendering. Each service owns its own converter and paginator, so renders
// never share pagination state. Services are created lazily on first acquire.
type ServicePool struct {
	size     int
	services []*Service
	sem      chan *Service
	opts     []Option
	mu       sync.Mutex
	created  int
	closed   bool
}

// NewServicePool creates a pool with capacity for n Service instances,
// each configured with the given options.
func NewServicePool(n int, opts ...Option) *ServicePool {
	if n < 1 {
		n = 1
	}

	return &ServicePool{
		size:     n,
		services: make([]*Service, 0, n),
		sem:      make(chan *Service, n),
		opts:     opts,
	}
}

// Acquire gets a service from the pool, creating one if needed.
// Blocks if all services are in use.
func (p *ServicePool) Acquire() *Service {
	// Try to get an existing service (non-blocking)
	select {
	case svc := <-p.sem:
		return svc
	default:
	}

	// Check if we can create a new service
	p.mu.Lock()
	if p.created < p.size {
		p.created++
		p.mu.Unlock()

		// Create new service outside the lock
		svc := New(p.opts...)

		p.mu.Lock()
		p.services = append(p.services, svc)
		p.mu.Unlock()

		return svc
	}
	p.mu.Unlock()

	// All services created, wait for one to be released
	return <-p.sem
}

// Release returns a service to the pool.
func (p *ServicePool) Release(svc *Service) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.mu.Unlock()

	p.sem <- svc
}

// Close releases all pooled services.
// Returns an aggregated error if multiple services fail to close.
func (p *ServicePool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	services := p.services
	p.mu.Unlock()

	var errs []error
	for _, svc := range services {
		if err := svc.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Size returns the pool capacity.
func (p *ServicePool) Size() int {
	return p.size
}

// ResolvePoolSize determines the optimal pool size.
// Priority: explicit workers > GOMAXPROCS-based calculation.
// Exported for use by servers and CLIs.
func ResolvePoolSize(workers int) int {
	// Explicit value takes priority
	if workers > 0 {
		return workers
	}

	// Auto-calculate based on GOMAXPROCS (adjusted by automaxprocs for containers)
	available := runtime.GOMAXPROCS(0)
	n := available / cpuDivisor

	if n < MinPoolSize {
		return MinPoolSize
	}
	if n > MaxPoolSize {
		return MaxPoolSize
	}
	return n
}
