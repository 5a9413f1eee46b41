// Package app wires the marketplace engine together: it owns every store,
// index and cache, and applies the command stream strictly sequentially.
package app

import (
	"time"

	"github.com/okian/souk/internal/adapters/index"
	"github.com/okian/souk/internal/domain/catalog"
	"github.com/okian/souk/internal/domain/model"
	"github.com/okian/souk/pkg/container"
	"github.com/okian/souk/pkg/logger"
	"github.com/okian/souk/pkg/metrics"
)

// Default store capacities. The tables never resize, so these are sized
// generously for the expected population.
const (
	defaultCustomerCapacity   = 50000
	defaultFreelancerCapacity = 100000
	defaultEmploymentCapacity = 10000
	defaultBlacklistCapacity  = 50000
	serviceCacheCapacity      = 32
	groupTableCapacity        = 32
)

// Engine holds all marketplace state. It is exclusively owned by one
// processing loop; no locking, per the sequential command model.
type Engine struct {
	customers   *container.Map[*model.Customer]
	freelancers *container.Map[*model.Freelancer]
	employments *container.Map[*model.Employment]
	blacklists  *blacklistRegistry
	services    *container.Map[*catalog.Service]
	groups      *container.Map[*index.Group]

	customerCapacity   int
	freelancerCapacity int
	employmentCapacity int
	blacklistCapacity  int

	log logger.Logger
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithLogger sets a custom logger for the engine.
func WithLogger(log logger.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithCustomerCapacity sets the customer store capacity.
func WithCustomerCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.customerCapacity = capacity
		}
	}
}

// WithFreelancerCapacity sets the freelancer store capacity.
func WithFreelancerCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.freelancerCapacity = capacity
		}
	}
}

// WithEmploymentCapacity sets the active employment store capacity.
func WithEmploymentCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.employmentCapacity = capacity
		}
	}
}

// WithBlacklistCapacity sets the blacklist registry capacity.
func WithBlacklistCapacity(capacity int) Option {
	return func(e *Engine) {
		if capacity > 0 {
			e.blacklistCapacity = capacity
		}
	}
}

// New constructs an engine with empty state.
func New(opts ...Option) *Engine {
	e := &Engine{
		customerCapacity:   defaultCustomerCapacity,
		freelancerCapacity: defaultFreelancerCapacity,
		employmentCapacity: defaultEmploymentCapacity,
		blacklistCapacity:  defaultBlacklistCapacity,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logger.Get().Named("engine")
	}

	e.customers = container.NewMap[*model.Customer](e.customerCapacity)
	e.freelancers = container.NewMap[*model.Freelancer](e.freelancerCapacity)
	e.employments = container.NewMap[*model.Employment](e.employmentCapacity)
	e.blacklists = newBlacklistRegistry(e.blacklistCapacity)
	e.services = container.NewMap[*catalog.Service](serviceCacheCapacity)
	e.groups = container.NewMap[*index.Group](groupTableCapacity)

	return e
}

// Arity returns the fixed argument count for an operation and whether the
// operation is recognized.
func Arity(op string) (int, bool) {
	switch op {
	case "register_customer":
		return 1, true
	case "register_freelancer":
		return 8, true
	case "request_job":
		return 3, true
	case "employ_freelancer":
		return 2, true
	case "complete_and_rate":
		return 2, true
	case "cancel_by_freelancer":
		return 1, true
	case "cancel_by_customer":
		return 2, true
	case "blacklist":
		return 2, true
	case "unblacklist":
		return 2, true
	case "change_service":
		return 3, true
	case "simulate_month":
		return 0, true
	case "query_freelancer":
		return 1, true
	case "query_customer":
		return 1, true
	case "update_skill":
		return 6, true
	}
	return 0, false
}

// Execute applies one command and returns its response line. A non-nil
// error marks a command-level fault: no output, no mutation, and the run
// continues with the next command.
func (e *Engine) Execute(op string, args []string) (string, error) {
	start := time.Now()
	resp, err := e.dispatch(op, args)
	if err != nil {
		return "", err
	}
	metrics.RecordCommand(op, time.Since(start).Seconds())
	return resp, nil
}

func (e *Engine) dispatch(op string, args []string) (string, error) {
	switch op {
	case "register_customer":
		return e.registerCustomer(args), nil
	case "register_freelancer":
		return e.registerFreelancer(args), nil
	case "request_job":
		return e.requestJob(args)
	case "employ_freelancer":
		return e.employFreelancer(args), nil
	case "complete_and_rate":
		return e.completeAndRate(args), nil
	case "cancel_by_freelancer":
		return e.cancelByFreelancer(args), nil
	case "cancel_by_customer":
		return e.cancelByCustomer(args), nil
	case "blacklist":
		return e.blacklist(args), nil
	case "unblacklist":
		return e.unblacklist(args), nil
	case "change_service":
		return e.changeService(args), nil
	case "simulate_month":
		return e.simulateMonth(), nil
	case "query_freelancer":
		return e.queryFreelancer(args), nil
	case "query_customer":
		return e.queryCustomer(args), nil
	case "update_skill":
		return e.updateSkill(args), nil
	}
	return "", errUnknownOperation
}

// fail records a validation rejection and returns the generic per-operation
// error response.
func fail(op string) string {
	metrics.RecordCommandRejected(op)
	return "Some error occurred in " + op + "."
}
