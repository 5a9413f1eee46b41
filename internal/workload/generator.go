// Package workload generates deterministic command streams for exercising
// the marketplace engine under realistic traffic mixes.
package workload

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"math/rand"
	"strconv"

	"github.com/okian/souk/internal/domain/catalog"
	"github.com/okian/souk/pkg/logger"
)

// Config controls the shape of a generated workload.
type Config struct {
	// Seed makes the stream reproducible.
	Seed int64

	// Customers and Freelancers set the registered population sizes.
	Customers   int
	Freelancers int

	// Commands is the number of mixed commands emitted after registration.
	Commands int
}

// Default population and traffic sizes.
const (
	DefaultCustomers   = 1_000
	DefaultFreelancers = 2_000
	DefaultCommands    = 10_000
)

// Traffic mix weights, out of weightTotal.
const (
	weightRequestJob     = 30
	weightCompleteRate   = 25
	weightCancelCustomer = 5
	weightCancelFreel    = 5
	weightBlacklist      = 5
	weightUnblacklist    = 3
	weightChangeService  = 5
	weightQueryFreel     = 8
	weightQueryCustomer  = 6
	weightUpdateSkill    = 5
	weightSimulateMonth  = 3
	weightTotal          = 100
)

const (
	maxSkill    = 100
	maxRating   = 5
	maxTopK     = 20
	priceFloor  = 10
	priceCeil   = 1000
	batchReport = 100_000
)

// Generator emits a reproducible command stream.
type Generator struct {
	cfg      Config
	rng      *rand.Rand
	services []string
	log      logger.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used during generation.
func WithLogger(l logger.Logger) Option {
	return func(g *Generator) {
		g.log = l
	}
}

// New builds a Generator, filling zero-valued config fields with defaults.
func New(cfg Config, opts ...Option) *Generator {
	if cfg.Customers <= 0 {
		cfg.Customers = DefaultCustomers
	}
	if cfg.Freelancers <= 0 {
		cfg.Freelancers = DefaultFreelancers
	}
	if cfg.Commands <= 0 {
		cfg.Commands = DefaultCommands
	}
	g := &Generator{
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		services: catalog.Names(),
		log:      logger.Get(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// WriteTo emits the full command stream to w: registrations first, then the
// mixed traffic, one command per line.
func (g *Generator) WriteTo(ctx context.Context, w io.Writer) error {
	bw := bufio.NewWriter(w)

	g.log.Info(ctx, "generating workload",
		logger.Int("customers", g.cfg.Customers),
		logger.Int("freelancers", g.cfg.Freelancers),
		logger.Int("commands", g.cfg.Commands),
		logger.Int64("seed", g.cfg.Seed),
	)

	for i := 0; i < g.cfg.Customers; i++ {
		if _, err := fmt.Fprintf(bw, "register_customer %s\n", g.customerID(i)); err != nil {
			return err
		}
	}
	for i := 0; i < g.cfg.Freelancers; i++ {
		svc := g.services[g.rng.Intn(len(g.services))]
		price := priceFloor + g.rng.Intn(priceCeil-priceFloor)
		if _, err := fmt.Fprintf(bw, "register_freelancer %s %s %d %d %d %d %d %d\n",
			g.freelancerID(i), svc, price,
			g.skill(), g.skill(), g.skill(), g.skill(), g.skill()); err != nil {
			return err
		}
	}

	for i := 0; i < g.cfg.Commands; i++ {
		if err := g.writeCommand(bw); err != nil {
			return err
		}
		if (i+1)%batchReport == 0 {
			g.log.Info(ctx, "workload progress", logger.Int("commands", i+1))
		}
	}

	return bw.Flush()
}

func (g *Generator) writeCommand(w io.Writer) error {
	roll := g.rng.Intn(weightTotal)
	customer := g.customerID(g.rng.Intn(g.cfg.Customers))
	freelancer := g.freelancerID(g.rng.Intn(g.cfg.Freelancers))
	svc := g.services[g.rng.Intn(len(g.services))]

	hit := func(weight int) bool {
		if roll < weight {
			return true
		}
		roll -= weight
		return false
	}

	var err error
	switch {
	case hit(weightRequestJob):
		_, err = fmt.Fprintf(w, "request_job %s %s %d\n", customer, svc, 1+g.rng.Intn(maxTopK))
	case hit(weightCompleteRate):
		_, err = fmt.Fprintf(w, "complete_and_rate %s %d\n", freelancer, g.rng.Intn(maxRating+1))
	case hit(weightCancelCustomer):
		_, err = fmt.Fprintf(w, "cancel_by_customer %s %s\n", customer, freelancer)
	case hit(weightCancelFreel):
		_, err = fmt.Fprintf(w, "cancel_by_freelancer %s\n", freelancer)
	case hit(weightBlacklist):
		_, err = fmt.Fprintf(w, "blacklist %s %s\n", customer, freelancer)
	case hit(weightUnblacklist):
		_, err = fmt.Fprintf(w, "unblacklist %s %s\n", customer, freelancer)
	case hit(weightChangeService):
		price := priceFloor + g.rng.Intn(priceCeil-priceFloor)
		_, err = fmt.Fprintf(w, "change_service %s %s %d\n", freelancer, svc, price)
	case hit(weightQueryFreel):
		_, err = fmt.Fprintf(w, "query_freelancer %s\n", freelancer)
	case hit(weightQueryCustomer):
		_, err = fmt.Fprintf(w, "query_customer %s\n", customer)
	case hit(weightUpdateSkill):
		_, err = fmt.Fprintf(w, "update_skill %s %d %d %d %d %d\n",
			freelancer, g.skill(), g.skill(), g.skill(), g.skill(), g.skill())
	default:
		// weightSimulateMonth
		_, err = io.WriteString(w, "simulate_month\n")
	}
	return err
}

func (g *Generator) customerID(i int) string {
	return "c" + pad5(i)
}

func (g *Generator) freelancerID(i int) string {
	return "f" + pad5(i)
}

func (g *Generator) skill() int {
	return g.rng.Intn(maxSkill + 1)
}

func pad5(i int) string {
	s := strconv.Itoa(i)
	for len(s) < 5 {
		s = "0" + s
	}
	return s
}
