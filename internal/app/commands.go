package app

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/okian/souk/internal/adapters/index"
	"github.com/okian/souk/internal/domain/catalog"
	"github.com/okian/souk/internal/domain/match"
	"github.com/okian/souk/internal/domain/model"
	"github.com/okian/souk/pkg/logger"
	"github.com/okian/souk/pkg/metrics"
)

// Thresholds for state transitions driven by monthly counters.
const (
	banCancellationThreshold = 5
	burnoutSetThreshold      = 5
	burnoutClearThreshold    = 2
)

func (e *Engine) registerCustomer(args []string) string {
	const op = "register_customer"
	customerID := args[0]

	if e.customers.ContainsKey(customerID) || e.freelancers.ContainsKey(customerID) {
		return fail(op)
	}

	e.customers.Put(customerID, model.NewCustomer(customerID))
	metrics.UpdateCustomerCount(e.customers.Len())
	return "registered customer " + customerID
}

func (e *Engine) registerFreelancer(args []string) string {
	const op = "register_freelancer"
	freelancerID := args[0]
	serviceName := args[1]

	basePrice, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fail(op)
	}
	skills, err := parseSkills(args[3:8])
	if err != nil {
		return fail(op)
	}

	if e.customers.ContainsKey(freelancerID) || e.freelancers.ContainsKey(freelancerID) {
		return fail(op)
	}
	if !catalog.Valid(serviceName) {
		return fail(op)
	}
	if basePrice <= 0 {
		return fail(op)
	}
	for _, s := range skills {
		if s < 0 || s > 100 {
			return fail(op)
		}
	}

	f := model.NewFreelancer(freelancerID, serviceName, basePrice,
		skills[0], skills[1], skills[2], skills[3], skills[4])
	e.freelancers.Put(freelancerID, f)
	e.groupFor(serviceName).Add(f)

	metrics.UpdateFreelancerCount(e.freelancers.Len())
	return "registered freelancer " + freelancerID
}

func (e *Engine) requestJob(args []string) (string, error) {
	const op = "request_job"
	customerID := args[0]
	serviceName := args[1]

	topK, err := strconv.Atoi(args[2])
	if err != nil {
		return fail(op), nil
	}

	customer, ok := e.customers.Get(customerID)
	if !ok {
		return fail(op), nil
	}
	if !catalog.Valid(serviceName) {
		return fail(op), nil
	}

	group, ok := e.groups.Get(serviceName)
	if !ok || group.AvailableLen() == 0 {
		metrics.RecordMatchEmpty()
		return "no freelancers available", nil
	}

	svc := e.services.GetOrCreate(serviceName, catalog.New)
	ranked, eligible := match.TopK(group.Available(), svc, e.blacklists.setFor(customerID), topK)

	if eligible == 0 {
		metrics.RecordMatchEmpty()
		return "no freelancers available", nil
	}
	if len(ranked) == 0 {
		// Eligible candidates but a non-positive K: there is no best match
		// to employ, so the whole command is abandoned without output.
		return "", errCommandFault
	}

	var sb strings.Builder
	sb.WriteString("available freelancers for ")
	sb.WriteString(serviceName)
	sb.WriteString(" (top ")
	sb.WriteString(strconv.Itoa(len(ranked)))
	sb.WriteString("):")
	for _, c := range ranked {
		sb.WriteString("\n")
		sb.WriteString(c.ID)
		sb.WriteString(" - composite: ")
		sb.WriteString(strconv.Itoa(c.Score))
		sb.WriteString(", price: ")
		sb.WriteString(formatPrice(c.Freelancer.BasePrice))
		sb.WriteString(", rating: ")
		sb.WriteString(formatRating(c.Freelancer.Rating))
	}

	best := ranked[0].Freelancer
	best.Available = false
	group.NotifyUnavailable(best)
	e.createEmployment(customer, best)

	sb.WriteString("\nauto-employed best freelancer: ")
	sb.WriteString(best.ID)
	sb.WriteString(" for customer ")
	sb.WriteString(customerID)

	metrics.RecordMatchServed(len(ranked))
	return sb.String(), nil
}

func (e *Engine) employFreelancer(args []string) string {
	const op = "employ_freelancer"
	customerID := args[0]
	freelancerID := args[1]

	customer, ok := e.customers.Get(customerID)
	if !ok {
		return fail(op)
	}
	f, ok := e.freelancers.Get(freelancerID)
	if !ok {
		return fail(op)
	}
	if !f.Available {
		return fail(op)
	}
	if e.blacklists.contains(customerID, freelancerID) {
		return fail(op)
	}

	if group, ok := e.groups.Get(f.ServiceName); ok {
		group.NotifyUnavailable(f)
	}
	f.Available = false
	e.createEmployment(customer, f)

	return customerID + " employed " + freelancerID + " for " + f.ServiceName
}

func (e *Engine) completeAndRate(args []string) string {
	const op = "complete_and_rate"
	freelancerID := args[0]

	rating, err := strconv.Atoi(args[1])
	if err != nil {
		return fail(op)
	}
	if rating < 0 || rating > 5 {
		return fail(op)
	}

	f, ok := e.freelancers.Get(freelancerID)
	if !ok {
		return fail(op)
	}
	employment, ok := e.employments.Get(freelancerID)
	if !ok {
		return fail(op)
	}

	customer := employment.Customer
	payment := math.Floor(f.BasePrice * customer.Discount())
	customer.TotalAmountSpent += payment
	customer.TotalLoyaltyBase += payment

	if rating >= 4 {
		svc := e.services.GetOrCreate(f.ServiceName, catalog.New)
		f.GainSkillsFromJob(svc, rating)
	}

	// n counts jobs before this completion is recorded; the cancellation
	// path computes n after incrementing instead. The asymmetry is part of
	// the rating model and must stay.
	n := f.CompletedJobs + f.CancelledJobs + 1
	f.Rating = (f.Rating*float64(n) + float64(rating)) / float64(n+1)

	f.CompletedJobs++
	f.MonthlyCompletedJobs++
	f.InvalidateScore()

	if group, ok := e.groups.Get(f.ServiceName); ok {
		group.NotifyAvailable(f)
	}
	f.Available = true

	e.employments.Remove(freelancerID)
	metrics.UpdateActiveEmployments(e.employments.Len())

	return freelancerID + " completed job for " + customer.ID + " with rating " + strconv.Itoa(rating)
}

func (e *Engine) cancelByFreelancer(args []string) string {
	const op = "cancel_by_freelancer"
	freelancerID := args[0]

	f, ok := e.freelancers.Get(freelancerID)
	if !ok {
		return fail(op)
	}
	employment, ok := e.employments.Get(freelancerID)
	if !ok {
		return fail(op)
	}
	customerID := employment.Customer.ID

	f.ApplySkillDegradation()
	f.CancelledJobs++
	f.MonthlyCancellations++

	// Here n already includes the cancellation just recorded.
	n := f.CompletedJobs + f.CancelledJobs + 1
	f.Rating = math.Max(0.0, f.Rating*float64(n-1)/float64(n))
	f.InvalidateScore()

	e.employments.Remove(freelancerID)
	metrics.UpdateActiveEmployments(e.employments.Len())

	response := "cancelled by freelancer: " + freelancerID + " cancelled " + customerID

	if f.MonthlyCancellations >= banCancellationThreshold {
		if group, ok := e.groups.Get(f.ServiceName); ok {
			group.Remove(f)
		}
		e.freelancers.Remove(freelancerID)
		metrics.RecordBan()
		metrics.UpdateFreelancerCount(e.freelancers.Len())
		e.log.Info(context.Background(), "freelancer banned",
			logger.String("freelancerID", freelancerID),
			logger.Int("monthlyCancellations", f.MonthlyCancellations),
		)
		return response + "\nplatform banned freelancer: " + freelancerID
	}

	if group, ok := e.groups.Get(f.ServiceName); ok {
		group.NotifyAvailable(f)
	}
	f.Available = true
	return response
}

func (e *Engine) cancelByCustomer(args []string) string {
	const op = "cancel_by_customer"
	customerID := args[0]
	freelancerID := args[1]

	customer, ok := e.customers.Get(customerID)
	if !ok {
		return fail(op)
	}
	f, ok := e.freelancers.Get(freelancerID)
	if !ok {
		return fail(op)
	}
	employment, ok := e.employments.Get(freelancerID)
	if !ok || employment.Customer.ID != customerID {
		return fail(op)
	}

	customer.CancellationCount++

	if group, ok := e.groups.Get(f.ServiceName); ok {
		group.NotifyAvailable(f)
	}
	f.Available = true

	e.employments.Remove(freelancerID)
	metrics.UpdateActiveEmployments(e.employments.Len())

	return "cancelled by customer: " + customerID + " cancelled " + freelancerID
}

func (e *Engine) blacklist(args []string) string {
	const op = "blacklist"
	customerID := args[0]
	freelancerID := args[1]

	if !e.customers.ContainsKey(customerID) {
		return fail(op)
	}
	if !e.freelancers.ContainsKey(freelancerID) {
		return fail(op)
	}
	if e.blacklists.contains(customerID, freelancerID) {
		return fail(op)
	}

	e.blacklists.add(customerID, freelancerID)
	return customerID + " blacklisted " + freelancerID
}

func (e *Engine) unblacklist(args []string) string {
	const op = "unblacklist"
	customerID := args[0]
	freelancerID := args[1]

	if !e.customers.ContainsKey(customerID) {
		return fail(op)
	}
	if !e.freelancers.ContainsKey(freelancerID) {
		return fail(op)
	}
	if !e.blacklists.contains(customerID, freelancerID) {
		return fail(op)
	}

	e.blacklists.remove(customerID, freelancerID)
	return customerID + " unblacklisted " + freelancerID
}

func (e *Engine) changeService(args []string) string {
	const op = "change_service"
	freelancerID := args[0]
	newService := strings.ToLower(args[1])

	newPrice, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		return fail(op)
	}

	f, ok := e.freelancers.Get(freelancerID)
	if !ok {
		return fail(op)
	}
	if !catalog.Valid(newService) {
		return fail(op)
	}
	if newPrice <= 0 {
		return fail(op)
	}
	if !f.Available {
		return fail(op)
	}
	if f.ServiceName == newService {
		return fail(op)
	}

	oldService := f.ServiceName
	f.QueuedService = newService
	f.QueuedPrice = newPrice

	return "service change for " + freelancerID + " queued from " + oldService + " to " + newService
}

func (e *Engine) simulateMonth() string {
	all := e.freelancers.Values()
	var moving []*model.Freelancer

	// Pass 1: burnout transitions, monthly counter resets, and collection
	// of queued service changes.
	for _, f := range all {
		monthly := f.MonthlyCompletedJobs
		if !f.Burnout && monthly >= burnoutSetThreshold {
			f.Burnout = true
			f.InvalidateScore()
		} else if f.Burnout && monthly <= burnoutClearThreshold {
			f.Burnout = false
			f.InvalidateScore()
		}

		f.MonthlyCompletedJobs = 0

		if f.QueuedService != "" {
			moving = append(moving, f)
		}

		f.MonthlyCancellations = 0
	}

	// Pass 2: detach movers from their old groups before any re-insertion,
	// so a swap in one group cannot disturb a not-yet-moved freelancer.
	for _, f := range moving {
		if group, ok := e.groups.Get(f.ServiceName); ok {
			group.Remove(f)
		}
	}

	// Pass 3: apply the staged service and price, then re-insert.
	for _, f := range moving {
		f.ServiceName = f.QueuedService
		f.BasePrice = f.QueuedPrice
		f.QueuedService = ""
		f.QueuedPrice = 0
		f.InvalidateScore()
		e.groupFor(f.ServiceName).Add(f)
	}

	for _, c := range e.customers.Values() {
		c.UpdateLoyaltyTier()
	}

	return "month complete"
}

func (e *Engine) queryFreelancer(args []string) string {
	const op = "query_freelancer"
	freelancerID := args[0]

	f, ok := e.freelancers.Get(freelancerID)
	if !ok {
		return fail(op)
	}

	var sb strings.Builder
	sb.WriteString(freelancerID)
	sb.WriteString(": ")
	sb.WriteString(f.ServiceName)
	sb.WriteString(", price: ")
	sb.WriteString(formatPrice(f.BasePrice))
	sb.WriteString(", rating: ")
	sb.WriteString(formatRating(f.Rating))
	sb.WriteString(", completed: ")
	sb.WriteString(strconv.Itoa(f.CompletedJobs))
	sb.WriteString(", cancelled: ")
	sb.WriteString(strconv.Itoa(f.CancelledJobs))
	sb.WriteString(", skills: (")
	sb.WriteString(strconv.Itoa(f.Technical))
	sb.WriteString(",")
	sb.WriteString(strconv.Itoa(f.Communication))
	sb.WriteString(",")
	sb.WriteString(strconv.Itoa(f.Creativity))
	sb.WriteString(",")
	sb.WriteString(strconv.Itoa(f.Efficiency))
	sb.WriteString(",")
	sb.WriteString(strconv.Itoa(f.Attention))
	sb.WriteString("), available: ")
	sb.WriteString(yesNo(f.Available))
	sb.WriteString(", burnout: ")
	sb.WriteString(yesNo(f.Burnout))
	return sb.String()
}

func (e *Engine) queryCustomer(args []string) string {
	const op = "query_customer"
	customerID := args[0]

	c, ok := e.customers.Get(customerID)
	if !ok {
		return fail(op)
	}

	var sb strings.Builder
	sb.WriteString(customerID)
	sb.WriteString(": total spent: $")
	sb.WriteString(strconv.FormatInt(roundHalfUp(c.TotalAmountSpent), 10))
	sb.WriteString(", loyalty tier: ")
	sb.WriteString(string(c.LoyaltyTier))
	sb.WriteString(", blacklisted freelancer count: ")
	sb.WriteString(strconv.Itoa(e.blacklists.countFor(customerID)))
	sb.WriteString(", total employment count: ")
	sb.WriteString(strconv.Itoa(c.TotalEmploymentCount))
	return sb.String()
}

func (e *Engine) updateSkill(args []string) string {
	const op = "update_skill"
	freelancerID := args[0]

	f, ok := e.freelancers.Get(freelancerID)
	if !ok {
		return fail(op)
	}

	skills, err := parseSkills(args[1:6])
	if err != nil {
		return fail(op)
	}
	for _, s := range skills {
		if s < 0 || s > 100 {
			return fail(op)
		}
	}

	f.SetSkills(skills[0], skills[1], skills[2], skills[3], skills[4])

	return "updated skills of " + freelancerID + " for " + f.ServiceName
}

// groupFor returns the service group for serviceName, creating it on first
// use.
func (e *Engine) groupFor(serviceName string) *index.Group {
	return e.groups.GetOrCreate(serviceName, func(string) *index.Group {
		return index.NewGroup()
	})
}

// createEmployment binds customer and freelancer, counting the employment
// for the customer.
func (e *Engine) createEmployment(customer *model.Customer, f *model.Freelancer) {
	employment := model.NewEmployment(customer, f)
	e.employments.Put(f.ID, employment)
	customer.TotalEmploymentCount++
	metrics.UpdateActiveEmployments(e.employments.Len())
	e.log.Debug(context.Background(), "employment created",
		logger.String("employmentID", employment.ID),
		logger.String("customerID", customer.ID),
		logger.String("freelancerID", f.ID),
	)
}

func parseSkills(tokens []string) ([5]int, error) {
	var skills [5]int
	for i, tok := range tokens {
		v, err := strconv.Atoi(tok)
		if err != nil {
			return skills, err
		}
		skills[i] = v
	}
	return skills, nil
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
