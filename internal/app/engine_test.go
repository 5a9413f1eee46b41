package app

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

// exec runs a single whitespace-delimited command against the engine and
// returns the response line. Command-level faults return "".
func exec(e *Engine, command string) string {
	tokens := strings.Fields(command)
	resp, err := e.Execute(tokens[0], tokens[1:])
	if err != nil {
		return ""
	}
	return resp
}

func TestRegistrationValidation(t *testing.T) {
	Convey("Given an engine with one customer and one freelancer", t, func() {
		e := New()
		So(exec(e, "register_customer c1"), ShouldEqual, "registered customer c1")
		So(exec(e, "register_freelancer f1 web_dev 100 50 50 50 50 50"), ShouldEqual, "registered freelancer f1")

		Convey("Then duplicate IDs are rejected", func() {
			So(exec(e, "register_customer c1"), ShouldEqual, "Some error occurred in register_customer.")
			So(exec(e, "register_freelancer f1 paint 50 10 10 10 10 10"), ShouldEqual, "Some error occurred in register_freelancer.")
		})

		Convey("Then IDs are unique across both populations", func() {
			So(exec(e, "register_customer f1"), ShouldEqual, "Some error occurred in register_customer.")
			So(exec(e, "register_freelancer c1 paint 50 10 10 10 10 10"), ShouldEqual, "Some error occurred in register_freelancer.")
		})

		Convey("Then freelancer field validation rejects bad input", func() {
			So(exec(e, "register_freelancer f2 cooking 50 10 10 10 10 10"), ShouldEqual, "Some error occurred in register_freelancer.")
			So(exec(e, "register_freelancer f2 paint 0 10 10 10 10 10"), ShouldEqual, "Some error occurred in register_freelancer.")
			So(exec(e, "register_freelancer f2 paint -5 10 10 10 10 10"), ShouldEqual, "Some error occurred in register_freelancer.")
			So(exec(e, "register_freelancer f2 paint 50 101 10 10 10 10"), ShouldEqual, "Some error occurred in register_freelancer.")
			So(exec(e, "register_freelancer f2 paint 50 10 10 10 10 -1"), ShouldEqual, "Some error occurred in register_freelancer.")
			So(exec(e, "register_freelancer f2 paint abc 10 10 10 10 10"), ShouldEqual, "Some error occurred in register_freelancer.")
		})
	})
}

func TestMatchingAndBlacklists(t *testing.T) {
	Convey("Given two web_dev freelancers and a customer", t, func() {
		e := New()
		exec(e, "register_customer c1")
		exec(e, "register_freelancer f1 web_dev 100 90 90 90 90 90")
		exec(e, "register_freelancer f2 web_dev 100 10 10 10 10 10")

		Convey("When the customer blacklists the stronger one", func() {
			So(exec(e, "blacklist c1 f1"), ShouldEqual, "c1 blacklisted f1")

			Convey("Then matching only sees the weaker one", func() {
				resp := exec(e, "request_job c1 web_dev 5")
				So(resp, ShouldStartWith, "available freelancers for web_dev (top 1):")
				So(resp, ShouldContainSubstring, "f2 - composite:")
				So(resp, ShouldNotContainSubstring, "f1 - composite:")
				So(resp, ShouldEndWith, "auto-employed best freelancer: f2 for customer c1")
			})
		})

		Convey("When every candidate is blacklisted", func() {
			exec(e, "blacklist c1 f1")
			exec(e, "blacklist c1 f2")

			Convey("Then the request reports an empty pool", func() {
				So(exec(e, "request_job c1 web_dev 5"), ShouldEqual, "no freelancers available")
			})
		})

		Convey("When the service has no freelancers at all", func() {
			So(exec(e, "request_job c1 plumbing 5"), ShouldEqual, "no freelancers available")
		})

		Convey("When a blacklisted freelancer is employed directly", func() {
			exec(e, "blacklist c1 f1")
			So(exec(e, "employ_freelancer c1 f1"), ShouldEqual, "Some error occurred in employ_freelancer.")
		})

		Convey("When K is zero but eligible freelancers exist", func() {
			_, err := e.Execute("request_job", []string{"c1", "web_dev", "0"})

			Convey("Then the command faults with no response", func() {
				So(err, ShouldNotBeNil)
			})
		})

		Convey("When blacklisting references unknown parties", func() {
			So(exec(e, "blacklist c9 f1"), ShouldEqual, "Some error occurred in blacklist.")
			So(exec(e, "blacklist c1 f9"), ShouldEqual, "Some error occurred in blacklist.")

			Convey("And double blacklisting is rejected", func() {
				exec(e, "blacklist c1 f1")
				So(exec(e, "blacklist c1 f1"), ShouldEqual, "Some error occurred in blacklist.")
			})

			Convey("And unblacklisting requires an existing entry", func() {
				So(exec(e, "unblacklist c1 f1"), ShouldEqual, "Some error occurred in unblacklist.")
			})
		})
	})
}

func TestRatingEvolution(t *testing.T) {
	Convey("Given an employed freelancer", t, func() {
		e := New()
		exec(e, "register_customer c1")
		exec(e, "register_freelancer f1 web_dev 100 50 50 50 50 50")
		exec(e, "employ_freelancer c1 f1")

		Convey("When the job completes with a middling rating", func() {
			So(exec(e, "complete_and_rate f1 3"), ShouldEqual, "f1 completed job for c1 with rating 3")

			Convey("Then the rating averages in and skills stay put", func() {
				// (5.0*1 + 3) / 2 = 4.0
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "rating: 4.0")
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "skills: (50,50,50,50,50)")
			})
		})

		Convey("When the job completes with a high rating", func() {
			exec(e, "complete_and_rate f1 5")

			Convey("Then the service's top skills gain points", func() {
				// web_dev top three: technical +2, attention +1, creativity +1.
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "skills: (52,50,51,50,51)")
			})
		})

		Convey("When the freelancer cancels", func() {
			So(exec(e, "cancel_by_freelancer f1"), ShouldEqual, "cancelled by freelancer: f1 cancelled c1")

			Convey("Then the rating decays and all skills degrade", func() {
				// 5.0 * 1/2 = 2.5
				resp := exec(e, "query_freelancer f1")
				So(resp, ShouldContainSubstring, "rating: 2.5")
				So(resp, ShouldContainSubstring, "skills: (47,47,47,47,47)")
				So(resp, ShouldContainSubstring, "cancelled: 1")
			})
		})

		Convey("When the rating argument is out of range", func() {
			So(exec(e, "complete_and_rate f1 6"), ShouldEqual, "Some error occurred in complete_and_rate.")
			So(exec(e, "complete_and_rate f1 -1"), ShouldEqual, "Some error occurred in complete_and_rate.")
		})

		Convey("When there is no active employment", func() {
			exec(e, "complete_and_rate f1 5")
			So(exec(e, "complete_and_rate f1 5"), ShouldEqual, "Some error occurred in complete_and_rate.")
			So(exec(e, "cancel_by_freelancer f1"), ShouldEqual, "Some error occurred in cancel_by_freelancer.")
		})

		Convey("When the wrong customer cancels", func() {
			exec(e, "register_customer c2")
			So(exec(e, "cancel_by_customer c2 f1"), ShouldEqual, "Some error occurred in cancel_by_customer.")
		})
	})
}

func TestBanAfterRepeatedCancellations(t *testing.T) {
	Convey("Given a freelancer who keeps cancelling", t, func() {
		e := New()
		exec(e, "register_customer c1")
		exec(e, "register_freelancer f1 web_dev 100 50 50 50 50 50")

		for i := 0; i < 4; i++ {
			So(exec(e, "employ_freelancer c1 f1"), ShouldEqual, "c1 employed f1 for web_dev")
			So(exec(e, "cancel_by_freelancer f1"), ShouldEqual, "cancelled by freelancer: f1 cancelled c1")
		}

		Convey("When the fifth cancellation lands in the same month", func() {
			exec(e, "employ_freelancer c1 f1")
			resp := exec(e, "cancel_by_freelancer f1")

			Convey("Then the freelancer is banned from the platform", func() {
				So(resp, ShouldEqual, "cancelled by freelancer: f1 cancelled c1\nplatform banned freelancer: f1")
				So(exec(e, "query_freelancer f1"), ShouldEqual, "Some error occurred in query_freelancer.")
				So(exec(e, "employ_freelancer c1 f1"), ShouldEqual, "Some error occurred in employ_freelancer.")
				So(exec(e, "request_job c1 web_dev 3"), ShouldEqual, "no freelancers available")
			})
		})

		Convey("When a month boundary resets the counter first", func() {
			exec(e, "simulate_month")
			exec(e, "employ_freelancer c1 f1")
			resp := exec(e, "cancel_by_freelancer f1")

			Convey("Then the fifth lifetime cancellation does not ban", func() {
				So(resp, ShouldEqual, "cancelled by freelancer: f1 cancelled c1")
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "cancelled: 5")
			})
		})
	})
}

func TestBurnoutHysteresis(t *testing.T) {
	Convey("Given a freelancer and a customer", t, func() {
		e := New()
		exec(e, "register_customer c1")
		exec(e, "register_freelancer f1 web_dev 100 50 50 50 50 50")

		completeJobs := func(n int) {
			for i := 0; i < n; i++ {
				exec(e, "employ_freelancer c1 f1")
				exec(e, "complete_and_rate f1 3")
			}
		}

		Convey("When five jobs complete before the month ends", func() {
			completeJobs(5)
			exec(e, "simulate_month")

			Convey("Then burnout sets in", func() {
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "burnout: yes")
			})

			Convey("And a three-job month holds the burnout state", func() {
				completeJobs(3)
				exec(e, "simulate_month")
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "burnout: yes")
			})

			Convey("And a two-job month clears it", func() {
				completeJobs(2)
				exec(e, "simulate_month")
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "burnout: no")
			})
		})

		Convey("When only four jobs complete", func() {
			completeJobs(4)
			exec(e, "simulate_month")

			Convey("Then burnout never sets in", func() {
				So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "burnout: no")
			})
		})
	})
}

func TestLoyaltyDiscounts(t *testing.T) {
	Convey("Given a customer with heavy spending", t, func() {
		e := New()
		exec(e, "register_customer c1")
		exec(e, "register_freelancer f1 web_dev 6000 50 50 50 50 50")
		exec(e, "register_freelancer f2 web_dev 1000 50 50 50 50 50")

		exec(e, "employ_freelancer c1 f1")
		exec(e, "complete_and_rate f1 3")

		Convey("Then the tier only changes at the month boundary", func() {
			So(exec(e, "query_customer c1"), ShouldContainSubstring, "loyalty tier: BRONZE")

			exec(e, "simulate_month")
			So(exec(e, "query_customer c1"), ShouldContainSubstring, "loyalty tier: PLATINUM")
		})

		Convey("When the platinum discount applies to the next payment", func() {
			exec(e, "simulate_month")
			exec(e, "employ_freelancer c1 f2")
			exec(e, "complete_and_rate f2 3")

			Convey("Then the payment is floored after the discount", func() {
				// 6000 + floor(1000 * 0.85)
				So(exec(e, "query_customer c1"), ShouldContainSubstring, "total spent: $6850")
			})
		})

		Convey("When cancellations drag the evaluation down", func() {
			for i := 0; i < 10; i++ {
				exec(e, "employ_freelancer c1 f2")
				exec(e, "cancel_by_customer c1 f2")
			}
			exec(e, "simulate_month")

			Convey("Then the tier drops despite the spending", func() {
				// 6000 - 10*250 = 3500 -> GOLD
				So(exec(e, "query_customer c1"), ShouldContainSubstring, "loyalty tier: GOLD")
			})
		})
	})
}

func TestServiceChangeLifecycle(t *testing.T) {
	Convey("Given an available freelancer", t, func() {
		e := New()
		exec(e, "register_customer c1")
		exec(e, "register_freelancer f1 paint 80 50 50 50 50 50")

		Convey("Then a queued change only applies at the month boundary", func() {
			So(exec(e, "change_service f1 WEB_DEV 120"), ShouldEqual, "service change for f1 queued from paint to web_dev")
			So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "f1: paint, price: 80")

			exec(e, "simulate_month")
			So(exec(e, "query_freelancer f1"), ShouldContainSubstring, "f1: web_dev, price: 120")

			Convey("And matching moves to the new service", func() {
				So(exec(e, "request_job c1 paint 3"), ShouldEqual, "no freelancers available")
				So(exec(e, "request_job c1 web_dev 3"), ShouldStartWith, "available freelancers for web_dev")
			})
		})

		Convey("Then invalid change requests are rejected", func() {
			So(exec(e, "change_service f1 paint 90"), ShouldEqual, "Some error occurred in change_service.")
			So(exec(e, "change_service f1 cooking 90"), ShouldEqual, "Some error occurred in change_service.")
			So(exec(e, "change_service f1 web_dev 0"), ShouldEqual, "Some error occurred in change_service.")
			So(exec(e, "change_service f9 web_dev 90"), ShouldEqual, "Some error occurred in change_service.")

			exec(e, "employ_freelancer c1 f1")
			So(exec(e, "change_service f1 web_dev 90"), ShouldEqual, "Some error occurred in change_service.")
		})
	})
}

func TestArity(t *testing.T) {
	Convey("Given the operation table", t, func() {
		Convey("Then every operation reports its argument count", func() {
			cases := map[string]int{
				"register_customer":    1,
				"register_freelancer":  8,
				"request_job":          3,
				"employ_freelancer":    2,
				"complete_and_rate":    2,
				"cancel_by_freelancer": 1,
				"cancel_by_customer":   2,
				"blacklist":            2,
				"unblacklist":          2,
				"change_service":       3,
				"simulate_month":       0,
				"query_freelancer":     1,
				"query_customer":       1,
				"update_skill":         6,
			}
			for op, want := range cases {
				got, ok := Arity(op)
				So(ok, ShouldBeTrue)
				So(got, ShouldEqual, want)
			}
		})

		Convey("Then unknown operations are not recognized", func() {
			_, ok := Arity("frobnicate")
			So(ok, ShouldBeFalse)
		})
	})
}
