package api

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/api/responses"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/internal/fetch"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/metrics"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/models"
)

// GET /callback
func (s *Server) callbackDemo(c *gin.Context) {
	metrics.DemoRequests.WithLabelValues("callback").Inc()

	// Bridge the scheduled callback back onto the request goroutine; the
	// response cannot be written until the callback has fired.
	done := make(chan models.UserRecord, 1)
	s.fetcher.FetchCallback(func(user models.UserRecord) {
		done <- user
	})
	user := <-done

	responses.Fetch(c, "callback", "User fetched successfully using a callback", user)
}

// GET /promise
func (s *Server) promiseDemo(c *gin.Context) {
	metrics.DemoRequests.WithLabelValues("promise").Inc()

	res := <-s.fetcher.FetchAsync(c.Request.Context())
	if res.Err != nil {
		s.failedFetch(c, "promise", res.Err)
		return
	}

	responses.Fetch(c, "promise", "User fetched successfully using a promise", res.User)
}

// GET /async
func (s *Server) asyncDemo(c *gin.Context) {
	metrics.DemoRequests.WithLabelValues("async/await").Inc()

	user, err := s.fetcher.Fetch(c.Request.Context())
	if err != nil {
		s.failedFetch(c, "async/await", err)
		return
	}

	responses.Fetch(c, "async/await", "User fetched successfully using async/await", user)
}

func (s *Server) failedFetch(c *gin.Context, method string, err error) {
	if errors.Is(err, fetch.ErrSimulatedFailure) {
		metrics.SimulatedFailures.WithLabelValues(method).Inc()
	}
	s.writeError(c, err)
}
