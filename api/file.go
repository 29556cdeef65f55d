package api

import (
	"github.com/gin-gonic/gin"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/api/responses"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/metrics"
)

// GET /file
func (s *Server) fileDemo(c *gin.Context) {
	metrics.DemoRequests.WithLabelValues("file system").Inc()

	rt, err := s.files.RoundTrip(s.user)
	if err != nil {
		metrics.FileRoundTrips.WithLabelValues("error").Inc()
		s.writeError(c, err)
		return
	}
	metrics.FileRoundTrips.WithLabelValues("ok").Inc()

	responses.File(c, "file system", "File written and read successfully", rt.Path, rt.Content)
}
