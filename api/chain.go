package api

import (
	"github.com/gin-gonic/gin"

	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/api/responses"
	"github.com/MaryanFarahsectionE/CPAN-212---LAB-2/pkg/metrics"
)

// GET /chain
func (s *Server) chainDemo(c *gin.Context) {
	metrics.DemoRequests.WithLabelValues("chain").Inc()

	result, err := s.pipeline.Run(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	metrics.ChainDuration.Observe(float64(result.TotalTime) / 1000)

	responses.Chain(c, "chain", "Chained async operations completed successfully", result)
}
