package router

import (
	"net/http"

	"github.com/careerhq/career-platform/internal/api/handler"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures and returns the Gin router with all routes
func SetupRouter(deps *handler.Dependencies) *gin.Engine {
	r := gin.New()

	// Middleware
	r.Use(gin.Recovery())
	r.Use(LoggerMiddleware(deps.Logger))
	r.Use(CORSMiddleware())

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "career-api-service",
		})
	})

	authHandler := handler.NewAuthHandler(deps)
	studentHandler := handler.NewStudentHandler(deps)
	jobHandler := handler.NewJobHandler(deps)
	matchHandler := handler.NewMatchHandler(deps)
	metricsHandler := handler.NewMetricsHandler(deps)

	// API v1 routes
	v1 := r.Group("/api/v1")
	{
		// Registration and login are the only routes reachable without a token
		auth := v1.Group("/auth")
		{
			// POST /api/v1/auth/register - Create a staff account
			auth.POST("/register", authHandler.Register)

			// POST /api/v1/auth/login - Exchange credentials for a token
			auth.POST("/login", authHandler.Login)
		}

		authed := v1.Group("")
		authed.Use(AuthRequired(deps.Tokens))
		{
			// PUT /api/v1/auth/password - Change the caller's own password
			authed.PUT("/auth/password", authHandler.UpdatePassword)

			students := authed.Group("/students")
			{
				// POST /api/v1/students - Create a student profile
				students.POST("", studentHandler.CreateStudent)

				// GET /api/v1/students - List students with filtering and pagination
				students.GET("", studentHandler.ListStudents)

				// GET /api/v1/students/:student_id - Get student details
				students.GET("/:student_id", studentHandler.GetStudent)

				// PUT /api/v1/students/:student_id/resume - Replace the resume file
				students.PUT("/:student_id/resume", studentHandler.UploadResume)

				// GET /api/v1/students/:student_id/resume - Download the resume file
				students.GET("/:student_id/resume", studentHandler.DownloadResume)

				// POST /api/v1/students/:student_id/resummarize - Re-run enrichment
				students.POST("/:student_id/resummarize", studentHandler.Resummarize)
			}

			jobs := authed.Group("/jobs")
			{
				// GET /api/v1/jobs - List jobs with filtering and pagination
				jobs.GET("", jobHandler.ListJobs)

				// GET /api/v1/jobs/:job_id - Get job details
				jobs.GET("/:job_id", jobHandler.GetJob)
			}

			// GET /api/v1/matches/queue - List pending matches best-first
			authed.GET("/matches/queue", matchHandler.ListQueue)

			// GET /api/v1/metrics/school - Placement metrics for one school
			authed.GET("/metrics/school", metricsHandler.SchoolMetrics)

			// GET /api/v1/dashboard - Platform-wide counters
			authed.GET("/dashboard", metricsHandler.Dashboard)

			// Job postings and match decisions require the admin role
			admin := authed.Group("")
			admin.Use(AdminRequired())
			{
				// POST /api/v1/jobs - Create a job posting
				admin.POST("/jobs", jobHandler.CreateJob)

				// POST /api/v1/jobs/:job_id/matches - Queue every embedded student against a job
				admin.POST("/jobs/:job_id/matches", matchHandler.CreateMatchesForJob)

				// POST /api/v1/matches - Score and queue one student/job pair
				admin.POST("/matches", matchHandler.CreateMatch)

				// POST /api/v1/matches/:match_id/finalize - Accept a queued match
				admin.POST("/matches/:match_id/finalize", matchHandler.FinalizeMatch)

				// POST /api/v1/matches/:match_id/archive - Dismiss a queued match
				admin.POST("/matches/:match_id/archive", matchHandler.ArchiveMatch)

				// POST /api/v1/auth/reset-password - Issue a temporary password
				admin.POST("/auth/reset-password", authHandler.ResetPassword)
			}
		}
	}

	return r
}
