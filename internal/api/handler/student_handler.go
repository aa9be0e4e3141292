package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"mime/multipart"
	"net/http"
	"path"
	"time"

	"github.com/careerhq/career-platform/internal/api/domain"
	"github.com/careerhq/career-platform/internal/api/dto"
	"github.com/careerhq/career-platform/internal/api/model"
	"github.com/careerhq/career-platform/internal/api/storage"
	"github.com/careerhq/career-platform/internal/filestore"
	"github.com/careerhq/career-platform/internal/textextract"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CreateStudent handles POST /api/v1/students
// Accepts a multipart form with the profile fields and an optional resume
// file. The profile is stored immediately in pending state; summarization and
// embedding happen asynchronously in the worker.
func (h *StudentHandler) CreateStudent(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req dto.CreateStudentRequest
	if err := c.ShouldBind(&req); err != nil {
		h.logger.Error("Invalid request body", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request body",
		})
		return
	}

	// The student is registered under the creating staff member's school.
	staff, err := h.storage.GetStaffByID(c.Request.Context(), identity.StaffID)
	if err != nil {
		h.logger.Error("Failed to look up staff", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create student",
		})
		return
	}

	studentID := uuid.New().String()

	resumeKey := ""
	if header, err := c.FormFile("resume"); err == nil {
		key, ok := h.saveResume(c, studentID, header)
		if !ok {
			return
		}
		resumeKey = key
	} else if !errors.Is(err, http.ErrMissingFile) {
		h.logger.Debug("No resume file in request", slog.String("error", err.Error()))
	}

	student := model.Student{
		StudentID:        studentID,
		Name:             req.Name,
		Location:         req.Location,
		Experience:       req.Experience,
		School:           staff.School,
		ResumeKey:        resumeKey,
		EnrichmentStatus: domain.EnrichmentPending,
		CreatedAt:        time.Now(),
		UpdatedAt:        time.Now(),
	}

	if err := h.storage.CreateStudent(c.Request.Context(), &student); err != nil {
		h.logger.Error("Failed to create student", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create student",
		})
		return
	}

	h.logger.Info("Student created",
		slog.String("student_id", student.StudentID),
		slog.String("school", student.School),
		slog.Bool("has_resume", resumeKey != ""),
	)

	enqueueEnrichment(c.Request.Context(), h.logger, h.storage, h.rabbitClient, domain.TaskKindStudentEnrich, student.StudentID)

	c.JSON(http.StatusCreated, studentToDTO(&student))
}

// GetStudent handles GET /api/v1/students/:student_id
// Used to poll enrichment progress after intake.
func (h *StudentHandler) GetStudent(c *gin.Context) {
	studentID := c.Param("student_id")
	if _, err := uuid.Parse(studentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "student_id must be a valid UUID",
		})
		return
	}

	student, err := h.storage.GetStudentByID(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Student not found",
			})
			return
		}
		h.logger.Error("Failed to get student", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to get student",
		})
		return
	}

	c.JSON(http.StatusOK, studentToDTO(student))
}

// ListStudents handles GET /api/v1/students
// Staff see their own school; admins see everything and may filter by school.
func (h *StudentHandler) ListStudents(c *gin.Context) {
	identity, ok := CurrentIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Authentication required",
		})
		return
	}

	var req dto.ListStudentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.logger.Error("Invalid query parameters", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid query parameters",
		})
		return
	}

	if req.PageSize <= 0 {
		req.PageSize = 20
	}

	if req.PageSize > 100 {
		req.PageSize = 100
	}

	school := req.School
	if !identity.IsAdmin() {
		staff, err := h.storage.GetStaffByID(c.Request.Context(), identity.StaffID)
		if err != nil {
			h.logger.Error("Failed to look up staff", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to list students",
			})
			return
		}
		school = staff.School
	}

	cursor, err := DecodeCursor(req.Cursor)
	if err != nil {
		h.logger.Error("Invalid cursor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid cursor",
		})
		return
	}

	filter := storage.StudentFilter{
		School:   school,
		Status:   req.Status,
		Search:   req.Search,
		PageSize: req.PageSize,
		Cursor:   cursor,
	}

	students, err := h.storage.ListStudents(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list students", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to list students",
		})
		return
	}

	hasMore := len(students) > req.PageSize
	if hasMore {
		students = students[:req.PageSize]
	}

	studentResponse := make([]dto.StudentDTO, len(students))
	for i := range students {
		studentResponse[i] = studentToDTO(&students[i])
	}

	var nextCursor string
	if hasMore {
		last := students[len(students)-1]
		nextCursor, err = EncodeCursor(&storage.Cursor{
			CreatedAt: last.CreatedAt,
			ID:        last.StudentID,
		})
		if err != nil {
			h.logger.Error("Failed to encode next cursor", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Failed to encode next cursor",
			})
			return
		}
	}

	c.JSON(http.StatusOK, dto.ListStudentsResponse{
		Students:   studentResponse,
		NextCursor: nextCursor,
	})
}

// UploadResume handles PUT /api/v1/students/:student_id/resume
// Replaces the stored resume and queues a fresh enrichment pass.
func (h *StudentHandler) UploadResume(c *gin.Context) {
	studentID := c.Param("student_id")
	if _, err := uuid.Parse(studentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "student_id must be a valid UUID",
		})
		return
	}

	student, err := h.storage.GetStudentByID(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Student not found",
			})
			return
		}
		h.logger.Error("Failed to get student", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to upload resume",
		})
		return
	}

	header, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "A resume file is required",
		})
		return
	}

	key, ok := h.saveResume(c, studentID, header)
	if !ok {
		return
	}

	if err := h.storage.UpdateStudentResume(c.Request.Context(), studentID, key); err != nil {
		h.logger.Error("Failed to update student resume", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to upload resume",
		})
		return
	}

	// Old resume is unreachable once the key is replaced; removal is best effort.
	if student.ResumeKey != "" && student.ResumeKey != key {
		if err := h.files.Delete(c.Request.Context(), student.ResumeKey); err != nil {
			h.logger.Warn("Failed to delete previous resume",
				slog.String("student_id", studentID),
				slog.String("key", student.ResumeKey),
				slog.String("error", err.Error()),
			)
		}
	}

	h.logger.Info("Resume replaced",
		slog.String("student_id", studentID),
		slog.String("key", key),
	)

	enqueueEnrichment(c.Request.Context(), h.logger, h.storage, h.rabbitClient, domain.TaskKindStudentEnrich, studentID)

	student.ResumeKey = key
	student.EnrichmentStatus = domain.EnrichmentPending
	student.EnrichmentError = ""
	c.JSON(http.StatusOK, studentToDTO(student))
}

// Resummarize handles POST /api/v1/students/:student_id/resummarize
// Queues another enrichment pass over the existing profile and resume.
func (h *StudentHandler) Resummarize(c *gin.Context) {
	studentID := c.Param("student_id")
	if _, err := uuid.Parse(studentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "student_id must be a valid UUID",
		})
		return
	}

	if err := h.storage.MarkStudentEnrichmentPending(c.Request.Context(), studentID); err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Student not found",
			})
			return
		}
		h.logger.Error("Failed to mark student for enrichment", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to queue enrichment",
		})
		return
	}

	enqueueEnrichment(c.Request.Context(), h.logger, h.storage, h.rabbitClient, domain.TaskKindStudentEnrich, studentID)

	c.JSON(http.StatusAccepted, gin.H{
		"message":    "Enrichment queued",
		"student_id": studentID,
	})
}

// DownloadResume handles GET /api/v1/students/:student_id/resume
func (h *StudentHandler) DownloadResume(c *gin.Context) {
	studentID := c.Param("student_id")
	if _, err := uuid.Parse(studentID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "student_id must be a valid UUID",
		})
		return
	}

	student, err := h.storage.GetStudentByID(c.Request.Context(), studentID)
	if err != nil {
		if errors.Is(err, domain.ErrStudentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Student not found",
			})
			return
		}
		h.logger.Error("Failed to get student", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to download resume",
		})
		return
	}

	if student.ResumeKey == "" {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Student has no resume on file",
		})
		return
	}

	reader, err := h.files.Open(c.Request.Context(), student.ResumeKey)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Resume file is missing from storage",
			})
			return
		}
		h.logger.Error("Failed to open resume", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to download resume",
		})
		return
	}
	defer reader.Close()

	filename := path.Base(student.ResumeKey)
	extraHeaders := map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", filename),
	}

	c.DataFromReader(http.StatusOK, -1, textextract.ContentType(filename), reader, extraHeaders)
}

// saveResume validates and stores an uploaded resume, writing the error
// response itself when the upload is rejected.
func (h *StudentHandler) saveResume(c *gin.Context, studentID string, header *multipart.FileHeader) (string, bool) {
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("Resume exceeds the %d MB limit", h.maxUploadBytes/(1<<20)),
		})
		return "", false
	}

	if !textextract.Supported(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Resume must be a .pdf, .docx or .txt file",
		})
		return "", false
	}

	src, err := header.Open()
	if err != nil {
		h.logger.Error("Failed to open uploaded resume", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store resume",
		})
		return "", false
	}
	defer src.Close()

	key := filestore.ResumeKey(studentID, header.Filename)
	if err := h.files.Save(c.Request.Context(), key, textextract.ContentType(header.Filename), src); err != nil {
		h.logger.Error("Failed to store resume", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to store resume",
		})
		return "", false
	}

	return key, true
}

func studentToDTO(student *model.Student) dto.StudentDTO {
	return dto.StudentDTO{
		StudentID:        student.StudentID,
		Name:             student.Name,
		Location:         student.Location,
		Experience:       student.Experience,
		School:           student.School,
		Summary:          student.Summary,
		EnrichmentStatus: student.EnrichmentStatus,
		EnrichmentError:  student.EnrichmentError,
		HasResume:        student.ResumeKey != "",
		HasEmbedding:     student.Embedding != nil,
		CreatedAt:        student.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        student.UpdatedAt.Format(time.RFC3339),
	}
}
