package worker

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/careerhq/career-platform/internal/ai"
	"github.com/careerhq/career-platform/internal/filestore"
	"github.com/careerhq/career-platform/internal/textextract"
	"github.com/careerhq/career-platform/internal/worker/domain"
)

// EnrichmentStore is the storage surface the enricher writes results through
type EnrichmentStore interface {
	StudentProfile(ctx context.Context, studentID string) (*domain.StudentProfile, error)
	JobPosting(ctx context.Context, jobID string) (*domain.JobPosting, error)
	CompleteStudentEnrichment(ctx context.Context, taskID, studentID, summary string, embedding []float32) error
	CompleteJobEmbedding(ctx context.Context, taskID, jobID string, embedding []float32) error
}

// Enricher executes enrichment tasks: it turns student profiles into
// summaries and embeddings, and job descriptions into embeddings.
type Enricher struct {
	store    EnrichmentStore
	files    filestore.Store
	provider ai.Provider
	logger   *slog.Logger
}

// NewEnricher creates an enricher backed by the given storage, file store,
// and AI provider
func NewEnricher(store EnrichmentStore, files filestore.Store, provider ai.Provider, logger *slog.Logger) *Enricher {
	return &Enricher{
		store:    store,
		files:    files,
		provider: provider,
		logger:   logger,
	}
}

// EnrichStudent summarizes a student profile, embeds the summary, and stores
// both. The resume is included in the summary prompt when one is on file and
// its text can be extracted; a missing or unreadable resume downgrades the
// summary rather than failing the task.
func (e *Enricher) EnrichStudent(ctx context.Context, taskID, studentID string) error {
	profile, err := e.store.StudentProfile(ctx, studentID)
	if err != nil {
		return err
	}

	resumeText := e.resumeText(ctx, profile)

	summary, err := e.provider.Summarize(ctx, ai.Profile{
		Name:       profile.Name,
		Location:   profile.Location,
		Experience: profile.Experience,
		ResumeText: resumeText,
	})
	if err != nil {
		return fmt.Errorf("failed to summarize student %s: %w", studentID, err)
	}

	embedding, err := e.provider.Embed(ctx, summary)
	if err != nil {
		return fmt.Errorf("failed to embed summary for student %s: %w", studentID, err)
	}

	if err := e.store.CompleteStudentEnrichment(ctx, taskID, studentID, summary, embedding); err != nil {
		return fmt.Errorf("failed to store enrichment for student %s: %w", studentID, err)
	}

	return nil
}

// EmbedJob embeds a job posting's title and description and stores the vector
func (e *Enricher) EmbedJob(ctx context.Context, taskID, jobID string) error {
	posting, err := e.store.JobPosting(ctx, jobID)
	if err != nil {
		return err
	}

	embedding, err := e.provider.Embed(ctx, posting.Title+"\n\n"+posting.Description)
	if err != nil {
		return fmt.Errorf("failed to embed job %s: %w", jobID, err)
	}

	if err := e.store.CompleteJobEmbedding(ctx, taskID, jobID, embedding); err != nil {
		return fmt.Errorf("failed to store embedding for job %s: %w", jobID, err)
	}

	return nil
}

// resumeText loads and extracts the student's resume. Any failure is logged
// and returns empty text so enrichment proceeds on the profile fields alone.
func (e *Enricher) resumeText(ctx context.Context, profile *domain.StudentProfile) string {
	if profile.ResumeKey == "" {
		return ""
	}

	reader, err := e.files.Open(ctx, profile.ResumeKey)
	if err != nil {
		e.logger.Warn("Failed to open resume file, summarizing without it",
			slog.String("student_id", profile.StudentID),
			slog.String("resume_key", profile.ResumeKey),
			slog.String("error", err.Error()),
		)
		return ""
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		e.logger.Warn("Failed to read resume file, summarizing without it",
			slog.String("student_id", profile.StudentID),
			slog.String("resume_key", profile.ResumeKey),
			slog.String("error", err.Error()),
		)
		return ""
	}

	text, err := textextract.Extract(profile.ResumeKey, data)
	if err != nil {
		e.logger.Warn("Failed to extract resume text, summarizing without it",
			slog.String("student_id", profile.StudentID),
			slog.String("resume_key", profile.ResumeKey),
			slog.String("error", err.Error()),
		)
		return ""
	}

	return text
}
