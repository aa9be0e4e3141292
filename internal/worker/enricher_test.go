package worker

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/careerhq/career-platform/internal/ai"
	"github.com/careerhq/career-platform/internal/filestore"
	"github.com/careerhq/career-platform/internal/worker/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnrichmentStore struct {
	students map[string]*domain.StudentProfile
	jobs     map[string]*domain.JobPosting

	completedTaskID  string
	completedSummary string
	studentEmbedding []float32
	jobEmbedding     []float32
	completeErr      error
}

func (s *fakeEnrichmentStore) StudentProfile(_ context.Context, studentID string) (*domain.StudentProfile, error) {
	profile, ok := s.students[studentID]
	if !ok {
		return nil, fmt.Errorf("student %s: %w", studentID, domain.ErrEntityNotFound)
	}
	return profile, nil
}

func (s *fakeEnrichmentStore) JobPosting(_ context.Context, jobID string) (*domain.JobPosting, error) {
	posting, ok := s.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("job %s: %w", jobID, domain.ErrEntityNotFound)
	}
	return posting, nil
}

func (s *fakeEnrichmentStore) CompleteStudentEnrichment(_ context.Context, taskID, _ string, summary string, embedding []float32) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completedTaskID = taskID
	s.completedSummary = summary
	s.studentEmbedding = embedding
	return nil
}

func (s *fakeEnrichmentStore) CompleteJobEmbedding(_ context.Context, taskID, _ string, embedding []float32) error {
	if s.completeErr != nil {
		return s.completeErr
	}
	s.completedTaskID = taskID
	s.jobEmbedding = embedding
	return nil
}

type fakeProvider struct {
	summary      string
	embedding    []float32
	summarizeErr error
	embedErr     error

	gotProfile  ai.Profile
	gotEmbedded string
}

func (p *fakeProvider) Summarize(_ context.Context, profile ai.Profile) (string, error) {
	p.gotProfile = profile
	if p.summarizeErr != nil {
		return "", p.summarizeErr
	}
	return p.summary, nil
}

func (p *fakeProvider) Embed(_ context.Context, text string) ([]float32, error) {
	p.gotEmbedded = text
	if p.embedErr != nil {
		return nil, p.embedErr
	}
	return p.embedding, nil
}

type fakeFiles struct {
	objects map[string][]byte
}

func (f *fakeFiles) Save(_ context.Context, key, _ string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeFiles) Open(_ context.Context, key string) (io.ReadCloser, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, filestore.ErrNotFound
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (f *fakeFiles) Delete(_ context.Context, key string) error {
	delete(f.objects, key)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestEnricher_EnrichStudent(t *testing.T) {
	store := &fakeEnrichmentStore{
		students: map[string]*domain.StudentProfile{
			"student-1": {
				StudentID:  "student-1",
				Name:       "Linh Tran",
				Location:   "Hanoi",
				Experience: "3 years of Go services",
			},
		},
	}
	provider := &fakeProvider{
		summary:   "Backend developer strong in Go.",
		embedding: []float32{0.1, 0.2, 0.3},
	}
	enricher := NewEnricher(store, &fakeFiles{objects: map[string][]byte{}}, provider, discardLogger())

	err := enricher.EnrichStudent(context.Background(), "task-1", "student-1")
	require.NoError(t, err)

	assert.Equal(t, "Linh Tran", provider.gotProfile.Name)
	assert.Empty(t, provider.gotProfile.ResumeText)
	assert.Equal(t, "Backend developer strong in Go.", provider.gotEmbedded,
		"the embedding input should be the generated summary")
	assert.Equal(t, "task-1", store.completedTaskID)
	assert.Equal(t, "Backend developer strong in Go.", store.completedSummary)
	assert.Equal(t, []float32{0.1, 0.2, 0.3}, store.studentEmbedding)
}

func TestEnricher_EnrichStudent_IncludesResumeText(t *testing.T) {
	const resumeKey = "resumes/student-1/ab12cd34_resume.txt"

	store := &fakeEnrichmentStore{
		students: map[string]*domain.StudentProfile{
			"student-1": {
				StudentID: "student-1",
				Name:      "Linh Tran",
				ResumeKey: resumeKey,
			},
		},
	}
	files := &fakeFiles{objects: map[string][]byte{
		resumeKey: []byte("Built payment services in Go and Postgres."),
	}}
	provider := &fakeProvider{
		summary:   "summary",
		embedding: []float32{1},
	}
	enricher := NewEnricher(store, files, provider, discardLogger())

	err := enricher.EnrichStudent(context.Background(), "task-1", "student-1")
	require.NoError(t, err)

	assert.Contains(t, provider.gotProfile.ResumeText, "payment services")
}

func TestEnricher_EnrichStudent_MissingResumeFileIsNotFatal(t *testing.T) {
	store := &fakeEnrichmentStore{
		students: map[string]*domain.StudentProfile{
			"student-1": {
				StudentID: "student-1",
				Name:      "Linh Tran",
				ResumeKey: "resumes/student-1/gone.pdf",
			},
		},
	}
	provider := &fakeProvider{
		summary:   "summary",
		embedding: []float32{1},
	}
	enricher := NewEnricher(store, &fakeFiles{objects: map[string][]byte{}}, provider, discardLogger())

	err := enricher.EnrichStudent(context.Background(), "task-1", "student-1")

	require.NoError(t, err, "enrichment should fall back to the profile fields")
	assert.Empty(t, provider.gotProfile.ResumeText)
	assert.Equal(t, "task-1", store.completedTaskID)
}

func TestEnricher_EnrichStudent_StudentMissing(t *testing.T) {
	store := &fakeEnrichmentStore{students: map[string]*domain.StudentProfile{}}
	enricher := NewEnricher(store, &fakeFiles{objects: map[string][]byte{}}, &fakeProvider{}, discardLogger())

	err := enricher.EnrichStudent(context.Background(), "task-1", "student-404")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}

func TestEnricher_EnrichStudent_ProviderFailurePropagates(t *testing.T) {
	store := &fakeEnrichmentStore{
		students: map[string]*domain.StudentProfile{
			"student-1": {StudentID: "student-1", Name: "Linh Tran"},
		},
	}
	provider := &fakeProvider{
		summarizeErr: fmt.Errorf("chat completion: %w", ai.ErrRateLimited),
	}
	enricher := NewEnricher(store, &fakeFiles{objects: map[string][]byte{}}, provider, discardLogger())

	err := enricher.EnrichStudent(context.Background(), "task-1", "student-1")

	require.Error(t, err)
	assert.ErrorIs(t, err, ai.ErrRateLimited)
	assert.Empty(t, store.completedTaskID, "nothing should be stored on failure")
}

func TestEnricher_EmbedJob(t *testing.T) {
	store := &fakeEnrichmentStore{
		jobs: map[string]*domain.JobPosting{
			"job-1": {
				JobID:       "job-1",
				Title:       "Backend Engineer",
				Description: "Build Go services.",
			},
		},
	}
	provider := &fakeProvider{embedding: []float32{0.5, 0.5}}
	enricher := NewEnricher(store, &fakeFiles{objects: map[string][]byte{}}, provider, discardLogger())

	err := enricher.EmbedJob(context.Background(), "task-2", "job-1")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer\n\nBuild Go services.", provider.gotEmbedded)
	assert.Equal(t, "task-2", store.completedTaskID)
	assert.Equal(t, []float32{0.5, 0.5}, store.jobEmbedding)
}

func TestEnricher_EmbedJob_JobMissing(t *testing.T) {
	store := &fakeEnrichmentStore{jobs: map[string]*domain.JobPosting{}}
	enricher := NewEnricher(store, &fakeFiles{objects: map[string][]byte{}}, &fakeProvider{}, discardLogger())

	err := enricher.EmbedJob(context.Background(), "task-2", "job-404")

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrEntityNotFound)
}
