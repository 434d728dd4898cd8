package service

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/watchair/watchair/internal/jobs"
	"github.com/watchair/watchair/internal/store"
	"github.com/watchair/watchair/internal/store/model"
	"github.com/watchair/watchair/pkg/log"
)

// FileSaver persists uploaded workbooks under a flat name.
type FileSaver interface {
	Save(ctx context.Context, name string, content io.Reader) error
}

type JobCreator interface {
	CreateJob(ctx context.Context, jobType model.JobType, subtype model.JobSubtype, subject string, domainID uuid.UUID) (*model.ProcessingJob, error)
	GetJob(ctx context.Context, id uuid.UUID) (*model.ProcessingJob, error)
	ListDomainJobs(ctx context.Context, domainID uuid.UUID) (model.ProcessingJobList, error)
}

var uploadExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
}

type JobService struct {
	store  store.Store
	jobs   JobCreator
	files  FileSaver
	logger *log.StructuredLogger
}

func NewJobService(s store.Store, creator JobCreator, files FileSaver) *JobService {
	return &JobService{
		store:  s,
		jobs:   creator,
		files:  files,
		logger: log.NewDebugLogger("job_service"),
	}
}

// UploadFile stores content under a generated name keeping the extension of
// originalName, and returns that name.
func (s *JobService) UploadFile(ctx context.Context, domainID uuid.UUID, originalName string, content io.Reader) (string, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("upload_file").
		WithUUID("domain_id", domainID).
		WithString("original_name", originalName).
		Build()

	if err := s.ensureDomain(ctx, domainID); err != nil {
		return "", err
	}

	ext := strings.ToLower(filepath.Ext(originalName))
	if !uploadExtensions[ext] {
		return "", NewErrInvalidRequest("unsupported file extension %q", ext)
	}

	name := uuid.NewString() + ext
	if err := s.files.Save(ctx, name, content); err != nil {
		tracer.Error(err).Log()
		if errors.Is(err, fs.ErrExist) {
			return "", NewErrFileAlreadyExists(name)
		}
		return "", err
	}

	tracer.Success().WithString("file_name", name).Log()
	return name, nil
}

// CreateFileJob starts the ingestion of a previously uploaded workbook. The job
// is returned RUNNING; a missing file ends it FAILED.
func (s *JobService) CreateFileJob(ctx context.Context, domainID uuid.UUID, fileName string) (*model.ProcessingJob, error) {
	tracer := s.logger.WithContext(ctx).
		Operation("create_file_job").
		WithUUID("domain_id", domainID).
		WithString("file_name", fileName).
		Build()

	if err := s.ensureDomain(ctx, domainID); err != nil {
		return nil, err
	}

	job, err := s.jobs.CreateJob(ctx, model.JobTypeFile, model.JobSubtypeExcel, fileName, domainID)
	if err != nil {
		tracer.Error(err).Log()
		return nil, err
	}

	tracer.Success().WithString("job_id", job.ID.String()).Log()
	return job, nil
}

func (s *JobService) ListJobs(ctx context.Context, domainID uuid.UUID) (model.ProcessingJobList, error) {
	if err := s.ensureDomain(ctx, domainID); err != nil {
		return nil, err
	}
	return s.jobs.ListDomainJobs(ctx, domainID)
}

// GetJob returns the job only when it belongs to domainID.
func (s *JobService) GetJob(ctx context.Context, domainID, jobID uuid.UUID) (*model.ProcessingJob, error) {
	job, err := s.jobs.GetJob(ctx, jobID)
	if err != nil {
		var notFound *jobs.ErrJobNotFound
		if errors.As(err, &notFound) {
			return nil, NewErrJobNotFound(jobID)
		}
		return nil, err
	}
	if job.DomainID != domainID {
		return nil, NewErrJobNotFound(jobID)
	}
	return job, nil
}

func (s *JobService) ensureDomain(ctx context.Context, domainID uuid.UUID) error {
	if _, err := s.store.Domain().Get(ctx, domainID); err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return NewErrDomainNotFound(domainID)
		}
		return err
	}
	return nil
}
