package store

import (
	"context"

	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
)

type Store interface {
	NewTransactionContext(ctx context.Context) (context.Context, error)
	Domain() Domain
	Job() Job
	Person() Person
	Member() Member
	Author() Author
	Submission() Submission
	Assignment() Assignment
	Review() Review
	Score() Score
	Comment() Comment
	Metric() Metric
	Statistics(ctx context.Context) (model.Statistics, error)
	Close() error
}

type DataStore struct {
	db         *gorm.DB
	domain     Domain
	job        Job
	person     Person
	member     Member
	author     Author
	submission Submission
	assignment Assignment
	review     Review
	score      Score
	comment    Comment
	metric     Metric
}

func NewStore(db *gorm.DB) Store {
	return &DataStore{
		db:         db,
		domain:     NewDomainStore(db),
		job:        NewJobStore(db),
		person:     NewPersonStore(db),
		member:     NewMemberStore(db),
		author:     NewAuthorStore(db),
		submission: NewSubmissionStore(db),
		assignment: NewAssignmentStore(db),
		review:     NewReviewStore(db),
		score:      NewScoreStore(db),
		comment:    NewCommentStore(db),
		metric:     NewMetricStore(db),
	}
}

func (s *DataStore) NewTransactionContext(ctx context.Context) (context.Context, error) {
	return newTransactionContext(ctx, s.db)
}

func (s *DataStore) Domain() Domain {
	return s.domain
}

func (s *DataStore) Job() Job {
	return s.job
}

func (s *DataStore) Person() Person {
	return s.person
}

func (s *DataStore) Member() Member {
	return s.member
}

func (s *DataStore) Author() Author {
	return s.author
}

func (s *DataStore) Submission() Submission {
	return s.submission
}

func (s *DataStore) Assignment() Assignment {
	return s.assignment
}

func (s *DataStore) Review() Review {
	return s.review
}

func (s *DataStore) Score() Score {
	return s.score
}

func (s *DataStore) Comment() Comment {
	return s.comment
}

func (s *DataStore) Metric() Metric {
	return s.metric
}

func (s *DataStore) Statistics(ctx context.Context) (model.Statistics, error) {
	db := getDB(ctx, s.db).WithContext(ctx)
	stats := model.Statistics{JobsByStatus: map[string]int{}}

	counts := []struct {
		model any
		dest  *int
	}{
		{&model.Domain{}, &stats.Domains},
		{&model.Submission{}, &stats.Submissions},
		{&model.Review{}, &stats.Reviews},
	}
	for _, c := range counts {
		var total int64
		if err := db.Model(c.model).Count(&total).Error; err != nil {
			return model.Statistics{}, err
		}
		*c.dest = int(total)
	}

	var rows []struct {
		Status string
		Total  int
	}
	if err := db.Model(&model.ProcessingJob{}).Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return model.Statistics{}, err
	}
	for _, row := range rows {
		stats.JobsByStatus[row.Status] = row.Total
	}

	return stats, nil
}

func (s *DataStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// getDB returns the transaction carried by ctx, if any.
func getDB(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx := FromContext(ctx); tx != nil {
		return tx
	}
	return db
}
