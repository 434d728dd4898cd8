package store

import (
	"github.com/google/uuid"
	"github.com/watchair/watchair/internal/store/model"
	"gorm.io/gorm"
)

type BaseQuerier struct {
	QueryFn []func(tx *gorm.DB) *gorm.DB
}

type JobQueryFilter BaseQuerier

func NewJobQueryFilter() *JobQueryFilter {
	return &JobQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *JobQueryFilter) ByDomainID(domainID uuid.UUID) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("domain_id = ?", domainID)
	})
	return qf
}

func (qf *JobQueryFilter) ByType(jobType model.JobType) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("type = ?", jobType)
	})
	return qf
}

func (qf *JobQueryFilter) ByStatus(status model.JobStatus) *JobQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("status = ?", status)
	})
	return qf
}

type MemberQueryFilter BaseQuerier

func NewMemberQueryFilter() *MemberQueryFilter {
	return &MemberQueryFilter{QueryFn: make([]func(tx *gorm.DB) *gorm.DB, 0)}
}

func (qf *MemberQueryFilter) ByDomainID(domainID uuid.UUID) *MemberQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("domain_id = ?", domainID)
	})
	return qf
}

// ByRole keeps the members whose role includes the given one.
func (qf *MemberQueryFilter) ByRole(role model.Role) *MemberQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("role >= ?", role)
	})
	return qf
}

func (qf *MemberQueryFilter) ByID(ids []int) *MemberQueryFilter {
	qf.QueryFn = append(qf.QueryFn, func(tx *gorm.DB) *gorm.DB {
		return tx.Where("id IN ?", ids)
	})
	return qf
}

func apply(tx *gorm.DB, fns []func(tx *gorm.DB) *gorm.DB) *gorm.DB {
	for _, fn := range fns {
		tx = fn(tx)
	}
	return tx
}
