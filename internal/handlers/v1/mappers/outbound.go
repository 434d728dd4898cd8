package mappers

import (
	api "github.com/watchair/watchair/api/v1"
	"github.com/watchair/watchair/internal/store/model"
)

func DomainToApi(domain model.Domain) api.Domain {
	return api.Domain{
		Id:        domain.ID,
		Name:      domain.Name,
		EndDate:   domain.EndDate,
		CreatedAt: domain.CreatedAt,
	}
}

func DomainListToApi(domains model.DomainList) api.DomainList {
	list := make(api.DomainList, 0, len(domains))
	for _, d := range domains {
		list = append(list, DomainToApi(d))
	}
	return list
}

func JobToApi(job model.ProcessingJob) api.Job {
	return api.Job{
		Id:        job.ID,
		DomainId:  job.DomainID,
		Type:      string(job.Type),
		Subtype:   string(job.Subtype),
		Subject:   job.Subject,
		Status:    api.JobStatus(job.Status),
		Message:   job.Message,
		CreatedAt: job.CreatedAt,
		EndedAt:   job.EndedAt,
	}
}

func JobListToApi(jobs model.ProcessingJobList) api.JobList {
	list := make(api.JobList, 0, len(jobs))
	for _, j := range jobs {
		list = append(list, JobToApi(j))
	}
	return list
}

func MetricHeaderToApi(header model.MetricHeader) api.MetricHeader {
	values := make([]api.MetricValue, 0, len(header.Values))
	for _, v := range header.Values {
		values = append(values, api.MetricValue{
			Value: v.Value,
			Min:   v.Min,
			Max:   v.Max,
			Step:  v.Step,
			Unit:  v.Unit,
			Label: v.Label,
			Color: v.Color,
		})
	}

	return api.MetricHeader{
		Id:          header.ID,
		JobId:       header.JobID,
		Title:       header.Title,
		Description: header.Description,
		Min:         header.ValueMin,
		Max:         header.ValueMax,
		Step:        header.ValueStep,
		Unit:        header.ValueUnit,
		Values:      values,
	}
}

func MetricHeaderListToApi(headers model.MetricHeaderList) api.MetricHeaderList {
	list := make(api.MetricHeaderList, 0, len(headers))
	for _, h := range headers {
		list = append(list, MetricHeaderToApi(h))
	}
	return list
}

func ReviewScoreListToApi(scores []model.ReviewScore) api.ReviewScoreList {
	list := make(api.ReviewScoreList, 0, len(scores))
	for _, s := range scores {
		list = append(list, api.ReviewScore{Value: s.Value, Explanation: s.Explanation})
	}
	return list
}
