package mappers

import (
	api "github.com/watchair/watchair/api/v1"
	"github.com/watchair/watchair/internal/service"
)

func DomainFormApi(resource api.DomainCreate) service.DomainCreateForm {
	return service.DomainCreateForm{
		Name:    resource.Name,
		EndDate: resource.EndDate,
	}
}
