package service

import (
	"tender-drafting-api/internal/entity"
)

func mapTender(t *entity.TenderProcess) *entity.TenderOutputModel {
	return &entity.TenderOutputModel{
		Id:           t.Id.String(),
		Name:         t.Name,
		Status:       t.Status,
		LastModified: t.LastModified,
	}
}

func mapTenders(tenders []entity.TenderProcess) []entity.TenderOutputModel {
	s := make([]entity.TenderOutputModel, 0)
	for _, tender := range tenders {
		s = append(s, *mapTender(&tender))
	}

	return s
}

func mapTenderDetails(t *entity.TenderProcess) *entity.TenderDetailsOutputModel {
	return &entity.TenderDetailsOutputModel{
		Id:           t.Id.String(),
		Name:         t.Name,
		Status:       t.Status,
		LastModified: t.LastModified,
		TenderData:   t.TenderData,
	}
}
