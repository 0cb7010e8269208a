package dynamorepo

import (
	"time"

	"github.com/mrled/mailvet/internal/model"
)

// Partition key values for the two record kinds sharing one table.
const (
	domainPartition = "DOMAIN"
	emailPartition  = "EMAIL"
)

// domainDTO is the persistence layer DTO for domain records.
// PK (partition key) is the record kind, SK (sort key) is the domain name.
type domainDTO struct {
	PK              string    `dynamodbav:"pk"`
	SK              string    `dynamodbav:"sk"`
	HitCount        int64     `dynamodbav:"HitCount"`
	CatchAll        bool      `dynamodbav:"CatchAll"`
	SuggestedDomain string    `dynamodbav:"SuggestedDomain,omitempty"`
	LastRefreshed   time.Time `dynamodbav:"LastRefreshed"`
}

func (dto *domainDTO) toModel() *model.DomainRecord {
	return &model.DomainRecord{
		Domain:          dto.SK,
		HitCount:        dto.HitCount,
		CatchAll:        dto.CatchAll,
		SuggestedDomain: dto.SuggestedDomain,
		LastRefreshed:   dto.LastRefreshed,
	}
}

func domainDTOFromModel(record *model.DomainRecord) *domainDTO {
	return &domainDTO{
		PK:              domainPartition,
		SK:              record.Domain,
		HitCount:        record.HitCount,
		CatchAll:        record.CatchAll,
		SuggestedDomain: record.SuggestedDomain,
		LastRefreshed:   record.LastRefreshed,
	}
}

// emailDTO is the persistence layer DTO for email records.
// PK is the record kind, SK is the full address.
type emailDTO struct {
	PK            string    `dynamodbav:"pk"`
	SK            string    `dynamodbav:"sk"`
	Code          int       `dynamodbav:"Code"`
	DidYouMean    string    `dynamodbav:"DidYouMean,omitempty"`
	LastRefreshed time.Time `dynamodbav:"LastRefreshed"`
}

func (dto *emailDTO) toModel() *model.EmailRecord {
	return &model.EmailRecord{
		Address: dto.SK,
		Outcome: model.Outcome{
			Code:       dto.Code,
			DidYouMean: dto.DidYouMean,
		},
		LastRefreshed: dto.LastRefreshed,
	}
}

func emailDTOFromModel(record *model.EmailRecord) *emailDTO {
	return &emailDTO{
		PK:            emailPartition,
		SK:            record.Address,
		Code:          record.Outcome.Code,
		DidYouMean:    record.Outcome.DidYouMean,
		LastRefreshed: record.LastRefreshed,
	}
}
