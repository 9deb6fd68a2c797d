package mapping

import (
	"github.com/quillbooks/quillbooks_app/internal/core/domain"
	"github.com/quillbooks/quillbooks_app/internal/models"
)

func ToModelDocumentSequence(d domain.DocumentSequence) models.DocumentSequence {
	return models.DocumentSequence{
		CompanyID:     d.CompanyID,
		Kind:          d.Kind,
		Prefix:        d.Prefix,
		Padding:       d.Padding,
		LastNumber:    d.LastNumber,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

func ToDomainDocumentSequence(m models.DocumentSequence) domain.DocumentSequence {
	return domain.DocumentSequence{
		CompanyID:     m.CompanyID,
		Kind:          m.Kind,
		Prefix:        m.Prefix,
		Padding:       m.Padding,
		LastNumber:    m.LastNumber,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}
