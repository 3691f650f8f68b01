package actions

import (
	"github.com/Liam-made-young/REPUBLIC/internal/domain"
)

// parseEntityID разбирает текстовую форму ID из payload.
func parseEntityID(s string) (domain.EntityID, error) {
	var id domain.EntityID
	if err := id.UnmarshalText([]byte(s)); err != nil {
		return domain.NilEntityID, err
	}
	return id, nil
}
