// Package services contains stateless domain services for the item catalog.
// Domain services enforce business rules that operate purely on domain types
// and have zero external dependencies beyond stdlib and the domain layer.
package services

import (
	"fmt"
	"strings"

	"github.com/ghuser/lendshare/services/item/domain/models"
)

const maxItemNameLength = 255

// ValidateItemForCreation performs cross-field validation on an Item before
// it is persisted. Structural shape (required fields) is checked at the HTTP
// boundary; this adds the business-level rules.
func ValidateItemForCreation(item *models.Item) error {
	if item == nil {
		return fmt.Errorf("item cannot be nil")
	}

	if strings.TrimSpace(item.Name) == "" {
		return fmt.Errorf("item name must not be blank")
	}

	if len(item.Name) > maxItemNameLength {
		return fmt.Errorf("item name must not exceed %d characters", maxItemNameLength)
	}

	if strings.TrimSpace(item.Description) == "" {
		return fmt.Errorf("item description must not be blank")
	}

	if item.OwnerID <= 0 {
		return fmt.Errorf("owner id must be set")
	}

	return nil
}
