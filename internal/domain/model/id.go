package model

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	domainErrors "github.com/kawsar-hussain/server-A11/internal/domain/errors"
)

// ParseID parses a 24-character hex document id.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, domainErrors.NewInvalidIdentifierError(id, err)
	}
	return oid, nil
}
