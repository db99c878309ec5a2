package mongo

import (
	"strings"

	domainerrors "brewshare/internal/domain/errors"
	"brewshare/internal/domain/repository"

	"go.mongodb.org/mongo-driver/mongo"
)

// accountWriteError classifies a failed write on the users collection.
// Duplicate keys are told apart by the index name in the server message.
func accountWriteError(err error, details string) error {
	if !mongo.IsDuplicateKeyError(err) {
		return domainerrors.NewDatabaseExecuteError(err, details)
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, usernameIndex):
		return repository.ErrDuplicateUsername
	case strings.Contains(msg, emailIndex):
		return repository.ErrDuplicateEmail
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}
