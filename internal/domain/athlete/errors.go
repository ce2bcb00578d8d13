package athlete

import "errors"

var (
	ErrAthleteNotFound  = errors.New("athlete not found")
	ErrContactsNotFound = errors.New("contacts verification not submitted")
	ErrNotOwner         = errors.New("you can only manage your own profile")
	ErrMediaNotFound    = errors.New("media item not found")
	ErrCompletionTooLow = errors.New("profile completion is below the publishing threshold")
	ErrInvalidBatchSize = errors.New("batch size must be positive")
)
