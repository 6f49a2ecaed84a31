package settings

import (
	"errors"
)

var (
	// ErrInvalidDefinition is returned when a setting definition combines value type, choices and range in an invalid way.
	ErrInvalidDefinition = errors.New("invalid setting definition")

	// ErrUnknownNamespace is returned when a namespace was never declared in the schema.
	ErrUnknownNamespace = errors.New("unknown settings namespace")

	// ErrUnknownSetting is returned when a submitted key is not a setting of the namespace.
	ErrUnknownSetting = errors.New("unknown setting")

	// ErrNotRegistered is returned by a store for keys that were never registered.
	ErrNotRegistered = errors.New("setting is not registered")

	// ErrTypeMismatch is returned when a value does not match the setting's value type.
	ErrTypeMismatch = errors.New("value does not match setting type")

	// ErrInvalidChoice is returned when a value is not one of the setting's choices.
	ErrInvalidChoice = errors.New("value is not a valid choice")

	// ErrOutOfRange is returned when a numeric value is outside the setting's range.
	ErrOutOfRange = errors.New("value is out of range")

	// ErrRestricted is returned when a user without write access to shared values submits a world scoped setting.
	ErrRestricted = errors.New("setting is shared by all users and restricted")

	// ErrNoClient is returned when a client scoped setting is written without a client identity.
	ErrNoClient = errors.New("client scoped setting requires a client identity")

	// ErrStoreUnavailable is returned when the persisted store backend can not be reached.
	ErrStoreUnavailable = errors.New("settings store unavailable")
)
