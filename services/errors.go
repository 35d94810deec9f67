package services

import "errors"

// Виды ошибок. Каждая конкретная ошибка ниже оборачивает один из них, так что
// errors.Is работает и по конкретной ошибке, и по её виду.
var (
	ErrValidation  = errors.New("validation error")
	ErrState       = errors.New("state error")
	ErrConflict    = errors.New("conflict")
	ErrNotFound    = errors.New("requested resource not found")
	ErrConsistency = errors.New("consistency error")
)

type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

func newKindError(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

var (
	// Ошибки валидации
	ErrInvalidInput         = newKindError(ErrValidation, "invalid input")
	ErrOddPlayerCount       = newKindError(ErrValidation, "odd number of enrolled players")
	ErrNotEnoughPlayers     = newKindError(ErrValidation, "at least 4 enrolled players are required")
	ErrNotEnoughPairs       = newKindError(ErrValidation, "at least 2 pairs are required")
	ErrTooManyPairs         = newKindError(ErrValidation, "bracket supports at most 16 pairs")
	ErrSamePlayer           = newKindError(ErrValidation, "a pair needs two distinct players")
	ErrPlayerNotEnrolled    = newKindError(ErrValidation, "player is not enrolled in this edition")
	ErrPlayerAlreadyPaired  = newKindError(ErrValidation, "player already belongs to a pair")
	ErrPlayerInactive       = newKindError(ErrValidation, "player is inactive")
	ErrSamePair             = newKindError(ErrValidation, "cannot swap players within the same pair")
	ErrInvalidSlot          = newKindError(ErrValidation, "pair slot must be 1 or 2")
	ErrInvalidPairOrder     = newKindError(ErrValidation, "order must list every pair of the edition exactly once")
	ErrPairFromOtherEdition = newKindError(ErrValidation, "pair belongs to another edition")
	ErrMatchIncomplete      = newKindError(ErrValidation, "both pairs must be defined before registering a winner")
	ErrWinnerNotInMatch     = newKindError(ErrValidation, "winner must be one of the match pairs")
	ErrSameWinner           = newKindError(ErrValidation, "new winner must differ from the current winner")
	ErrMatchNotDecided      = newKindError(ErrValidation, "match has no winner to correct")
	ErrInvalidPhotoType     = newKindError(ErrValidation, "photo must be a jpeg, png, webp or gif image")

	// Ошибки состояния
	ErrInvalidStatusTransition = newKindError(ErrState, "invalid edition status transition")
	ErrRegistrationClosed      = newKindError(ErrState, "edition is not accepting enrollment changes")
	ErrEditionNotBracketing    = newKindError(ErrState, "pairs and bracket can only change while the edition is bracketing")
	ErrEditionNotInProgress    = newKindError(ErrState, "edition is not in progress")
	ErrNotEnoughEnrollments    = newKindError(ErrState, "at least 4 enrolled players are required to start bracketing")
	ErrNoMatches               = newKindError(ErrState, "generate the bracket before starting the edition")
	ErrMatchAlreadyDecided     = newKindError(ErrState, "match already has a winner")
	ErrFinalNotDecided         = newKindError(ErrState, "the final has no winner yet")
	ErrPhotoStorageDisabled    = newKindError(ErrState, "photo storage is not configured")

	// Конфликты
	ErrAlreadyFinalized   = newKindError(ErrConflict, "edition already finalized")
	ErrOverwriteRequired  = newKindError(ErrConflict, "existing data would be overwritten; confirm to proceed")
	ErrPairInUse          = newKindError(ErrConflict, "pair is part of the bracket; regenerate or clear it first")
	ErrAlreadyEnrolled    = newKindError(ErrConflict, "player is already enrolled in this edition")
	ErrEditionNumberTaken = newKindError(ErrConflict, "edition number already used for this year")
	ErrPlayerHasPair      = newKindError(ErrConflict, "player belongs to a pair; delete the pair first")
	ErrConcurrentUpdate   = newKindError(ErrConflict, "edition changed concurrently; reload and retry")

	// Не найдено
	ErrPlayerNotFound     = newKindError(ErrNotFound, "player not found")
	ErrEditionNotFound    = newKindError(ErrNotFound, "edition not found")
	ErrPairNotFound       = newKindError(ErrNotFound, "pair not found")
	ErrMatchNotFound      = newKindError(ErrNotFound, "match not found")
	ErrEnrollmentNotFound = newKindError(ErrNotFound, "player is not enrolled in this edition")

	// Нарушение согласованности
	ErrOddAdvancement = newKindError(ErrConsistency, "odd number of pairs advancing to the next phase")

	// Аутентификация
	ErrInvalidCredentials = errors.New("invalid credentials")
)
