package messages

const (
	FiltersNotNil       = "filters can't be nil"
	InvalidRegion       = "invalid region %q"
	MissingRiotId       = "game name and tag are required"
	OperationInProgress = "recap generation already in progress, please wait"
	PlayerNotFound      = "player not found"
)
