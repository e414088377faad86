package store

// Config locates the on-disk database.
type Config interface {
	BasePath() string
}
