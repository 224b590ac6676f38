package searchhook

const (
	DefaultLimit      = 20
	DefaultForeignKey = "_id"
)
