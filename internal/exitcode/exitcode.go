package exitcode

const (
	Success     = 0
	UsageError  = 1
	LoadError   = 2
	DBConnError = 3
	RenderError = 4
	ExportError = 5
	ServeError  = 6
)
