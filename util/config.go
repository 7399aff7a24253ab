package util

// Runtime config
var (
	BindAddress   string
	SessionSecret []byte
	DBType        string
	DBPath        string
	DBHost        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBPort        int
	DBTLS         bool
	UploadDir     string
)
