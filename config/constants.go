package config

import "os"

const (
	DEFAULT_WORKERS = 0

	COMPRESSED_SUFFIX = ".zst"

	FILE_PERMISSION os.FileMode = 0600
)
