package util

import (
	"fmt"
	"io"
	"io/fs"
	"mime/multipart"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/labstack/gommon/log"
)

// Environment variables the app reads, each with a matching command-line flag.
const (
	BindAddressEnvVar   = "BIND_ADDRESS"
	SessionSecretEnvVar = "SESSION_SECRET"
	DBTypeEnvVar        = "DB_TYPE"
	DBPathEnvVar        = "DB_PATH"
	DBHostEnvVar        = "DB_HOST"
	DBUserEnvVar        = "DB_USER"
	DBPasswordEnvVar    = "DB_PASSWORD"
	DBNameEnvVar        = "DB_NAME"
	DBPortEnvVar        = "DB_PORT"
	DBTLSEnvVar         = "DB_TLS"
	UploadDirEnvVar     = "UPLOAD_DIR"
	LogLevelEnvVar      = "LOG_LEVEL"
	UsernameEnvVar      = "USERNAME"
	PasswordEnvVar      = "PASSWORD"
)

const (
	DefaultBindAddress   = "0.0.0.0:3000"
	DefaultSessionSecret = "fallback-secret-key"
	DefaultDBType        = "jsondb"
	DefaultDBPath        = "./db"
	DefaultDBHost        = "localhost"
	DefaultDBUser        = "root"
	DefaultDBName        = "userportal"
	DefaultDBPort        = 3306
	DefaultUploadDir     = "./images/uploads"
	DefaultUsername      = "admin"
	DefaultPassword      = "admin"
)

func LookupEnvOrString(key string, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

func LookupEnvOrBool(key string, defaultVal bool) bool {
	if val, ok := os.LookupEnv(key); ok {
		v, err := strconv.ParseBool(val)
		if err != nil {
			fmt.Fprintf(os.Stderr, "LookupEnvOrBool[%s]: %v\n", key, err)
		}
		return v
	}
	return defaultVal
}

func LookupEnvOrInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		v, err := strconv.Atoi(val)
		if err != nil {
			fmt.Fprintf(os.Stderr, "LookupEnvOrInt[%s]: %v\n", key, err)
		}
		return v
	}
	return defaultVal
}

// StringFromEmbedFile reads a file from an embedded filesystem to string
func StringFromEmbedFile(embed fs.FS, filename string) (string, error) {
	file, err := embed.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ParseLogLevel returns the gommon log level for a level name
func ParseLogLevel(lvl string) (log.Lvl, error) {
	switch strings.ToLower(lvl) {
	case "debug":
		return log.DEBUG, nil
	case "info":
		return log.INFO, nil
	case "warn":
		return log.WARN, nil
	case "error":
		return log.ERROR, nil
	case "off":
		return log.OFF, nil
	default:
		return log.DEBUG, fmt.Errorf("not a valid log level: %s", lvl)
	}
}

// SaveUploadedFile writes an uploaded file into dir under its original
// client-supplied filename and returns that filename. The name is not
// sanitized and an existing file with the same name is silently
// overwritten, matching the behavior of the system this replaces.
func SaveUploadedFile(file *multipart.FileHeader, dir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return "", err
	}

	dst, err := os.Create(filepath.Join(dir, file.Filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}
	return file.Filename, nil
}
