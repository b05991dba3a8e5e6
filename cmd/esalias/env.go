package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/natrim/esalias/lib"
)

// envFileList returns the env files to read, .env first when it exists.
func envFileList(baseDir, files string) []string {
	var list []string
	if lib.FileExists(filepath.Join(baseDir, ".env")) {
		list = append(list, filepath.Join(baseDir, ".env"))
	}
	for f := range strings.SplitSeq(files, ",") {
		if f = strings.TrimSpace(f); f != "" && f != ".env" {
			list = append(list, filepath.Join(baseDir, f))
		}
	}
	return list
}

// loadEnv reads the process environment overlaid with the env files, later files win.
func loadEnv(files []string) (map[string]string, error) {
	env := make(map[string]string)
	for _, v := range os.Environ() {
		key, value, _ := strings.Cut(v, "=")
		env[key] = value
	}
	if len(files) == 0 {
		return env, nil
	}

	lib.PrintInfof("loading .env file/s: %s\n", strings.Join(files, ","))
	for _, f := range files {
		values, err := godotenv.Read(f)
		if err != nil {
			return nil, errors.Join(errors.New("failed to load env file "+f), err)
		}
		for key, value := range values {
			env[key] = value
		}
	}
	return env, nil
}

// makeDefine turns env into esbuild defines, only prefixed variables reach the bundle.
func makeDefine(env map[string]string, prefix string, isWatch bool) map[string]string {
	mode := env["NODE_ENV"]
	if mode == "" && isWatch {
		mode = "development"
	} else if mode == "" {
		mode = "production"
	}

	isDevelopment := "false"
	if mode == "development" {
		isDevelopment = "true"
	}
	isProduction := "true"
	if isDevelopment == "true" {
		isProduction = "false"
	}

	define := map[string]string{
		"process.env.NODE_ENV": fmt.Sprintf("%q", mode),
		"import.meta.env.MODE": fmt.Sprintf("%q", mode),
		"import.meta.env.PROD": isProduction,
		"import.meta.env.DEV":  isDevelopment,
	}

	if prefix != "" {
		for key, value := range env {
			if strings.HasPrefix(key, prefix) {
				define["process.env."+key] = fmt.Sprintf("%q", value)
				define["import.meta.env."+key] = fmt.Sprintf("%q", value)
			}
		}
	}

	return define
}
