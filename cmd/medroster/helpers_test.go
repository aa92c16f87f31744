package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/medroster"
	main "github.com/fwojciec/medroster/cmd/medroster"
	"github.com/fwojciec/medroster/config"
	"github.com/stretchr/testify/require"
)

const rawDataset = "profile_url,name,qualifications,specialty,experience,hospital,location\n" +
	"https://example.com/doctors/a,Dr. A,\"MBBS, FCPS\",Senior Consultant Cardiologist,10 Years of Experience Overall,Square Hospital Ltd,\"18/F, Panthapath, Dhaka, Bangladesh\"\n" +
	"https://example.com/doctors/b,Dr. B,BMDC-12345,Cardiologist,N/A,Square Hospital Ltd,\"Panthapath, Dhaka, Bangladesh\"\n" +
	"https://example.com/doctors/c,Dr. C,MBBS,Neurologist,5 Years of Experience Overall,Norvic Hospital,\"Thapathali, Kathmandu, Nepal\"\n" +
	"https://example.com/doctors/a,Dr. A,\"MBBS, FCPS\",Cardiologist,10 Years of Experience Overall,Square Hospital Ltd,\"18/F, Panthapath, Dhaka, Bangladesh\"\n"

func testConfig() *config.Config {
	return &config.Config{
		Scrape: config.ScrapeConfig{
			Concurrency:       2,
			FetchTimeout:      time.Second,
			RequestsPerSecond: 100,
			RetryDelays:       []time.Duration{},
			CheckpointEvery:   25,
			MaxPages:          10,
			ProfileMarker:     "/doctors/",
		},
		Clean: config.CleanConfig{Countries: []string{"Bangladesh", "India"}},
		Log:   config.LogConfig{Level: "info"},
	}
}

func testDeps(stdout, stderr *bytes.Buffer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:        context.Background(),
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		Config:     testConfig(),
		Vocabulary: medroster.DefaultVocabulary(),
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}
