package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	main "github.com/itisuniqueofficial/advanced-web-crawler/cmd/webcrawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"crawl", "seeds", "results"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_CrawlDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"crawl", "https://example.com"})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://example.com"}, cli.Crawl.Seeds)
	assert.Equal(t, 2, cli.Crawl.Depth)
	assert.Zero(t, cli.Crawl.RateLimit, "pacing is off unless requested")
	assert.Equal(t, 10, cli.Crawl.Concurrency)
	assert.Equal(t, 10*time.Second, cli.Crawl.Timeout)
	assert.Equal(t, "csv", cli.Crawl.Format)
	assert.False(t, cli.Crawl.RestrictDomain)
	assert.False(t, cli.Crawl.Render)
}

func TestCLI_CrawlFlagParsing(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"crawl",
		"https://a.example", "https://b.example",
		"--depth", "4",
		"--restrict-domain",
		"--rate-limit", "2",
		"--max-pages", "100",
		"--proxy", "http://p1:8080",
		"--proxy", "http://p2:8080",
		"--format", "json",
		"--db", "crawl.db",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cli.Crawl.Seeds)
	assert.Equal(t, 4, cli.Crawl.Depth)
	assert.True(t, cli.Crawl.RestrictDomain)
	assert.Equal(t, 2.0, cli.Crawl.RateLimit)
	assert.Equal(t, 100, cli.Crawl.MaxPages)
	assert.Equal(t, []string{"http://p1:8080", "http://p2:8080"}, cli.Crawl.Proxy)
	assert.Equal(t, "json", cli.Crawl.Format)
	assert.Equal(t, "crawl.db", cli.Crawl.DB)
}

func TestCLI_RateLimitAcceptsFractionalSeconds(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"crawl", "https://example.com", "--rate-limit", "0.5"})
	require.NoError(t, err)

	assert.Equal(t, 0.5, cli.Crawl.RateLimit)
}

func TestCLI_ResultsFlagParsing(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"results", "crawl.db", "--run", "7f3b2c", "--limit", "10"})
	require.NoError(t, err)

	assert.Equal(t, "crawl.db", cli.Results.DB)
	assert.Equal(t, "7f3b2c", cli.Results.RunID)
	assert.Equal(t, 10, cli.Results.Limit)
}

func TestCLI_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}))
	require.NoError(t, err)

	_, err = parser.Parse([]string{"crawl", "https://example.com", "--format", "xml"})
	assert.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	helpOutput := stdout.String()
	assert.Contains(t, helpOutput, "Usage:")
	assert.Contains(t, helpOutput, "crawl")
}

func TestMain_Run_NoArgsIsError(t *testing.T) {
	t.Parallel()

	m := main.NewMain()
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := m.Run(context.Background(), nil, stdout, stderr)
	require.Error(t, err)
	assert.Contains(t, stdout.String(), "Usage:")
}
