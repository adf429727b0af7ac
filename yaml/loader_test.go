package yaml_test

import (
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/insight"
	"github.com/fwojciec/insight/yaml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCLI struct {
	RequestTimeout time.Duration `default:"10s"`
	MinURLCount    int           `name:"min-url-count" default:"3"`
	StopwordLocale string        `default:"en"`
	Browser        bool
}

func newParser(t *testing.T, cli *testCLI, config string) *kong.Kong {
	t.Helper()
	resolver, err := yaml.Loader(strings.NewReader(config))
	require.NoError(t, err)

	parser, err := kong.New(cli, kong.Resolvers(resolver), kong.Exit(func(int) {}))
	require.NoError(t, err)
	return parser
}

func TestLoader(t *testing.T) {
	t.Parallel()

	t.Run("overrides defaults with file values", func(t *testing.T) {
		t.Parallel()

		var cli testCLI
		parser := newParser(t, &cli, "request_timeout: 30s\nmin_url_count: 5\nbrowser: true\n")

		_, err := parser.Parse(nil)
		require.NoError(t, err)

		assert.Equal(t, 30*time.Second, cli.RequestTimeout)
		assert.Equal(t, 5, cli.MinURLCount)
		assert.True(t, cli.Browser)
		assert.Equal(t, "en", cli.StopwordLocale)
	})

	t.Run("flags override file values", func(t *testing.T) {
		t.Parallel()

		var cli testCLI
		parser := newParser(t, &cli, "stopword_locale: de\nmin_url_count: 5\n")

		_, err := parser.Parse([]string{"--stopword-locale=fr"})
		require.NoError(t, err)

		assert.Equal(t, "fr", cli.StopwordLocale)
		assert.Equal(t, 5, cli.MinURLCount)
	})

	t.Run("accepts an empty file", func(t *testing.T) {
		t.Parallel()

		var cli testCLI
		parser := newParser(t, &cli, "")

		_, err := parser.Parse(nil)
		require.NoError(t, err)

		assert.Equal(t, 10*time.Second, cli.RequestTimeout)
	})

	t.Run("returns EINVALID for malformed YAML", func(t *testing.T) {
		t.Parallel()

		_, err := yaml.Loader(strings.NewReader("min_url_count: [1, 2\n"))

		assert.Equal(t, insight.EINVALID, insight.ErrorCode(err))
	})
}

func TestResolver_Validate(t *testing.T) {
	t.Parallel()

	t.Run("rejects unknown keys", func(t *testing.T) {
		t.Parallel()

		var cli testCLI
		resolver, err := yaml.Loader(strings.NewReader("min_url_count: 5\nbogus: 1\nalso_bogus: 2\n"))
		require.NoError(t, err)
		parser, err := kong.New(&cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		err = resolver.Validate(parser.Model)

		assert.Equal(t, insight.EINVALID, insight.ErrorCode(err))
		assert.Equal(t, "unknown configuration keys: also_bogus, bogus", insight.ErrorMessage(err))
	})

	t.Run("accepts known keys", func(t *testing.T) {
		t.Parallel()

		var cli testCLI
		resolver, err := yaml.Loader(strings.NewReader("min_url_count: 5\nrequest_timeout: 1m\n"))
		require.NoError(t, err)
		parser, err := kong.New(&cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		assert.NoError(t, resolver.Validate(parser.Model))
	})
}

func TestResolver_ValidateSubcommands(t *testing.T) {
	t.Parallel()

	t.Run("accepts flags of subcommands", func(t *testing.T) {
		t.Parallel()

		var cli struct {
			Verbose bool
			Analyze struct {
				CacheSize int
			} `cmd:""`
		}
		resolver, err := yaml.Loader(strings.NewReader("verbose: true\ncache_size: 64\n"))
		require.NoError(t, err)
		parser, err := kong.New(&cli, kong.Exit(func(int) {}))
		require.NoError(t, err)

		assert.NoError(t, resolver.Validate(parser.Model))
	})
}
