package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type lineConfig struct {
	prefix   string
	maxDims  int
	lastCall string
}

var errNegative = errors.New("max dimensions cannot be negative")

func withPrefix(p string) Option[*lineConfig] {
	return NoError(func(c *lineConfig) {
		c.prefix = p
		c.lastCall = "prefix"
	})
}

func withMaxDims(n int) Option[*lineConfig] {
	return New(func(c *lineConfig) error {
		if n < 0 {
			return errNegative
		}
		c.maxDims = n
		c.lastCall = "maxDims"

		return nil
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &lineConfig{}
		err := Apply(cfg, withMaxDims(50), withPrefix("svc"))
		require.NoError(t, err)
		require.Equal(t, "svc", cfg.prefix)
		require.Equal(t, 50, cfg.maxDims)
		require.Equal(t, "prefix", cfg.lastCall)
	})

	t.Run("later options override earlier ones", func(t *testing.T) {
		cfg := &lineConfig{}
		require.NoError(t, Apply(cfg, withPrefix("a"), withPrefix("b")))
		require.Equal(t, "b", cfg.prefix)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &lineConfig{}
		err := Apply(cfg, withMaxDims(5), withMaxDims(-1), withPrefix("never"))
		require.ErrorIs(t, err, errNegative)
		require.Equal(t, 5, cfg.maxDims)
		require.Empty(t, cfg.prefix)
		require.Equal(t, "maxDims", cfg.lastCall)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &lineConfig{}
		require.NoError(t, Apply(cfg, nil, withPrefix("svc"), nil))
		require.Equal(t, "svc", cfg.prefix)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &lineConfig{}
		require.NoError(t, Apply(cfg))
		require.Equal(t, lineConfig{}, *cfg)
	})
}

func TestNoError_WorksWithNonStructTargets(t *testing.T) {
	var n int
	require.NoError(t, Apply(&n, Option[*int](NoError(func(p *int) { *p = 42 }))))
	require.Equal(t, 42, n)
}
