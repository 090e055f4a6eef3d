// FILE: lixenwraith/flagconf/resolve_test.go
package flagconf

import (
	"bytes"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("GroupPrefixRequired", func(t *testing.T) {
		cfg := newTreeRecord()
		nodes := cfg.Fields()

		assert.Nil(t, resolve(nodes, "--port", "6000"))
		assert.False(t, cfg.DB.Config.Port.IsSet())

		c := resolve(nodes, "--db.port", "6000")
		require.NotNil(t, c)
		assert.True(t, c.accepted)
		assert.Equal(t, 6000, cfg.DB.Config.Port.Value())
	})

	t.Run("ShortFlagInGroup", func(t *testing.T) {
		cfg := newTreeRecord()
		c := resolve(cfg.Fields(), "-db.P", "7000")
		require.NotNil(t, c)
		assert.Equal(t, 7000, cfg.DB.Config.Port.Value())
	})

	t.Run("NestedGroup", func(t *testing.T) {
		cfg := newTreeRecord()
		require.NotNil(t, resolve(cfg.Fields(), "--db.pool.size", "20"))
		assert.Equal(t, 20, cfg.DB.Config.Pool.Config.Size.Value())

		assert.Nil(t, resolve(cfg.Fields(), "--pool.size", "20"))
		assert.Nil(t, resolve(cfg.Fields(), "--db.size", "20"))
	})

	t.Run("LookupDoesNotAssign", func(t *testing.T) {
		cfg := newTreeRecord()
		assert.NotNil(t, lookup(cfg.Fields(), "--db.host"))
		assert.False(t, cfg.DB.Config.Host.IsSet())
	})

	t.Run("ConversionFailure", func(t *testing.T) {
		cfg := newTreeRecord()
		c := resolve(cfg.Fields(), "--db.port", "abc")
		require.NotNil(t, c)
		assert.Error(t, c.err)
		assert.False(t, cfg.DB.Config.Port.IsSet())
	})

	t.Run("EnumWithoutParserIsUnclaimed", func(t *testing.T) {
		cfg := newTreeRecord()
		cfg.Color.Enum = &EnumTraits[color]{Format: formatColor}
		assert.Nil(t, resolve(cfg.Fields(), "--color", "blue"))
	})
}

func TestApplyCLI(t *testing.T) {
	logger := NewLogger("debug", &bytes.Buffer{})

	t.Run("LastOccurrenceWins", func(t *testing.T) {
		cfg := newTreeRecord()
		args := ParseArgs([]string{"--db.pool.size", "5", "--db.pool.size", "10", "--db.pool.size=15"})
		require.NoError(t, applyCLI(cfg.Fields(), args.Assignments, UnknownFlagError, logger))
		assert.Equal(t, 15, cfg.DB.Config.Pool.Config.Size.Value())
	})

	t.Run("AllKinds", func(t *testing.T) {
		cfg := newTreeRecord()
		args := ParseArgs([]string{"-n", "api", "--verbose", "1", "--color", "green", "--db.pool.timeout", "2.5"})
		require.NoError(t, applyCLI(cfg.Fields(), args.Assignments, UnknownFlagError, logger))
		assert.Equal(t, "api", cfg.Name.Value())
		assert.True(t, cfg.Verbose.Value())
		assert.Equal(t, colorGreen, cfg.Color.Value())
		assert.Equal(t, 2.5, cfg.DB.Config.Pool.Config.Timeout.Value())
	})

	t.Run("ConversionError", func(t *testing.T) {
		cfg := newTreeRecord()
		err := applyCLI(cfg.Fields(), []Assignment{{"--db.port", "abc"}}, UnknownFlagError, logger)
		require.Error(t, err)

		var rep *Report
		require.ErrorAs(t, err, &rep)
		assert.Equal(t, "application", rep.Stage)
		assert.Equal(t, []string{"--db.port"}, rep.Flags())
		assert.ErrorIs(t, err, ErrConversion)
		assert.ErrorIs(t, err, strconv.ErrSyntax)
		assert.Contains(t, err.Error(), `Invalid value "abc" for flag '--db.port'`)
	})

	t.Run("VerifierRejection", func(t *testing.T) {
		cfg := newTreeRecord()
		err := applyCLI(cfg.Fields(), []Assignment{{"--db.port", "70000"}}, UnknownFlagError, logger)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrRejected)
		assert.Contains(t, err.Error(), "Validation failed for flag '--db.port' (Database port): value = 70000")
		assert.Equal(t, 5432, cfg.DB.Config.Port.Value())
		assert.False(t, cfg.DB.Config.Port.IsSet())
	})

	t.Run("ProblemsAggregated", func(t *testing.T) {
		cfg := newTreeRecord()
		err := applyCLI(cfg.Fields(), []Assignment{
			{"--db.port", "abc"},
			{"--bogus", "1"},
			{"--db.port", "0"},
			{"--name", "ok"},
		}, UnknownFlagError, logger)

		var rep *Report
		require.ErrorAs(t, err, &rep)
		assert.Len(t, rep.Problems, 3)
		assert.Equal(t, []string{"--db.port", "--bogus", "--db.port"}, rep.Flags())
		assert.Equal(t, "ok", cfg.Name.Value(), "valid assignments still apply")
	})
}

func TestUnknownFlagPolicy(t *testing.T) {
	assignments := []Assignment{{"--bogus", "1"}, {"--port", "80"}}

	t.Run("Error", func(t *testing.T) {
		err := applyCLI(newTreeRecord().Fields(), assignments, UnknownFlagError, NewLogger("debug", &bytes.Buffer{}))
		var rep *Report
		require.ErrorAs(t, err, &rep)
		assert.Equal(t, []string{"--bogus", "--port"}, rep.Flags())
		assert.True(t, errors.Is(err, ErrUnknownFlag))
		assert.Contains(t, err.Error(), "Unknown flag '--bogus'")
	})

	t.Run("Warn", func(t *testing.T) {
		var logs bytes.Buffer
		err := applyCLI(newTreeRecord().Fields(), assignments, UnknownFlagWarn, NewLogger("warn", &logs))
		assert.NoError(t, err)
		assert.Contains(t, logs.String(), "ignoring unknown flag")
		assert.Contains(t, logs.String(), "flag=--bogus")
		assert.Contains(t, logs.String(), "flag=--port")
	})

	t.Run("Ignore", func(t *testing.T) {
		var logs bytes.Buffer
		err := applyCLI(newTreeRecord().Fields(), assignments, UnknownFlagIgnore, NewLogger("debug", &logs))
		assert.NoError(t, err)
		assert.Empty(t, logs.String())
	})

	t.Run("String", func(t *testing.T) {
		assert.Equal(t, "error", UnknownFlagError.String())
		assert.Equal(t, "warn", UnknownFlagWarn.String())
		assert.Equal(t, "ignore", UnknownFlagIgnore.String())
	})
}

type duplicateRecord struct {
	First  Field[int]
	Second Field[int]
}

func (r *duplicateRecord) Fields() []Node { return []Node{&r.First, &r.Second} }

func TestDuplicateFlags(t *testing.T) {
	cfg := &duplicateRecord{
		First:  Field[int]{Flags: []string{"--count"}},
		Second: Field[int]{Flags: []string{"--total", "--count"}},
	}

	var logs bytes.Buffer
	lintFlags(cfg.Fields(), NewLogger("warn", &logs))
	assert.Contains(t, logs.String(), "flag declared by more than one field")
	assert.Contains(t, logs.String(), "flag=--count")

	require.NoError(t, applyCLI(cfg.Fields(), []Assignment{{"--count", "3"}}, UnknownFlagError, NewLogger("warn", &logs)))
	assert.Equal(t, 3, cfg.First.Value())
	assert.False(t, cfg.Second.IsSet())
}

type helpClashRecord struct {
	Assist Field[bool]
	DB     Group[*dbRecord]
}

func (r *helpClashRecord) Fields() []Node { return []Node{&r.Assist, &r.DB} }

func TestLintHelpFlags(t *testing.T) {
	cfg := &helpClashRecord{
		Assist: Field[bool]{Flags: []string{"--assist", "-h"}},
		DB:     newTreeRecord().DB,
	}
	cfg.DB.Config.Host.Flags = []string{"--help"}

	var logs bytes.Buffer
	lintFlags(cfg.Fields(), NewLogger("warn", &logs))
	assert.Contains(t, logs.String(), "flag is reserved for help and can never be set")
	assert.Contains(t, logs.String(), "flag=-h field=--assist")
	assert.Equal(t, 1, strings.Count(logs.String(), "reserved for help"), "--db.help is reachable")

	l := newTestLoader(cfg)
	require.ErrorIs(t, l.Init([]string{"-h"}), ErrHelpRequested)
	assert.False(t, cfg.Assist.IsSet())
	assert.Contains(t, l.logs.String(), "reserved for help")
}
