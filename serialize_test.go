// FILE: lixenwraith/flagconf/serialize_test.go
package flagconf

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpCLI(t *testing.T) {
	cfg := newTreeRecord()
	out, err := dump(cfg.Fields(), FormatCLI, false, quietLogger())
	require.NoError(t, err)

	assert.Equal(t, strings.Join([]string{
		`--name="svc"`,
		`--verbose=false`,
		`--color="red"`,
		`--db.host="localhost"`,
		`--db.port=5432`,
		`--db.pool.size=10`,
		`--db.pool.timeout=30`,
	}, "\n")+"\n", out)
}

func TestDumpOnlyChanges(t *testing.T) {
	cfg := newTreeRecord()
	l := newTestLoader(cfg)
	require.NoError(t, l.Init([]string{"--db.port", "6000", "--color", "blue", "--name", "svc"}))

	out, err := l.Dump(FormatCLI, true)
	require.NoError(t, err)
	assert.Equal(t, "--color=\"blue\"\n--db.port=6000\n", out, "set-but-unchanged fields are omitted")

	out, err = l.Dump(FormatTOML, true)
	require.NoError(t, err)
	assert.Equal(t, "color = \"blue\"\nport = 6000\n", out)
}

func TestDumpTOML(t *testing.T) {
	cfg := newTreeRecord()
	cfg.Name.SetValue(`quote "me"`)
	out, err := dump(cfg.Fields(), FormatTOML, false, quietLogger())
	require.NoError(t, err)

	assert.Contains(t, out, `name = "quote \"me\""`)
	assert.Contains(t, out, "verbose = false\n")
	assert.Contains(t, out, "timeout = 30.0\n")
	assert.NotContains(t, out, "[db]", "preset keys are flat")
}

type flaglessRecord struct {
	Hidden  Field[int]
	Visible Field[int]
}

func (r *flaglessRecord) Fields() []Node { return []Node{&r.Hidden, &r.Visible} }

func TestDumpSkipsFlaglessFields(t *testing.T) {
	cfg := &flaglessRecord{Hidden: Field[int]{Default: 1}, Visible: Field[int]{Default: 2, Flags: []string{"--visible"}}}
	out, err := dump(cfg.Fields(), FormatCLI, false, quietLogger())
	require.NoError(t, err)
	assert.Equal(t, "--visible=2\n", out)
}

func TestDumpRoundTrip(t *testing.T) {
	src := newTreeRecord()
	l := newTestLoader(src)
	require.NoError(t, l.Init([]string{
		"--name", "round trip",
		"--verbose", "true",
		"--color", "green",
		"--db.host", "db.internal",
		"--db.port", "6543",
		"--db.pool.timeout", "2.5",
	}))

	for _, onlyChanges := range []bool{false, true} {
		path := filepath.Join(t.TempDir(), "nested", "saved.toml")
		require.NoError(t, l.Save(path, FormatTOML, onlyChanges))

		dst := newTreeRecord()
		require.NoError(t, newTestLoader(dst).Init([]string{"--preset", path}))
		assert.Equal(t, values(src.Fields()), values(dst.Fields()), "onlyChanges=%v", onlyChanges)
	}
}

func TestSave(t *testing.T) {
	t.Run("CLIFormat", func(t *testing.T) {
		cfg := newAppRecord()
		l := newTestLoader(cfg)
		require.NoError(t, l.Init([]string{"-f", "a.txt"}))

		path := filepath.Join(t.TempDir(), "args.txt")
		require.NoError(t, l.Save(path, FormatCLI, true))
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "--file=\"a.txt\"\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "no temporary files left behind")
	})

	t.Run("ErrorNamesTarget", func(t *testing.T) {
		blocker := filepath.Join(t.TempDir(), "blocker")
		require.NoError(t, os.WriteFile(blocker, nil, 0644))

		target := filepath.Join(blocker, "preset.toml")
		err := newTestLoader(newAppRecord()).Save(target, FormatTOML, false)
		require.Error(t, err)
		assert.Contains(t, err.Error(), target)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		l := newTestLoader(newAppRecord())
		_, err := l.Dump(Format(9), false)
		assert.Error(t, err)
	})

	t.Run("FormatNames", func(t *testing.T) {
		assert.Equal(t, "cli", FormatCLI.String())
		assert.Equal(t, "toml", FormatTOML.String())
	})
}

type shortRecord struct {
	Output Field[string]
	Level  Field[int]
	DB     Group[*dbRecord]
}

func (r *shortRecord) Fields() []Node { return []Node{&r.Output, &r.Level, &r.DB} }

func newShortRecord() *shortRecord {
	db := newTreeRecord().DB
	db.Config.Port.Flags = []string{"-P", "--port"}
	return &shortRecord{
		Output: Field[string]{Default: "out.txt", Flags: []string{"-o", "--output"}},
		Level:  Field[int]{Default: 1, Flags: []string{"-L"}},
		DB:     db,
	}
}

// cliArgs turns a CLI dump into argv the way a shell would, unquoting values.
func cliArgs(t *testing.T, dump string) []string {
	t.Helper()
	var args []string
	for _, line := range strings.Split(strings.TrimSpace(dump), "\n") {
		flag, value, ok := strings.Cut(line, "=")
		require.True(t, ok, "line %q", line)
		if strings.HasPrefix(value, `"`) {
			unquoted, err := strconv.Unquote(value)
			require.NoError(t, err)
			value = unquoted
		}
		args = append(args, flag+"="+value)
	}
	return args
}

func TestDumpCLIShortFlags(t *testing.T) {
	cfg := newShortRecord()
	l := newTestLoader(cfg)
	require.NoError(t, l.Init([]string{"-o", "x", "-db.P", "6000", "-L", "3"}))

	out, err := l.Dump(FormatCLI, false)
	require.NoError(t, err)
	assert.Equal(t, strings.Join([]string{
		`-o="x"`,
		`-L=3`,
		`--db.host="localhost"`,
		`-db.P=6000`,
		`--db.pool.size=10`,
		`--db.pool.timeout=30`,
	}, "\n")+"\n", out)
}

func TestDumpCLIRoundTrip(t *testing.T) {
	src := newShortRecord()
	l := newTestLoader(src)
	require.NoError(t, l.Init([]string{"--output", "report.csv", "-L", "7", "--db.port", "6001", "--db.pool.timeout", "1.5"}))

	for _, onlyChanges := range []bool{false, true} {
		out, err := l.Dump(FormatCLI, onlyChanges)
		require.NoError(t, err)

		dst := newShortRecord()
		require.NoError(t, newTestLoader(dst).Init(cliArgs(t, out)), "dump %q", out)
		assert.Equal(t, values(src.Fields()), values(dst.Fields()), "onlyChanges=%v", onlyChanges)
	}
}

type replicaRecord struct {
	Primary Group[*dbRecord]
	Replica Group[*dbRecord]
}

func (r *replicaRecord) Fields() []Node { return []Node{&r.Primary, &r.Replica} }

func TestDumpTOMLSharedKeys(t *testing.T) {
	cfg := &replicaRecord{
		Primary: Group[*dbRecord]{Name: "primary", Config: newTreeRecord().DB.Config},
		Replica: Group[*dbRecord]{Name: "replica", Config: newTreeRecord().DB.Config},
	}
	l := newTestLoader(cfg)
	require.NoError(t, l.Init([]string{"--primary.port", "5", "--replica.port", "2"}))

	out, err := l.Dump(FormatTOML, true)
	require.NoError(t, err)
	assert.Equal(t, "port = 5\n", out)
	assert.Contains(t, l.logs.String(), "preset key already written by another field")
	assert.Contains(t, l.logs.String(), "field=--replica.port")

	path := filepath.Join(t.TempDir(), "replicas.toml")
	require.NoError(t, l.Save(path, FormatTOML, false))

	dst := &replicaRecord{
		Primary: Group[*dbRecord]{Name: "primary", Config: newTreeRecord().DB.Config},
		Replica: Group[*dbRecord]{Name: "replica", Config: newTreeRecord().DB.Config},
	}
	require.NoError(t, newTestLoader(dst).Init([]string{"--preset", path}))
	assert.Equal(t, 5, dst.Primary.Config.Port.Value())
	assert.Equal(t, 5, dst.Replica.Config.Port.Value(), "bare keys are shared across groups")
}
