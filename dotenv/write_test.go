package dotenv

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_Marshal(t *testing.T) {
	opts, _, _ := isolated()
	p := New(opts)
	require.NoError(t, p.Parse(strings.NewReader("NAME=demo\nPORT=8080\nMULTI=\"a\\nb\"\n")))

	out, err := p.Marshal()
	require.NoError(t, err)

	assert.Equal(t, "MULTI=\"a\\nb\"\nNAME=\"demo\"\nPORT=8080", out)
}

func TestParser_SaveRoundTrip(t *testing.T) {
	opts, _, _ := isolated()
	p := New(opts)
	require.NoError(t, p.Parse(strings.NewReader(strings.Join([]string{
		`APP_NAME="My App"`,
		`QUOTED="say \"hi\""`,
		`PATH_VALUE='C:\dir'`,
		`MULTI="line1\nline2"`,
		`DEBUG=true`,
		`BLANK=null`,
		`PASS=pa$$w!rd`,
		"TICK=run `date`",
		`ZIP=007`,
		`PLUS=+5`,
		`WIN='C:\new'`,
	}, "\n"))))

	path := filepath.Join(t.TempDir(), "out.env")
	require.NoError(t, p.Save(path))

	_, err := os.Stat(path)
	require.NoError(t, err)

	reopts, _, _ := isolated()
	reloaded := New(reopts)
	require.True(t, reloaded.Load(path))
	assert.Equal(t, p.All(), reloaded.All())
}

func TestParser_SaveInvalidPath(t *testing.T) {
	opts, _, _ := isolated()
	p := New(opts)

	err := p.Save(filepath.Join(t.TempDir(), "missing-dir", "out.env"))
	assert.Error(t, err)
}

func TestParser_MarshalSingleQuotesAlteredValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "dollar and bang", value: "pa$$w!rd", want: `KEY='pa$$w!rd'`},
		{name: "backtick", value: "a`b", want: "KEY='a`b'"},
		{name: "backslash", value: `C:\new`, want: `KEY='C:\new'`},
		{name: "leading zeros", value: "007", want: `KEY='007'`},
		{name: "canonical integer stays bare", value: "42", want: `KEY=42`},
		{name: "plain string", value: "demo", want: `KEY="demo"`},
		{name: "line break stays double quoted", value: "a\nb", want: `KEY="a\nb"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, _, _ := isolated()
			p := New(opts)
			p.values["KEY"] = tt.value

			out, err := p.Marshal()
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}
