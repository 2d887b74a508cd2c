package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"auto", ColorAuto},
		{"", ColorAuto},
		{"always", ColorAlways},
		{"never", ColorNever},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColorMode("sometimes")
	assert.Error(t, err)
}

func TestResolveColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, ResolveColors(ColorAlways))
	assert.False(t, ResolveColors(ColorNever))
	assert.False(t, ResolveColors(ColorAuto))
}

func TestPrinter_PlainPrefixes(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false, false)

	p.Success("dp tag is added")
	p.Info("3 tags")
	p.Warning("no removable tag named %q", "dp")
	p.Error("boom")

	assert.Equal(t, "[OK] dp tag is added\n3 tags\n", out.String())
	assert.Equal(t, "[WARN] no removable tag named \"dp\"\n[ERROR] boom\n", errOut.String())
}

func TestPrinter_QuietKeepsErrorsAndData(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false, true)

	p.Success("hidden")
	p.Header("Tags")
	p.Print("42")
	p.Error("shown")

	assert.Equal(t, "42\n", out.String())
	assert.Equal(t, "[ERROR] shown\n", errOut.String())
}

func TestPrinter_ColoredSuccess(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &out, true, false)

	p.Success("ok")
	assert.Contains(t, out.String(), "✓ ok")
	assert.Contains(t, out.String(), "\x1b[")
}

func TestPrinter_RemovableBadge(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, &bytes.Buffer{}, false, false)
	assert.Equal(t, "yes", p.RemovableBadge(true))
	assert.Equal(t, "fixed", p.RemovableBadge(false))
}

func TestTable_Render(t *testing.T) {
	var buf bytes.Buffer
	tbl := NewTable(&buf, []string{"id", "name"})
	tbl.AddRow("1", "dp")
	tbl.AddRow("2", "greedy")

	require.NoError(t, tbl.Render())
	assert.Equal(t, 2, tbl.Len())

	s := buf.String()
	assert.Contains(t, s, "ID")
	assert.Contains(t, s, "NAME")
	assert.Contains(t, s, "greedy")
}
