package maskpii

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maskpii/maskpii/internal/config"
	"github.com/maskpii/maskpii/internal/masking"
)

func TestPickPrecedence(t *testing.T) {
	local, global := "local", "global"
	assert.Equal(t, "cli", pickString("cli", &local, &global))
	assert.Equal(t, "local", pickString("", &local, &global))
	assert.Equal(t, "global", pickString("", nil, &global))
	assert.Equal(t, "", pickString("", nil, nil))

	li, gi := 3, 5
	assert.Equal(t, 3, pickInt(0, &li, &gi))
	assert.Equal(t, 5, pickInt(0, nil, &gi))

	off := false
	assert.True(t, pickBool(true, &off, nil))
	assert.False(t, pickBool(false, &off, nil))
	assert.True(t, pickFlagBool(nil, "default-excludes", true, nil, nil))
	assert.False(t, pickFlagBool(nil, "default-excludes", true, &off, nil))
}

func TestBuildMasker(t *testing.T) {
	t.Cleanup(func() { flagEnable, flagMaskChar = "", "" })

	m, err := buildMasker(config.FileConfig{}, config.FileConfig{})
	require.NoError(t, err)
	assert.True(t, m.EmailsEnabled())
	assert.True(t, m.PhonesEnabled())
	assert.Equal(t, '*', m.MaskChar())

	enable, mc := "phone", "#"
	m, err = buildMasker(config.FileConfig{Enable: &enable}, config.FileConfig{MaskChar: &mc})
	require.NoError(t, err)
	assert.False(t, m.EmailsEnabled())
	assert.Equal(t, '#', m.MaskChar())

	flagEnable = "email,fax"
	_, err = buildMasker(config.FileConfig{}, config.FileConfig{})
	assert.True(t, errors.Is(err, masking.ErrUnknownCategory))
}

func TestMaskStream(t *testing.T) {
	m := masking.New().MaskEmails().MaskPhones()
	var out bytes.Buffer
	require.NoError(t, maskStream(strings.NewReader("x jane@corp.io 03-1234-5678"), &out, m))
	assert.Equal(t, "x j***@corp.io **-****-5678", out.String())
}

func TestFormatCounts(t *testing.T) {
	assert.Equal(t, "email=2 phone=1", formatCounts(map[string]int{"phone": 1, "email": 2}))
	assert.Equal(t, "-", formatCounts(nil))
}

func TestVersionString(t *testing.T) {
	assert.True(t, strings.HasPrefix(versionString(), "maskpii v0.1.0"))
}

func TestLoadBaselineMissingIsEmptyCorruptIsError(t *testing.T) {
	dir := t.TempDir()
	base, err := loadBaseline(filepath.Join(dir, "maskpii.baseline.json"))
	require.NoError(t, err)
	assert.Empty(t, base.Items)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{not json"), 0644))
	_, err = loadBaseline(bad)
	assert.Error(t, err)
}

func TestCheckMaskArgs(t *testing.T) {
	assert.NoError(t, checkMaskArgs("", nil, false, false))
	assert.NoError(t, checkMaskArgs("", []string{"a.txt"}, true, false))
	assert.NoError(t, checkMaskArgs("dir", nil, false, true))
	assert.Error(t, checkMaskArgs("dir", []string{"a.txt"}, false, false))
	assert.Error(t, checkMaskArgs("", nil, true, false))
	assert.Error(t, checkMaskArgs("", nil, false, true))
}
