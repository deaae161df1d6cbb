package commands_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frankigoes6/ProjetFoncier/internal/cleaner"
	"github.com/frankigoes6/ProjetFoncier/internal/commands"
	"github.com/frankigoes6/ProjetFoncier/internal/loader"
)

const samplePath = "../../testdata/dvf_sample.csv"

func runDVF(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := commands.NewRootCommand()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--log-level", "error"}, args...))
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersion(t *testing.T) {
	out, _, err := runDVF(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "dev (commit: none")
}

func TestLoad_Sample(t *testing.T) {
	out, _, err := runDVF(t, "load", samplePath)
	require.NoError(t, err)

	assert.Contains(t, out, "encoding:  utf-8")
	assert.Contains(t, out, "delimiter: ';'")
	assert.Contains(t, out, "rows:      8")
	assert.Contains(t, out, "columns:   12")
	assert.Regexp(t, `nature_mutation\s+string`, out)
	assert.Regexp(t, `valeur_fonciere\s+number`, out)
}

func TestLoad_FileNotFound(t *testing.T) {
	_, stderr, err := runDVF(t, "load", filepath.Join(t.TempDir(), "absent.csv"))
	require.Error(t, err)
	assert.ErrorIs(t, err, loader.ErrFileNotFound)
	assert.Contains(t, stderr, "file not found")
}

func TestClean_Report(t *testing.T) {
	out, _, err := runDVF(t, "clean", samplePath)
	require.NoError(t, err)

	assert.Contains(t, out, "input:    8")
	assert.Regexp(t, `missing_or_invalid:\s+3\n`, out)
	assert.Regexp(t, `duplicate:\s+1\n`, out)
	assert.Regexp(t, `retained:\s+4\n`, out)
	assert.Regexp(t, `missing:valeur_fonciere\s+1\n`, out)
	assert.Regexp(t, `out_of_range:built_area\s+2\n`, out)
	assert.Contains(t, out, "removed:  50.00%")
}

func TestClean_OutAndVerify(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "clean.csv")
	out, _, err := runDVF(t, "clean", samplePath, "--verify", "--out", dest)
	require.NoError(t, err)
	assert.Contains(t, out, "verification passed")
	assert.Contains(t, out, "wrote 4 rows to "+dest)

	tbl, err := loader.New().Load(dest)
	require.NoError(t, err)
	assert.Equal(t, 4, tbl.Len())
	assert.True(t, tbl.Has("prix_m2"))
}

func TestClean_FlagOverrides(t *testing.T) {
	out, _, err := runDVF(t, "clean", samplePath, "--max-area", "100")
	require.NoError(t, err)
	assert.Regexp(t, `retained:\s+3\n`, out)

	out, _, err = runDVF(t, "clean", samplePath, "--max-area", "0")
	require.NoError(t, err)
	assert.Regexp(t, `retained:\s+5\n`, out)
}

func TestClean_SchemaError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no_area.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"valeur_fonciere;type_local;nom_commune;code_departement\n250000;Maison;Lyon;69\n"), 0o644))

	_, _, err := runDVF(t, "clean", path)
	require.Error(t, err)
	assert.ErrorIs(t, err, cleaner.ErrSchema)
	assert.Contains(t, err.Error(), "surface_reelle_bati")
}

func TestClean_InvalidRequiredField(t *testing.T) {
	_, _, err := runDVF(t, "clean", samplePath, "--require", "prix")
	assert.ErrorIs(t, err, cleaner.ErrInvalidConfig)
}

func TestClean_ConfigFile(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "dvf.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("cleaning:\n  max_area: 100\n"), 0o644))

	out, _, err := runDVF(t, "--config", cfgPath, "clean", samplePath)
	require.NoError(t, err)
	assert.Regexp(t, `retained:\s+3\n`, out)
}

func TestClean_EnvFile(t *testing.T) {
	const key = "DVF_CLEANING_MIN_PRICE"
	require.NoError(t, os.Unsetenv(key))
	t.Cleanup(func() { os.Unsetenv(key) })

	envPath := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envPath, []byte(key+"=300000\n"), 0o644))

	out, _, err := runDVF(t, "--env-file", envPath, "clean", samplePath)
	require.NoError(t, err)
	assert.Regexp(t, `retained:\s+2\n`, out)
}

func TestClean_JSONLogs(t *testing.T) {
	_, stderr, err := runDVF(t, "--log-level", "info", "--log-format", "json", "clean", samplePath)
	require.NoError(t, err)
	assert.Contains(t, stderr, `"msg":"loaded transactions"`)
	assert.Contains(t, stderr, `"msg":"cleaning report"`)
}

func TestClean_BadLogLevel(t *testing.T) {
	_, _, err := runDVF(t, "--log-level", "loud", "clean", samplePath)
	assert.ErrorContains(t, err, "unknown log level")
}

func TestSummary(t *testing.T) {
	out, _, err := runDVF(t, "summary", samplePath)
	require.NoError(t, err)

	assert.Contains(t, out, "transactions:      4")
	assert.Contains(t, out, "period:            2022 - 2023")
	assert.Contains(t, out, "top communes:")
	assert.Contains(t, out, "Lyon 1er Arrondissement")
	assert.Regexp(t, `Appartement\s+3`, out)
	assert.Contains(t, out, "departments:")
	assert.Regexp(t, `\n  69\s+2\s`, out)
	assert.Regexp(t, `\n  13\s+2\s`, out)
}

func TestSummary_Filters(t *testing.T) {
	out, _, err := runDVF(t, "summary", samplePath, "--department", "13", "--type", "Appartement")
	require.NoError(t, err)
	assert.Contains(t, out, "transactions:      2")
	assert.Contains(t, out, "period:            2023 - 2023")
	assert.NotContains(t, out, "Lyon")
}

func TestSummary_NoData(t *testing.T) {
	out, _, err := runDVF(t, "summary", samplePath, "--department", "75")
	require.NoError(t, err)
	assert.Contains(t, out, "period:            no data")
	assert.NotContains(t, out, "top communes")
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dvf.yaml")

	out, _, err := runDVF(t, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, "wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "max_area: 1000")

	_, _, err = runDVF(t, "config", "init", path)
	assert.ErrorContains(t, err, "already exists")

	_, _, err = runDVF(t, "config", "init", path, "--force")
	assert.NoError(t, err)
}

func TestConfigShow_EnvOverride(t *testing.T) {
	t.Setenv("DVF_CLEANING_MIN_AREA", "9")

	out, _, err := runDVF(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "min_area: 9")
	assert.Contains(t, out, "max_area: 1000")
}
