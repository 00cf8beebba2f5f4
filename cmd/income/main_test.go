package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitryk0z/income-predictor/pkg/data"
)

const adult = `39, State-gov, 77516, Bachelors, 13, Never-married, Adm-clerical, Not-in-family, White, Male, 2174, 0, 40, United-States, <=50K
50, Self-emp-not-inc, 83311, Bachelors, 13, Married-civ-spouse, Exec-managerial, Husband, White, Male, 0, 0, 13, United-States, <=50K
38, Private, 215646, HS-grad, 9, Divorced, Handlers-cleaners, Not-in-family, White, Male, 0, 0, 40, United-States, <=50K
52, Self-emp-not-inc, 209642, HS-grad, 9, Married-civ-spouse, Exec-managerial, Husband, White, Male, 0, 0, 45, United-States, >50K
31, Private, 45781, Masters, 14, Never-married, Prof-specialty, Not-in-family, White, Female, 14084, 0, 50, United-States, >50K
42, Private, 159449, Bachelors, 13, Married-civ-spouse, Exec-managerial, Husband, White, Male, 5178, 0, 40, United-States, >50K
54, ?, 180211, Some-college, 10, Married-civ-spouse, ?, Husband, Asian-Pac-Islander, Male, 0, 0, 60, South, >50K
37, Private, 280464, Some-college, 10, Married-civ-spouse, Exec-managerial, Husband, Black, Male, 0, 0, 80, United-States, >50K
23, Private, 122272, Bachelors, 13, Never-married, Adm-clerical, Own-child, White, Female, 0, 0, 30, United-States, <=50K
`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags := func() { showDetail, cleanOut, cleanPreview, verbose = false, "", 0, false }
	resetFlags()
	t.Cleanup(resetFlags)
	for _, k := range []string{"INCOME_DATA_URL", "INCOME_DATA_FILE", "INCOME_TRAIN_PERCENT", "INCOME_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "adult.data")
	require.NoError(t, os.WriteFile(path, []byte(adult), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(dir, "income.yaml"), "--file", path}, args...))
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestEvaluateCommand(t *testing.T) {
	out, err := execute(t, "evaluate", "--detail")
	require.NoError(t, err)

	// 8 clean records, 6 train, 2 test
	assert.Contains(t, out, "TOTAL RECORDS (TEST DATASET): 2 |")
	assert.Contains(t, out, "ACCURACY SCORE:")
	assert.Contains(t, out, "PRECISION:")
}

func TestEvaluateCommand_DetailIsPerRun(t *testing.T) {
	_, err := execute(t, "evaluate", "--detail")
	require.NoError(t, err)

	out, err := execute(t, "evaluate")
	require.NoError(t, err)
	assert.NotContains(t, out, "PRECISION:")
}

func TestRootRunsEvaluate(t *testing.T) {
	out, err := execute(t)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "TOTAL RECORDS (TEST DATASET): 2 |"), out)
}

func TestInspectCommand(t *testing.T) {
	out, err := execute(t, "inspect")
	require.NoError(t, err)
	assert.Contains(t, out, "thresholds:")
	assert.Contains(t, out, "attribute: age")
	assert.Contains(t, out, "value: State-gov")
	assert.Contains(t, out, "categorical:\n    - workclass")
}

func TestChartCommand(t *testing.T) {
	png := filepath.Join(t.TempDir(), "chart.png")
	out, err := execute(t, "chart", "--out", png)
	require.NoError(t, err)
	assert.Contains(t, out, "Saved threshold chart to "+png)
	assert.FileExists(t, png)
}

func TestEvaluateCommand_MissingFile(t *testing.T) {
	_, err := execute(t, "evaluate", "--file", filepath.Join(t.TempDir(), "missing.data"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, data.ErrAcquisition))
}

func TestPrintError(t *testing.T) {
	var buf bytes.Buffer
	printError(&buf, errors.New("Bad status code: 404"))
	bar := strings.Repeat("=", 50)
	assert.Equal(t, bar+"\nSomething bad happened.\nBad status code: 404\n"+bar+"\n", buf.String())
}

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.data")
	require.NoError(t, os.WriteFile(in, []byte(adult), 0o644))
	csvPath := filepath.Join(dir, "clean.csv")

	_, err := execute(t, "clean", in, "--out", csvPath)
	require.NoError(t, err)

	b, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	require.Len(t, lines, 9) // header plus 8 complete records
	assert.Equal(t, "age,workclass,education-num,marital-status,occupation,relationship,race,sex,capital-gain,capital-loss,hours-per-week,income", lines[0])
	assert.Equal(t, "39,State-gov,13,Never-married,Adm-clerical,Not-in-family,White,Male,2174,0,40,<=50K", lines[1])
}

func TestCleanCommand_Preview(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "raw.data")
	require.NoError(t, os.WriteFile(in, []byte(adult), 0o644))

	out, err := execute(t, "clean", in, "--preview", "2")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 3)
}
