package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "cloud-fee/internal/errors"
	"cloud-fee/internal/logging"
)

// executeCommand runs a fresh command tree and returns what it printed
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

type comparisonJSON struct {
	Category string   `json:"category"`
	Labels   []string `json:"labels"`
	Datasets []struct {
		Label string   `json:"label"`
		Data  []string `json:"data"`
	} `json:"datasets"`
}

func writeScenario(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.hcl")
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))
	return path
}

func TestVersion(t *testing.T) {
	out, err := executeCommand(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "cloud-fee version "+Version+"\n", out)
}

func TestFeeCommands(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		wantTotal string
	}{
		{
			name:      "workers",
			args:      []string{"fee", "serverless", "--provider", "cloudflare-workers", "--requests", "20000000", "--elapsed", "100"},
			wantTotal: "47.4",
		},
		{
			name:      "sqs batched",
			args:      []string{"fee", "queue", "-p", "aws-sqs", "--messages", "2000000", "--message-per-batch", "10", "--message-size", "10"},
			wantTotal: "2.28",
		},
		{
			name:      "egress",
			args:      []string{"fee", "egress", "--transferred", "20"},
			wantTotal: "2.28",
		},
		{
			name:      "r2 defaults to nothing",
			args:      []string{"fee", "storage", "--provider", "cloudflare-r2"},
			wantTotal: "0",
		},
		{
			name:      "d1",
			args:      []string{"fee", "database", "--rows-read", "125000000", "--rows-written", "150000000", "--volume", "10"},
			wantTotal: "103.85",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := executeCommand(t, append(tt.args, "--format", "json")...)
			require.NoError(t, err)

			var result struct {
				Total string `json:"total"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &result), out)
			assert.Equal(t, tt.wantTotal, result.Total)
		})
	}
}

func TestFeeCLIOutput(t *testing.T) {
	out, err := executeCommand(t, "fee", "serverless", "--provider", "cloudflare-workers",
		"--requests", "20000000", "--elapsed", "100", "--format", "cli", "--no-color")
	require.NoError(t, err)
	assert.Contains(t, out, "CLOUDFLARE WORKERS FEE ESTIMATE")
	assert.Contains(t, out, "$47.40")
}

func TestFeeErrors(t *testing.T) {
	_, err := executeCommand(t, "fee", "queue", "--provider", "azure-service-bus")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeNotFound))

	_, err = executeCommand(t, "fee", "queue", "--format", "html")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))
}

func TestCompareFromFlags(t *testing.T) {
	out, err := executeCommand(t, "compare", "queue",
		"--message-per-batch", "10", "--message-size", "10",
		"--step", "1000000", "--count", "3", "--format", "json")
	require.NoError(t, err)

	var c comparisonJSON
	require.NoError(t, json.Unmarshal([]byte(out), &c), out)
	assert.Equal(t, "queue", c.Category)
	assert.Equal(t, []string{"1000000", "2000000", "3000000"}, c.Labels)
	require.Len(t, c.Datasets, 2)
	assert.Equal(t, []string{"1.14", "2.68", "4.22"}, c.Datasets[0].Data)
}

func TestCompareFromFile(t *testing.T) {
	path := writeScenario(t, `
queue {
  sample {
    step  = 1000000
    count = 3
  }
  message_per_batch = 10
  size_of_message   = 10
}
`)

	out, err := executeCommand(t, "compare", "queue", "--file", path, "--format", "json")
	require.NoError(t, err)
	var c comparisonJSON
	require.NoError(t, json.Unmarshal([]byte(out), &c), out)
	assert.Equal(t, []string{"1.14", "2.68", "4.22"}, c.Datasets[0].Data)

	out, err = executeCommand(t, "compare", "queue", "--file", path, "--count", "2", "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &c), out)
	assert.Len(t, c.Labels, 2)

	out, err = executeCommand(t, "compare", "--file", path, "--format", "json")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(out), &c), out)
	assert.Equal(t, "queue", c.Category)
}

func TestCompareErrors(t *testing.T) {
	path := writeScenario(t, `queue { size_of_message = 10 }`)

	_, err := executeCommand(t, "compare", "serverless", "--file", path)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))

	_, err = executeCommand(t, "compare", "storage", "--step", "0")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))

	_, err = executeCommand(t, "compare", "storage", "--step", "NaN", "--count", "3")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))

	_, err = executeCommand(t, "compare", "queue", "--step", "1", "--count", "1001")
	require.Error(t, err, "count above server.max_sample_points")
	assert.True(t, apperrors.IsType(err, apperrors.TypeInput))

	broken := writeScenario(t, `queue {`)
	_, err = executeCommand(t, "compare", "--file", broken)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.TypeParsing))
}

func TestCompareNonFiniteFactorClamps(t *testing.T) {
	out, err := executeCommand(t, "compare", "serverless",
		"--response-size", "NaN", "--step", "1", "--count", "2", "--format", "json")
	require.NoError(t, err)

	var c comparisonJSON
	require.NoError(t, json.Unmarshal([]byte(out), &c), out)
	require.Len(t, c.Datasets, 3)
	assert.Equal(t, []string{"0", "0"}, c.Datasets[2].Data)
}

func TestMissingConfigFileWarns(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "cli.log")
	t.Setenv("CLOUDFEE_LOGGING_OUTPUT", logFile)
	t.Cleanup(logging.InitializeDefault)

	missing := filepath.Join(t.TempDir(), "missing.yaml")
	_, err := executeCommand(t, "version", "--config", missing)
	require.NoError(t, err)

	logging.Sync()
	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "config file not found")
	assert.Contains(t, string(data), missing)
}
