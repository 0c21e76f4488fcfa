package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/calculator"
)

func runSettle(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

const tripLedger = `{
  "name": "Ski Trip",
  "members": [
    {"id": "alice", "name": "Alice"},
    {"id": "bob", "name": "Bob"},
    {"id": "carol", "name": "Carol"}
  ],
  "expenses": [
    {"description": "Dinner", "category": "food", "amount": "90.00", "paidBy": "alice",
     "participants": ["alice", "bob", "carol"]},
    {"description": "Cabin", "category": "accommodation", "amount": 60, "paidBy": "bob",
     "participants": ["bob", "carol"], "splitType": "CUSTOM", "values": {"bob": "20", "carol": "40"}}
  ],
  "payments": [
    {"from": "carol", "to": "alice", "amount": "10"}
  ]
}`

func TestPlan(t *testing.T) {
	path := writeFile(t, "ledger.json", tripLedger)

	out, err := runSettle(t, "plan", path)
	require.NoError(t, err)

	// alice +50, bob +10, carol -60
	assert.Contains(t, out, "Ski Trip")
	assert.Contains(t, out, "Carol → Alice  50.00")
	assert.Contains(t, out, "Carol → Bob  10.00")
	assert.Contains(t, out, "Cabin")
	assert.Contains(t, out, "accommodation")
}

func TestPlan_Settled(t *testing.T) {
	path := writeFile(t, "ledger.json", `{
  "members": [{"id": "a", "name": "Ann"}, {"id": "b", "name": "Ben"}],
  "expenses": [{"description": "Taxi", "amount": "20", "paidBy": "a", "participants": ["a", "b"]}],
  "payments": [{"from": "b", "to": "a", "amount": "10"}]
}`)

	out, err := runSettle(t, "plan", path)
	require.NoError(t, err)
	assert.Contains(t, out, "All settled up.")
}

func TestPlan_Errors(t *testing.T) {
	tests := []struct {
		name    string
		ledger  string
		wantErr error
	}{
		{
			name:    "unknown payer",
			ledger:  `{"members": [{"id": "a"}], "expenses": [{"id": "e1", "description": "x", "amount": "5", "paidBy": "zed", "participants": ["a"]}]}`,
			wantErr: calculator.ErrUnknownMember,
		},
		{
			name:    "custom mismatch",
			ledger:  `{"members": [{"id": "a"}, {"id": "b"}], "expenses": [{"description": "x", "amount": "5", "paidBy": "a", "participants": ["a", "b"], "splitType": "CUSTOM", "values": {"a": "1", "b": "1"}}]}`,
			wantErr: calculator.ErrSplitMismatch,
		},
		{
			name:    "no participants",
			ledger:  `{"members": [{"id": "a"}], "expenses": [{"description": "x", "amount": "5", "paidBy": "a"}]}`,
			wantErr: calculator.ErrInvalidSplit,
		},
		{
			name:    "zero payment",
			ledger:  `{"members": [{"id": "a"}, {"id": "b"}], "payments": [{"from": "b", "to": "a", "amount": "0"}]}`,
			wantErr: errInvalidPayment,
		},
		{
			name:    "negative payment",
			ledger:  `{"members": [{"id": "a"}, {"id": "b"}], "payments": [{"from": "b", "to": "a", "amount": "-5"}]}`,
			wantErr: errInvalidPayment,
		},
		{
			name:    "payment to self",
			ledger:  `{"members": [{"id": "a"}, {"id": "b"}], "payments": [{"from": "a", "to": "a", "amount": "5"}]}`,
			wantErr: errInvalidPayment,
		},
		{
			name:    "payment from stranger",
			ledger:  `{"members": [{"id": "a"}, {"id": "b"}], "payments": [{"from": "zed", "to": "a", "amount": "5"}]}`,
			wantErr: calculator.ErrUnknownMember,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := runSettle(t, "plan", writeFile(t, "ledger.json", tt.ledger))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
		})
	}

	_, err := runSettle(t, "plan", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = runSettle(t, "plan", writeFile(t, "bad.json", "{"))
	assert.Error(t, err)
}

func TestSplit(t *testing.T) {
	out, err := runSettle(t, "split", "--amount", "100", "--participant", "carol", "--participant", "alice", "--participant", "bob")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"alice", "33.34"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"bob", "33.33"}, strings.Fields(lines[1]))
	assert.Equal(t, []string{"carol", "33.33"}, strings.Fields(lines[2]))

	out, err = runSettle(t, "split", "--amount", "200", "--type", "percentage", "--participant", "alice=60", "--participant", "bob=40")
	require.NoError(t, err)
	assert.Contains(t, out, "120.00")
	assert.Contains(t, out, "80.00")

	_, err = runSettle(t, "split", "--amount", "200", "--type", "percentage", "--participant", "alice=60", "--participant", "bob=30")
	assert.ErrorIs(t, err, calculator.ErrSplitMismatch)

	_, err = runSettle(t, "split", "--amount", "10", "--participant", "a=lots")
	assert.Error(t, err)
}

func TestParseParticipants(t *testing.T) {
	ids, values, err := parseParticipants([]string{"alice=12.5", "bob", "alice=1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, ids)
	assert.Equal(t, "1", values["alice"].String())
	_, ok := values["bob"]
	assert.False(t, ok)

	_, _, err = parseParticipants([]string{"=5"})
	assert.Error(t, err)
}

func TestReceipt(t *testing.T) {
	path := writeFile(t, "receipt.txt", "Corner Cafe\n02/05/2024\nLatte 4.50\nTOTAL 9.00\n")

	out, err := runSettle(t, "receipt", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Receipt from Corner Cafe")
	assert.Contains(t, out, "9.00")
	assert.Contains(t, out, "02/05/2024")

	out, err = runSettle(t, "receipt", writeFile(t, "blank.txt", "thanks\n"))
	require.NoError(t, err)
	assert.Contains(t, out, "(not found)")
}

func TestReceipt_Split(t *testing.T) {
	path := writeFile(t, "receipt.txt", "Corner Cafe\nTOTAL 10.00\n")

	out, err := runSettle(t, "receipt", path, "--participant", "carol", "--participant", "alice", "--participant", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Paid by:     carol")
	assert.Regexp(t, `alice\s+3\.34`, out)
	assert.Regexp(t, `bob\s+3\.33`, out)
	assert.Regexp(t, `carol\s+3\.33`, out)

	out, err = runSettle(t, "receipt", path, "--paid-by", "bob", "--participant", "alice", "--participant", "bob")
	require.NoError(t, err)
	assert.Contains(t, out, "Paid by:     bob")
	assert.Regexp(t, `alice\s+5\.00`, out)

	_, err = runSettle(t, "receipt", writeFile(t, "blank.txt", "thanks\n"), "--participant", "alice")
	assert.ErrorIs(t, err, calculator.ErrInvalidSplit)
}
