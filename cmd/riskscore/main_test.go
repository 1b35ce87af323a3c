package main

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lumina/risk-api/internal/domain"
	"lumina/risk-api/internal/scoring"
	"lumina/risk-api/internal/synthetic"
)

func TestRun_StdinJSON(t *testing.T) {
	in := strings.NewReader(`{"age":35,"country_risk":"low","pep":false,"sanctions_match":true,
		"income_band":"middle","occupation_risk":"low","onboarding_channel":"in-person",
		"amount":1000,"velocity_24h":1,"cross_border":false,"cash_intensity":"low","counterparty_risk":"low"}`)
	var out bytes.Buffer

	require.NoError(t, run(in, &out, -1, "", true))

	var res domain.ScoreResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	assert.Equal(t, 40, res.Score)
	assert.Equal(t, domain.RiskMedium, res.Band)
	require.Len(t, res.Drivers, 1)
	assert.Equal(t, "sanctions", res.Drivers[0].Key)
}

func TestRun_SyntheticText(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, run(strings.NewReader(""), &out, 7, "", false))

	want := scoring.Score(synthetic.Generate(7))
	assert.True(t, strings.HasPrefix(out.String(), "Risk score: "+strconv.Itoa(want.Score)+"/100"))
	assert.Contains(t, out.String(), "Amount:")
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, run(strings.NewReader("not json"), &out, -1, "", false))
	assert.Error(t, run(strings.NewReader(""), &out, 1<<33, "", false))
	assert.Error(t, run(strings.NewReader(""), &out, -1, "does-not-exist.json", false))
}
