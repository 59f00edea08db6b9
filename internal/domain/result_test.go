package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name           string
		err            error
		expectedKind   FailureKind
		expectedMsg    string
		expectedStatus int
		expectedDetail string
	}{
		{
			name:         "missing token is a configuration failure",
			err:          fmt.Errorf("failed to fetch user: %w", ErrNotConfigured),
			expectedKind: KindConfiguration,
			expectedMsg:  "GitHub token not configured",
		},
		{
			name:           "wrapped upstream error keeps status and body",
			err:            fmt.Errorf("failed to fetch repository: %w", &UpstreamError{StatusCode: 404, Body: `{"message":"Not Found"}`}),
			expectedKind:   KindUpstream,
			expectedMsg:    "HTTP error 404",
			expectedStatus: 404,
			expectedDetail: `{"message":"Not Found"}`,
		},
		{
			name:           "prepared failure passes through",
			err:            fmt.Errorf("failed to compare branches: %w", &Failure{Kind: KindUpstream, Message: "Branch comparison not found - check if branches exist", StatusCode: 404}),
			expectedKind:   KindUpstream,
			expectedMsg:    "Branch comparison not found - check if branches exist",
			expectedStatus: 404,
		},
		{
			name:           "anything else is unexpected",
			err:            errors.New("connection reset"),
			expectedKind:   KindUnexpected,
			expectedMsg:    "Exception occurred while fetching branch status",
			expectedDetail: "connection reset",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			f := Classify("fetching branch status", tc.err)
			assert.Equal(t, tc.expectedKind, f.Kind)
			assert.Equal(t, tc.expectedMsg, f.Message)
			assert.Equal(t, tc.expectedStatus, f.StatusCode)
			assert.Equal(t, tc.expectedDetail, f.Details)
		})
	}
}

func TestResult_MarshalJSON(t *testing.T) {
	t.Run("success renders the report", func(t *testing.T) {
		res := Succeed(&BranchOverviewReport{Owner: "o", Repo: "r", Branches: []BranchStatus{}})
		require.True(t, res.OK())

		data, err := json.Marshal(res)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "o", decoded["owner"])
		assert.NotContains(t, decoded, "error")
	})

	t.Run("failure renders the error shape", func(t *testing.T) {
		res := Fail[BranchOverviewReport](&Failure{Kind: KindUpstream, Message: "HTTP error 403", StatusCode: 403, Details: "rate limited"})
		require.False(t, res.OK())

		data, err := json.Marshal(res)
		require.NoError(t, err)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(data, &decoded))
		assert.Equal(t, "HTTP error 403", decoded["error"])
		assert.Equal(t, float64(403), decoded["status_code"])
		assert.Equal(t, "rate limited", decoded["details"])
	})
}
