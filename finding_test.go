package qagent_test

import (
	"testing"

	"github.com/fwojciec/qagent"
	"github.com/stretchr/testify/assert"
)

func TestGroupFindings(t *testing.T) {
	t.Parallel()

	t.Run("keeps discovery order within each bucket", func(t *testing.T) {
		t.Parallel()

		findings := []qagent.Finding{
			{Issue: "w1", Severity: qagent.SeverityWarning},
			{Issue: "e1", Severity: qagent.SeverityError},
			{Issue: "w2", Severity: qagent.SeverityWarning},
			{Issue: "i1", Severity: qagent.SeverityInfo},
		}

		groups := qagent.GroupFindings(findings)

		assert.Equal(t, []string{"e1"}, issues(groups.Errors))
		assert.Equal(t, []string{"w1", "w2"}, issues(groups.Warnings))
		assert.Equal(t, []string{"i1"}, issues(groups.Infos))
		assert.False(t, groups.Empty())
	})

	t.Run("empty input is empty", func(t *testing.T) {
		t.Parallel()

		assert.True(t, qagent.GroupFindings(nil).Empty())
	})
}

func issues(findings []qagent.Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Issue)
	}
	return out
}
