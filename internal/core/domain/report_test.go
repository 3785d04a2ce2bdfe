package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/comfyops/comfyprov/internal/core/domain"
)

func TestReport(t *testing.T) {
	r := domain.NewReport()
	r.Record("torch", domain.KindDependency, domain.OutcomeSatisfied, "")
	r.Record("ComfyUI-Manager", domain.KindPlugin, domain.OutcomeFailed, "clone failed")
	r.Record("was-node-suite", domain.KindPlugin, domain.OutcomeDegraded, "")
	r.Record("xformers", domain.KindDependency, domain.OutcomeFailed, "install failed")

	assert.Len(t, r.Entries(), 4)
	assert.True(t, r.HasFailures())

	// Only plugin failures count as failed plugins.
	assert.Equal(t, []string{"ComfyUI-Manager"}, r.FailedPlugins())

	counts := r.Counts()
	assert.Equal(t, 1, counts[domain.OutcomeSatisfied])
	assert.Equal(t, 2, counts[domain.OutcomeFailed])
	assert.Equal(t, 1, counts[domain.OutcomeDegraded])
}

func TestReport_Empty(t *testing.T) {
	r := domain.NewReport()
	assert.Empty(t, r.Entries())
	assert.False(t, r.HasFailures())
	assert.Nil(t, r.FailedPlugins())
}
