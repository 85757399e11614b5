package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/blocksim/blocksim/sim/trace"
)

func TestShouldCache_AdmissionTable(t *testing.T) {
	tests := []struct {
		policy string
		op     trace.OpType
		want   bool
	}{
		{NameCacheEverything, trace.OpRead, true},
		{NameCacheEverything, trace.OpReadStream, true},
		{NameCacheEverything, trace.OpWrite, true},
		{NameCacheEverything, trace.OpWriteStream, true},
		{NameAll, trace.OpRead, true},
		{NameAll, trace.OpWrite, true},
		{NameWriteOnly, trace.OpRead, false},
		{NameWriteOnly, trace.OpReadStream, false},
		{NameWriteOnly, trace.OpWrite, true},
		{NameWriteOnly, trace.OpWriteStream, true},
		{NameReadOnly, trace.OpRead, true},
		{NameReadOnly, trace.OpReadStream, true},
		{NameReadOnly, trace.OpWrite, false},
		{NameReadOnly, trace.OpWriteStream, false},
	}
	for _, tt := range tests {
		t.Run(tt.policy+"/"+tt.op.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldCache(tt.op, tt.policy))
		})
	}
}

func TestNewAdmissionPolicy_AliasSharesBehavior(t *testing.T) {
	p := NewAdmissionPolicy(NameAll)

	assert.Equal(t, NameCacheEverything, p.Name())
}

func TestNewAdmissionPolicy_UnknownNamePanics(t *testing.T) {
	assert.Panics(t, func() { NewAdmissionPolicy("lfu") })
}

func TestIsValidPolicy(t *testing.T) {
	for _, name := range DefaultPolicyNames() {
		assert.True(t, IsValidPolicy(name), name)
	}
	assert.True(t, IsValidPolicy(NameAll))
	assert.False(t, IsValidPolicy(""))
	assert.Equal(t, []string{"all", "cache-everything", "read-only", "write-only"}, ValidPolicyNames())
}
