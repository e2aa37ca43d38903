package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dep2p/go-dishub/pkg/interfaces"
	"github.com/dep2p/go-dishub/pkg/types"
)

func TestApply(t *testing.T) {
	msg := []byte("pdu")

	tests := []struct {
		name     string
		filter   interfaces.Filter
		wantMsg  []byte
		wantSend bool
	}{
		{"nil filter", nil, msg, true},
		{"pass", fixed(types.Pass(), nil), msg, true},
		{"drop", fixed(types.Drop(), nil), nil, false},
		{"rewrite", fixed(types.Rewrite([]byte("new")), nil), []byte("new"), true},
		{"rewrite nil", fixed(types.Rewrite(nil), nil), msg, true},
		{"no opinion", fixed(types.NoOpinion(), nil), msg, true},
		{"error", fixed(types.Drop(), errors.New("boom")), msg, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, send := Apply(tt.filter, msg)
			assert.Equal(t, tt.wantSend, send)
			assert.Equal(t, tt.wantMsg, got)
		})
	}
}

func fixed(res types.FilterResult, err error) interfaces.Filter {
	return interfaces.FilterFunc(func([]byte) (types.FilterResult, error) { return res, err })
}
