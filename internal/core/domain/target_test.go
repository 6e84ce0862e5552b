package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/fxdev/internal/core/domain"
)

func TestBuildTarget_MergedDefine(t *testing.T) {
	tests := []struct {
		name   string
		target domain.BuildTarget
		game   domain.Game
		global map[string]string
		want   map[string]string
	}{
		{
			name:   "platform constant only",
			target: domain.BuildTarget{Name: "client"},
			game:   domain.GameGTA5,
			want:   map[string]string{"IS_RDR3": "false"},
		},
		{
			name:   "rdr3 flips the platform constant",
			target: domain.BuildTarget{Name: "client"},
			game:   domain.GameRDR3,
			want:   map[string]string{"IS_RDR3": "true"},
		},
		{
			name:   "global defines are merged in",
			target: domain.BuildTarget{Name: "server"},
			game:   domain.GameGTA5,
			global: map[string]string{"DEBUG": "true"},
			want:   map[string]string{"IS_RDR3": "false", "DEBUG": "true"},
		},
		{
			name: "target defines win over global and platform",
			target: domain.BuildTarget{
				Name:   "server",
				Define: map[string]string{"DEBUG": "false", "IS_RDR3": "true"},
			},
			game:   domain.GameGTA5,
			global: map[string]string{"DEBUG": "true"},
			want:   map[string]string{"IS_RDR3": "true", "DEBUG": "false"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.target.MergedDefine(tt.game, tt.global))
		})
	}
}

func TestValidSyntaxTarget(t *testing.T) {
	valid := []string{"esnext", "es5", "es2015", "es2021", "es2024", "node16", "node18.17", "node20.11.1"}
	for _, s := range valid {
		assert.True(t, domain.ValidSyntaxTarget(s), s)
	}

	invalid := []string{"", "es6", "es2014", "es2025", "ES2021", "node", "node16beta", "deno1"}
	for _, s := range invalid {
		assert.False(t, domain.ValidSyntaxTarget(s), s)
	}
}
