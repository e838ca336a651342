package pack_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ricechen/packmigrate/internal/pack"
)

// TestClassify tests predicate classification across every observed key set.
func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		predicate map[string]float64
		want      pack.Classified
	}{
		{
			name:      "custom model data only",
			predicate: map[string]float64{"custom_model_data": 19002},
			want:      pack.Classified{Kind: pack.KindCustomModelData, CustomModelData: 19002},
		},
		{
			name:      "custom model data with damage",
			predicate: map[string]float64{"custom_model_data": 5, "damage": 0.3},
			want:      pack.Classified{Kind: pack.KindCustomModelDataDamage, CustomModelData: 5, Damage: 0.3},
		},
		{
			name:      "custom model data with damaged flag",
			predicate: map[string]float64{"custom_model_data": 7, "damaged": 1},
			want:      pack.Classified{Kind: pack.KindCustomModelDataDamage, CustomModelData: 7},
		},
		{
			name:      "damage only",
			predicate: map[string]float64{"damage": 0.25},
			want:      pack.Classified{Kind: pack.KindDamageOnly, Damage: 0.25},
		},
		{
			name:      "damage with damaged flag",
			predicate: map[string]float64{"damage": 0.5, "damaged": 1},
			want:      pack.Classified{Kind: pack.KindDamageOnly, Damage: 0.5},
		},
		{
			name:      "damaged flag without damage value is malformed",
			predicate: map[string]float64{"damaged": 1},
			want:      pack.Classified{Kind: pack.KindUnrecognized},
		},
		{
			name:      "unknown keys",
			predicate: map[string]float64{"pulling": 1},
			want:      pack.Classified{Kind: pack.KindUnrecognized},
		},
		{
			name:      "empty predicate",
			predicate: map[string]float64{},
			want:      pack.Classified{Kind: pack.KindUnrecognized},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pack.Classify(tt.predicate))
		})
	}
}

// TestKindString tests the kind names used in log output.
func TestKindString(t *testing.T) {
	assert.Equal(t, "custom_model_data", pack.KindCustomModelData.String())
	assert.Equal(t, "custom_model_data+damage", pack.KindCustomModelDataDamage.String())
	assert.Equal(t, "damage", pack.KindDamageOnly.String())
	assert.Equal(t, "unrecognized", pack.KindUnrecognized.String())
}

// TestKindHasCustomModelData tests the CMD-component check used by damage
// mode's incompatibility scan.
func TestKindHasCustomModelData(t *testing.T) {
	assert.True(t, pack.KindCustomModelData.HasCustomModelData())
	assert.True(t, pack.KindCustomModelDataDamage.HasCustomModelData())
	assert.False(t, pack.KindDamageOnly.HasCustomModelData())
	assert.False(t, pack.KindUnrecognized.HasCustomModelData())
}
